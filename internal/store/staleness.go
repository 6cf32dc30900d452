package store

// Predicate decides whether a step's output must be (re)produced. Each
// step carries its own predicate, so the granularity of the check (whole
// directory, exact file, or unconditional) is chosen per artifact.
// Existence is the only signal: a predicate never inspects timestamps or
// content, so an output that exists is considered current even when its
// inputs changed after it was produced.
type Predicate func(s *Store) (stale bool, err error)

// FileMissing is stale iff the given file does not exist.
func FileMissing(rel string) Predicate {
	return func(s *Store) (bool, error) { return !s.FileExists(rel), nil }
}

// DirMissing is stale iff the given directory does not exist. Note the
// coarseness: a directory that exists but is missing expected contents
// still reads as fresh.
func DirMissing(rel string) Predicate {
	return func(s *Store) (bool, error) { return !s.DirExists(rel), nil }
}
