// Package store is the artifact store: the filesystem namespace where
// build outputs land. It owns path resolution relative to the project
// root, the existence checks that drive staleness decisions, and the
// explicit removal used by the clean target. Artifacts are never removed
// implicitly.
//
// The store's discipline is one producer per path with a check-then-act
// existence test. That test is not safe under concurrent re-invocation of
// the same target from two processes: both can observe "missing" and race
// to produce the artifact. This is a documented property of the contract,
// not a bug in a caller; no cross-process lock is taken.
package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store is a handle on the artifact namespace rooted at the project root.
type Store struct {
	root string
}

// New creates a store rooted at the given directory.
func New(root string) *Store {
	return &Store{root: root}
}

// Root returns the store's root directory.
func (s *Store) Root() string { return s.root }

// Path resolves a manifest-relative path to an absolute one. Absolute
// inputs pass through unchanged.
func (s *Store) Path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(s.root, rel)
}

// FileExists reports whether the path exists and is a regular file.
func (s *Store) FileExists(rel string) bool {
	info, err := os.Stat(s.Path(rel))
	return err == nil && info.Mode().IsRegular()
}

// DirExists reports whether the path exists and is a directory.
func (s *Store) DirExists(rel string) bool {
	info, err := os.Stat(s.Path(rel))
	return err == nil && info.IsDir()
}

// MkdirAll creates the directory and any missing parents.
func (s *Store) MkdirAll(rel string) error {
	if err := os.MkdirAll(s.Path(rel), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", rel, err)
	}
	return nil
}

// Remove deletes the artifact at rel, recursively for directories. It is
// the manual-cleanup path; nothing in the orchestrator calls it outside
// the clean target.
func (s *Store) Remove(rel string) error {
	if err := os.RemoveAll(s.Path(rel)); err != nil {
		return fmt.Errorf("removing %s: %w", rel, err)
	}
	return nil
}
