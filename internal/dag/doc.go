// Package dag models the build's dependency graph and executes it. Nodes
// are build steps; a directed edge records that one step may only run
// after another completed. Execution is fail-fast: the first real failure
// cancels in-flight work and abandons everything downstream.
//
// The executor runs a configurable worker pool. One worker reproduces the
// strictly sequential, declared-order traversal; more workers execute
// independent branches concurrently, with completion of all prerequisites
// acting as the join barrier before any dependent starts.
package dag
