// Package service implements the application layer for familytree.
//
// FamilyService owns one domain.Family and serializes every access to it with
// a single mutex, so the HTTP handlers, the batch runner and the file watcher
// can share it without concurrent mutation of the graph.
//
// # Operations
//
// Batch execution reads command lines, runs them in order and writes one
// output line per command. Blank lines are skipped and unsupported commands
// render UNSUPPORTED_COMMAND instead of aborting the batch.
//
// Direct operations (AddChild, Marry, Relationship, Members, Person) return
// PersonView values so callers never hold pointers into the graph.
//
// Export writes the family history through a codec, Snapshot hands the family
// to a SnapshotWriter such as the SQLite repository.
package service
