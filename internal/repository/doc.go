// Package repository defines snapshot storage for familytree.
//
// A snapshot is a point-in-time copy of one Family: every member with its
// registry position, mother and spouse, plus the ordered history of events
// that rebuilds it. Snapshots are written whole; each write replaces the
// previous one. The in-memory Family stays the source of truth and nothing is
// read back into it.
//
// The sqlite subpackage implements Repository on modernc.org/sqlite.
package repository
