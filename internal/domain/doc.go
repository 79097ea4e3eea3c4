// Package domain defines the core genealogy types for familytree.
//
// This package contains the people graph and the derivation rules used to
// answer relationship queries over it.
//
// # Core Types
//
// Gender is the closed two-value tag carried by every Person.
//
// Person is one node of the graph. It holds a symmetric spouse link, an ordered
// list of children and a back reference to its mother.
//
// Family is the registry of every Person created for one genealogy. It is the
// only way to create people: the founding couple comes from NewFamily, every
// other member from AddChild or Marry. Members are never removed.
//
// # Relationships
//
// Relationship is the closed set of derived relationships (SON, SIBLINGS,
// PATERNAL-UNCLE, SISTER-IN-LAW, ...). Resolve looks a person up by name and
// derives the requested relationship by walking mother, spouse and children
// links. A missing link along the way yields an empty result, never an error.
//
// # History
//
// Every successful mutation is recorded as an Event. Family.Fragment returns the
// founders plus the ordered events, which replays to an identical graph.
//
// # Design Principles
//
// - No I/O and no infrastructure dependencies
// - Insertion order is preserved everywhere results are returned
// - Failures are reported with the sentinel errors in errors.go
package domain
