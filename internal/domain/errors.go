package domain

import "errors"

// Errors surfaced by the genealogy core. Callers classify them with errors.Is;
// wrapping layers must keep them reachable through %w.
var (
	ErrUnsupportedGender         = errors.New("unsupported gender")
	ErrUnsupportedCommand        = errors.New("unsupported command")
	ErrUnsupportedRelationship   = errors.New("unsupported relationship")
	ErrPersonNotFound            = errors.New("person not found")
	ErrInappropriateMotherGender = errors.New("inappropriate mother gender")
)
