package repository

import (
	"context"

	"familytree/internal/domain"
)

// PersonRecord is one stored family member
type PersonRecord struct {
	Position int    `json:"position"`
	Name     string `json:"name"`
	Gender   string `json:"gender"`
	Mother   string `json:"mother,omitempty"`
	Spouse   string `json:"spouse,omitempty"`
}

// EventRecord is one stored history event
type EventRecord struct {
	Seq    int    `json:"seq"`
	Kind   string `json:"kind"`
	Anchor string `json:"anchor"`
	Name   string `json:"name"`
	Gender string `json:"gender"`
}

// Repository defines the interface for family snapshot storage
type Repository interface {
	// Write operations
	WriteFamily(ctx context.Context, family *domain.Family) error

	// Read operations
	ListPeople(ctx context.Context) ([]PersonRecord, error)
	ListEvents(ctx context.Context) ([]EventRecord, error)

	// Close releases resources
	Close() error
}
