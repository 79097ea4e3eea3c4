package service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"familytree/internal/codec"
	"familytree/internal/command"
	"familytree/internal/domain"
)

// SnapshotWriter stores a point-in-time copy of a family
type SnapshotWriter interface {
	WriteFamily(ctx context.Context, family *domain.Family) error
}

// Notifier receives family change events
type Notifier interface {
	Broadcast(event any)
}

// ChangeType names a family change
type ChangeType string

const (
	ChangeChildAdded ChangeType = "child_added"
	ChangeMarriage   ChangeType = "marriage"
	ChangeBatch      ChangeType = "batch"
	ChangeReloaded   ChangeType = "reloaded"
)

// Change is published after each successful mutation, batch run or reload
type Change struct {
	Type    ChangeType  `json:"type"`
	Person  *PersonView `json:"person,omitempty"`
	Stats   *Stats      `json:"stats,omitempty"`
	Members int         `json:"members"`
}

// Stats summarizes a batch run
type Stats struct {
	Commands int `json:"commands"`
	Failed   int `json:"failed"`
}

// FamilyService provides business logic for one family
type FamilyService struct {
	mu       sync.Mutex
	family   *domain.Family
	verbose  bool
	notifier Notifier
}

// NewFamilyService creates a new family service
func NewFamilyService(family *domain.Family) *FamilyService {
	return &FamilyService{family: family}
}

// SetVerbose enables per-command logging
func (s *FamilyService) SetVerbose(verbose bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verbose = verbose
}

// SetNotifier sets where change events are sent
func (s *FamilyService) SetNotifier(n Notifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifier = n
}

// notify publishes c; callers hold s.mu
func (s *FamilyService) notify(c Change) {
	if s.notifier == nil {
		return
	}
	c.Members = s.family.Len()
	s.notifier.Broadcast(c)
}

// Execute runs a single command line and returns its output.
// ok is false for blank lines.
func (s *FamilyService) Execute(line string) (output string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	output, ok, _ = s.execute(line)
	return output, ok
}

// execute runs one line; failed reports whether the command did not succeed.
// Callers hold s.mu.
func (s *FamilyService) execute(line string) (output string, ok bool, failed bool) {
	output, err := command.Execute(line, s.family)
	if errors.Is(err, command.ErrEmptyLine) {
		return "", false, false
	}
	if s.verbose {
		if err != nil {
			log.Printf("%q -> %s (%v)", strings.TrimSpace(line), output, err)
		} else {
			log.Printf("%q -> %s", strings.TrimSpace(line), output)
		}
	}
	return output, true, err != nil
}

// RunBatch executes every line from r and writes one output line per command to w.
// Lines of any length are read; cancellation is checked between lines.
func (s *FamilyService) RunBatch(ctx context.Context, r io.Reader, w io.Writer) (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stats Stats
	reader := bufio.NewReader(r)
	for {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return stats, fmt.Errorf("read commands: %w", readErr)
		}
		if readErr == io.EOF && line == "" {
			break
		}
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		output, ok, failed := s.execute(line)
		if ok {
			stats.Commands++
			if failed {
				stats.Failed++
			}
			if _, err := fmt.Fprintln(w, output); err != nil {
				return stats, fmt.Errorf("write output: %w", err)
			}
		}
		if readErr == io.EOF {
			break
		}
	}

	if s.verbose {
		log.Printf("Batch complete: %d commands, %d failed", stats.Commands, stats.Failed)
	}
	if stats.Commands > 0 {
		summary := stats
		s.notify(Change{Type: ChangeBatch, Stats: &summary})
	}
	return stats, nil
}

// AddChild adds a child to the named mother
func (s *FamilyService) AddChild(ctx context.Context, mother, name, gender string) (PersonView, error) {
	if err := ctx.Err(); err != nil {
		return PersonView{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	child, err := s.family.AddChild(mother, name, gender)
	if err != nil {
		return PersonView{}, err
	}
	if s.verbose {
		log.Printf("Added child %s to %s", name, mother)
	}
	view := newPersonView(child)
	s.notify(Change{Type: ChangeChildAdded, Person: &view})
	return view, nil
}

// Marry marries a new spouse to the named person
func (s *FamilyService) Marry(ctx context.Context, person, name, gender string) (PersonView, error) {
	if err := ctx.Err(); err != nil {
		return PersonView{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	spouse, err := s.family.Marry(person, name, gender)
	if err != nil {
		return PersonView{}, err
	}
	if s.verbose {
		log.Printf("Married %s to %s", name, person)
	}
	view := newPersonView(spouse)
	s.notify(Change{Type: ChangeMarriage, Person: &view})
	return view, nil
}

// Relationship resolves a relationship and returns the names in order
func (s *FamilyService) Relationship(ctx context.Context, name, relationship string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	people, err := domain.Resolve(s.family, name, relationship)
	if err != nil {
		return nil, err
	}
	return domain.Names(people), nil
}

// Person returns the named member
func (s *FamilyService) Person(ctx context.Context, name string) (PersonView, error) {
	if err := ctx.Err(); err != nil {
		return PersonView{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.family.Find(name)
	if p == nil {
		return PersonView{}, fmt.Errorf("%w: %s", domain.ErrPersonNotFound, name)
	}
	return newPersonView(p), nil
}

// Members returns every member in insertion order
func (s *FamilyService) Members(ctx context.Context) ([]PersonView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	members := s.family.Members()
	views := make([]PersonView, 0, len(members))
	for _, p := range members {
		views = append(views, newPersonView(p))
	}
	return views, nil
}

// Export writes the family history in the named format
func (s *FamilyService) Export(ctx context.Context, format string, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	exporter, err := codec.ByFormat(format)
	if err != nil {
		return err
	}

	s.mu.Lock()
	fragment := s.family.Fragment()
	s.mu.Unlock()

	return exporter.Export(fragment, w)
}

// Snapshot writes the current family to store
func (s *FamilyService) Snapshot(ctx context.Context, store SnapshotWriter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := store.WriteFamily(ctx, s.family); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if s.verbose {
		log.Printf("Snapshot written: %d members", s.family.Len())
	}
	return nil
}

// Replace swaps in a new family, used when the seed is reloaded
func (s *FamilyService) Replace(family *domain.Family) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.family = family
	s.notify(Change{Type: ChangeReloaded})
}
