// Package loader builds families from seed files.
package loader

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"familytree/internal/codec"
	"familytree/internal/domain"
)

//go:embed king_shan.yaml
var kingShanYAML []byte

// Build replays a fragment into a new family.
// Replay stops at the first event the family rejects.
func Build(fragment *domain.FamilyFragment) (*domain.Family, error) {
	family := domain.NewFamily(fragment.Father, fragment.Mother)

	for i, event := range fragment.Events {
		var err error
		switch event.Kind {
		case domain.EventChild:
			_, err = family.AddChild(event.Anchor, event.Name, event.Gender)
		case domain.EventMarriage:
			_, err = family.Marry(event.Anchor, event.Name, event.Gender)
		default:
			err = fmt.Errorf("unknown event kind %q", event.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("event %d (%s %s): %w", i+1, event.Kind, event.Name, err)
		}
	}

	return family, nil
}

// LoadFile reads a seed file, choosing the codec from its extension
func LoadFile(path string) (*domain.Family, error) {
	c, err := codec.ByExtension(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed: %w", err)
	}
	defer f.Close()

	fragment, err := c.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse seed %s: %w", path, err)
	}

	return Build(fragment)
}

// KingShan returns a fresh copy of the built-in King Shan family
func KingShan() (*domain.Family, error) {
	fragment, err := codec.NewYAMLCodec().Parse(bytes.NewReader(kingShanYAML))
	if err != nil {
		return nil, fmt.Errorf("parse built-in seed: %w", err)
	}
	return Build(fragment)
}

// Seed loads path, or the built-in family when path is empty
func Seed(path string) (*domain.Family, error) {
	if path == "" {
		return KingShan()
	}
	return LoadFile(path)
}
