package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"familytree/internal/domain"
)

// JSONCodec handles JSON import/export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Parse imports a family fragment from JSON
func (c *JSONCodec) Parse(r io.Reader) (*domain.FamilyFragment, error) {
	var fragment domain.FamilyFragment
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&fragment); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if fragment.Events == nil {
		fragment.Events = make([]domain.Event, 0)
	}

	if err := Validate(&fragment); err != nil {
		return nil, err
	}
	return &fragment, nil
}

// Export exports a family fragment to JSON
func (c *JSONCodec) Export(fragment *domain.FamilyFragment, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(fragment); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
