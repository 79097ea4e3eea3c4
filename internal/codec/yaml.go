package codec

import (
	"fmt"
	"io"

	"familytree/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML import/export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// yamlFamily represents the YAML structure for a family
type yamlFamily struct {
	Founders yamlFounders `yaml:"founders"`
	Events   []yamlEvent  `yaml:"events,omitempty"`
}

type yamlFounders struct {
	Father string `yaml:"father"`
	Mother string `yaml:"mother"`
}

// yamlEvent is either a child (child + mother) or a marriage (spouse + of)
type yamlEvent struct {
	Child  string `yaml:"child,omitempty"`
	Mother string `yaml:"mother,omitempty"`
	Spouse string `yaml:"spouse,omitempty"`
	Of     string `yaml:"of,omitempty"`
	Gender string `yaml:"gender"`
}

// Parse imports a family fragment from YAML
func (c *YAMLCodec) Parse(r io.Reader) (*domain.FamilyFragment, error) {
	var yf yamlFamily
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&yf); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	fragment := domain.NewFamilyFragment(yf.Founders.Father, yf.Founders.Mother)

	for i, ye := range yf.Events {
		event, err := ye.toEvent()
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i+1, err)
		}
		fragment.Events = append(fragment.Events, event)
	}

	if err := Validate(fragment); err != nil {
		return nil, err
	}
	return fragment, nil
}

func (ye yamlEvent) toEvent() (domain.Event, error) {
	isChild := ye.Child != "" || ye.Mother != ""
	isMarriage := ye.Spouse != "" || ye.Of != ""

	switch {
	case isChild && isMarriage:
		return domain.Event{}, fmt.Errorf("event mixes child and spouse fields")
	case isChild:
		return domain.Event{Kind: domain.EventChild, Anchor: ye.Mother, Name: ye.Child, Gender: ye.Gender}, nil
	case isMarriage:
		return domain.Event{Kind: domain.EventMarriage, Anchor: ye.Of, Name: ye.Spouse, Gender: ye.Gender}, nil
	}
	return domain.Event{}, fmt.Errorf("event needs either child/mother or spouse/of")
}

// Export exports a family fragment to YAML
func (c *YAMLCodec) Export(fragment *domain.FamilyFragment, w io.Writer) error {
	yf := yamlFamily{
		Founders: yamlFounders{Father: fragment.Father, Mother: fragment.Mother},
		Events:   make([]yamlEvent, 0, len(fragment.Events)),
	}

	for _, event := range fragment.Events {
		ye := yamlEvent{Gender: event.Gender}
		switch event.Kind {
		case domain.EventChild:
			ye.Child = event.Name
			ye.Mother = event.Anchor
		case domain.EventMarriage:
			ye.Spouse = event.Name
			ye.Of = event.Anchor
		default:
			return fmt.Errorf("unknown event kind %q", event.Kind)
		}
		yf.Events = append(yf.Events, ye)
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(&yf); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
