package codec

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"familytree/internal/domain"
)

func sampleFragment() *domain.FamilyFragment {
	fragment := domain.NewFamilyFragment("Shan", "Anga")
	fragment.AddChild("Anga", "Chit", domain.GenderMale)
	fragment.AddMarriage("Chit", "Amba", domain.GenderFemale)
	fragment.AddChild("Amba", "Dritha", domain.GenderFemale)
	return fragment
}

func TestByFormat(t *testing.T) {
	tests := []struct {
		name   string
		format string
	}{
		{"yaml", "yaml"},
		{"yml", "yaml"},
		{"YAML", "yaml"},
		{"json", "json"},
	}

	for _, tt := range tests {
		c, err := ByFormat(tt.name)
		if err != nil {
			t.Errorf("ByFormat(%q) returned error: %v", tt.name, err)
			continue
		}
		if c.Format() != tt.format {
			t.Errorf("ByFormat(%q).Format() = %s, want %s", tt.name, c.Format(), tt.format)
		}
	}

	if _, err := ByFormat("xml"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestByExtension(t *testing.T) {
	c, err := ByExtension("/tmp/family.yml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Format() != "yaml" {
		t.Errorf("expected yaml codec, got %s", c.Format())
	}

	if _, err := ByExtension("family"); err == nil {
		t.Error("expected error for file without extension")
	}
}

func TestYAMLCodecRoundTrip(t *testing.T) {
	c := NewYAMLCodec()
	var buf bytes.Buffer

	if err := c.Export(sampleFragment(), &buf); err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(buf.String(), "spouse: Amba") {
		t.Errorf("expected marriage rendered with spouse key, got:\n%s", buf.String())
	}

	got, err := c.Parse(&buf)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !reflect.DeepEqual(sampleFragment(), got) {
		t.Errorf("expected %+v, got %+v", sampleFragment(), got)
	}
}

func TestYAMLCodecParse(t *testing.T) {
	t.Run("child and marriage events", func(t *testing.T) {
		input := `
founders:
  father: Shan
  mother: Anga
events:
  - child: Chit
    mother: Anga
    gender: male
  - spouse: Amba
    of: Chit
    gender: female
`
		fragment, err := NewYAMLCodec().Parse(strings.NewReader(input))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(fragment.Events) != 2 {
			t.Fatalf("expected 2 events, got %d", len(fragment.Events))
		}
		if fragment.Events[0].Kind != domain.EventChild || fragment.Events[0].Anchor != "Anga" {
			t.Errorf("unexpected child event %+v", fragment.Events[0])
		}
		if fragment.Events[1].Kind != domain.EventMarriage || fragment.Events[1].Anchor != "Chit" {
			t.Errorf("unexpected marriage event %+v", fragment.Events[1])
		}
	})

	t.Run("founders only", func(t *testing.T) {
		fragment, err := NewYAMLCodec().Parse(strings.NewReader("founders: {father: A, mother: B}\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fragment.Events == nil || len(fragment.Events) != 0 {
			t.Errorf("expected empty events, got %v", fragment.Events)
		}
	})

	errorCases := []struct {
		name  string
		input string
	}{
		{"missing mother founder", "founders: {father: A}\n"},
		{"mixed event", "founders: {father: A, mother: B}\nevents:\n  - {child: C, of: A, gender: male}\n"},
		{"empty event", "founders: {father: A, mother: B}\nevents:\n  - {gender: male}\n"},
		{"missing gender", "founders: {father: A, mother: B}\nevents:\n  - {child: C, mother: B}\n"},
		{"missing anchor", "founders: {father: A, mother: B}\nevents:\n  - {child: C, gender: male}\n"},
		{"unknown field", "founders: {father: A, mother: B}\nextra: 1\n"},
		{"malformed", "founders: [\n"},
	}
	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewYAMLCodec().Parse(strings.NewReader(tt.input)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestYAMLCodecExportUnknownKind(t *testing.T) {
	fragment := domain.NewFamilyFragment("A", "B")
	fragment.Events = append(fragment.Events, domain.Event{Kind: "adoption", Anchor: "B", Name: "C", Gender: "MALE"})

	var buf bytes.Buffer
	if err := NewYAMLCodec().Export(fragment, &buf); err == nil {
		t.Error("expected error for unknown event kind")
	}
}

func TestJSONCodecRoundTrip(t *testing.T) {
	c := NewJSONCodec()
	var buf bytes.Buffer

	if err := c.Export(sampleFragment(), &buf); err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(buf.String(), `"kind": "marriage"`) {
		t.Errorf("expected marriage kind in output, got:\n%s", buf.String())
	}

	got, err := c.Parse(&buf)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !reflect.DeepEqual(sampleFragment(), got) {
		t.Errorf("expected %+v, got %+v", sampleFragment(), got)
	}
}

func TestJSONCodecParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed", `{"father":`},
		{"missing founder", `{"father":"A","events":[]}`},
		{"bad kind", `{"father":"A","mother":"B","events":[{"kind":"adoption","anchor":"B","name":"C","gender":"MALE"}]}`},
		{"missing name", `{"father":"A","mother":"B","events":[{"kind":"child","anchor":"B","gender":"MALE"}]}`},
		{"unknown field", `{"father":"A","mother":"B","pets":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewJSONCodec().Parse(strings.NewReader(tt.input)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestValidateLeavesGenderToDomain(t *testing.T) {
	fragment := domain.NewFamilyFragment("A", "B")
	fragment.Events = append(fragment.Events, domain.Event{Kind: domain.EventChild, Anchor: "B", Name: "C", Gender: "robot"})

	if err := Validate(fragment); err != nil {
		t.Errorf("expected structural validation to pass, got %v", err)
	}
}
