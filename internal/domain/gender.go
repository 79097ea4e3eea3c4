package domain

import (
	"fmt"
	"strings"
)

// Gender is the gender tag of a person
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// SupportedGenders returns the valid gender tags
func SupportedGenders() []Gender {
	return []Gender{GenderMale, GenderFemale}
}

// ParseGender normalizes raw input to a canonical Gender.
// Matching ignores case and surrounding whitespace.
func ParseGender(raw string) (Gender, error) {
	g := Gender(strings.ToUpper(strings.TrimSpace(raw)))
	if !g.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedGender, raw)
	}
	return g, nil
}

// Valid reports whether g is one of the supported tags
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale:
		return true
	}
	return false
}

func (g Gender) String() string {
	return string(g)
}
