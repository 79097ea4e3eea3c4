package domain

import (
	"fmt"
	"strings"
)

// Relationship is a derived relationship between two family members
type Relationship string

const (
	RelationshipSon           Relationship = "SON"
	RelationshipDaughter      Relationship = "DAUGHTER"
	RelationshipSiblings      Relationship = "SIBLINGS"
	RelationshipPaternalUncle Relationship = "PATERNAL-UNCLE" // Father's brothers
	RelationshipMaternalUncle Relationship = "MATERNAL-UNCLE" // Mother's brothers
	RelationshipPaternalAunt  Relationship = "PATERNAL-AUNT"  // Father's sisters
	RelationshipMaternalAunt  Relationship = "MATERNAL-AUNT"  // Mother's sisters
	RelationshipSisterInLaw   Relationship = "SISTER-IN-LAW"  // Spouse's sisters, wives of siblings
	RelationshipBrotherInLaw  Relationship = "BROTHER-IN-LAW" // Spouse's brothers, husbands of siblings
)

var supportedRelationships = []Relationship{
	RelationshipSon,
	RelationshipDaughter,
	RelationshipSiblings,
	RelationshipPaternalUncle,
	RelationshipMaternalUncle,
	RelationshipPaternalAunt,
	RelationshipMaternalAunt,
	RelationshipSisterInLaw,
	RelationshipBrotherInLaw,
}

// SupportedRelationships returns every relationship Resolve can derive
func SupportedRelationships() []Relationship {
	out := make([]Relationship, len(supportedRelationships))
	copy(out, supportedRelationships)
	return out
}

// ParseRelationship normalizes raw input to a Relationship.
// Case is ignored and '_' is accepted in place of '-'.
func ParseRelationship(raw string) (Relationship, error) {
	token := strings.ToUpper(strings.TrimSpace(raw))
	token = strings.ReplaceAll(token, "_", "-")

	r := Relationship(token)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedRelationship, raw)
	}
	return r, nil
}

// Valid reports whether r is in the supported set
func (r Relationship) Valid() bool {
	for _, s := range supportedRelationships {
		if r == s {
			return true
		}
	}
	return false
}

func (r Relationship) String() string {
	return string(r)
}

// Resolve finds name in family and derives the requested relationship.
// Name lookup happens before the relationship is validated, so an unknown
// person is reported as ErrPersonNotFound whatever the relationship.
func Resolve(family *Family, name, relationship string) ([]*Person, error) {
	person := family.Find(name)
	if person == nil {
		return nil, fmt.Errorf("%w: %s", ErrPersonNotFound, name)
	}

	r, err := ParseRelationship(relationship)
	if err != nil {
		return nil, err
	}

	return Derive(person, r)
}

// Derive computes relationship r for an already resolved person.
// The result is never nil and follows insertion order.
func Derive(person *Person, r Relationship) ([]*Person, error) {
	switch r {
	case RelationshipSon:
		return Sons(person), nil
	case RelationshipDaughter:
		return Daughters(person), nil
	case RelationshipSiblings:
		return Siblings(person), nil
	case RelationshipPaternalUncle:
		return PaternalUncles(person), nil
	case RelationshipMaternalUncle:
		return MaternalUncles(person), nil
	case RelationshipPaternalAunt:
		return PaternalAunts(person), nil
	case RelationshipMaternalAunt:
		return MaternalAunts(person), nil
	case RelationshipSisterInLaw:
		return SistersInLaw(person), nil
	case RelationshipBrotherInLaw:
		return BrothersInLaw(person), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedRelationship, string(r))
}

// Sons returns the male children of person
func Sons(person *Person) []*Person {
	return filterGender(Children(person), GenderMale)
}

// Daughters returns the female children of person
func Daughters(person *Person) []*Person {
	return filterGender(Children(person), GenderFemale)
}

// Siblings returns the other children of person's mother
func Siblings(person *Person) []*Person {
	if person == nil || person.Mother == nil {
		return []*Person{}
	}
	out := make([]*Person, 0, len(person.Mother.Children))
	for _, child := range person.Mother.Children {
		if child.Name != person.Name {
			out = append(out, child)
		}
	}
	return out
}

// PaternalUncles returns the brothers of person's father
func PaternalUncles(person *Person) []*Person {
	father := fatherOf(person)
	if father == nil {
		return []*Person{}
	}
	return excludeName(filterGender(Siblings(father), GenderMale), father.Name)
}

// MaternalUncles returns the brothers of person's mother
func MaternalUncles(person *Person) []*Person {
	if person.Mother == nil {
		return []*Person{}
	}
	return filterGender(Siblings(person.Mother), GenderMale)
}

// PaternalAunts returns the sisters of person's father
func PaternalAunts(person *Person) []*Person {
	father := fatherOf(person)
	if father == nil {
		return []*Person{}
	}
	return filterGender(Siblings(father), GenderFemale)
}

// MaternalAunts returns the sisters of person's mother
func MaternalAunts(person *Person) []*Person {
	if person.Mother == nil {
		return []*Person{}
	}
	return filterGender(Siblings(person.Mother), GenderFemale)
}

// SistersInLaw returns the spouse's sisters followed by the wives of siblings
func SistersInLaw(person *Person) []*Person {
	return inLaws(person, GenderFemale)
}

// BrothersInLaw returns the spouse's brothers followed by the husbands of siblings
func BrothersInLaw(person *Person) []*Person {
	return inLaws(person, GenderMale)
}

func inLaws(person *Person, gender Gender) []*Person {
	out := make([]*Person, 0)
	if person.Spouse != nil {
		out = append(out, filterGender(Siblings(person.Spouse), gender)...)
	}
	for _, sibling := range Siblings(person) {
		if sibling.Spouse != nil && sibling.Spouse.Gender == gender {
			out = append(out, sibling.Spouse)
		}
	}
	return out
}

// Children returns person's own children followed by the current spouse's.
// Children are only ever recorded on the mother, so this is how a father sees them.
func Children(person *Person) []*Person {
	out := make([]*Person, 0, len(person.Children))
	out = append(out, person.Children...)
	if person.Spouse != nil && person.Spouse != person {
		out = append(out, person.Spouse.Children...)
	}
	return out
}

// fatherOf is the current spouse of person's mother
func fatherOf(person *Person) *Person {
	if person.Mother == nil {
		return nil
	}
	return person.Mother.Spouse
}

func filterGender(people []*Person, gender Gender) []*Person {
	out := make([]*Person, 0, len(people))
	for _, p := range people {
		if p.Gender == gender {
			out = append(out, p)
		}
	}
	return out
}

func excludeName(people []*Person, name string) []*Person {
	out := make([]*Person, 0, len(people))
	for _, p := range people {
		if p.Name != name {
			out = append(out, p)
		}
	}
	return out
}

// Names returns the names of people in order
func Names(people []*Person) []string {
	names := make([]string, 0, len(people))
	for _, p := range people {
		names = append(names, p.Name)
	}
	return names
}
