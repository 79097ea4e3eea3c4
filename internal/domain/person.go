package domain

import "fmt"

// Person is a member of a family graph.
//
// Spouse and Mother are non-owning links; the Family registry holds every
// Person for the lifetime of the genealogy.
type Person struct {
	Name     string
	Gender   Gender
	Spouse   *Person
	Children []*Person
	Mother   *Person
}

// NewPerson creates a person with no relations
func NewPerson(name string, gender Gender) (*Person, error) {
	if !gender.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedGender, string(gender))
	}
	return &Person{
		Name:     name,
		Gender:   gender,
		Children: make([]*Person, 0),
	}, nil
}

// AddSpouse links p and other as each other's spouse.
// A previous spouse link on either side is overwritten; remarriage is not modeled.
func (p *Person) AddSpouse(other *Person) {
	p.Spouse = other
	other.Spouse = p
}

// AddChild appends child to p's own children.
// The child's Mother link is left to the caller.
func (p *Person) AddChild(child *Person) {
	p.Children = append(p.Children, child)
}

// HasMother reports whether a mother is recorded
func (p *Person) HasMother() bool {
	return p.Mother != nil
}

// HasSpouse reports whether p is currently married
func (p *Person) HasSpouse() bool {
	return p.Spouse != nil
}

// IsMale reports whether p is tagged MALE
func (p *Person) IsMale() bool {
	return p.Gender == GenderMale
}

// IsFemale reports whether p is tagged FEMALE
func (p *Person) IsFemale() bool {
	return p.Gender == GenderFemale
}
