package domain

import "fmt"

// Family is the registry of every person in one genealogy.
// It is not safe for concurrent use; callers serialize access.
type Family struct {
	members []*Person
	father  *Person
	mother  *Person
	history []Event
}

// NewFamily creates a family from its founding couple.
// The founders are married to each other and registered father first.
func NewFamily(fatherName, motherName string) *Family {
	father := &Person{Name: fatherName, Gender: GenderMale, Children: make([]*Person, 0)}
	mother := &Person{Name: motherName, Gender: GenderFemale, Children: make([]*Person, 0)}
	father.AddSpouse(mother)

	return &Family{
		members: []*Person{father, mother},
		father:  father,
		mother:  mother,
		history: make([]Event, 0),
	}
}

// Find returns the first member named name, or nil.
// Names are expected to be unique; on duplicates the earliest member wins.
func (f *Family) Find(name string) *Person {
	for _, p := range f.members {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// AddChild adds a child to the named mother.
//
// Checks run in a fixed order: the mother must exist, must be female, and the
// child's gender must be supported.
func (f *Family) AddChild(motherName, childName, gender string) (*Person, error) {
	mother := f.Find(motherName)
	if mother == nil {
		return nil, fmt.Errorf("%w: %s", ErrPersonNotFound, motherName)
	}
	if mother.Gender == GenderMale {
		return nil, fmt.Errorf("%w: %s is male", ErrInappropriateMotherGender, motherName)
	}

	g, err := ParseGender(gender)
	if err != nil {
		return nil, err
	}
	child, err := NewPerson(childName, g)
	if err != nil {
		return nil, err
	}

	f.members = append(f.members, child)
	mother.AddChild(child)
	child.Mother = mother

	f.history = append(f.history, Event{Kind: EventChild, Anchor: motherName, Name: childName, Gender: g.String()})
	return child, nil
}

// Marry creates a new member and marries them to the named person.
// The new spouse has no recorded mother.
func (f *Family) Marry(personName, spouseName, gender string) (*Person, error) {
	person := f.Find(personName)
	if person == nil {
		return nil, fmt.Errorf("%w: %s", ErrPersonNotFound, personName)
	}

	g, err := ParseGender(gender)
	if err != nil {
		return nil, err
	}
	spouse, err := NewPerson(spouseName, g)
	if err != nil {
		return nil, err
	}

	person.AddSpouse(spouse)
	f.members = append(f.members, spouse)

	f.history = append(f.history, Event{Kind: EventMarriage, Anchor: personName, Name: spouseName, Gender: g.String()})
	return spouse, nil
}

// Members returns every member in insertion order.
// The slice is a copy; the people are shared.
func (f *Family) Members() []*Person {
	out := make([]*Person, len(f.members))
	copy(out, f.members)
	return out
}

// Len returns the number of members
func (f *Family) Len() int {
	return len(f.members)
}

// Founders returns the founding father and mother
func (f *Family) Founders() (*Person, *Person) {
	return f.father, f.mother
}

// Fragment returns the founders and mutation history of the family
func (f *Family) Fragment() *FamilyFragment {
	fragment := NewFamilyFragment(f.father.Name, f.mother.Name)
	fragment.Events = append(fragment.Events, f.history...)
	return fragment
}
