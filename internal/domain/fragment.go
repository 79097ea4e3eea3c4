package domain

// EventKind identifies a recorded family mutation
type EventKind string

const (
	EventChild    EventKind = "child"
	EventMarriage EventKind = "marriage"
)

// Event is one successful mutation of a family.
//
// For EventChild, Anchor is the mother; for EventMarriage, Anchor is the
// existing member who married Name.
type Event struct {
	Kind   EventKind `json:"kind" validate:"required,oneof=child marriage"`
	Anchor string    `json:"anchor" validate:"required"`
	Name   string    `json:"name" validate:"required"`
	Gender string    `json:"gender" validate:"required"`
}

// FamilyFragment is the serializable form of a family: the founding couple
// followed by the ordered events that grew it.
type FamilyFragment struct {
	Father string  `json:"father" validate:"required"`
	Mother string  `json:"mother" validate:"required"`
	Events []Event `json:"events" validate:"dive"`
}

// NewFamilyFragment creates a fragment with no events
func NewFamilyFragment(father, mother string) *FamilyFragment {
	return &FamilyFragment{
		Father: father,
		Mother: mother,
		Events: make([]Event, 0),
	}
}

// AddChild appends a child event
func (f *FamilyFragment) AddChild(mother, name string, gender Gender) {
	f.Events = append(f.Events, Event{
		Kind:   EventChild,
		Anchor: mother,
		Name:   name,
		Gender: gender.String(),
	})
}

// AddMarriage appends a marriage event
func (f *FamilyFragment) AddMarriage(person, spouse string, gender Gender) {
	f.Events = append(f.Events, Event{
		Kind:   EventMarriage,
		Anchor: person,
		Name:   spouse,
		Gender: gender.String(),
	})
}
