package domain

import (
	"reflect"
	"testing"
)

// kingShanFamily builds the four-generation King Shan genealogy
func kingShanFamily(t *testing.T) *Family {
	t.Helper()
	family := NewFamily("Shan", "Anga")

	children := []struct{ mother, name, gender string }{
		{"Anga", "Chit", "Male"},
		{"Anga", "Ish", "Male"},
		{"Anga", "Vich", "Male"},
		{"Anga", "Aras", "Male"},
		{"Anga", "Satya", "Female"},
	}
	marriages := []struct{ person, spouse, gender string }{
		{"Chit", "Amba", "Female"},
		{"Vich", "Lika", "Female"},
		{"Aras", "Chitra", "Female"},
		{"Satya", "Vyan", "Male"},
	}
	third := []struct{ mother, name, gender string }{
		{"Amba", "Dritha", "Female"},
		{"Amba", "Tritha", "Female"},
		{"Amba", "Vritha", "Male"},
		{"Lika", "Vila", "Female"},
		{"Lika", "Chika", "Female"},
		{"Chitra", "Jnki", "Female"},
		{"Chitra", "Ahit", "Male"},
		{"Satya", "Asva", "Male"},
		{"Satya", "Vyas", "Male"},
		{"Satya", "Atya", "Female"},
	}
	thirdMarriages := []struct{ person, spouse, gender string }{
		{"Dritha", "Jaya", "Male"},
		{"Jnki", "Arit", "Male"},
		{"Asva", "Satvy", "Female"},
		{"Vyas", "Krpi", "Female"},
	}
	fourth := []struct{ mother, name, gender string }{
		{"Dritha", "Yodhan", "Male"},
		{"Jnki", "Laki", "Male"},
		{"Jnki", "Lavnya", "Female"},
		{"Satvy", "Vasa", "Male"},
		{"Krpi", "Kriya", "Male"},
		{"Krpi", "Krithi", "Female"},
	}

	addChildren := func(list []struct{ mother, name, gender string }) {
		for _, c := range list {
			if _, err := family.AddChild(c.mother, c.name, c.gender); err != nil {
				t.Fatalf("add child %s: %v", c.name, err)
			}
		}
	}
	marry := func(list []struct{ person, spouse, gender string }) {
		for _, m := range list {
			if _, err := family.Marry(m.person, m.spouse, m.gender); err != nil {
				t.Fatalf("marry %s: %v", m.person, err)
			}
		}
	}

	addChildren(children)
	marry(marriages)
	addChildren(third)
	marry(thirdMarriages)
	addChildren(fourth)

	return family
}

// assertNames fails the test if people do not carry exactly the expected names in order
func assertNames(t *testing.T, expected []string, people []*Person) {
	t.Helper()
	got := Names(people)
	if expected == nil {
		expected = []string{}
	}
	if !reflect.DeepEqual(expected, got) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
}
