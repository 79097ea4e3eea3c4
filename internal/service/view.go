package service

import "familytree/internal/domain"

// PersonView is a flat, serializable view of a family member
type PersonView struct {
	Name     string   `json:"name"`
	Gender   string   `json:"gender"`
	Mother   string   `json:"mother,omitempty"`
	Father   string   `json:"father,omitempty"`
	Spouse   string   `json:"spouse,omitempty"`
	Children []string `json:"children"`
}

func newPersonView(p *domain.Person) PersonView {
	view := PersonView{
		Name:     p.Name,
		Gender:   p.Gender.String(),
		Children: domain.Names(domain.Children(p)),
	}
	if p.Mother != nil {
		view.Mother = p.Mother.Name
		if p.Mother.Spouse != nil {
			view.Father = p.Mother.Spouse.Name
		}
	}
	if p.Spouse != nil {
		view.Spouse = p.Spouse.Name
	}
	return view
}
