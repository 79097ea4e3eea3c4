package sqlite

import (
	"database/sql"

	"familytree/internal/domain"
	"familytree/internal/repository"
)

// nullToString safely converts sql.NullString to string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// stringToNull safely converts string to sql.NullString
func stringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// personRow holds all columns from a people query for scanning
type personRow struct {
	Position int
	Name     string
	Gender   string
	Mother   sql.NullString
	Spouse   sql.NullString
}

// scanArgs returns pointers to all fields for sql.Scan()
// MUST match personColumns order exactly
func (r *personRow) scanArgs() []interface{} {
	return []interface{}{&r.Position, &r.Name, &r.Gender, &r.Mother, &r.Spouse}
}

func (r *personRow) toRecord() repository.PersonRecord {
	return repository.PersonRecord{
		Position: r.Position,
		Name:     r.Name,
		Gender:   r.Gender,
		Mother:   nullToString(r.Mother),
		Spouse:   nullToString(r.Spouse),
	}
}

const personColumns = `position, name, gender, mother, spouse`

// personInsertArgs prepares arguments for a people INSERT
// Returns: position, name, gender, mother, spouse
func personInsertArgs(position int, p *domain.Person) []interface{} {
	var mother, spouse string
	if p.Mother != nil {
		mother = p.Mother.Name
	}
	if p.Spouse != nil {
		spouse = p.Spouse.Name
	}
	return []interface{}{
		position,
		p.Name,
		p.Gender.String(),
		stringToNull(mother),
		stringToNull(spouse),
	}
}

// eventRow holds all columns from an events query for scanning
type eventRow struct {
	Seq    int
	Kind   string
	Anchor string
	Name   string
	Gender string
}

// scanArgs returns pointers to all fields for sql.Scan()
// MUST match eventColumns order exactly
func (r *eventRow) scanArgs() []interface{} {
	return []interface{}{&r.Seq, &r.Kind, &r.Anchor, &r.Name, &r.Gender}
}

func (r *eventRow) toRecord() repository.EventRecord {
	return repository.EventRecord{
		Seq:    r.Seq,
		Kind:   r.Kind,
		Anchor: r.Anchor,
		Name:   r.Name,
		Gender: r.Gender,
	}
}

const eventColumns = `seq, kind, anchor, name, gender`
