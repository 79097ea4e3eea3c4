package command

import (
	"errors"
	"fmt"
	"strings"

	"familytree/internal/domain"
)

// Type identifies a command
type Type string

const (
	TypeAddChild        Type = "ADD_CHILD"
	TypeGetRelationship Type = "GET_RELATIONSHIP"
)

var (
	// ErrEmptyLine is returned by Parse for a line with no tokens
	ErrEmptyLine = errors.New("empty line")
	// ErrInvalidArguments is returned by Run when the argument count is wrong
	ErrInvalidArguments = errors.New("invalid arguments")
)

// arity is the number of arguments each command takes
var arity = map[Type]int{
	TypeAddChild:        3,
	TypeGetRelationship: 2,
}

// SupportedTypes returns the command types in declaration order
func SupportedTypes() []Type {
	return []Type{TypeAddChild, TypeGetRelationship}
}

// ParseType normalizes a command name, ignoring case
func ParseType(raw string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := arity[t]; !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedCommand, raw)
	}
	return t, nil
}

// Command is a parsed command line
type Command struct {
	Type      Type
	Arguments []string
}

// Parse splits line into a Command
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, ErrEmptyLine
	}

	t, err := ParseType(fields[0])
	if err != nil {
		return Command{}, err
	}

	return Command{Type: t, Arguments: fields[1:]}, nil
}

// String renders the command back to its line form
func (c Command) String() string {
	if len(c.Arguments) == 0 {
		return string(c.Type)
	}
	return string(c.Type) + " " + strings.Join(c.Arguments, " ")
}

func (c Command) checkArity() error {
	want := arity[c.Type]
	if len(c.Arguments) != want {
		return fmt.Errorf("%w: %s takes %d arguments, got %d", ErrInvalidArguments, c.Type, want, len(c.Arguments))
	}
	return nil
}
