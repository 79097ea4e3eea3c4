package command

import (
	"fmt"

	"familytree/internal/domain"
)

// Result is the outcome of running one command.
// Err is nil on success; Output is only set for relationship queries.
type Result struct {
	Type   Type
	Err    error
	Output []*domain.Person
}

// Run applies cmd to family. Every failure is captured in the Result.
func Run(cmd Command, family *domain.Family) Result {
	result := Result{Type: cmd.Type}

	if err := cmd.checkArity(); err != nil {
		result.Err = err
		return result
	}

	switch cmd.Type {
	case TypeAddChild:
		_, result.Err = family.AddChild(cmd.Arguments[0], cmd.Arguments[1], cmd.Arguments[2])
	case TypeGetRelationship:
		result.Output, result.Err = domain.Resolve(family, cmd.Arguments[0], cmd.Arguments[1])
	default:
		result.Err = fmt.Errorf("%w: %q", domain.ErrUnsupportedCommand, string(cmd.Type))
	}

	return result
}
