package command

import (
	"errors"
	"strings"

	"familytree/internal/domain"
)

// Output tokens
const (
	OutputChildAdded          = "CHILD_ADDITION_SUCCEED"
	OutputChildAdditionFailed = "CHILD_ADDITION_FAILED"
	OutputPersonNotFound      = "PERSON_NOT_FOUND"
	OutputNone                = "NONE"
	OutputUnsupportedCommand  = "UNSUPPORTED_COMMAND"
)

// Present renders a Result as a single output line
func Present(result Result) string {
	switch result.Type {
	case TypeAddChild:
		return presentAddChild(result)
	case TypeGetRelationship:
		return presentRelationship(result)
	}
	return OutputUnsupportedCommand
}

func presentAddChild(result Result) string {
	if result.Err == nil {
		return OutputChildAdded
	}
	if errors.Is(result.Err, domain.ErrPersonNotFound) {
		return OutputPersonNotFound
	}
	return OutputChildAdditionFailed
}

func presentRelationship(result Result) string {
	if result.Err != nil {
		if errors.Is(result.Err, domain.ErrPersonNotFound) {
			return OutputPersonNotFound
		}
		return OutputNone
	}
	if len(result.Output) == 0 {
		return OutputNone
	}
	return strings.Join(domain.Names(result.Output), " ")
}

// Execute parses, runs and presents one line. The error is the parse or
// domain failure behind the output; ErrEmptyLine means the line produced none.
func Execute(line string, family *domain.Family) (string, error) {
	cmd, err := Parse(line)
	if errors.Is(err, ErrEmptyLine) {
		return "", err
	}
	if err != nil {
		return OutputUnsupportedCommand, err
	}
	result := Run(cmd, family)
	return Present(result), result.Err
}
