package codec

import (
	"errors"
	"fmt"
	"strings"

	"familytree/internal/domain"

	"github.com/go-playground/validator/v10"
)

// fragmentValidate checks the structure of decoded fragments.
// Gender values are left to the domain so replay reports ErrUnsupportedGender.
var fragmentValidate = validator.New()

// Validate reports structural problems in a decoded fragment
func Validate(fragment *domain.FamilyFragment) error {
	err := fragmentValidate.Struct(fragment)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate fragment: %w", err)
	}

	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid family fragment: %s", strings.Join(problems, ", "))
}
