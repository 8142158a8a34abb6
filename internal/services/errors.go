package services

import (
	"errors"
	"fmt"

	"github.com/gookit/validate"
)

// ErrValidation marks input the caller has to fix.
var ErrValidation = errors.New("validation failed")

func validationErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func validateInput(input interface{}) error {
	v := validate.Struct(input)
	if !v.Validate() {
		return validationErrorf("%s", v.Errors.One())
	}
	return nil
}
