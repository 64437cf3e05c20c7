package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MissingFieldError reports a required field absent on a record or line item.
// Index is the zero-based position of the offending value in its batch.
type MissingFieldError struct {
	Entity string
	Index  int
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s %d: missing required field %q", e.Entity, e.Index, e.Field)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their json name, which is also the CSV column name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// Require checks the `validate:"required"` fields of v and returns a
// *MissingFieldError naming the first one that is absent. Pointer fields count
// as present when non-nil, even if they point at a zero value.
func Require(entity string, index int, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validating %s %d: %w", entity, index, err)
	}
	return &MissingFieldError{
		Entity: entity,
		Index:  index,
		Field:  verrs[0].Field(),
	}
}
