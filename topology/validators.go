// Package topology provides validation helpers that enforce the Config
// contract through go-playground/validator struct tags.
package topology

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared; validator.Validate caches struct metadata and is safe
// for concurrent use.
var validate = newValidator()

// newValidator reports fields by their yaml key so messages name the
// external configuration field ("slots_per_chassis"), not the Go field.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	return v
}

// validateStruct runs the tag checks and formats the first violation as
// "<field>: must be ≥ <param>, got <value>".
//
// Complexity: O(fields).
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "min":
		return fmt.Errorf("%s: must be ≥ %s, got %v", fe.Field(), fe.Param(), fe.Value())
	case "max":
		return fmt.Errorf("%s: must be ≤ %s, got %v", fe.Field(), fe.Param(), fe.Value())
	default:
		return fmt.Errorf("%s: validation failed (%s)", fe.Field(), fe.Tag())
	}
}
