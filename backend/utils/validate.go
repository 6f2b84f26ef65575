package utils

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs the shared validator over a request struct and flattens
// any violations into a field → message map for an inline error response.
// Returns nil when the struct is valid.
func ValidateStruct(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	details := make(map[string]string)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			details[fe.Field()] = "failed '" + fe.Tag() + "' validation"
		}
	} else {
		details["_"] = err.Error()
	}
	return details
}
