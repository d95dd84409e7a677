package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// maxDocIdBytes is the largest identifier the document store accepts.
const maxDocIdBytes = 1500

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("docid", validateDocId)

	// report fields by their JSON names so messages match the request payload
	validator.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return validator
}

// validateDocId accepts identifiers that can address a single document: no path separators,
// not a relative path element and within the store's size limit.
func validateDocId(fl validator.FieldLevel) bool {
	id := fl.Field().String()

	if len(id) > maxDocIdBytes {
		return false
	}

	if id == "." || id == ".." || strings.Contains(id, "/") {
		return false
	}

	if strings.HasPrefix(id, "__") && strings.HasSuffix(id, "__") {
		return false
	}

	return true
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "missing " + err.Field()
	default:
		return "invalid " + err.Field()
	}
}
