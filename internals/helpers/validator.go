package helper

import (
	"github.com/go-playground/validator/v10"
)

var Validate = validator.New()

// ValidationErrorsToMap flattens validator.v10 errors into the
// field -> messages shape used by JsonValidationError.
func ValidationErrorsToMap(err error) map[string][]string {
	out := map[string][]string{}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		out["_"] = []string{err.Error()}
		return out
	}
	for _, fe := range ve {
		field := fe.Field()
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "champ obligatoire"
		case "min":
			msg = "minimum " + fe.Param()
		case "max":
			msg = "maximum " + fe.Param()
		case "oneof":
			msg = "doit être l'un de: " + fe.Param()
		case "gt":
			msg = "doit être supérieur à " + fe.Param()
		case "gtefield":
			msg = "doit être supérieur ou égal à " + fe.Param()
		case "e164":
			msg = "format de téléphone invalide"
		default:
			msg = "format invalide"
		}
		out[field] = append(out[field], msg)
	}
	return out
}
