package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs the dto validate tags and flattens the failures into
// one user-facing message, e.g. "question is required".
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var msgs []string
	if errs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range errs {
			field := strings.ToLower(fe.Field())
			switch fe.Tag() {
			case "required":
				msgs = append(msgs, fmt.Sprintf("%s is required", field))
			case "email":
				msgs = append(msgs, fmt.Sprintf("%s must be a valid email", field))
			default:
				msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
			}
		}
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}
	return err
}
