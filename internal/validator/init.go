package validator

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// usernameRunes are the characters allowed in a username besides letters
// and digits.
const usernameRunes = "@.+-_"

// Init registers custom validations on gin's binding engine and makes
// field errors report JSON field names instead of struct field names.
func Init() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v.RegisterValidation("username", validUsername)
}

func validUsername(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune(usernameRunes, r):
		default:
			return false
		}
	}
	return true
}
