package tools

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// IsEmail reports whether s is a syntactically valid address.
func IsEmail(s string) bool {
	return validate.Var(strings.TrimSpace(s), "required,email") == nil
}

// IsUUID reports whether s is a canonical UUID string.
func IsUUID(s string) bool {
	return validate.Var(s, "required,uuid") == nil
}
