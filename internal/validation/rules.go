// Package validation provides custom validation rules for request DTOs.
package validation

import (
	"fmt"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/chatcrypt/internal/errors"
)

// MaxUserIDLength is the longest participant identifier accepted.
const MaxUserIDLength = 255

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NoWhitespace validates that a string has no leading or trailing whitespace.
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// UserID is the rule set for participant identifiers.
var UserID = []validation.Rule{
	validation.Required,
	NotBlank,
	NoWhitespace,
	validation.Length(1, MaxUserIDLength),
}

// MaxBytes validates that a string is at most n bytes long.
func MaxBytes(n int) validation.Rule {
	return validation.NewStringRuleWithError(
		func(s string) bool {
			return len(s) <= n
		},
		validation.NewError("validation_max_bytes", fmt.Sprintf("must be at most %d bytes", n)),
	)
}
