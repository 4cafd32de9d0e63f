// Package controller holds helpers shared by the per-resource controller
// packages.
package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors flattens a binding failure into field-level messages.
func FieldErrors(err error) []string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			switch fe.Tag() {
			case "required":
				msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
			case "email":
				msgs = append(msgs, fmt.Sprintf("%s must be a valid email", fe.Field()))
			case "oneof":
				msgs = append(msgs, fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param()))
			case "min":
				msgs = append(msgs, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
			case "max":
				msgs = append(msgs, fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param()))
			case "gte":
				msgs = append(msgs, fmt.Sprintf("%s must be >= %s", fe.Field(), fe.Param()))
			case "lte":
				msgs = append(msgs, fmt.Sprintf("%s must be <= %s", fe.Field(), fe.Param()))
			default:
				msgs = append(msgs, fmt.Sprintf("%s is invalid", fe.Field()))
			}
		}
		return msgs
	}
	return []string{err.Error()}
}

// IsUniqueViolation sniffs driver errors for unique-constraint failures,
// which surface differently on sqlite and postgres.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
