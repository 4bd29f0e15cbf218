package domain

import (
	"regexp"
	"strings"
)

// tableNamePattern admits any Latin or Cyrillic letter (accented Latin,
// Ukrainian and Russian included), decimal digits, whitespace, underscore,
// hyphen and exclamation mark.
var tableNamePattern = regexp.MustCompile(`^[\p{Latin}\p{Cyrillic}\p{Nd}\s!_-]+$`)

// ValidateTableName rejects names outside the allowed alphabet and blank names.
func ValidateTableName(name string) error {
	if strings.TrimSpace(name) == "" || !tableNamePattern.MatchString(name) {
		return NewValidationError("table", name,
			"only letters, digits, spaces, '_', '-' and '!' are allowed", ErrInvalidTableName)
	}
	return nil
}
