package utils

import (
	"fmt"
	"net/http"
	"regexp"
)

var idPattern = regexp.MustCompile(`^[A-Za-z0-9._:-]+$`)

const maxIDLength = 64

// ExtractIDFromParams returns the {id} path parameter of the request.
func ExtractIDFromParams(r *http.Request) string {
	return r.PathValue("id")
}

// ValidateID rejects empty, oversized, or suspicious identifiers
// before they reach a query.
func ValidateID(id string) error {
	if id == "" {
		return fmt.Errorf("id must not be empty")
	}
	if len(id) > maxIDLength {
		return fmt.Errorf("id exceeds %d characters", maxIDLength)
	}
	if !idPattern.MatchString(id) {
		return fmt.Errorf("id contains invalid characters")
	}
	return nil
}
