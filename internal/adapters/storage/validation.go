package storage

import (
	"fmt"
	"strings"
)

// AllowedContentTypes defines the MIME types export uploads may carry.
var AllowedContentTypes = map[string]bool{
	"text/csv":         true,
	"text/plain":       true,
	"application/json": true,
}

// ValidateContentType checks if the content type is allowed.
func ValidateContentType(contentType string) error {
	// Normalize content type (remove parameters like charset)
	normalized := strings.Split(contentType, ";")[0]
	normalized = strings.TrimSpace(strings.ToLower(normalized))

	if !AllowedContentTypes[normalized] {
		return fmt.Errorf("content type %q is not allowed", contentType)
	}
	return nil
}
