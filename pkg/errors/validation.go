package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateDocumentName validates a document name for safety and
// correctness. Names become file names, redis keys, and mongo ids, so the
// rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - No null bytes
//   - Maximum length of 256 characters
func ValidateDocumentName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "document name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidName, "document name too long (max 256 characters)")
	}

	// Check for control characters and null bytes
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "document name contains invalid control characters")
		}
	}

	// Check for path traversal patterns
	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidName, "document name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateNodeID validates a node or edge identifier supplied by an
// external caller (API request, CLI argument).
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "id contains invalid characters")
		}
	}

	return nil
}

// hexColorRegex matches #rgb and #rrggbb hex colors.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateColor validates a user-supplied edge color. Only hex colors are
// accepted; the empty string means "use the default".
func ValidateColor(color string) error {
	if color == "" {
		return nil
	}

	if !hexColorRegex.MatchString(color) {
		return New(ErrCodeInvalidColor, "invalid color: %q (expected #rgb or #rrggbb)", color)
	}

	return nil
}
