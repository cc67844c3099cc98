package errors

import (
	"strings"
	"unicode"
)

// MaxIdentifierLength bounds persistent IDs so they stay usable as file and
// store keys.
const MaxIdentifierLength = 256

// ValidatePersistentID checks that a dockable's persistent ID is usable as a
// stable key in layouts and named-layout stores.
//
// The rules are:
//   - No empty IDs
//   - No control characters or null bytes
//   - No path separators (IDs become file names in the file store)
//   - No leading or trailing whitespace
//   - Maximum length of MaxIdentifierLength characters
func ValidatePersistentID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidDockable, "persistent ID cannot be empty")
	}

	if len(id) > MaxIdentifierLength {
		return New(ErrCodeInvalidDockable, "persistent ID too long (max %d characters)", MaxIdentifierLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDockable, "persistent ID %q contains control characters", id)
		}
	}

	if strings.ContainsAny(id, "/\\") {
		return New(ErrCodeInvalidDockable, "persistent ID %q cannot contain path separators", id)
	}

	if strings.TrimSpace(id) != id {
		return New(ErrCodeInvalidDockable, "persistent ID %q has surrounding whitespace", id)
	}

	return nil
}

// ValidateLayoutName validates a named-layout key. The same rules as persistent
// IDs apply, and names may not start with a dot (hidden files).
func ValidateLayoutName(name string) error {
	if err := ValidatePersistentID(name); err != nil {
		return New(ErrCodeInvalidLayout, "layout name: %s", UserMessage(err))
	}
	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidLayout, "layout name %q cannot start with a dot", name)
	}
	return nil
}
