package errors

import (
	"strings"
	"unicode"
)

// ValidateKey validates a store key for safety. Keys become file names under
// the file store's root and document ids in remote stores, so they must not
// escape the store.
//
// Validation rules:
//   - Key cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
//   - No backslashes
func ValidateKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidKey, "key cannot be empty")
	}

	const maxKeyLength = 500
	if len(key) > maxKeyLength {
		return New(ErrCodeInvalidKey, "key too long (max %d characters)", maxKeyLength)
	}

	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidKey, "key contains invalid characters")
		}
	}

	if strings.Contains(key, "..") {
		return New(ErrCodeInvalidKey, "key cannot contain path traversal sequences (..)")
	}

	if strings.Contains(key, "\\") {
		return New(ErrCodeInvalidKey, "key cannot contain backslashes")
	}

	return nil
}

// ValidatePositive returns an ErrCodeInvalidConfig error unless v >= 1.
func ValidatePositive(name string, v int) error {
	if v < 1 {
		return New(ErrCodeInvalidConfig, "%s must be at least 1, got %d", name, v)
	}
	return nil
}
