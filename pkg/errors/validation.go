package errors

import (
	"strings"
	"unicode/utf8"
)

// MaxTextLength bounds the free-form text accepted by the API and CLI.
const MaxTextLength = 20000

// ValidateText validates the free-form input text of a mind-map request.
//
// The text must contain at least one non-whitespace character, must be
// valid UTF-8, must not contain NUL bytes and must not exceed
// [MaxTextLength] runes.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return New(ErrCodeInvalidInput, "text cannot be empty")
	}
	if !utf8.ValidString(text) {
		return New(ErrCodeInvalidInput, "text must be valid UTF-8")
	}
	if strings.ContainsRune(text, '\x00') {
		return New(ErrCodeInvalidInput, "text contains null bytes")
	}
	if n := utf8.RuneCountInString(text); n > MaxTextLength {
		return New(ErrCodeInvalidInput, "text too long (%d characters, max %d)", n, MaxTextLength)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
