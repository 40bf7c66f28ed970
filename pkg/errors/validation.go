package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Limits applied to user-supplied content.
const (
	// MaxScriptLength is the longest script (in characters) accepted for analysis.
	MaxScriptLength = 100_000

	// MaxTextLength bounds headline, subtext and badge (in characters).
	MaxTextLength = 200

	// MaxEmojis is the largest emoji list accepted by the API.
	MaxEmojis = 8

	// MaxEmojiBytes bounds a single emoji entry, enough for ZWJ sequences.
	MaxEmojiBytes = 32
)

// ValidateScript validates a script submitted for analysis.
//
// The validation rules are:
//   - Not empty after trimming whitespace
//   - At most MaxScriptLength characters
//   - Valid UTF-8 without null bytes
func ValidateScript(script string) error {
	if strings.TrimSpace(script) == "" {
		return New(ErrCodeInvalidInput, "script cannot be empty")
	}
	if !utf8.ValidString(script) {
		return New(ErrCodeInvalidInput, "script is not valid UTF-8")
	}
	if n := utf8.RuneCountInString(script); n > MaxScriptLength {
		return New(ErrCodeInvalidInput, "script too long (%d characters, max %d)", n, MaxScriptLength)
	}
	if strings.ContainsRune(script, 0) {
		return New(ErrCodeInvalidInput, "script contains null bytes")
	}
	return nil
}

// ValidateText validates a single-line text field such as a headline.
// Empty values are allowed; the renderer substitutes defaults.
func ValidateText(field, value string) error {
	if !utf8.ValidString(value) {
		return New(ErrCodeInvalidConfig, "%s is not valid UTF-8", field)
	}
	if n := utf8.RuneCountInString(value); n > MaxTextLength {
		return New(ErrCodeInvalidConfig, "%s too long (%d characters, max %d)", field, n, MaxTextLength)
	}
	for _, r := range value {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "%s contains control characters", field)
		}
	}
	return nil
}

// ValidateEmojis validates an emoji list.
func ValidateEmojis(emojis []string) error {
	if len(emojis) > MaxEmojis {
		return New(ErrCodeInvalidConfig, "too many emojis (%d, max %d)", len(emojis), MaxEmojis)
	}
	for i, e := range emojis {
		if e == "" {
			return New(ErrCodeInvalidConfig, "emoji %d is empty", i)
		}
		if len(e) > MaxEmojiBytes {
			return New(ErrCodeInvalidConfig, "emoji %d too long (max %d bytes)", i, MaxEmojiBytes)
		}
		if !utf8.ValidString(e) {
			return New(ErrCodeInvalidConfig, "emoji %d is not valid UTF-8", i)
		}
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
