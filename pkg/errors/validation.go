package errors

import "regexp"

// GitHub logins are 1-39 alphanumerics or single hyphens, not starting or
// ending with a hyphen.
var loginPattern = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9]|-[A-Za-z0-9]){0,38}$`)

// ValidateUsername validates a GitHub account login before it is placed in
// an upstream URL.
func ValidateUsername(name string) error {
	if name == "" {
		return New(ErrCodeInvalidUser, "GitHub user cannot be empty")
	}
	if len(name) > 39 {
		return New(ErrCodeInvalidUser, "GitHub user too long (max 39 characters)")
	}
	if !loginPattern.MatchString(name) {
		return New(ErrCodeInvalidUser, "invalid GitHub user: %q", name)
	}
	return nil
}
