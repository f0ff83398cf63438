package auth

import "errors"

// AuthError indicates the identity provider reported a failure or
// returned an empty token. Message carries the provider's text verbatim
// for display; it must still be escaped before rendering.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return "authentication failed: " + e.Message
}

// IsAuthError reports whether err (or any error in its chain) is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}
