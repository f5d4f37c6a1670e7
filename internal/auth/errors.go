package auth

import "errors"

// Failure kinds of the authentication subsystem. Callers branch with errors.Is.
var (
	ErrInvalidCredentials = errors.New("invalid employee number or password")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrTokenExpired       = errors.New("token expired")
	ErrSignatureInvalid   = errors.New("token signature invalid")
	ErrTokenMalformed     = errors.New("token malformed")
	ErrWrongTokenType     = errors.New("wrong token type")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrIdentityNotFound   = errors.New("identity not found")
	ErrNotImplemented     = errors.New("not implemented")
)

// IsTokenError reports whether err describes a token that must not be honoured.
func IsTokenError(err error) bool {
	return errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrSignatureInvalid) ||
		errors.Is(err, ErrTokenMalformed) ||
		errors.Is(err, ErrWrongTokenType) ||
		errors.Is(err, ErrTokenRevoked)
}
