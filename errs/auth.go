package errs

import (
	"errors"
	"net/http"
)

// Authentication & Authorization Errors
var (
	ErrMissingToken   = errors.New("missing access token")
	ErrMalformedToken = errors.New("malformed authorization header")
	ErrExpiredToken   = errors.New("expired access token")
	ErrInvalidToken   = errors.New("invalid access token")
)

func NewMissingTokenError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrMissingToken,
		Details:    "Missing access token",
		Field:      "authorization",
	}
}

func NewMalformedTokenError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrMalformedToken,
		Details:    "Authorization header has no token segment",
		Field:      "authorization",
	}
}

func NewExpiredTokenError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrExpiredToken,
		Details:    "Access token has expired",
		Field:      "authorization",
	}
}

// Invalid signatures are authenticated-but-wrong rather than absent, so they
// map to 403 instead of 401.
func NewInvalidTokenError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusForbidden,
		err:        ErrInvalidToken,
		Details:    "Access token signature or format is invalid",
		Field:      "authorization",
	}
}

func IsMissingToken(err error) bool {
	return errors.Is(err, ErrMissingToken)
}

func IsMalformedToken(err error) bool {
	return errors.Is(err, ErrMalformedToken)
}

func IsExpiredToken(err error) bool {
	return errors.Is(err, ErrExpiredToken)
}

func IsInvalidToken(err error) bool {
	return errors.Is(err, ErrInvalidToken)
}
