// Package auth verifies bearer credentials and extracts the caller identity.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/inkfold/blog-backend/errs"
)

// Identity is the decoded caller identity carried by a verified token.
type Identity struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Verifier validates HS256-signed bearer tokens issued with a shared secret.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) Verifier {
	return Verifier{secret: []byte(secret)}
}

type identityClaims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Verify checks the credential's signature and validity window and returns
// the identity embedded in its claims. Pure verification, no side effects.
func (v Verifier) Verify(credential string) (Identity, error) {
	if credential == "" {
		return Identity{}, errs.NewMissingTokenError()
	}

	var claims identityClaims
	_, err := jwt.ParseWithClaims(credential, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, errs.NewExpiredTokenError()
		}
		return Identity{}, errs.NewInvalidTokenError()
	}

	if claims.Email == "" {
		return Identity{}, errs.NewInvalidTokenError()
	}

	return Identity{Email: claims.Email, Name: claims.Name}, nil
}

// Sign mints a credential for the given identity, valid for ttl. Used by the
// seed tooling and tests; the verifier itself never issues tokens in request
// handling.
func (v Verifier) Sign(identity Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := identityClaims{
		Email: identity.Email,
		Name:  identity.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}

// FromAuthHeader extracts the bearer token from an Authorization header
// value. An absent header is a missing credential; a "Bearer" prefix with no
// token segment is malformed.
func FromAuthHeader(headerValue string) (string, error) {
	if headerValue == "" {
		return "", errs.NewMissingTokenError()
	}
	if !strings.HasPrefix(headerValue, "Bearer") {
		return "", errs.NewMalformedTokenError()
	}
	token := strings.TrimSpace(strings.TrimPrefix(headerValue, "Bearer"))
	if token == "" {
		return "", errs.NewMalformedTokenError()
	}
	return token, nil
}
