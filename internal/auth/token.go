package auth

import (
	"errors"
	"strings"

	jwt "github.com/golang-jwt/jwt/v5"
)

// TokenVerifier extracts the user id from HS512 bearer tokens issued by the
// identity service. A missing or invalid token means an anonymous caller,
// never a hard failure.
type TokenVerifier struct {
	secret []byte
}

func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// ExtractUserID returns the token subject, or "" when the Authorization
// header is absent, not a bearer token, or fails verification.
func (v *TokenVerifier) ExtractUserID(authorization string) string {
	token, ok := strings.CutPrefix(authorization, "Bearer ")
	if !ok {
		return ""
	}

	subject, err := v.verifySubject(token)
	if err != nil {
		return ""
	}
	return subject
}

func (v *TokenVerifier) verifySubject(token string) (string, error) {
	if len(v.secret) == 0 {
		return "", errors.New("token verifier has no secret configured")
	}

	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}))
	if err != nil || !parsed.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return "", err
	}

	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return "", errors.New("token subject missing")
	}
	return subject, nil
}
