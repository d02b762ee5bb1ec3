package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the session information carried inside a signed token.
type Claims struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies session tokens with an HMAC key.
type TokenIssuer struct {
	key []byte
	ttl time.Duration
}

// NewTokenIssuer creates an issuer. ttl bounds how long issued sessions
// stay valid.
func NewTokenIssuer(key []byte, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{key: key, ttl: ttl}
}

// Issue signs a session token for the given identity.
func (i *TokenIssuer) Issue(s Session) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:     s.Email,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		ImageURL:  s.ImageURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.ExternalID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}

// Verify parses a session token and returns the signed-in session it
// carries. Expired, malformed, or tampered tokens resolve to the anonymous
// session along with an error.
func (i *TokenIssuer) Verify(tokenString string) (Session, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return i.key, nil
		},
	)
	if err != nil {
		return Anonymous, fmt.Errorf("verifying session token: %w", err)
	}

	return Session{
		IsSignedIn: true,
		IsLoaded:   true,
		ExternalID: claims.Subject,
		Email:      claims.Email,
		FirstName:  claims.FirstName,
		LastName:   claims.LastName,
		ImageURL:   claims.ImageURL,
	}, nil
}
