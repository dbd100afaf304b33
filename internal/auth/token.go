package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/frahmantamala/timeclock/internal"
)

// TokenDecoder reads upstream access tokens. Without a secret it trusts the payload, since the
// backend verifies the signature on every call anyway.
type TokenDecoder struct {
	secret []byte
	parser *jwt.Parser
}

func NewTokenDecoder(secret string) *TokenDecoder {
	d := &TokenDecoder{parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))}
	if secret != "" {
		d.secret = []byte(secret)
	}
	return d
}

func (d *TokenDecoder) Verifies() bool {
	return len(d.secret) > 0
}

// Decode returns the claims; expiry is left to the caller so an expired token gets its own error.
func (d *TokenDecoder) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}

	if !d.Verifies() {
		if _, _, err := d.parser.ParseUnverified(tokenString, claims); err != nil {
			return nil, internal.ErrInvalidToken.WithCause(err)
		}
	} else {
		_, err := d.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return d.secret, nil
		})
		if err != nil && !errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrInvalidToken.WithCause(err)
		}
	}

	if claims.Subject == "" {
		return nil, internal.ErrInvalidToken.WithCause(errors.New("token has no subject"))
	}
	return claims, nil
}
