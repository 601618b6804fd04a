package jwt

import (
	"errors"
	"time"

	"recruiting-portal/config"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "recruiting-portal"

// Claims identify the signed-in Identity. The role is not embedded: it is
// read from the profile on every request so a demotion applies at once.
type Claims struct {
	IdentityID string `json:"identity_id"`
	jwt.RegisteredClaims
}

var ErrSecretMissing = errors.New("ACCESS_SECRET is not configured")

func CreateToken(identityID string) (string, error) {
	cfg := config.Get().JWT
	if cfg.AccessSecret == "" {
		return "", ErrSecretMissing
	}
	now := time.Now()
	claims := Claims{
		IdentityID: identityID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   identityID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(Expire())),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.AccessSecret))
}

// ParseToken validates signature, issuer and expiry.
func ParseToken(token string) (*Claims, bool) {
	secret := config.Get().JWT.AccessSecret
	if secret == "" || token == "" {
		return nil, false
	}
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil || !parsed.Valid || claims.IdentityID == "" {
		return nil, false
	}
	return claims, true
}

// Expire is the token lifetime, ACCESS_EXPIRE seconds.
func Expire() time.Duration {
	return time.Duration(config.Get().JWT.AccessExpire) * time.Second
}
