// Package auth validates the tenant-bound bearer credential every ingest
// and read call (other than the liveness check) must present.
package auth

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

// Claims carries the tenant a token is scoped to. Nexarch has no user
// login of its own — credentials are issued out of band by whatever
// tenant-admin system owns onboarding, which is out of the core's scope.
type Claims struct {
	TenantID string `json:"tenant_id"`
	jwt.StandardClaims
}

// TokenIssuer signs and verifies tenant-bound bearer tokens against a
// shared secret.
type TokenIssuer struct {
	secret []byte
}

// NewTokenIssuer builds a TokenIssuer from the configured JWT secret.
func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret)}
}

// IssueToken mints a bearer token scoped to tenantID, valid for ttl.
// Exposed mainly for tests and local tooling; production tokens are
// normally issued by the external tenant-admin system.
func (i *TokenIssuer) IssueToken(tenantID string, ttl time.Duration) (string, error) {
	claims := &Claims{
		TenantID: tenantID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(ttl).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify parses and validates a bearer token, returning the tenant it is
// scoped to.
func (i *TokenIssuer) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.NewValidationError("unexpected signing method", jwt.ValidationErrorSignatureInvalid)
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.TenantID == "" {
		return nil, jwt.NewValidationError("invalid token", jwt.ValidationErrorClaimsInvalid)
	}
	return claims, nil
}
