package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

const bearerPrefix = "Bearer "

// AdminVerifier is the admin gate consumed by the analytics endpoints.
// Implementations must reject anything they cannot validate and never
// report why a credential was rejected.
//
//go:generate mockgen -source=verifier.go -destination=./mocks/verifier_mock.go -package=mocks
type AdminVerifier interface {
	IsAuthenticatedAdmin(r *http.Request) bool
}

// adminClaims carries the role claim on top of the registered JWT set.
type adminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type jwtVerifier struct {
	secret          []byte
	adminRole       string
	tokenQueryParam string
}

// NewJWTVerifier builds an AdminVerifier that accepts an HMAC-signed
// bearer token carrying the configured admin role. The token may arrive
// in the Authorization header or, for streaming clients that cannot set
// custom headers, in the configured query parameter.
func NewJWTVerifier(secret, adminRole, tokenQueryParam string) AdminVerifier {
	return &jwtVerifier{
		secret:          []byte(secret),
		adminRole:       adminRole,
		tokenQueryParam: tokenQueryParam,
	}
}

func (v *jwtVerifier) IsAuthenticatedAdmin(r *http.Request) bool {
	tokenString := v.extractToken(r)
	if tokenString == "" {
		return false
	}

	claims := &adminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return false
	}

	return claims.Role == v.adminRole
}

func (v *jwtVerifier) extractToken(r *http.Request) string {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	if strings.HasPrefix(authHeader, bearerPrefix) {
		return strings.TrimSpace(authHeader[len(bearerPrefix):])
	}
	return strings.TrimSpace(r.URL.Query().Get(v.tokenQueryParam))
}
