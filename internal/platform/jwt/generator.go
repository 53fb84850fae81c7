// Package jwtmw issues and verifies the operator tokens that guard write routes.
package jwtmw

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// EnvKeyJWTSecret is the environment variable holding the HMAC secret.
const EnvKeyJWTSecret = "JWT_SECRET"

// ScopeWatchlistWrite は /symbols への追加・削除を許可します。
const ScopeWatchlistWrite = "watchlist:write"

var ErrEmptySecret = errors.New("jwt secret is empty")

// Claims は登録済みクレームに空白区切りの scope を加えたものです。
type Claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// HasScope reports whether scope is one of the space separated scopes.
func (c *Claims) HasScope(scope string) bool {
	for _, s := range strings.Fields(c.Scope) {
		if s == scope {
			return true
		}
	}
	return false
}

// Generator defines the interface for JWT token generation.
type Generator interface {
	// GenerateToken creates a signed token for subject with the given scopes.
	GenerateToken(subject string, scopes ...string) (string, error)
}

type generator struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// NewGenerator creates a new JWT generator with the provided secret and expiration duration.
func NewGenerator(secret string, expiration time.Duration) (Generator, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &generator{secret: []byte(secret), expiration: expiration, now: time.Now}, nil
}

// GenerateToken creates an HS256 token with sub, iat, exp and scope.
func (g *generator) GenerateToken(subject string, scopes ...string) (string, error) {
	now := g.now()
	claims := Claims{
		Scope: strings.Join(scopes, " "),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.expiration)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
