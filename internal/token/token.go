// Package token decodes marketplace bearer tokens into the identity the
// client routes on. The backend signs tokens; the client only extracts
// claims, so parsing is unverified by design of the API contract.
package token

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type Role string

const (
	RoleJobSeeker Role = "JOB_SEEKER"
	RoleEmployer  Role = "EMPLOYER"
	RoleTrainer   Role = "TRAINER"
	RoleAdmin     Role = "ADMIN"
)

var (
	ErrMalformed = errors.New("malformed token")
	ErrNoUserID  = errors.New("token has no user id")
)

type Claims struct {
	UserID string `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the decoded (id, role) pair. Role is normalized (trimmed)
// exactly once here; consumers compare without further cleanup.
type Identity struct {
	UserID string
	Role   Role
}

func Decode(tokenStr string) (Identity, error) {
	parser := jwt.NewParser()

	var claims Claims
	if _, _, err := parser.ParseUnverified(tokenStr, &claims); err != nil {
		return Identity{}, ErrMalformed
	}

	if claims.UserID == "" {
		return Identity{}, ErrNoUserID
	}

	return Identity{
		UserID: claims.UserID,
		Role:   NormalizeRole(claims.Role),
	}, nil
}

// NormalizeRole trims surrounding whitespace from a stored role string.
// Persisted roles have been observed with stray whitespace; normalizing at
// the decode/store boundary keeps every comparison site simple.
func NormalizeRole(raw string) Role {
	return Role(strings.TrimSpace(raw))
}
