// Package token handles signed identity token generation and validation
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/forumhub/backend/internal/models"
)

// Verification errors. ErrExpired marks a well-formed token past its expiry;
// ErrInvalid covers bad signatures, malformed tokens and missing claims.
var (
	ErrExpired = errors.New("token expired")
	ErrInvalid = errors.New("token invalid")
)

// Identity is the actor identity carried by a verified token
type Identity struct {
	ID   int
	Name string
	Role models.Role
}

// IsAdmin reports whether the actor has the admin role
func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

// Generator handles identity token generation and validation
type Generator struct {
	secret string
	expiry time.Duration
}

// NewGenerator creates a new token generator
func NewGenerator(secret string, expiry time.Duration) *Generator {
	return &Generator{
		secret: secret,
		expiry: expiry,
	}
}

// Issue produces a signed token embedding the user's id, display name and role
func (g *Generator) Issue(user *models.User) (string, error) {
	return g.IssueIdentity(Identity{ID: user.ID, Name: user.FullName, Role: user.Role})
}

// IssueIdentity signs a token for an already-verified identity. Used by token
// renewal, where no user row is loaded.
func (g *Generator) IssueIdentity(identity Identity) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"uid":  identity.ID,
		"name": identity.Name,
		"role": int(identity.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(g.expiry).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := t.SignedString([]byte(g.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify validates a token and returns the identity it carries.
// Returns ErrExpired for expired tokens and ErrInvalid for everything else.
func (g *Generator) Verify(tokenString string) (Identity, error) {
	t, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		// Validate the signing method
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(g.secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrExpired
		}
		return Identity{}, ErrInvalid
	}

	if !t.Valid {
		return Identity{}, ErrInvalid
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalid
	}

	// JWT claims decode numbers as float64
	uid, ok := claims["uid"].(float64)
	if !ok {
		return Identity{}, ErrInvalid
	}

	name, ok := claims["name"].(string)
	if !ok {
		return Identity{}, ErrInvalid
	}

	role, ok := claims["role"].(float64)
	if !ok {
		return Identity{}, ErrInvalid
	}

	return Identity{
		ID:   int(uid),
		Name: name,
		Role: models.Role(role),
	}, nil
}
