// Package accounts stores the people who sign in to run assessments. Only a
// display name and an email are kept; assessment results are never stored.
package accounts

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrAccountExists  = errors.New("account already exists")
	ErrInvalidAccount = errors.New("name and email are required")
)

type Account struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store is the account collaborator used by the HTTP layer.
type Store interface {
	Exists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, name, email string) (Account, error)
	// DisplayName returns the account name, or false when no account matches.
	DisplayName(ctx context.Context, email string) (string, bool, error)
	Ping(ctx context.Context) error
	Close() error
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalize(name, email string) (string, string, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	if name == "" || email == "" {
		return "", "", ErrInvalidAccount
	}
	return name, email, nil
}
