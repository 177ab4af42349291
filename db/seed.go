package db

import (
	"context"
	"fmt"
	"log"

	"github.com/pkg/errors"
)

// SeedAdmin creates the default account when it does not exist yet. The password is only hashed when needed.
func SeedAdmin(ctx context.Context, s Store, username, password string, hash func(string) (string, error)) error {
	_, err := s.GetUser(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("error checking seed user: %w", err)
	}

	passwordHash, err := hash(password)
	if err != nil {
		return fmt.Errorf("error hashing seed password: %w", err)
	}
	if err := s.CreateUser(ctx, username, passwordHash); err != nil && !errors.Is(err, ErrDuplicate) {
		return fmt.Errorf("error seeding user: %w", err)
	}
	log.Printf("Seeded default user %q", username)
	return nil
}
