// File: internal/repository/user/interface.go
package user

import (
	"context"

	"github.com/tunegen/tunegen/internal/domain"
)

// Repository handles user identity rows.
type Repository interface {
	// EnsureByUsername inserts the user if absent and returns the stored row.
	// Safe to call concurrently for the same username: an insert conflict is
	// ignored, not an error.
	EnsureByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
}
