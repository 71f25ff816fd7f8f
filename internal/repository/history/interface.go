// File: internal/repository/history/interface.go
package history

import (
	"context"

	"github.com/tunegen/tunegen/internal/domain"
)

// Repository handles the append-only chat history rows.
type Repository interface {
	Create(ctx context.Context, msg *domain.ChatMessage) (*domain.ChatMessage, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.ChatMessage, error)
	FindByUserIDWithPagination(ctx context.Context, userID uint, limit, offset int) ([]domain.ChatMessage, int64, error)
	CountByUserID(ctx context.Context, userID uint) (int64, error)
}
