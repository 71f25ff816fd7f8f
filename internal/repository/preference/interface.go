// File: internal/repository/preference/interface.go
package preference

import (
	"context"

	"github.com/tunegen/tunegen/internal/domain"
)

// Repository handles the append-only preference rows. There is no update or
// delete on purpose: the table is write-once per row.
type Repository interface {
	Create(ctx context.Context, pref *domain.Preference) (*domain.Preference, error)
	CreateInBatch(ctx context.Context, prefs []*domain.Preference) error
	FindByUserID(ctx context.Context, userID uint) ([]domain.Preference, error)
	CountByUserID(ctx context.Context, userID uint) (int64, error)
}
