// File: internal/repository/preference/preference_repository.go
package preference

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/tunegen/tunegen/internal/domain"
)

type gormPreferenceRepository struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) Repository {
	return &gormPreferenceRepository{db: db}
}

func (r *gormPreferenceRepository) Create(ctx context.Context, pref *domain.Preference) (*domain.Preference, error) {
	if err := r.validateInput(pref); err != nil {
		log.Printf("[PreferenceRepository] Validation failed: %v", err)
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(pref).Error; err != nil {
		log.Printf("[PreferenceRepository] Database error creating preference for user ID %d: %v", pref.UserID, err)
		return nil, errors.New("database error creating preference")
	}
	return pref, nil
}

// CreateInBatch appends one row per recommended song in a single statement.
func (r *gormPreferenceRepository) CreateInBatch(ctx context.Context, prefs []*domain.Preference) error {
	if len(prefs) == 0 {
		return nil
	}

	for i, pref := range prefs {
		if err := r.validateInput(pref); err != nil {
			return fmt.Errorf("validation failed for preference %d: %w", i, err)
		}
	}

	if err := r.db.WithContext(ctx).Create(prefs).Error; err != nil {
		log.Printf("[PreferenceRepository] Database error creating %d preferences: %v", len(prefs), err)
		return errors.New("database error creating preferences")
	}
	return nil
}

// FindByUserID returns preferences oldest first.
func (r *gormPreferenceRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Preference, error) {
	if userID == 0 {
		return nil, errors.New("invalid user ID")
	}

	var prefs []domain.Preference
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&prefs).Error
	if err != nil {
		log.Printf("[PreferenceRepository] Database error finding preferences for user ID %d: %v", userID, err)
		return nil, errors.New("database error fetching preferences")
	}
	return prefs, nil
}

func (r *gormPreferenceRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	if userID == 0 {
		return 0, errors.New("invalid user ID")
	}

	var total int64
	err := r.db.WithContext(ctx).
		Model(&domain.Preference{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		log.Printf("[PreferenceRepository] Database error counting preferences for user ID %d: %v", userID, err)
		return 0, errors.New("database error counting preferences")
	}
	return total, nil
}

func (r *gormPreferenceRepository) validateInput(pref *domain.Preference) error {
	if pref == nil {
		return errors.New("preference is nil")
	}
	if pref.UserID == 0 {
		return errors.New("user ID is required")
	}
	if pref.SongTitle == "" {
		return errors.New("song title is required")
	}
	return nil
}
