// File: internal/repository/history/history_repository.go
package history

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/tunegen/tunegen/internal/domain"
)

type gormHistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) Repository {
	return &gormHistoryRepository{db: db}
}

// Create appends one chat message. CreatedAt is assigned by gorm on insert;
// callers never supply their own timestamp.
func (r *gormHistoryRepository) Create(ctx context.Context, msg *domain.ChatMessage) (*domain.ChatMessage, error) {
	if err := r.validateInput(msg); err != nil {
		log.Printf("[HistoryRepository] Validation failed: %v", err)
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		log.Printf("[HistoryRepository] Database error creating chat message for user ID %d: %v", msg.UserID, err)
		return nil, errors.New("database error creating chat message")
	}
	return msg, nil
}

// FindByUserID returns the full conversation oldest first.
func (r *gormHistoryRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.ChatMessage, error) {
	if userID == 0 {
		return nil, errors.New("invalid user ID")
	}

	var messages []domain.ChatMessage
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		log.Printf("[HistoryRepository] Database error finding messages for user ID %d: %v", userID, err)
		return nil, errors.New("database error fetching chat history")
	}
	return messages, nil
}

// FindByUserIDWithPagination loads one page of history plus the total count.
func (r *gormHistoryRepository) FindByUserIDWithPagination(ctx context.Context, userID uint, limit, offset int) ([]domain.ChatMessage, int64, error) {
	if userID == 0 {
		return nil, 0, errors.New("invalid user ID")
	}
	if limit <= 0 || limit > 1000 {
		return nil, 0, errors.New("invalid limit: must be between 1 and 1000")
	}
	if offset < 0 {
		return nil, 0, errors.New("invalid offset: must be >= 0")
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.ChatMessage{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		log.Printf("[HistoryRepository] Database error counting messages for user ID %d: %v", userID, err)
		return nil, 0, errors.New("database error counting chat history")
	}

	var messages []domain.ChatMessage
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	if err != nil {
		log.Printf("[HistoryRepository] Database error in paginated query for user ID %d: %v", userID, err)
		return nil, 0, errors.New("database error retrieving paginated chat history")
	}
	return messages, total, nil
}

func (r *gormHistoryRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	if userID == 0 {
		return 0, errors.New("invalid user ID")
	}

	var total int64
	err := r.db.WithContext(ctx).
		Model(&domain.ChatMessage{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		log.Printf("[HistoryRepository] Database error counting messages for user ID %d: %v", userID, err)
		return 0, errors.New("database error counting chat history")
	}
	return total, nil
}

func (r *gormHistoryRepository) validateInput(msg *domain.ChatMessage) error {
	if msg == nil {
		return errors.New("chat message is nil")
	}
	if msg.UserID == 0 {
		return errors.New("user ID is required")
	}
	if !domain.ValidSender(msg.Sender) {
		return fmt.Errorf("invalid sender %q: must be %q or %q", msg.Sender, domain.SenderUser, domain.SenderBot)
	}
	if msg.Message == "" {
		return errors.New("message is required")
	}
	return nil
}
