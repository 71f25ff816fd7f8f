// File: internal/repository/user/gorm_user_repository.go
package user

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tunegen/tunegen/internal/domain"
)

var ErrUserNotFound = errors.New("user not found")

type gormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) Repository {
	return &gormUserRepository{db: db}
}

// EnsureByUsername is the insert-if-absent identity resolution used by every
// handler. The ON CONFLICT DO NOTHING insert and the read-back tolerate two
// requests racing on the same new username: exactly one row wins.
func (r *gormUserRepository) EnsureByUsername(ctx context.Context, username string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	candidate := &domain.User{Username: username}
	if err := candidate.IsValid(); err != nil {
		return nil, err
	}

	insert := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(candidate)
	if insert.Error != nil {
		log.Printf("[UserRepository] Database error ensuring user %q: %v", username, insert.Error)
		return nil, errors.New("database error creating user")
	}

	return r.FindByUsername(ctx, username)
}

func (r *gormUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, errors.New("username is required")
	}

	var user domain.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	return r.handleFindError(err, &user, "FindByUsername")
}

func (r *gormUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if id == 0 {
		return nil, errors.New("invalid user ID")
	}

	var user domain.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	return r.handleFindError(err, &user, "FindByID")
}

func (r *gormUserRepository) handleFindError(err error, user *domain.User, op string) (*domain.User, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		log.Printf("[UserRepository] Database error in %s: %v", op, err)
		return nil, fmt.Errorf("database error in %s", op)
	}
	return user, nil
}
