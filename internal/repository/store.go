// File: internal/repository/store.go

// Package repository aggregates the per-entity repositories over a single
// shared gorm handle.
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tunegen/tunegen/internal/domain"
	"github.com/tunegen/tunegen/internal/repository/history"
	"github.com/tunegen/tunegen/internal/repository/preference"
	"github.com/tunegen/tunegen/internal/repository/user"
)

// Store bundles the repositories so services take one dependency and can
// group multi-row writes into a single transaction.
type Store struct {
	db          *gorm.DB
	Users       user.Repository
	Preferences preference.Repository
	History     history.Repository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:          db,
		Users:       user.NewGormUserRepository(db),
		Preferences: preference.NewPreferenceRepository(db),
		History:     history.NewHistoryRepository(db),
	}
}

// AutoMigrate creates the three tables idempotently on startup.
func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(&domain.User{}, &domain.Preference{}, &domain.ChatMessage{})
}

// Transaction runs fn against a Store bound to a single database
// transaction. Every handler groups its writes this way so a failure rolls
// back all of them instead of leaving partial rows behind.
func (s *Store) Transaction(ctx context.Context, fn func(txStore *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
