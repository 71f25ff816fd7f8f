// File: internal/repository/store_test.go
package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tunegen/tunegen/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	store := NewStore(db)
	require.NoError(t, store.AutoMigrate())
	return store
}

func TestEnsureByUsernameIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.Users.EnsureByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	second, err := store.Users.EnsureByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, store.db.Model(&domain.User{}).Where("username = ?", "alice").Count(&count).Error)
	assert.EqualValues(t, 1, count, "exactly one user row after two ensures")
}

func TestEnsureByUsernameRejectsEmpty(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Users.EnsureByUsername(context.Background(), "   ")
	require.Error(t, err)
}

func TestEnsureByUsernameDistinctUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice, err := store.Users.EnsureByUsername(ctx, "alice")
	require.NoError(t, err)
	bob, err := store.Users.EnsureByUsername(ctx, "bob")
	require.NoError(t, err)

	assert.NotEqual(t, alice.ID, bob.ID)
}

func TestPreferenceCreateInBatchAndRead(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.Users.EnsureByUsername(ctx, "alice")
	require.NoError(t, err)

	prefs := []*domain.Preference{
		{UserID: user.ID, MoodOrLocation: "Happy", SongTitle: "Song A", Artist: "Artist A"},
		{UserID: user.ID, MoodOrLocation: "Happy", SongTitle: "Song B", Artist: "Artist B"},
		{UserID: user.ID, MoodOrLocation: "Happy", SongTitle: "Song C", Artist: "Artist C"},
	}
	require.NoError(t, store.Preferences.CreateInBatch(ctx, prefs))

	got, err := store.Preferences.FindByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Song A", got[0].SongTitle)
	assert.Equal(t, "Song C", got[2].SongTitle)

	total, err := store.Preferences.CountByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
}

func TestPreferenceCreateInBatchEmpty(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Preferences.CreateInBatch(context.Background(), nil))
}

func TestPreferenceValidation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Preferences.Create(ctx, &domain.Preference{SongTitle: "No User"})
	require.Error(t, err)

	_, err = store.Preferences.Create(ctx, &domain.Preference{UserID: 1})
	require.Error(t, err, "song title is required")
}

func TestHistoryCreateAssignsTimestamp(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.Users.EnsureByUsername(ctx, "alice")
	require.NoError(t, err)

	msg, err := store.History.Create(ctx, &domain.ChatMessage{
		UserID:  user.ID,
		Sender:  domain.SenderUser,
		Message: "hello",
	})
	require.NoError(t, err)
	assert.NotZero(t, msg.ID)
	assert.False(t, msg.CreatedAt.IsZero(), "CreatedAt assigned on insert")
}

func TestHistoryOrderedAscending(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.Users.EnsureByUsername(ctx, "alice")
	require.NoError(t, err)

	for _, text := range []string{"first", "second", "third"} {
		_, err := store.History.Create(ctx, &domain.ChatMessage{
			UserID:  user.ID,
			Sender:  domain.SenderUser,
			Message: text,
		})
		require.NoError(t, err)
	}

	messages, err := store.History.FindByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "first", messages[0].Message)
	assert.Equal(t, "second", messages[1].Message)
	assert.Equal(t, "third", messages[2].Message)
}

func TestHistoryPagination(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.Users.EnsureByUsername(ctx, "alice")
	require.NoError(t, err)

	for _, text := range []string{"one", "two", "three", "four"} {
		_, err := store.History.Create(ctx, &domain.ChatMessage{
			UserID:  user.ID,
			Sender:  domain.SenderBot,
			Message: text,
		})
		require.NoError(t, err)
	}

	page, total, err := store.History.FindByUserIDWithPagination(ctx, user.ID, 2, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	require.Len(t, page, 2)
	assert.Equal(t, "two", page[0].Message)
	assert.Equal(t, "three", page[1].Message)

	_, _, err = store.History.FindByUserIDWithPagination(ctx, user.ID, 0, 0)
	require.Error(t, err)
}

func TestHistoryRejectsInvalidSender(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.Users.EnsureByUsername(ctx, "alice")
	require.NoError(t, err)

	_, err = store.History.Create(ctx, &domain.ChatMessage{
		UserID:  user.ID,
		Sender:  "system",
		Message: "nope",
	})
	require.Error(t, err)
}

func TestTransactionRollsBackAllWrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := store.Transaction(ctx, func(tx *Store) error {
		user, err := tx.Users.EnsureByUsername(ctx, "ghost")
		if err != nil {
			return err
		}
		if _, err := tx.History.Create(ctx, &domain.ChatMessage{
			UserID:  user.ID,
			Sender:  domain.SenderUser,
			Message: "about to vanish",
		}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var users, messages int64
	require.NoError(t, store.db.Model(&domain.User{}).Count(&users).Error)
	require.NoError(t, store.db.Model(&domain.ChatMessage{}).Count(&messages).Error)
	assert.Zero(t, users, "user insert rolled back")
	assert.Zero(t, messages, "history insert rolled back")
}
