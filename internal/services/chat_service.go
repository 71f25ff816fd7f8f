// File: internal/services/chat_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tunegen/tunegen/internal/domain"
	"github.com/tunegen/tunegen/internal/repository"
	"github.com/tunegen/tunegen/internal/services/lastfm"
	"github.com/tunegen/tunegen/internal/services/tags"
)

// DefaultReply is sent when a chat message contains no recognizable mood or
// location keyword.
const DefaultReply = "Got it! Want me to find songs for that?"

// ChatService implements the keyword-matching bot and the chat history
// persistence behind /chat and /save_chat.
type ChatService struct {
	store     *repository.Store
	songs     lastfm.Provider
	songLimit int
	logger    Logger
}

func NewChatService(store *repository.Store, songs lastfm.Provider, songLimit int, logger Logger) (*ChatService, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	if songs == nil {
		return nil, errors.New("song provider is required")
	}
	if songLimit <= 0 {
		songLimit = 5
	}
	if logger == nil {
		logger = &NoOpLogger{}
	}
	return &ChatService{
		store:     store,
		songs:     songs,
		songLimit: songLimit,
		logger:    logger,
	}, nil
}

// HandleMessage records the inbound message, scans it for a mood or location
// keyword, fetches songs for a match, and records the bot reply. On a match
// with a non-empty result only the first song becomes a preference row.
func (s *ChatService) HandleMessage(ctx context.Context, username, message string) (string, []domain.Song, error) {
	reply := DefaultReply
	songs := []domain.Song{}

	match, matched := tags.Scan(message)
	if matched {
		songs = s.fetchSongs(ctx, match.Tag)
		switch match.Kind {
		case tags.KindLocation:
			reply = fmt.Sprintf("Here are some songs for a %s vibe!", match.Label)
		default:
			reply = fmt.Sprintf("Here are some %s songs!", match.Label)
		}
	}

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		user, err := tx.Users.EnsureByUsername(ctx, username)
		if err != nil {
			return err
		}

		if _, err := tx.History.Create(ctx, &domain.ChatMessage{
			UserID:  user.ID,
			Sender:  domain.SenderUser,
			Message: message,
		}); err != nil {
			return err
		}

		if matched && len(songs) > 0 {
			if _, err := tx.Preferences.Create(ctx, &domain.Preference{
				UserID:         user.ID,
				MoodOrLocation: match.Label,
				SongTitle:      songs[0].Name,
				Artist:         songs[0].Artist,
			}); err != nil {
				return err
			}
		}

		_, err = tx.History.Create(ctx, &domain.ChatMessage{
			UserID:  user.ID,
			Sender:  domain.SenderBot,
			Message: reply,
		})
		return err
	})
	if err != nil {
		return "", nil, err
	}
	return reply, songs, nil
}

// Save appends one chat history row without any external calls.
func (s *ChatService) Save(ctx context.Context, username, sender, message string) error {
	if !domain.ValidSender(sender) {
		return fmt.Errorf("invalid sender %q", sender)
	}
	if strings.TrimSpace(message) == "" {
		return errors.New("message is required")
	}

	return s.store.Transaction(ctx, func(tx *repository.Store) error {
		user, err := tx.Users.EnsureByUsername(ctx, username)
		if err != nil {
			return err
		}
		_, err = tx.History.Create(ctx, &domain.ChatMessage{
			UserID:  user.ID,
			Sender:  sender,
			Message: message,
		})
		return err
	})
}

// History returns a user's conversation oldest first.
func (s *ChatService) History(ctx context.Context, username string) ([]domain.ChatMessage, error) {
	user, err := s.store.Users.EnsureByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.store.History.FindByUserID(ctx, user.ID)
}

func (s *ChatService) fetchSongs(ctx context.Context, tag string) []domain.Song {
	songs, err := s.songs.TopTracksByTag(ctx, tag, s.songLimit)
	if err != nil {
		s.logger.Warn("song lookup failed, returning empty result", "tag", tag, "error", err.Error())
		return []domain.Song{}
	}
	if songs == nil {
		songs = []domain.Song{}
	}
	return songs
}
