// File: internal/services/recommendation_service.go
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/tunegen/tunegen/internal/domain"
	"github.com/tunegen/tunegen/internal/repository"
	"github.com/tunegen/tunegen/internal/services/lastfm"
	"github.com/tunegen/tunegen/internal/services/tags"
	"github.com/tunegen/tunegen/internal/services/vision"
)

// RecommendationService ties user identity, tag resolution, external song
// lookup, and preference persistence together for the mood and location
// flows.
type RecommendationService struct {
	store      *repository.Store
	songs      lastfm.Provider
	classifier vision.Classifier
	songLimit  int
	logger     Logger
}

func NewRecommendationService(store *repository.Store, songs lastfm.Provider, classifier vision.Classifier, songLimit int, logger Logger) (*RecommendationService, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	if songs == nil {
		return nil, errors.New("song provider is required")
	}
	if classifier == nil {
		return nil, errors.New("classifier is required")
	}
	if songLimit <= 0 {
		songLimit = 5
	}
	if logger == nil {
		logger = &NoOpLogger{}
	}
	return &RecommendationService{
		store:      store,
		songs:      songs,
		classifier: classifier,
		songLimit:  songLimit,
		logger:     logger,
	}, nil
}

// ByMood recommends songs for a mood label with an optional genre filter and
// records one preference row per returned song.
func (s *RecommendationService) ByMood(ctx context.Context, username, mood, genre string) ([]domain.Song, error) {
	tag := tags.WithGenre(tags.MoodTag(mood), strings.TrimSpace(genre))
	return s.recommend(ctx, username, mood, tag)
}

// ByLocation classifies the uploaded image into a location label, then
// recommends songs for it. Returns the songs and the detected location.
func (s *RecommendationService) ByLocation(ctx context.Context, username string, image []byte) ([]domain.Song, string, error) {
	location, err := s.classifier.Classify(ctx, image)
	if err != nil {
		return nil, "", err
	}

	songs, err := s.recommend(ctx, username, location, tags.LocationTag(location))
	if err != nil {
		return nil, "", err
	}
	return songs, location, nil
}

// Preferences lists everything recommended to a user so far, oldest first.
func (s *RecommendationService) Preferences(ctx context.Context, username string) ([]domain.Preference, error) {
	user, err := s.store.Users.EnsureByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.store.Preferences.FindByUserID(ctx, user.ID)
}

func (s *RecommendationService) recommend(ctx context.Context, username, label, tag string) ([]domain.Song, error) {
	songs := s.fetchSongs(ctx, tag)

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		user, err := tx.Users.EnsureByUsername(ctx, username)
		if err != nil {
			return err
		}

		if len(songs) == 0 {
			return nil
		}

		prefs := make([]*domain.Preference, len(songs))
		for i, song := range songs {
			prefs[i] = &domain.Preference{
				UserID:         user.ID,
				MoodOrLocation: label,
				SongTitle:      song.Name,
				Artist:         song.Artist,
			}
		}
		return tx.Preferences.CreateInBatch(ctx, prefs)
	})
	if err != nil {
		return nil, err
	}
	return songs, nil
}

// fetchSongs absorbs every lookup failure into an empty result. The external
// API degrading must never fail the request.
func (s *RecommendationService) fetchSongs(ctx context.Context, tag string) []domain.Song {
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
