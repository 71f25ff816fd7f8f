// File: internal/services/lastfm/interface.go
package lastfm

import (
	"context"

	"github.com/tunegen/tunegen/internal/domain"
)

// Provider looks up top tracks for a tag on the external song-metadata API.
type Provider interface {
	TopTracksByTag(ctx context.Context, tag string, limit int) ([]domain.Song, error)
}
