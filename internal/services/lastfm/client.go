// File: internal/services/lastfm/client.go
package lastfm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tunegen/tunegen/internal/domain"
)

// Client is the HTTP implementation of Provider against the Last.fm
// tag.gettoptracks method. One synchronous call per lookup: no retries, no
// caching, no dedup; tracks are returned in the API's response order.
type Client struct {
	config *Config
	client *http.Client
}

func NewClient(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, &Error{Type: ErrTypeConfig, Message: "invalid configuration", Cause: err}
	}
	return &Client{
		config: config,
		client: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

// topTracksResponse mirrors the subset of the API payload we read. An error
// response carries top-level "error" and "message" fields instead of tracks.
type topTracksResponse struct {
	Error   int    `json:"error"`
	Message string `json:"message"`
	Tracks  struct {
		Track []struct {
			Name   string `json:"name"`
			URL    string `json:"url"`
			Artist struct {
				Name string `json:"name"`
			} `json:"artist"`
		} `json:"track"`
	} `json:"tracks"`
}

func (c *Client) TopTracksByTag(ctx context.Context, tag string, limit int) ([]domain.Song, error) {
	if tag == "" {
		return nil, &Error{Type: ErrTypeValidation, Message: "tag is required"}
	}
	if limit <= 0 {
		return nil, &Error{Type: ErrTypeValidation, Message: "limit must be positive"}
	}

	params := url.Values{}
	params.Set("method", "tag.gettoptracks")
	params.Set("tag", tag)
	params.Set("api_key", c.config.APIKey)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &Error{Type: ErrTypeNetwork, Message: "failed to create request", Cause: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &Error{Type: ErrTypeNetwork, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	return c.handleResponse(resp)
}

func (c *Client) handleResponse(resp *http.Response) ([]domain.Song, error) {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		responseBody, _ := io.ReadAll(resp.Body)
		return nil, &Error{
			Type:    ErrTypeProvider,
			Code:    resp.StatusCode,
			Message: string(responseBody),
		}
	}

	var payload topTracksResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &Error{Type: ErrTypeDecode, Message: "malformed response body", Cause: err}
	}

	if payload.Error != 0 {
		return nil, &Error{
			Type:    ErrTypeProvider,
			Code:    payload.Error,
			Message: payload.Message,
		}
	}

	songs := make([]domain.Song, 0, len(payload.Tracks.Track))
	for _, t := range payload.Tracks.Track {
		songs = append(songs, domain.Song{
			Name:   t.Name,
			Artist: t.Artist.Name,
			URL:    t.URL,
		})
	}
	return songs, nil
}
