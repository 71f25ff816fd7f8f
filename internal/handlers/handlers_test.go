// File: internal/handlers/handlers_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tunegen/tunegen/internal/domain"
	"github.com/tunegen/tunegen/internal/repository"
	"github.com/tunegen/tunegen/internal/services"
)

type stubSongProvider struct {
	songs []domain.Song
	err   error
}

func (s *stubSongProvider) TopTracksByTag(ctx context.Context, tag string, limit int) ([]domain.Song, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.songs, nil
}

type fixedClassifier struct {
	label string
}

func (c *fixedClassifier) Classify(ctx context.Context, image []byte) (string, error) {
	return c.label, nil
}

type testEnv struct {
	store *repository.Store
	songs *SongHandler
	chat  *ChatHandler
}

func newTestEnv(t *testing.T, provider *stubSongProvider) *testEnv {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	store := repository.NewStore(db)
	require.NoError(t, store.AutoMigrate())

	recommendationService, err := services.NewRecommendationService(
		store, provider, &fixedClassifier{label: "Mountain"}, 5, &services.NoOpLogger{})
	require.NoError(t, err)

	chatService, err := services.NewChatService(store, provider, 5, &services.NoOpLogger{})
	require.NoError(t, err)

	return &testEnv{
		store: store,
		songs: NewSongHandler(recommendationService),
		chat:  NewChatHandler(chatService),
	}
}

var testSongs = []domain.Song{
	{Name: "Song A", Artist: "Artist A", URL: "https://example.com/a"},
	{Name: "Song B", Artist: "Artist B", URL: "https://example.com/b"},
}

func postJSON(t *testing.T, handler http.HandlerFunc, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	encoded, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

func TestGetMoodSongs(t *testing.T) {
	env := newTestEnv(t, &stubSongProvider{songs: testSongs})

	rec := postJSON(t, env.songs.GetMoodSongs, "/get_mood_songs", map[string]string{
		"username": "alice",
		"mood":     "Happy",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeBody(t, rec)
	songs, ok := payload["songs"].([]interface{})
	require.True(t, ok)
	require.Len(t, songs, 2)
	first := songs[0].(map[string]interface{})
	assert.Equal(t, "Song A", first["name"])
	assert.Equal(t, "Artist A", first["artist"])
	assert.Equal(t, "https://example.com/a", first["url"])

	// One preference row per returned song.
	ctx := context.Background()
	user, err := env.store.Users.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	total, err := env.store.Preferences.CountByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestGetMoodSongsMissingFields(t *testing.T) {
	env := newTestEnv(t, &stubSongProvider{songs: testSongs})

	rec := postJSON(t, env.songs.GetMoodSongs, "/get_mood_songs", map[string]string{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec), "error")

	rec = postJSON(t, env.songs.GetMoodSongs, "/get_mood_songs", map[string]string{"mood": "Happy"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetMoodSongsInvalidBody(t *testing.T) {
	env := newTestEnv(t, &stubSongProvider{songs: testSongs})

	req := httptest.NewRequest(http.MethodPost, "/get_mood_songs", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	env.songs.GetMoodSongs(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetMoodSongsLookupFailureReturnsEmptyList(t *testing.T) {
	env := newTestEnv(t, &stubSongProvider{err: errors.New("api unreachable")})

	rec := postJSON(t, env.songs.GetMoodSongs, "/get_mood_songs", map[string]string{
		"username": "alice",
		"mood":     "Happy",
	})
	require.Equal(t, http.StatusOK, rec.Code, "lookup failure is not a request failure")

	payload := decodeBody(t, rec)
	songs, ok := payload["songs"].([]interface{})
	require.True(t, ok)
	assert.Empty(t, songs)
}

func multipartImageRequest(t *testing.T, username string, withImage bool) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("username", username))
	if withImage {
		part, err := writer.CreateFormFile("image", "photo.jpg")
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/get_location_songs", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestGetLocationSongs(t *testing.T) {
	env := newTestEnv(t, &stubSongProvider{songs: testSongs})

	rec := httptest.NewRecorder()
	env.songs.GetLocationSongs(rec, multipartImageRequest(t, "bob", true))
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeBody(t, rec)
	assert.Equal(t, "Mountain", payload["location"])
	songs, ok := payload["songs"].([]interface{})
	require.True(t, ok)
	assert.Len(t, songs, 2)

	ctx := context.Background()
	user, err := env.store.Users.FindByUsername(ctx, "bob")
	require.NoError(t, err)
	prefs, err := env.store.Preferences.FindByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, prefs, 2)
	assert.Equal(t, "Mountain", prefs[0].MoodOrLocation)
}

func TestGetLocationSongsMissingImage(t *testing.T) {
	env := newTestEnv(t, &stubSongProvider{songs: testSongs})

	rec := httptest.NewRecorder()
	env.songs.GetLocationSongs(rec, multipartImageRequest(t, "bob", false))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetLocationSongsMissingUsername(t *testing.T) {
	env := newTestEnv(t, &stubSongProvider{songs: testSongs})

	rec := httptest.NewRecorder()
	env.songs.GetLocationSongs(rec, multipartImageRequest(t, "", true))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleChatWithKeyword(t *testing.T) {
	env := newTestEnv(t, &stubSongProvider{songs: testSongs})

	rec := postJSON(t, env.chat.HandleChat, "/chat", map[string]string{
		"username": "alice",
		"message":  "I feel happy today",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeBody(t, rec)
	assert.Equal(t, "Here are some Happy songs!", payload["response"])
	songs, ok := payload["songs"].([]interface{})
	require.True(t, ok)
	assert.Len(t, songs, 2)
}

func TestHandleChatNoKeyword(t *testing.T) {
	env := newTestEnv(t, &stubSongProvider{songs: testSongs})

	rec := postJSON(t, env.chat.HandleChat, "/chat", map[string]string{
		"username": "alice",
		"message":  "just saying hello",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeBody(t, rec)
	assert.Equal(t, services.DefaultReply, payload["response"])
	songs, ok := payload["songs"].([]interface{})
	require.True(t, ok)
	assert.Empty(t, songs)
}

func TestHandleChatMissingFields(t *testing.T) {
	env := newTestEnv(t, &stubSongProvider{songs: testSongs})

	rec := postJSON(t, env.chat.HandleChat, "/chat", map[string]string{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaveChat(t *testing.T) {
	env := newTestEnv(t, &stubSongProvider{songs: testSongs})

	rec := postJSON(t, env.chat.SaveChat, "/save_chat", map[string]string{
		"username": "alice",
		"sender":   "user",
		"message":  "I feel happy today",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", decodeBody(t, rec)["status"])

	// Exactly one history row, no keyword side effects.
	ctx := context.Background()
	user, err := env.store.Users.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	messages, err := env.store.History.FindByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, messages, 1)
	prefTotal, err := env.store.Preferences.CountByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, prefTotal)
}

func TestSaveChatMissingFields(t *testing.T) {
	env := newTestEnv(t, &stubSongProvider{songs: testSongs})

	rec := postJSON(t, env.chat.SaveChat, "/save_chat", map[string]string{
		"username": "alice",
		"message":  "hi",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaveChatInvalidSender(t *testing.T) {
	env := newTestEnv(t, &stubSongProvider{songs: testSongs})

	rec := postJSON(t, env.chat.SaveChat, "/save_chat", map[string]string{
		"username": "alice",
		"sender":   "system",
		"message":  "hi",
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decodeBody(t, rec), "error")
}

func TestGetHistory(t *testing.T) {
	env := newTestEnv(t, &stubSongProvider{songs: testSongs})

	postJSON(t, env.chat.SaveChat, "/save_chat", map[string]string{
		"username": "alice", "sender": "user", "message": "hello",
	})
	postJSON(t, env.chat.SaveChat, "/save_chat", map[string]string{
		"username": "alice", "sender": "bot", "message": "hi there",
	})

	req := httptest.NewRequest(http.MethodGet, "/chat_history?username=alice", nil)
	rec := httptest.NewRecorder()
	env.chat.GetHistory(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeBody(t, rec)
	messages, ok := payload["messages"].([]interface{})
	require.True(t, ok)
	require.Len(t, messages, 2)
	first := messages[0].(map[string]interface{})
	assert.Equal(t, "hello", first["message"])
}

func TestGetHistoryMissingUsername(t *testing.T) {
	env := newTestEnv(t, &stubSongProvider{songs: testSongs})

	req := httptest.NewRequest(http.MethodGet, "/chat_history", nil)
	rec := httptest.NewRecorder()
	env.chat.GetHistory(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPreferences(t *testing.T) {
	env := newTestEnv(t, &stubSongProvider{songs: testSongs})

	postJSON(t, env.songs.GetMoodSongs, "/get_mood_songs", map[string]string{
		"username": "alice", "mood": "Happy",
	})

	req := httptest.NewRequest(http.MethodGet, "/preferences?username=alice", nil)
	rec := httptest.NewRecorder()
	env.songs.GetPreferences(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeBody(t, rec)
	prefs, ok := payload["preferences"].([]interface{})
	require.True(t, ok)
	assert.Len(t, prefs, 2)
}
