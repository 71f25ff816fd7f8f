// File: internal/handlers/song_handlers.go
package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/tunegen/tunegen/internal/services"
)

// maxImageSize caps the multipart upload for location requests.
const maxImageSize = 10 << 20 // 10 MB

// SongHandler serves the mood and location recommendation endpoints.
type SongHandler struct {
	Recommendations *services.RecommendationService
}

func NewSongHandler(rs *services.RecommendationService) *SongHandler {
	return &SongHandler{Recommendations: rs}
}

// GetMoodSongs handles POST /get_mood_songs.
func (h *SongHandler) GetMoodSongs(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Mood     string `json:"mood"`
		Genre    string `json:"genre"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Mood) == "" {
		writeError(w, "username and mood are required", http.StatusBadRequest)
		return
	}

	songs, err := h.Recommendations.ByMood(r.Context(), req.Username, req.Mood, req.Genre)
	if err != nil {
		log.Printf("[SongHandler] Error in GetMoodSongs: %v", err)
		writeError(w, "Failed to fetch songs", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"songs": songs})
}

// GetLocationSongs handles POST /get_location_songs (multipart form with an
// image file).
func (h *SongHandler) GetLocationSongs(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		writeError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	if username == "" {
		writeError(w, "username is required", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		writeError(w, "image is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxImageSize))
	if err != nil {
		writeError(w, "Failed to read image", http.StatusBadRequest)
		return
	}

	songs, location, err := h.Recommendations.ByLocation(r.Context(), username, image)
	if err != nil {
		log.Printf("[SongHandler] Error in GetLocationSongs: %v", err)
		writeError(w, "Failed to fetch location songs", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"songs":    songs,
		"location": location,
	})
}

// GetPreferences handles GET /preferences?username=.
func (h *SongHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.URL.Query().Get("username"))
	if username == "" {
		writeError(w, "username is required", http.StatusBadRequest)
		return
	}

	prefs, err := h.Recommendations.Preferences(r.Context(), username)
	if err != nil {
		log.Printf("[SongHandler] Error in GetPreferences: %v", err)
		writeError(w, "Failed to fetch preferences", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"preferences": prefs})
}
