// File: internal/handlers/chat_handler.go
package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/tunegen/tunegen/internal/services"
)

type ChatHandler struct {
	ChatService *services.ChatService
}

func NewChatHandler(cs *services.ChatService) *ChatHandler {
	return &ChatHandler{ChatService: cs}
}

// HandleChat handles POST /chat: record the message, run the keyword scan,
// and answer with the bot reply plus any fetched songs.
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Message  string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Message) == "" {
		writeError(w, "username and message are required", http.StatusBadRequest)
		return
	}

	reply, songs, err := h.ChatService.HandleMessage(r.Context(), req.Username, req.Message)
	if err != nil {
		log.Printf("[ChatHandler] Error in HandleChat: %v", err)
		writeError(w, "Failed to process chat", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"response": reply,
		"songs":    songs,
	})
}

// SaveChat handles POST /save_chat: a pure history append with no external
// calls.
func (h *ChatHandler) SaveChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Sender   string `json:"sender"`
		Message  string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Sender == "" || strings.TrimSpace(req.Message) == "" {
		writeError(w, "username, sender and message are required", http.StatusBadRequest)
		return
	}

	if err := h.ChatService.Save(r.Context(), req.Username, req.Sender, req.Message); err != nil {
		log.Printf("[ChatHandler] Error in SaveChat: %v", err)
		writeError(w, "Failed to save chat", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// GetHistory handles GET /chat_history?username=, oldest message first.
func (h *ChatHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.URL.Query().Get("username"))
	if username == "" {
		writeError(w, "username is required", http.StatusBadRequest)
		return
	}

	messages, err := h.ChatService.History(r.Context(), username)
	if err != nil {
		log.Printf("[ChatHandler] Error in GetHistory: %v", err)
		writeError(w, "Failed to fetch chat history", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"messages": messages})
}

// writeJSON is a helper for sending JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError is a helper for sending JSON error responses.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}
