// File: internal/domain/chat_message.go
package domain

import "time"

// Chat message senders.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// ChatMessage is one line of a user's conversation with the bot. Append-only,
// ordered by CreatedAt; the timestamp is assigned server-side on insert.
type ChatMessage struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Sender    string    `json:"sender" gorm:"not null"` // "user" or "bot"
	Message   string    `json:"message" gorm:"not null"`
	CreatedAt time.Time `json:"timestamp"`
}

// ValidSender reports whether s is one of the two allowed sender values.
func ValidSender(s string) bool {
	return s == SenderUser || s == SenderBot
}
