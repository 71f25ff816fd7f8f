// File: internal/domain/preference.go
package domain

import "time"

// Preference links a user to a song that was recommended for a given mood or
// location. Rows are append-only: one per recommended song, written at
// recommendation time.
type Preference struct {
	ID             uint      `json:"id" gorm:"primarykey"`
	UserID         uint      `json:"user_id" gorm:"not null;index"`
	MoodOrLocation string    `json:"mood_or_location" gorm:"column:mood_or_location"`
	SongTitle      string    `json:"song_title"`
	Artist         string    `json:"artist"`
	CreatedAt      time.Time `json:"created_at"`
}
