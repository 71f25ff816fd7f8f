// File: internal/domain/user.go
package domain

import (
	"errors"
	"strings"
	"time"
)

// User identifies who a preference or chat message belongs to. Users are
// created on first reference by any handler and never updated or deleted.
type User struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) IsValid() error {
	if strings.TrimSpace(u.Username) == "" {
		return errors.New("username is required")
	}
	return nil
}
