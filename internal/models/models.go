package models

import "time"

type User struct {
	ID       int64
	Username string
	PassHash []byte
	// ResetTokenHash and ResetTokenExpiresAt are set and cleared together.
	ResetTokenHash      *string
	ResetTokenExpiresAt *time.Time
	CreatedAt           time.Time
}

// HasPendingReset reports whether a reset token is outstanding and unexpired at now.
func (u *User) HasPendingReset(now time.Time) bool {
	return u.ResetTokenHash != nil && u.ResetTokenExpiresAt != nil && u.ResetTokenExpiresAt.After(now)
}

type Book struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	PublishedYear *int    `json:"publishedYear,omitempty"`
	Genre         *string `json:"genre,omitempty"`
}

// Message is the notification envelope placed on the mail queue.
type Message struct {
	Email   string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Purpose string `json:"purpose"`
}
