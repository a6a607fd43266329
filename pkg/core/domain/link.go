package domain

import "time"

// Link represents a shortened URL owned by a user
type Link struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"user_id"`
	DestinationURL string     `json:"destination_url"`
	ShortCode      string     `json:"short_code"`
	ShortURL       string     `json:"short_url"`
	Comments       string     `json:"comments,omitempty"`
	LinkExpiration bool       `json:"link_expiration"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	ClickCount     int64      `json:"click_count"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Expired reports whether the link's expiration has passed at t.
func (l *Link) Expired(t time.Time) bool {
	return l.LinkExpiration && l.ExpirationDate != nil && l.ExpirationDate.Before(t)
}

// LinkInput carries the writable fields for create/edit.
type LinkInput struct {
	DestinationURL string
	Comments       string
	LinkExpiration bool
	ExpirationDate *time.Time
}

// LinkPage is one page of a user's links.
type LinkPage struct {
	Links      []Link `json:"links"`
	TotalLinks int64  `json:"totalLinks"`
	TotalPages int64  `json:"totalPages"`
	Page       int    `json:"currentPage"`
	Limit      int    `json:"limit"`
}
