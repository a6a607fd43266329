package domain

import "time"

// Click is a single recorded visit to a short link. Append-only.
type Click struct {
	ID         int64     `json:"id"`
	LinkID     int64     `json:"link_id"`
	UserID     int64     `json:"user_id"`
	DeviceType string    `json:"device_type"`
	CreatedAt  time.Time `json:"created_at"`
}

type DeviceClicks struct {
	DeviceType  string `json:"deviceType"`
	TotalClicks int64  `json:"totalClicks"`
}

type DateClicks struct {
	Date        string `json:"date"` // YYYY-MM-DD
	TotalClicks int64  `json:"totalClicks"`
}
