package domain

import "time"

// User is a registered account. SessionEpoch is a unix-millisecond watermark:
// tokens whose embedded epoch is older than it are rejected.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Mobile       string    `json:"mobile"`
	PasswordHash string    `json:"-"`
	SessionEpoch int64     `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// TokenClaims is the decoded content of a session token.
type TokenClaims struct {
	UserID   int64
	Epoch    int64
	IssuedAt time.Time
}

// AuthResult is returned by register/login.
type AuthResult struct {
	Token string `json:"token"`
	Name  string `json:"name"`
}
