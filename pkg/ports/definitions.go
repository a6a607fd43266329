package ports

import (
	"context"

	"github.com/wadjakorntonsri/minilink/pkg/core/domain"
)

// UserRepository defines storage operations for user accounts
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	// DeleteUserCascade removes the user and all of their links and clicks
	// inside a single transaction.
	DeleteUserCascade(ctx context.Context, id int64) error
}

// LinkRepository defines storage operations for links
type LinkRepository interface {
	CreateLink(ctx context.Context, link *domain.Link) error
	GetLinkByCode(ctx context.Context, code string) (*domain.Link, error)
	GetUserLink(ctx context.Context, userID, id int64) (*domain.Link, error)
	UpdateLink(ctx context.Context, link *domain.Link) error
	DeleteUserLink(ctx context.Context, userID, id int64) (bool, error)
	ListUserLinks(ctx context.Context, userID int64, limit, offset int) ([]domain.Link, error)
	CountUserLinks(ctx context.Context, userID int64) (int64, error)
	IncrementClickCount(ctx context.Context, id int64) error
	SumUserClickCounts(ctx context.Context, userID int64) (int64, error)
	Dump(ctx context.Context) ([]domain.Link, error) // For migration
}

// ClickRepository defines storage operations for the click log
type ClickRepository interface {
	RecordClick(ctx context.Context, click *domain.Click) error
	CountUserClicks(ctx context.Context, userID int64) (int64, error)
	ClicksByDevice(ctx context.Context) ([]domain.DeviceClicks, error)
	ClicksByDate(ctx context.Context) ([]domain.DateClicks, error)
}

// Repository is the full storage surface implemented by the sqlite adapter
type Repository interface {
	UserRepository
	LinkRepository
	ClickRepository
}

// AuthTokens issues and verifies session tokens
type AuthTokens interface {
	Issue(userID, sessionEpoch int64) (string, error)
	Verify(token string) (*domain.TokenClaims, error)
}

// UserService defines account business logic
type UserService interface {
	Register(ctx context.Context, name, email, mobile, password string) (*domain.AuthResult, error)
	Login(ctx context.Context, email, password string) (*domain.AuthResult, error)
	// Update returns whether the email changed, which invalidates outstanding sessions.
	Update(ctx context.Context, userID int64, name, email, mobile string) (bool, error)
	GetName(ctx context.Context, userID int64) (string, error)
	Delete(ctx context.Context, userID int64) error
}

// LinkService defines link business logic
type LinkService interface {
	Create(ctx context.Context, userID int64, in domain.LinkInput) (*domain.Link, error)
	Edit(ctx context.Context, userID, linkID int64, in domain.LinkInput) (*domain.Link, error)
	Delete(ctx context.Context, userID, linkID int64) error
	List(ctx context.Context, userID int64, page, limit int) (*domain.LinkPage, error)
	GetByID(ctx context.Context, userID, linkID int64) (*domain.Link, error)
	// Resolve returns the destination URL for a redirect, incrementing the
	// click counter and recording a click event on the way.
	Resolve(ctx context.Context, shortCode, userAgent string) (string, error)
}

// AnalyticsService defines aggregation queries over links and clicks
type AnalyticsService interface {
	TotalClicks(ctx context.Context, userID int64) (int64, error)
	OverallTotalClicks(ctx context.Context, userID int64) (int64, error)
	ClicksByDevice(ctx context.Context) ([]domain.DeviceClicks, error)
	ClicksByDate(ctx context.Context) ([]domain.DateClicks, error)
}
