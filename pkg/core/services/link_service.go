package services

import (
	"context"
	"crypto/rand"
	"math/big"
	"strings"
	"time"

	"github.com/wadjakorntonsri/minilink/pkg/core/domain"
	"github.com/wadjakorntonsri/minilink/pkg/ports"
)

type LinkService struct {
	repo    ports.Repository
	baseURL string
}

func NewLinkService(repo ports.Repository, baseURL string) *LinkService {
	return &LinkService{repo: repo, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *LinkService) Create(ctx context.Context, userID int64, in domain.LinkInput) (*domain.Link, error) {
	if in.DestinationURL == "" {
		return nil, domain.Validation("Destination URL is mandatory.")
	}
	if in.LinkExpiration && in.ExpirationDate != nil && !in.ExpirationDate.After(time.Now()) {
		return nil, domain.Validation("Expiration date must be in the future.")
	}

	code, err := generateShortCode(6)
	if err != nil {
		return nil, err
	}

	link := &domain.Link{
		UserID:         userID,
		DestinationURL: in.DestinationURL,
		ShortCode:      code,
		ShortURL:       s.baseURL + "/" + code,
		Comments:       in.Comments,
		LinkExpiration: in.LinkExpiration,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if in.LinkExpiration {
		link.ExpirationDate = in.ExpirationDate
	}

	if err := s.repo.CreateLink(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

// Edit regenerates the short code on every call, so previously issued short
// URLs for the link stop resolving once it is edited.
func (s *LinkService) Edit(ctx context.Context, userID, linkID int64, in domain.LinkInput) (*domain.Link, error) {
	link, err := s.repo.GetUserLink(ctx, userID, linkID)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, domain.ErrNotFound
	}

	if in.DestinationURL != "" {
		link.DestinationURL = in.DestinationURL
	}
	if in.Comments != "" {
		link.Comments = in.Comments
	}
	link.LinkExpiration = in.LinkExpiration
	if in.LinkExpiration {
		link.ExpirationDate = in.ExpirationDate
	} else {
		link.ExpirationDate = nil
	}

	code, err := generateShortCode(6)
	if err != nil {
		return nil, err
	}
	link.ShortCode = code
	link.ShortURL = s.baseURL + "/" + code
	link.UpdatedAt = time.Now()

	if err := s.repo.UpdateLink(ctx, link); err != nil {
		return nil, err
	}

	// The update is persisted either way; an already-past expiration is
	// reported so the caller sees the link as dead.
	if link.Expired(time.Now()) {
		return nil, domain.ErrExpired
	}

	return link, nil
}

func (s *LinkService) Delete(ctx context.Context, userID, linkID int64) error {
	deleted, err := s.repo.DeleteUserLink(ctx, userID, linkID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

func (s *LinkService) List(ctx context.Context, userID int64, page, limit int) (*domain.LinkPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	links, err := s.repo.ListUserLinks(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.CountUserLinks(ctx, userID)
	if err != nil {
		return nil, err
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)

	return &domain.LinkPage{
		Links:      links,
		TotalLinks: total,
		TotalPages: totalPages,
		Page:       page,
		Limit:      limit,
	}, nil
}

func (s *LinkService) GetByID(ctx context.Context, userID, linkID int64) (*domain.Link, error) {
	link, err := s.repo.GetUserLink(ctx, userID, linkID)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, domain.ErrNotFound
	}
	return link, nil
}

// Resolve looks up a short code for redirection. On success it bumps the
// link's click counter and appends a click event. The two writes are
// independent; they are not wrapped in a transaction, so the counter and the
// event log can diverge under failure or concurrent redirects.
func (s *LinkService) Resolve(ctx context.Context, shortCode, userAgent string) (string, error) {
	link, err := s.repo.GetLinkByCode(ctx, shortCode)
	if err != nil {
		return "", err
	}
	if link == nil {
		return "", domain.ErrNotFound
	}

	if link.Expired(time.Now()) {
		return "", domain.ErrExpired
	}

	if err := s.repo.IncrementClickCount(ctx, link.ID); err != nil {
		return "", err
	}

	click := &domain.Click{
		LinkID:     link.ID,
		UserID:     link.UserID,
		DeviceType: classifyDevice(userAgent),
		CreatedAt:  time.Now(),
	}
	if err := s.repo.RecordClick(ctx, click); err != nil {
		return "", err
	}

	return link.DestinationURL, nil
}

// classifyDevice buckets a user agent; "Mobile" is checked before "Tablet".
func classifyDevice(userAgent string) string {
	switch {
	case strings.Contains(userAgent, "Mobile"):
		return "mobile"
	case strings.Contains(userAgent, "Tablet"):
		return "tablet"
	default:
		return "desktop"
	}
}

const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func generateShortCode(length int) (string, error) {
	b := make([]byte, length)
	for i := range b {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		b[i] = charset[num.Int64()]
	}
	return string(b), nil
}

var _ ports.LinkService = (*LinkService)(nil)
