package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wadjakorntonsri/minilink/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/minilink/pkg/core/domain"
)

func newTestRepo(t *testing.T, name string) *sqlite.SQLiteRepository {
	t.Helper()
	repo, err := sqlite.NewSQLiteRepository("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("Failed to init db: %v", err)
	}
	return repo
}

func TestClassifyDevice(t *testing.T) {
	tests := []struct {
		userAgent string
		want      string
	}{
		{"Mozilla/5.0 (iPhone; CPU iPhone OS 16_0) Mobile/15E148", "mobile"},
		{"Mozilla/5.0 (Linux; Android 13; SM-X700) Tablet Safari", "tablet"},
		{"Mozilla/5.0 (Linux; Android 13) Tablet Mobile", "mobile"}, // Mobile wins over Tablet
		{"Mozilla/5.0 (Windows NT 10.0; Win64; x64)", "desktop"},
		{"", "desktop"},
	}

	for _, tt := range tests {
		if got := classifyDevice(tt.userAgent); got != tt.want {
			t.Errorf("classifyDevice(%q) = %q, want %q", tt.userAgent, got, tt.want)
		}
	}
}

func TestCreateRequiresDestination(t *testing.T) {
	svc := NewLinkService(newTestRepo(t, "links_create_dest"), "http://localhost:8080")

	_, err := svc.Create(context.Background(), 1, domain.LinkInput{})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCreateRejectsPastExpiration(t *testing.T) {
	svc := NewLinkService(newTestRepo(t, "links_create_exp"), "http://localhost:8080")

	past := time.Now().Add(-time.Hour)
	_, err := svc.Create(context.Background(), 1, domain.LinkInput{
		DestinationURL: "https://example.com",
		LinkExpiration: true,
		ExpirationDate: &past,
	})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCreateLink(t *testing.T) {
	svc := NewLinkService(newTestRepo(t, "links_create_ok"), "http://localhost:8080")

	link, err := svc.Create(context.Background(), 1, domain.LinkInput{DestinationURL: "https://example.com"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(link.ShortCode) != 6 {
		t.Errorf("short code length = %d, want 6", len(link.ShortCode))
	}
	if link.ShortURL != "http://localhost:8080/"+link.ShortCode {
		t.Errorf("short url mismatch: %s", link.ShortURL)
	}
	if link.ClickCount != 0 {
		t.Errorf("new link click count = %d, want 0", link.ClickCount)
	}
}

func TestResolveTracksClicks(t *testing.T) {
	repo := newTestRepo(t, "links_resolve")
	svc := NewLinkService(repo, "http://localhost:8080")
	ctx := context.Background()

	link, err := svc.Create(ctx, 7, domain.LinkInput{DestinationURL: "https://example.com"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	dest, err := svc.Resolve(ctx, link.ShortCode, "Mozilla/5.0 Mobile")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if dest != "https://example.com" {
		t.Errorf("destination = %s", dest)
	}

	stored, err := repo.GetLinkByCode(ctx, link.ShortCode)
	if err != nil {
		t.Fatal(err)
	}
	if stored.ClickCount != 1 {
		t.Errorf("click count = %d, want 1", stored.ClickCount)
	}

	clicks, err := repo.CountUserClicks(ctx, 7)
	if err != nil {
		t.Fatal(err)
	}
	if clicks != 1 {
		t.Errorf("click events = %d, want 1", clicks)
	}

	devices, err := repo.ClicksByDevice(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(devices) != 1 || devices[0].DeviceType != "mobile" || devices[0].TotalClicks != 1 {
		t.Errorf("unexpected device breakdown: %+v", devices)
	}
}

func TestResolveExpiredLink(t *testing.T) {
	repo := newTestRepo(t, "links_resolve_expired")
	svc := NewLinkService(repo, "http://localhost:8080")
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	link := &domain.Link{
		UserID:         1,
		DestinationURL: "https://example.com",
		ShortCode:      "abc123",
		ShortURL:       "http://localhost:8080/abc123",
		LinkExpiration: true,
		ExpirationDate: &past,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if err := repo.CreateLink(ctx, link); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Resolve(ctx, "abc123", ""); !errors.Is(err, domain.ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}

	stored, err := repo.GetLinkByCode(ctx, "abc123")
	if err != nil {
		t.Fatal(err)
	}
	if stored.ClickCount != 0 {
		t.Errorf("expired redirect incremented counter: %d", stored.ClickCount)
	}
	clicks, err := repo.CountUserClicks(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if clicks != 0 {
		t.Errorf("expired redirect recorded a click event")
	}
}

func TestResolveUnknownCode(t *testing.T) {
	svc := NewLinkService(newTestRepo(t, "links_resolve_missing"), "http://localhost:8080")

	if _, err := svc.Resolve(context.Background(), "nosuch", ""); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEditRegeneratesShortCode(t *testing.T) {
	repo := newTestRepo(t, "links_edit")
	svc := NewLinkService(repo, "http://localhost:8080")
	ctx := context.Background()

	link, err := svc.Create(ctx, 1, domain.LinkInput{DestinationURL: "https://example.com"})
	if err != nil {
		t.Fatal(err)
	}
	oldCode := link.ShortCode

	updated, err := svc.Edit(ctx, 1, link.ID, domain.LinkInput{DestinationURL: "https://example.org"})
	if err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	if updated.ShortCode == oldCode {
		t.Error("edit did not regenerate the short code")
	}
	if updated.DestinationURL != "https://example.org" {
		t.Errorf("destination = %s", updated.DestinationURL)
	}

	// The old short link is permanently dead after an edit.
	if _, err := svc.Resolve(ctx, oldCode, ""); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("old code still resolves: %v", err)
	}
}

func TestEditReportsExpired(t *testing.T) {
	repo := newTestRepo(t, "links_edit_expired")
	svc := NewLinkService(repo, "http://localhost:8080")
	ctx := context.Background()

	link, err := svc.Create(ctx, 1, domain.LinkInput{DestinationURL: "https://example.com"})
	if err != nil {
		t.Fatal(err)
	}

	past := time.Now().Add(-time.Minute)
	_, err = svc.Edit(ctx, 1, link.ID, domain.LinkInput{
		DestinationURL: "https://example.com",
		LinkExpiration: true,
		ExpirationDate: &past,
	})
	if !errors.Is(err, domain.ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}

	// The update is persisted even though it was reported expired.
	stored, err := repo.GetUserLink(ctx, 1, link.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !stored.LinkExpiration || stored.ExpirationDate == nil {
		t.Error("expiration fields were not persisted")
	}
}

func TestEditWrongOwner(t *testing.T) {
	svc := NewLinkService(newTestRepo(t, "links_edit_owner"), "http://localhost:8080")
	ctx := context.Background()

	link, err := svc.Create(ctx, 1, domain.LinkInput{DestinationURL: "https://example.com"})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Edit(ctx, 2, link.ID, domain.LinkInput{}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign link, got %v", err)
	}
	if err := svc.Delete(ctx, 2, link.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign delete, got %v", err)
	}
}

func TestListPagination(t *testing.T) {
	svc := NewLinkService(newTestRepo(t, "links_pagination"), "http://localhost:8080")
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		if _, err := svc.Create(ctx, 1, domain.LinkInput{DestinationURL: "https://example.com"}); err != nil {
			t.Fatal(err)
		}
	}

	page, err := svc.List(ctx, 1, 2, 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(page.Links) != 5 {
		t.Errorf("page 2 length = %d, want 5", len(page.Links))
	}
	if page.TotalLinks != 15 {
		t.Errorf("totalLinks = %d, want 15", page.TotalLinks)
	}
	if page.TotalPages != 2 {
		t.Errorf("totalPages = %d, want 2", page.TotalPages)
	}

	// Another user sees nothing.
	other, err := svc.List(ctx, 2, 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if other.TotalLinks != 0 {
		t.Errorf("foreign user sees %d links", other.TotalLinks)
	}
}
