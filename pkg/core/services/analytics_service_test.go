package services

import (
	"context"
	"testing"
	"time"

	"github.com/wadjakorntonsri/minilink/pkg/core/domain"
)

// The per-link counters and the click-event log are maintained separately;
// the "overall" figure is the sum of both and diverges when they do.
func TestOverallTotalClicksDuality(t *testing.T) {
	repo := newTestRepo(t, "analytics_duality")
	linkSvc := NewLinkService(repo, "http://localhost:8080")
	svc := NewAnalyticsService(repo)
	ctx := context.Background()

	link, err := linkSvc.Create(ctx, 1, domain.LinkInput{DestinationURL: "https://example.com"})
	if err != nil {
		t.Fatal(err)
	}

	// One counted redirect plus one orphan counter bump.
	if _, err := linkSvc.Resolve(ctx, link.ShortCode, ""); err != nil {
		t.Fatal(err)
	}
	if err := repo.IncrementClickCount(ctx, link.ID); err != nil {
		t.Fatal(err)
	}

	total, err := svc.TotalClicks(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 {
		t.Errorf("TotalClicks = %d, want 2", total)
	}

	overall, err := svc.OverallTotalClicks(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if overall != 3 {
		t.Errorf("OverallTotalClicks = %d, want 3", overall)
	}
}

func TestClicksByDateAscending(t *testing.T) {
	repo := newTestRepo(t, "analytics_datewise")
	svc := NewAnalyticsService(repo)
	ctx := context.Background()

	days := []time.Time{
		time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC),
	}
	for _, d := range days {
		click := &domain.Click{LinkID: 1, UserID: 1, DeviceType: "desktop", CreatedAt: d}
		if err := repo.RecordClick(ctx, click); err != nil {
			t.Fatal(err)
		}
	}

	byDate, err := svc.ClicksByDate(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(byDate) != 2 {
		t.Fatalf("got %d buckets, want 2", len(byDate))
	}
	if byDate[0].Date != "2026-03-01" || byDate[0].TotalClicks != 2 {
		t.Errorf("first bucket = %+v", byDate[0])
	}
	if byDate[1].Date != "2026-03-03" || byDate[1].TotalClicks != 1 {
		t.Errorf("second bucket = %+v", byDate[1])
	}
}
