package services

import (
	"context"

	"github.com/wadjakorntonsri/minilink/pkg/core/domain"
	"github.com/wadjakorntonsri/minilink/pkg/ports"
)

type AnalyticsService struct {
	repo ports.Repository
}

func NewAnalyticsService(repo ports.Repository) *AnalyticsService {
	return &AnalyticsService{repo: repo}
}

// TotalClicks sums the click counters on the user's links.
func (s *AnalyticsService) TotalClicks(ctx context.Context, userID int64) (int64, error) {
	return s.repo.SumUserClickCounts(ctx, userID)
}

// OverallTotalClicks adds the user's raw click-event rows to the counter sum.
// The counters and the event log are maintained independently, so the two
// tallies can diverge; the combined figure is kept for payload compatibility.
func (s *AnalyticsService) OverallTotalClicks(ctx context.Context, userID int64) (int64, error) {
	fromLinks, err := s.repo.SumUserClickCounts(ctx, userID)
	if err != nil {
		return 0, err
	}
	fromClicks, err := s.repo.CountUserClicks(ctx, userID)
	if err != nil {
		return 0, err
	}
	return fromLinks + fromClicks, nil
}

// ClicksByDevice aggregates over the whole click log, not just the caller's
// rows.
func (s *AnalyticsService) ClicksByDevice(ctx context.Context) ([]domain.DeviceClicks, error) {
	return s.repo.ClicksByDevice(ctx)
}

// ClicksByDate aggregates over the whole click log in ascending date order.
func (s *AnalyticsService) ClicksByDate(ctx context.Context) ([]domain.DateClicks, error) {
	return s.repo.ClicksByDate(ctx)
}

var _ ports.AnalyticsService = (*AnalyticsService)(nil)
