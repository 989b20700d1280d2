package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andescode/event-registration-api/internal/analytics"
	"github.com/andescode/event-registration-api/internal/repository"
)

const growthWindowDays = 7

type AnalyticsService struct {
	regs    RegistrationRepository
	catalog *CatalogService
}

func NewAnalyticsService(regs RegistrationRepository, catalog *CatalogService) *AnalyticsService {
	return &AnalyticsService{
		regs:    regs,
		catalog: catalog,
	}
}

// Snapshot recomputes the full dashboard for the active event. With no
// active event it returns an empty snapshot rather than an error so the
// console renders between events.
func (s *AnalyticsService) Snapshot(ctx context.Context) (analytics.Snapshot, error) {
	event, err := s.catalog.ActiveEvent(ctx)
	if err != nil {
		if errors.Is(err, ErrNoActiveEvent) {
			return analytics.Snapshot{}, nil
		}

		return analytics.Snapshot{}, fmt.Errorf("s.catalog.ActiveEvent -> %w", err)
	}

	regs, err := s.regs.List(ctx, repository.RegistrationFilter{EventID: event.ID})
	if err != nil {
		return analytics.Snapshot{}, fmt.Errorf("s.regs.List -> %w", err)
	}

	return analytics.Snapshot{
		Summary:  analytics.Summarize(regs, event.RevenueGoal),
		ByRegion: analytics.GroupByRegion(regs),
		ByRole:   analytics.GroupByRole(regs),
		Trend:    analytics.DailyTrend(regs),
		Growth:   analytics.GrowthRate(regs, time.Now(), growthWindowDays),
	}, nil
}

func (s *AnalyticsService) Summary(ctx context.Context) (analytics.Summary, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return analytics.Summary{}, err
	}

	return snap.Summary, nil
}

func (s *AnalyticsService) ByRegion(ctx context.Context) ([]analytics.GroupStat, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return snap.ByRegion, nil
}

func (s *AnalyticsService) ByRole(ctx context.Context) ([]analytics.GroupStat, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return snap.ByRole, nil
}

func (s *AnalyticsService) Trend(ctx context.Context) ([]analytics.TrendPoint, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return snap.Trend, nil
}

func (s *AnalyticsService) Growth(ctx context.Context) (analytics.Growth, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return analytics.Growth{}, err
	}

	return snap.Growth, nil
}
