package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bloodbridge/internal/cache"
	"github.com/spec-kit/bloodbridge/internal/domain"
	"github.com/spec-kit/bloodbridge/internal/repository"
	"github.com/spec-kit/bloodbridge/pkg/util"
)

const (
	cacheKeyStatistics = "stats:donations"
	cacheKeyAnalytics  = "stats:analytics"
	cacheKeyInventory  = "stats:inventory_summary"
)

// DonationService serves the public, unauthenticated donation surface.
type DonationService struct {
	donations repository.DonationRepository
	requests  repository.BloodRequestRepository
	inventory repository.InventoryRepository
	reports   repository.ReportRepository
	stats     *cache.StatsCache
}

// NewDonationService builds the service.
func NewDonationService(
	donations repository.DonationRepository,
	requests repository.BloodRequestRepository,
	inventory repository.InventoryRepository,
	reports repository.ReportRepository,
	stats *cache.StatsCache,
) *DonationService {
	return &DonationService{
		donations: donations,
		requests:  requests,
		inventory: inventory,
		reports:   reports,
		stats:     stats,
	}
}

// All lists every donation record.
func (s *DonationService) All(ctx context.Context) ([]domain.DonationRecord, error) {
	return s.donations.ListAll(ctx)
}

// Statistics returns the public donation aggregates, cached.
func (s *DonationService) Statistics(ctx context.Context) (*domain.DonationStatistics, error) {
	var cached domain.DonationStatistics
	if s.stats.Get(ctx, cacheKeyStatistics, &cached) {
		return &cached, nil
	}

	stats, err := s.reports.PublicStatistics(ctx)
	if err != nil {
		return nil, err
	}
	s.stats.Set(ctx, cacheKeyStatistics, stats)
	return stats, nil
}

// BloodRequests lists open requests from verified hospitals.
func (s *DonationService) BloodRequests(ctx context.Context, filter domain.RequestFilter) ([]domain.OpenRequest, error) {
	return s.requests.ListOpen(ctx, filter)
}

// EmergencyRequests lists high-urgency requests from the last 24 hours.
func (s *DonationService) EmergencyRequests(ctx context.Context) ([]domain.OpenRequest, error) {
	return s.requests.ListEmergency(ctx)
}

// ByID fetches a single donation record.
func (s *DonationService) ByID(ctx context.Context, id int64) (*domain.DonationRecord, error) {
	record, err := s.donations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("Donation")
		}
		return nil, err
	}
	return record, nil
}

// Search filters donation records by donor, hospital, blood group, date
// range and status.
func (s *DonationService) Search(ctx context.Context, filter domain.DonationFilter) ([]domain.DonationRecord, error) {
	return s.donations.Search(ctx, filter)
}

// InventorySummary returns system-wide stock per blood group, cached.
func (s *DonationService) InventorySummary(ctx context.Context) ([]domain.InventorySummary, error) {
	var cached []domain.InventorySummary
	if s.stats.Get(ctx, cacheKeyInventory, &cached) {
		return cached, nil
	}

	summary, err := s.inventory.Summary(ctx)
	if err != nil {
		return nil, err
	}
	s.stats.Set(ctx, cacheKeyInventory, summary)
	return summary, nil
}

// Analytics returns the public behavioral aggregates, cached.
func (s *DonationService) Analytics(ctx context.Context) (*domain.DonationAnalytics, error) {
	var cached domain.DonationAnalytics
	if s.stats.Get(ctx, cacheKeyAnalytics, &cached) {
		return &cached, nil
	}

	analytics, err := s.reports.PublicAnalytics(ctx)
	if err != nil {
		return nil, err
	}
	s.stats.Set(ctx, cacheKeyAnalytics, analytics)
	return analytics, nil
}
