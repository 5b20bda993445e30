package services

import (
	"context"
	"time"

	"PalmCare/cache"
	"PalmCare/models"
	"PalmCare/repositories"
	"PalmCare/utils"

	"github.com/rs/zerolog"
)

const dashboardRecentItems = 5

type DashboardService struct {
	repos    *repositories.Repositories
	queue    *QueueService
	cache    *cache.Cache
	cacheTTL time.Duration
	log      zerolog.Logger
	now      func() time.Time
}

func NewDashboardService(repos *repositories.Repositories, queue *QueueService, cache *cache.Cache, cacheTTL time.Duration, log zerolog.Logger) *DashboardService {
	return &DashboardService{repos: repos, queue: queue, cache: cache, cacheTTL: cacheTTL, log: log, now: time.Now}
}

// Summary returns the dashboard aggregate, from the cache when possible.
func (s *DashboardService) Summary(ctx context.Context) models.DashboardSummary {
	var summary models.DashboardSummary
	found, err := s.cache.GetJSON(ctx, cache.DashboardKey, &summary)
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to read dashboard cache")
	}
	if found {
		return summary
	}

	summary = s.compute(ctx)
	if err := s.cache.SetJSON(ctx, cache.DashboardKey, summary, s.cacheTTL); err != nil {
		s.log.Warn().Err(err).Msg("Failed to cache dashboard")
	}
	return summary
}

func (s *DashboardService) compute(ctx context.Context) models.DashboardSummary {
	now := s.now()
	summary := models.DashboardSummary{
		TotalPatients:       s.repos.Patients.Count(ctx),
		Queue:               s.queue.Stats(ctx),
		UnreadNotifications: s.repos.Notifications.CountUnread(ctx),
	}
	summary.ActiveCases = summary.Queue.Active

	for _, c := range s.repos.Cases.List(ctx) {
		if c.Stage == models.StageDischarged && sameDay(c.UpdatedAt, now) {
			summary.DischargedToday++
		}
	}
	for _, o := range s.repos.LabOrders.List(ctx) {
		if o.Status != models.StatusCompleted {
			summary.PendingLabOrders++
		}
	}
	for _, p := range s.repos.Prescriptions.List(ctx) {
		if p.Status != models.StatusDispensed {
			summary.PendingPrescription++
		}
	}
	for _, item := range s.repos.Inventory.List(ctx) {
		switch item.StockStatus() {
		case models.StockLow:
			summary.LowStockItems++
		case models.StockCritical:
			summary.CriticalStockItems++
		}
	}
	for _, inv := range s.repos.Billing.ListInvoices(ctx) {
		if inv.Outstanding() {
			summary.OutstandingBalance += inv.PatientResponsibility
		}
	}
	summary.OutstandingBalance = utils.RoundCurrency(summary.OutstandingBalance)

	payments := s.repos.Billing.ListPayments(ctx)
	for _, p := range payments {
		if sameDay(p.PaidAt, now) {
			summary.RevenueToday += p.Amount
		}
	}
	summary.RevenueToday = utils.RoundCurrency(summary.RevenueToday)
	summary.RecentPayments = head(payments, dashboardRecentItems)
	summary.RecentNotifications = head(s.repos.Notifications.List(ctx), dashboardRecentItems)
	return summary
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
