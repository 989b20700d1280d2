package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/andescode/event-registration-api/internal/domain"
)

func reg(region, role string, status domain.RegistrationStatus, price float64, createdAt time.Time) domain.Registration {
	return domain.Registration{
		RegionName:  region,
		RoleKey:     role,
		Status:      status,
		AgreedPrice: price,
		CreatedAt:   createdAt,
	}
}

func TestSummarize(t *testing.T) {
	now := time.Now()
	paid := 90000.0
	regs := []domain.Registration{
		reg("Bogotá", "laico", domain.StatusApproved, 100000, now),
		reg("Cali", "laico", domain.StatusApproved, 50000, now),
		reg("Bogotá", "obispo", domain.StatusPending, 70000, now),
		reg("Cali", "laico", domain.StatusRejected, 100000, now),
	}
	regs[0].AmountPaid = &paid
	regs[0].WantsLodging = true

	s := Summarize(regs, 300000)

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Approved)
	assert.Equal(t, 1, s.Pending)
	assert.Equal(t, 1, s.Rejected)
	assert.Equal(t, 150000.0, s.Collected)
	assert.Equal(t, 70000.0, s.Projected)
	assert.Equal(t, 90000.0, s.PaidTotal)
	assert.Equal(t, 1, s.LodgingApproved)
	assert.Equal(t, 50.0, s.ApprovalRate)
	assert.Equal(t, 150000.0, s.GoalRemaining)
	assert.Equal(t, 50.0, s.GoalPercent)
}

func TestSummarizeStatusFlipMovesRevenue(t *testing.T) {
	now := time.Now()
	regs := []domain.Registration{
		reg("Bogotá", "laico", domain.StatusApproved, 100000, now),
		reg("Cali", "laico", domain.StatusApproved, 50000, now),
	}

	before := Summarize(regs, 0)
	assert.Equal(t, 150000.0, before.Collected)

	// Rejecting a record must decrease the aggregate by exactly its price.
	regs[1].Status = domain.StatusRejected
	after := Summarize(regs, 0)
	assert.Equal(t, 100000.0, after.Collected)

	regs[1].Status = domain.StatusApproved
	restored := Summarize(regs, 0)
	assert.Equal(t, before.Collected, restored.Collected)
}

func TestGroupByRegion(t *testing.T) {
	now := time.Now()
	regs := []domain.Registration{
		reg("Bogotá", "laico", domain.StatusApproved, 100000, now),
		reg("Bogotá", "laico", domain.StatusPending, 100000, now),
		reg("Cali", "laico", domain.StatusApproved, 250000, now),
		reg("", "laico", domain.StatusPending, 40000, now),
	}

	stats := GroupByRegion(regs)

	assert.Len(t, stats, 3)
	// Sorted by collected revenue descending.
	assert.Equal(t, "Cali", stats[0].Label)
	assert.Equal(t, "Bogotá", stats[1].Label)
	assert.Equal(t, UnassignedLabel, stats[2].Label)

	assert.Equal(t, 2, stats[1].Count)
	assert.Equal(t, 100000.0, stats[1].Collected)
	assert.Equal(t, 100000.0, stats[1].Projected)
	assert.Equal(t, 50.0, stats[1].Compliance)
}

func TestDailyTrendIsChronological(t *testing.T) {
	base := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	regs := []domain.Registration{
		reg("Bogotá", "laico", domain.StatusPending, 10, base.AddDate(0, 0, 2)),
		reg("Bogotá", "laico", domain.StatusPending, 20, base),
		reg("Bogotá", "laico", domain.StatusPending, 30, base.AddDate(0, 0, 1)),
		reg("Bogotá", "laico", domain.StatusPending, 40, base.Add(2*time.Hour)),
	}

	points := DailyTrend(regs)

	assert.Len(t, points, 3)
	assert.True(t, points[0].Day.Before(points[1].Day))
	assert.True(t, points[1].Day.Before(points[2].Day))
	assert.Equal(t, 2, points[0].Count)
	assert.Equal(t, 60.0, points[0].Revenue)
}

func TestGrowthRate(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

	var regs []domain.Registration
	// 10 registrations in the previous window (days 8-14 back).
	for i := 0; i < 10; i++ {
		regs = append(regs, reg("Bogotá", "laico", domain.StatusPending, 0, now.AddDate(0, 0, -10)))
	}
	// 5 in the most recent window.
	for i := 0; i < 5; i++ {
		regs = append(regs, reg("Bogotá", "laico", domain.StatusPending, 0, now.AddDate(0, 0, -2)))
	}

	g := GrowthRate(regs, now, 7)
	assert.Equal(t, 5, g.Recent)
	assert.Equal(t, 10, g.Previous)
	assert.Equal(t, -50.0, g.Percent)
}

func TestGrowthRateEmptyPreviousWindow(t *testing.T) {
	now := time.Now()

	g := GrowthRate([]domain.Registration{
		reg("Bogotá", "laico", domain.StatusPending, 0, now.AddDate(0, 0, -1)),
	}, now, 7)
	assert.Equal(t, 100.0, g.Percent)

	g = GrowthRate(nil, now, 7)
	assert.Equal(t, 0.0, g.Percent)
}
