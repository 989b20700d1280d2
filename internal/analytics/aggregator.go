// Package analytics derives reporting figures from registration records.
// Everything here is pure: aggregates are recomputed from the stored rows
// on every call, there are no running counters to drift out of sync.
package analytics

import (
	"sort"
	"time"

	"github.com/andescode/event-registration-api/internal/domain"
)

// UnassignedLabel groups registrations whose region was deleted after they
// were created. Orphaned references are tolerated by design.
const UnassignedLabel = "unassigned"

type Summary struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`

	// Collected only ever counts approved registrations.
	Collected float64 `json:"collected"`
	// Projected is the at-risk revenue still pending validation.
	Projected float64 `json:"projected"`
	// PaidTotal sums administrator-entered payments over approved records.
	PaidTotal float64 `json:"paid_total"`

	ApprovalRate    float64 `json:"approval_rate"`
	LodgingApproved int     `json:"lodging_approved"`

	RevenueGoal   float64 `json:"revenue_goal"`
	GoalRemaining float64 `json:"goal_remaining"`
	GoalPercent   float64 `json:"goal_percent"`
}

type GroupStat struct {
	Label     string  `json:"label"`
	Count     int     `json:"count"`
	Collected float64 `json:"collected"`
	Projected float64 `json:"projected"`
	// Compliance is collected over collected+projected, as a percentage.
	Compliance float64 `json:"compliance"`
}

type TrendPoint struct {
	Day     time.Time `json:"day"`
	Count   int       `json:"count"`
	Revenue float64   `json:"revenue"`
}

type Growth struct {
	Recent   int     `json:"recent"`
	Previous int     `json:"previous"`
	Percent  float64 `json:"percent"`
}

// Summarize computes the headline figures for one event's registrations.
func Summarize(regs []domain.Registration, revenueGoal float64) Summary {
	s := Summary{Total: len(regs), RevenueGoal: revenueGoal}

	for _, r := range regs {
		switch r.Status {
		case domain.StatusApproved:
			s.Approved++
			s.Collected += r.AgreedPrice
			if r.AmountPaid != nil {
				s.PaidTotal += *r.AmountPaid
			}
			if r.WantsLodging {
				s.LodgingApproved++
			}
		case domain.StatusPending:
			s.Pending++
			s.Projected += r.AgreedPrice
		case domain.StatusRejected:
			s.Rejected++
		}
	}

	if s.Total > 0 {
		s.ApprovalRate = float64(s.Approved) / float64(s.Total) * 100
	}
	if revenueGoal > 0 {
		s.GoalRemaining = revenueGoal - s.Collected
		if s.GoalRemaining < 0 {
			s.GoalRemaining = 0
		}
		s.GoalPercent = s.Collected / revenueGoal * 100
	}

	return s
}

// GroupByRegion buckets registrations by region name, sorted by collected
// revenue descending for leaderboard displays.
func GroupByRegion(regs []domain.Registration) []GroupStat {
	return groupBy(regs, func(r domain.Registration) string {
		if r.RegionName == "" {
			return UnassignedLabel
		}
		return r.RegionName
	})
}

// GroupByRole buckets registrations by role key, sorted by collected
// revenue descending.
func GroupByRole(regs []domain.Registration) []GroupStat {
	return groupBy(regs, func(r domain.Registration) string {
		if r.RoleKey == "" {
			return UnassignedLabel
		}
		return r.RoleKey
	})
}

func groupBy(regs []domain.Registration, key func(domain.Registration) string) []GroupStat {
	buckets := make(map[string]*GroupStat)
	for _, r := range regs {
		k := key(r)
		g, ok := buckets[k]
		if !ok {
			g = &GroupStat{Label: k}
			buckets[k] = g
		}

		g.Count++
		switch r.Status {
		case domain.StatusApproved:
			g.Collected += r.AgreedPrice
		case domain.StatusPending:
			g.Projected += r.AgreedPrice
		}
	}

	stats := make([]GroupStat, 0, len(buckets))
	for _, g := range buckets {
		if total := g.Collected + g.Projected; total > 0 {
			g.Compliance = g.Collected / total * 100
		}
		stats = append(stats, *g)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Collected != stats[j].Collected {
			return stats[i].Collected > stats[j].Collected
		}
		return stats[i].Label < stats[j].Label
	})

	return stats
}

// DailyTrend buckets registrations by calendar day of creation, in
// chronological order. Days without registrations are omitted.
func DailyTrend(regs []domain.Registration) []TrendPoint {
	buckets := make(map[time.Time]*TrendPoint)
	for _, r := range regs {
		day := r.CreatedAt.Truncate(24 * time.Hour)
		p, ok := buckets[day]
		if !ok {
			p = &TrendPoint{Day: day}
			buckets[day] = p
		}
		p.Count++
		p.Revenue += r.AgreedPrice
	}

	points := make([]TrendPoint, 0, len(buckets))
	for _, p := range buckets {
		points = append(points, *p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Day.Before(points[j].Day) })

	return points
}

// GrowthRate compares registration counts in the most recent windowDays
// against the immediately preceding window of equal length. An empty
// previous window reports +100% when the recent one is non-empty, 0% when
// both are empty.
func GrowthRate(regs []domain.Registration, now time.Time, windowDays int) Growth {
	if windowDays <= 0 {
		windowDays = 7
	}

	recentStart := now.AddDate(0, 0, -windowDays)
	previousStart := now.AddDate(0, 0, -2*windowDays)

	var g Growth
	for _, r := range regs {
		switch {
		case !r.CreatedAt.Before(recentStart) && !r.CreatedAt.After(now):
			g.Recent++
		case !r.CreatedAt.Before(previousStart) && r.CreatedAt.Before(recentStart):
			g.Previous++
		}
	}

	switch {
	case g.Previous == 0 && g.Recent == 0:
		g.Percent = 0
	case g.Previous == 0:
		g.Percent = 100
	default:
		g.Percent = float64(g.Recent-g.Previous) / float64(g.Previous) * 100
	}

	return g
}
