package v1

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/andescode/event-registration-api/internal/analytics"
	"github.com/andescode/event-registration-api/internal/api/handler/v1/response"
)

type AnalyticsProvider interface {
	Snapshot(ctx context.Context) (analytics.Snapshot, error)
}

type SnapshotCache interface {
	Latest() (analytics.Snapshot, bool)
}

type AdminAnalyticsHandler struct {
	svc    AnalyticsProvider
	poller SnapshotCache
}

func NewAdminAnalyticsHandler(svc AnalyticsProvider, poller SnapshotCache) *AdminAnalyticsHandler {
	return &AdminAnalyticsHandler{
		svc:    svc,
		poller: poller,
	}
}

// HandleGetDashboard godoc
// @Summary      Get the cached analytics dashboard
// @Description  Serves the most recent polled snapshot; recomputes on the
// @Description  spot only when no snapshot exists yet.
// @Tags         admin
// @Produce      json
// @Success      200 {object} analytics.Snapshot
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /admin/analytics [get]
func (h *AdminAnalyticsHandler) HandleGetDashboard(ctx *gin.Context) {
	if h.poller != nil {
		if snap, ok := h.poller.Latest(); ok {
			ctx.JSON(http.StatusOK, snap)

			return
		}
	}

	snap, err := h.svc.Snapshot(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetDashboard -> h.svc.Snapshot -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, snap)
}

// HandleGetSummary godoc
// @Summary      Get the live headline figures
// @Tags         admin
// @Produce      json
// @Success      200 {object} analytics.Summary
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /admin/analytics/summary [get]
func (h *AdminAnalyticsHandler) HandleGetSummary(ctx *gin.Context) {
	snap, err := h.svc.Snapshot(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetSummary -> h.svc.Snapshot -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, snap.Summary)
}

// HandleGetTrend godoc
// @Summary      Get the daily registration trend
// @Tags         admin
// @Produce      json
// @Param        days  query  int false "limit to the most recent N days"
// @Success      200 {array}  analytics.TrendPoint
// @Failure      400 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /admin/analytics/trend [get]
func (h *AdminAnalyticsHandler) HandleGetTrend(ctx *gin.Context) {
	snap, err := h.svc.Snapshot(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetTrend -> h.svc.Snapshot -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	trend := snap.Trend
	if raw := ctx.Query("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days <= 0 {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid days value %q", raw)))

			return
		}

		cutoff := time.Now().AddDate(0, 0, -days)
		filtered := make([]analytics.TrendPoint, 0, len(trend))
		for _, p := range trend {
			if !p.Day.Before(cutoff) {
				filtered = append(filtered, p)
			}
		}
		trend = filtered
	}

	ctx.JSON(http.StatusOK, trend)
}

// HandleGetRegionStats godoc
// @Summary      Get the per-region leaderboard
// @Tags         admin
// @Produce      json
// @Success      200 {array}  analytics.GroupStat
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /admin/analytics/regions [get]
func (h *AdminAnalyticsHandler) HandleGetRegionStats(ctx *gin.Context) {
	snap, err := h.svc.Snapshot(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetRegionStats -> h.svc.Snapshot -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, snap.ByRegion)
}

// HandleGetRoleStats godoc
// @Summary      Get the per-role leaderboard
// @Tags         admin
// @Produce      json
// @Success      200 {array}  analytics.GroupStat
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /admin/analytics/roles [get]
func (h *AdminAnalyticsHandler) HandleGetRoleStats(ctx *gin.Context) {
	snap, err := h.svc.Snapshot(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetRoleStats -> h.svc.Snapshot -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, snap.ByRole)
}
