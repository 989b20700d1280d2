package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/andescode/event-registration-api/internal/api/handler/v1/request"
	"github.com/andescode/event-registration-api/internal/api/handler/v1/response"
	"github.com/andescode/event-registration-api/internal/domain"
	"github.com/andescode/event-registration-api/internal/service"
)

type AdminCatalogService interface {
	CatalogService

	CreateRegion(ctx context.Context, region domain.Region) (domain.Region, error)
	UpdateRegion(ctx context.Context, region domain.Region) (domain.Region, error)
	DeleteRegion(ctx context.Context, eventID, id uint) error
	CreateRoleProfile(ctx context.Context, role domain.RoleProfile) (domain.RoleProfile, error)
	UpdateRoleProfile(ctx context.Context, role domain.RoleProfile) (domain.RoleProfile, error)
	DeleteRoleProfile(ctx context.Context, eventID, id uint) error
	UpdatePricingConfig(ctx context.Context, conf domain.PricingConfig) (domain.PricingConfig, error)
	ListEvents(ctx context.Context) ([]domain.Event, error)
	CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error)
	ActivateEvent(ctx context.Context, id uint) error
}

type AdminCatalogHandler struct {
	svc AdminCatalogService
}

func NewAdminCatalogHandler(svc AdminCatalogService) *AdminCatalogHandler {
	return &AdminCatalogHandler{
		svc: svc,
	}
}

// HandleCreateRegion godoc
// @Summary      Add a region to the active event
// @Tags         admin
// @Produce      json
// @Param        request  body  request.SaveRegionRequest true "request body"
// @Success      201 {object} domain.Region
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /admin/regions [post]
func (h *AdminCatalogHandler) HandleCreateRegion(ctx *gin.Context) {
	req := request.SaveRegionRequest{}
	if !bindAndValidate(ctx, &req) {
		return
	}

	event, ok := h.requireActiveEvent(ctx)
	if !ok {
		return
	}

	region, err := h.svc.CreateRegion(ctx.Request.Context(), domain.Region{
		EventID:      event.ID,
		Name:         req.Name,
		BasePrice:    req.BasePrice,
		LodgingPrice: req.LodgingPrice,
		ContactEmail: req.ContactEmail,
	})
	if err != nil {
		if errors.Is(err, service.ErrRegionNameExists) {
			response.RenderErr(ctx, response.ErrConflict(err))

			return
		}

		err = fmt.Errorf("v1.HandleCreateRegion -> h.svc.CreateRegion -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, region)
}

// HandleUpdateRegion godoc
// @Summary      Update a region
// @Tags         admin
// @Produce      json
// @Param        regionID  path  int                       true "region ID"
// @Param        request   body  request.SaveRegionRequest true "request body"
// @Success      200 {object} domain.Region
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /admin/regions/{regionID} [put]
func (h *AdminCatalogHandler) HandleUpdateRegion(ctx *gin.Context) {
	id, ok := pathID(ctx, "regionID")
	if !ok {
		return
	}

	req := request.SaveRegionRequest{}
	if !bindAndValidate(ctx, &req) {
		return
	}

	region, err := h.svc.UpdateRegion(ctx.Request.Context(), domain.Region{
		ID:           id,
		Name:         req.Name,
		BasePrice:    req.BasePrice,
		LodgingPrice: req.LodgingPrice,
		ContactEmail: req.ContactEmail,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegionNotFound):
			response.RenderErr(ctx, response.ErrNotFound(err))
		case errors.Is(err, service.ErrRegionNameExists):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleUpdateRegion -> h.svc.UpdateRegion -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, region)
}

// HandleDeleteRegion godoc
// @Summary      Delete a region
// @Tags         admin
// @Produce      json
// @Param        regionID  path  int true "region ID"
// @Success      204
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /admin/regions/{regionID} [delete]
func (h *AdminCatalogHandler) HandleDeleteRegion(ctx *gin.Context) {
	id, ok := pathID(ctx, "regionID")
	if !ok {
		return
	}

	event, ok := h.requireActiveEvent(ctx)
	if !ok {
		return
	}

	if err := h.svc.DeleteRegion(ctx.Request.Context(), event.ID, id); err != nil {
		if errors.Is(err, service.ErrRegionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteRegion -> h.svc.DeleteRegion -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleCreateRoleProfile godoc
// @Summary      Add a participant role to the active event
// @Tags         admin
// @Produce      json
// @Param        request  body  request.SaveRoleProfileRequest true "request body"
// @Success      201 {object} domain.RoleProfile
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /admin/roles [post]
func (h *AdminCatalogHandler) HandleCreateRoleProfile(ctx *gin.Context) {
	req := request.SaveRoleProfileRequest{}
	if !bindAndValidate(ctx, &req) {
		return
	}

	event, ok := h.requireActiveEvent(ctx)
	if !ok {
		return
	}

	role, err := h.svc.CreateRoleProfile(ctx.Request.Context(), domain.RoleProfile{
		EventID:             event.ID,
		Name:                req.Name,
		ValueKey:            req.ValueKey,
		ActiveMethod:        domain.DiscountMethod(req.ActiveMethod),
		DiscountPercentage:  req.DiscountPercentage,
		DiscountFixedAmount: req.DiscountFixedAmount,
		Capacity:            req.Capacity,
		Color:               req.Color,
	})
	if err != nil {
		if errors.Is(err, service.ErrRoleKeyExists) {
			response.RenderErr(ctx, response.ErrConflict(err))

			return
		}

		err = fmt.Errorf("v1.HandleCreateRoleProfile -> h.svc.CreateRoleProfile -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, role)
}

// HandleUpdateRoleProfile godoc
// @Summary      Update a participant role
// @Tags         admin
// @Produce      json
// @Param        roleID   path  int                            true "role ID"
// @Param        request  body  request.SaveRoleProfileRequest true "request body"
// @Success      200 {object} domain.RoleProfile
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /admin/roles/{roleID} [put]
func (h *AdminCatalogHandler) HandleUpdateRoleProfile(ctx *gin.Context) {
	id, ok := pathID(ctx, "roleID")
	if !ok {
		return
	}

	req := request.SaveRoleProfileRequest{}
	if !bindAndValidate(ctx, &req) {
		return
	}

	role, err := h.svc.UpdateRoleProfile(ctx.Request.Context(), domain.RoleProfile{
		ID:                  id,
		Name:                req.Name,
		ValueKey:            req.ValueKey,
		ActiveMethod:        domain.DiscountMethod(req.ActiveMethod),
		DiscountPercentage:  req.DiscountPercentage,
		DiscountFixedAmount: req.DiscountFixedAmount,
		Capacity:            req.Capacity,
		Color:               req.Color,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRoleProfileNotFound):
			response.RenderErr(ctx, response.ErrNotFound(err))
		case errors.Is(err, service.ErrRoleKeyExists):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleUpdateRoleProfile -> h.svc.UpdateRoleProfile -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, role)
}

// HandleDeleteRoleProfile godoc
// @Summary      Delete a participant role
// @Tags         admin
// @Produce      json
// @Param        roleID  path  int true "role ID"
// @Success      204
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /admin/roles/{roleID} [delete]
func (h *AdminCatalogHandler) HandleDeleteRoleProfile(ctx *gin.Context) {
	id, ok := pathID(ctx, "roleID")
	if !ok {
		return
	}

	event, ok := h.requireActiveEvent(ctx)
	if !ok {
		return
	}

	if err := h.svc.DeleteRoleProfile(ctx.Request.Context(), event.ID, id); err != nil {
		if errors.Is(err, service.ErrRoleProfileNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteRoleProfile -> h.svc.DeleteRoleProfile -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleUpdatePricingConfig godoc
// @Summary      Replace the active event's pricing configuration
// @Tags         admin
// @Produce      json
// @Param        request  body  request.SavePricingConfigRequest true "request body"
// @Success      200 {object} domain.PricingConfig
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /admin/pricing [put]
func (h *AdminCatalogHandler) HandleUpdatePricingConfig(ctx *gin.Context) {
	req := request.SavePricingConfigRequest{}
	if !bindAndValidate(ctx, &req) {
		return
	}

	event, ok := h.requireActiveEvent(ctx)
	if !ok {
		return
	}

	conf, err := h.svc.UpdatePricingConfig(ctx.Request.Context(), domain.PricingConfig{
		EventID:            event.ID,
		PricingMode:        domain.PricingMode(req.PricingMode),
		GlobalBasePrice:    req.GlobalBasePrice,
		LodgingSource:      domain.LodgingSource(req.LodgingSource),
		GlobalLodgingPrice: req.GlobalLodgingPrice,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleUpdatePricingConfig -> h.svc.UpdatePricingConfig -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, conf)
}

// HandleListEvents godoc
// @Summary      List all events
// @Tags         admin
// @Produce      json
// @Success      200 {array}  domain.Event
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /admin/events [get]
func (h *AdminCatalogHandler) HandleListEvents(ctx *gin.Context) {
	events, err := h.svc.ListEvents(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListEvents -> h.svc.ListEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleCreateEvent godoc
// @Summary      Create an event
// @Tags         admin
// @Produce      json
// @Param        request  body  request.CreateEventRequest true "request body"
// @Success      201 {object} domain.Event
// @Failure      400 {object} response.Err
// @Failure      409 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /admin/events [post]
func (h *AdminCatalogHandler) HandleCreateEvent(ctx *gin.Context) {
	req := request.CreateEventRequest{}
	if !bindAndValidate(ctx, &req) {
		return
	}

	var startDate time.Time
	if req.StartDate != "" {
		t, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}
		startDate = t
	}

	event, err := h.svc.CreateEvent(ctx.Request.Context(), domain.Event{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		StartDate:   startDate,
		RevenueGoal: req.RevenueGoal,
	})
	if err != nil {
		if errors.Is(err, service.ErrEventSlugExists) {
			response.RenderErr(ctx, response.ErrConflict(err))

			return
		}

		err = fmt.Errorf("v1.HandleCreateEvent -> h.svc.CreateEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, event)
}

// HandleActivateEvent godoc
// @Summary      Make an event the active one
// @Tags         admin
// @Produce      json
// @Param        eventID  path  int true "event ID"
// @Success      204
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /admin/events/{eventID}/activate [post]
func (h *AdminCatalogHandler) HandleActivateEvent(ctx *gin.Context) {
	id, ok := pathID(ctx, "eventID")
	if !ok {
		return
	}

	if err := h.svc.ActivateEvent(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}

		err = fmt.Errorf("v1.HandleActivateEvent -> h.svc.ActivateEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *AdminCatalogHandler) requireActiveEvent(ctx *gin.Context) (domain.Event, bool) {
	event, err := h.svc.ActiveEvent(ctx.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoActiveEvent) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return domain.Event{}, false
		}

		err = fmt.Errorf("v1.requireActiveEvent -> h.svc.ActiveEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return domain.Event{}, false
	}

	return event, true
}

type validator interface {
	Validate() error
}

func bindAndValidate(ctx *gin.Context, req validator) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return false
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return false
	}

	return true
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return 0, false
	}

	return uint(id), true
}
