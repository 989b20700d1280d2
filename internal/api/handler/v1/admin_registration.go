package v1

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/andescode/event-registration-api/internal/api/handler/v1/request"
	"github.com/andescode/event-registration-api/internal/api/handler/v1/response"
	"github.com/andescode/event-registration-api/internal/domain"
	"github.com/andescode/event-registration-api/internal/repository"
	"github.com/andescode/event-registration-api/internal/service"
)

type AdminRegistrationService interface {
	List(ctx context.Context, filter repository.RegistrationFilter) ([]domain.Registration, error)
	Get(ctx context.Context, id string) (domain.Registration, error)
	UpdateStatus(ctx context.Context, id string, next domain.RegistrationStatus) (domain.Registration, error)
	UpdateAmountPaid(ctx context.Context, id string, amount float64) (domain.Registration, error)
}

type RegistrationExporter interface {
	Registrations(ctx context.Context, filter repository.RegistrationFilter) (*bytes.Buffer, error)
}

type AdminRegistrationHandler struct {
	svc      AdminRegistrationService
	exporter RegistrationExporter
	catalog  CatalogService
}

func NewAdminRegistrationHandler(svc AdminRegistrationService, exporter RegistrationExporter, catalog CatalogService) *AdminRegistrationHandler {
	return &AdminRegistrationHandler{
		svc:      svc,
		exporter: exporter,
		catalog:  catalog,
	}
}

// HandleListRegistrations godoc
// @Summary      List the active event's registrations
// @Tags         admin
// @Produce      json
// @Param        status  query  string false "pending, approved or rejected"
// @Param        region  query  string false "region name"
// @Param        role    query  string false "role key"
// @Param        from    query  string false "submitted on or after, RFC 3339"
// @Param        to      query  string false "submitted before, RFC 3339"
// @Success      200 {array}  domain.Registration
// @Failure      400 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /admin/registrations [get]
func (h *AdminRegistrationHandler) HandleListRegistrations(ctx *gin.Context) {
	filter, ok := h.buildFilter(ctx)
	if !ok {
		return
	}

	regs, err := h.svc.List(ctx.Request.Context(), filter)
	if err != nil {
		err = fmt.Errorf("v1.HandleListRegistrations -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, regs)
}

// HandleGetRegistration godoc
// @Summary      Get one registration
// @Tags         admin
// @Produce      json
// @Param        registrationID  path  string true "registration ID"
// @Success      200 {object} domain.Registration
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /admin/registrations/{registrationID} [get]
func (h *AdminRegistrationHandler) HandleGetRegistration(ctx *gin.Context) {
	reg, err := h.svc.Get(ctx.Request.Context(), ctx.Param("registrationID"))
	if err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}

		err = fmt.Errorf("v1.HandleGetRegistration -> h.svc.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, reg)
}

// HandleUpdateStatus godoc
// @Summary      Approve or reject a registration
// @Tags         admin
// @Produce      json
// @Param        registrationID  path  string                      true "registration ID"
// @Param        request         body  request.UpdateStatusRequest true "request body"
// @Success      200 {object} domain.Registration
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      409 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /admin/registrations/{registrationID}/status [patch]
func (h *AdminRegistrationHandler) HandleUpdateStatus(ctx *gin.Context) {
	req := request.UpdateStatusRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	reg, err := h.svc.UpdateStatus(ctx.Request.Context(), ctx.Param("registrationID"), domain.RegistrationStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound):
			response.RenderErr(ctx, response.ErrNotFound(err))
		case errors.Is(err, service.ErrInvalidTransition):
			response.RenderErr(ctx, response.ErrUnprocessable(err))
		case errors.Is(err, service.ErrStatusConflict):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleUpdateStatus -> h.svc.UpdateStatus -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, reg)
}

// HandleUpdateAmountPaid godoc
// @Summary      Record the amount actually paid for a registration
// @Tags         admin
// @Produce      json
// @Param        registrationID  path  string                          true "registration ID"
// @Param        request         body  request.UpdateAmountPaidRequest true "request body"
// @Success      200 {object} domain.Registration
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /admin/registrations/{registrationID}/payment [patch]
func (h *AdminRegistrationHandler) HandleUpdateAmountPaid(ctx *gin.Context) {
	req := request.UpdateAmountPaidRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	reg, err := h.svc.UpdateAmountPaid(ctx.Request.Context(), ctx.Param("registrationID"), req.AmountPaid)
	if err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateAmountPaid -> h.svc.UpdateAmountPaid -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, reg)
}

// HandleExportRegistrations godoc
// @Summary      Download the filtered registrations as a spreadsheet
// @Tags         admin
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200 {file}   file
// @Failure      400 {object} response.Err
// @Failure      500 {object} response.Err
// @Security     BearerAuth
// @Router       /admin/registrations/export [get]
func (h *AdminRegistrationHandler) HandleExportRegistrations(ctx *gin.Context) {
	filter, ok := h.buildFilter(ctx)
	if !ok {
		return
	}

	buf, err := h.exporter.Registrations(ctx.Request.Context(), filter)
	if err != nil {
		err = fmt.Errorf("v1.HandleExportRegistrations -> h.exporter.Registrations -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	filename := fmt.Sprintf("registrations-%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *AdminRegistrationHandler) buildFilter(ctx *gin.Context) (repository.RegistrationFilter, bool) {
	event, err := h.catalog.ActiveEvent(ctx.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoActiveEvent) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return repository.RegistrationFilter{}, false
		}

		err = fmt.Errorf("v1.buildFilter -> h.catalog.ActiveEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return repository.RegistrationFilter{}, false
	}

	filter := repository.RegistrationFilter{
		EventID:    event.ID,
		Status:     domain.RegistrationStatus(ctx.Query("status")),
		RegionName: ctx.Query("region"),
		RoleKey:    ctx.Query("role"),
	}

	if from := ctx.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return repository.RegistrationFilter{}, false
		}
		filter.From = t
	}

	if to := ctx.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return repository.RegistrationFilter{}, false
		}
		filter.To = t
	}

	return filter, true
}
