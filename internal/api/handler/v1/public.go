package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andescode/event-registration-api/internal/api/handler/v1/request"
	"github.com/andescode/event-registration-api/internal/api/handler/v1/response"
	"github.com/andescode/event-registration-api/internal/domain"
	"github.com/andescode/event-registration-api/internal/pricing"
	"github.com/andescode/event-registration-api/internal/service"
)

type CatalogService interface {
	ActiveEvent(ctx context.Context) (domain.Event, error)
	RegionsForEvent(ctx context.Context, eventID uint) ([]domain.Region, error)
	RoleProfilesForEvent(ctx context.Context, eventID uint) ([]domain.RoleProfile, error)
	PricingConfigForEvent(ctx context.Context, eventID uint) (domain.PricingConfig, error)
	HealthEntities(ctx context.Context) ([]domain.HealthEntity, error)
}

type PublicRegistrationService interface {
	Quote(ctx context.Context, regionName, roleKey string, wantsLodging bool) (pricing.Quote, error)
	Submit(ctx context.Context, input service.SubmitInput) (domain.Registration, error)
}

type PublicHandler struct {
	catalog CatalogService
	regs    PublicRegistrationService
}

func NewPublicHandler(catalog CatalogService, regs PublicRegistrationService) *PublicHandler {
	return &PublicHandler{
		catalog: catalog,
		regs:    regs,
	}
}

// HandleGetActiveEvent godoc
// @Summary      Get the event currently open for registration
// @Tags         public
// @Produce      json
// @Success      200 {object} response.ActiveEventResponse
// @Failure      500 {object} response.Err
// @Router       /event [get]
func (h *PublicHandler) HandleGetActiveEvent(ctx *gin.Context) {
	event, err := h.catalog.ActiveEvent(ctx.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoActiveEvent) {
			ctx.JSON(http.StatusOK, response.ActiveEventResponse{Open: false})

			return
		}

		err = fmt.Errorf("v1.HandleGetActiveEvent -> h.catalog.ActiveEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.ActiveEventResponse{Open: true, Event: &event})
}

// HandleGetRegions godoc
// @Summary      List the active event's regions
// @Tags         public
// @Produce      json
// @Success      200 {array}  domain.Region
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /event/regions [get]
func (h *PublicHandler) HandleGetRegions(ctx *gin.Context) {
	event, ok := h.requireActiveEvent(ctx)
	if !ok {
		return
	}

	regions, err := h.catalog.RegionsForEvent(ctx.Request.Context(), event.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetRegions -> h.catalog.RegionsForEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, regions)
}

// HandleGetRoles godoc
// @Summary      List the active event's participant roles
// @Tags         public
// @Produce      json
// @Success      200 {array}  domain.RoleProfile
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /event/roles [get]
func (h *PublicHandler) HandleGetRoles(ctx *gin.Context) {
	event, ok := h.requireActiveEvent(ctx)
	if !ok {
		return
	}

	roles, err := h.catalog.RoleProfilesForEvent(ctx.Request.Context(), event.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetRoles -> h.catalog.RoleProfilesForEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, roles)
}

// HandleGetPricing godoc
// @Summary      Get the active event's pricing configuration
// @Tags         public
// @Produce      json
// @Success      200 {object} domain.PricingConfig
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /event/pricing [get]
func (h *PublicHandler) HandleGetPricing(ctx *gin.Context) {
	event, ok := h.requireActiveEvent(ctx)
	if !ok {
		return
	}

	conf, err := h.catalog.PricingConfigForEvent(ctx.Request.Context(), event.ID)
	if err != nil {
		if errors.Is(err, service.ErrPricingConfigNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}

		err = fmt.Errorf("v1.HandleGetPricing -> h.catalog.PricingConfigForEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, conf)
}

// HandleGetHealthEntities godoc
// @Summary      List the health entities accepted on the form
// @Tags         public
// @Produce      json
// @Success      200 {array}  domain.HealthEntity
// @Failure      500 {object} response.Err
// @Router       /health-entities [get]
func (h *PublicHandler) HandleGetHealthEntities(ctx *gin.Context) {
	entities, err := h.catalog.HealthEntities(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetHealthEntities -> h.catalog.HealthEntities -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, entities)
}

// HandleQuote godoc
// @Summary      Price a prospective registration
// @Tags         public
// @Produce      json
// @Param        region   query     string true  "region name"
// @Param        role     query     string true  "role key"
// @Param        lodging  query     string false "si or no"
// @Success      200 {object} pricing.Quote
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /registrations/quote [get]
func (h *PublicHandler) HandleQuote(ctx *gin.Context) {
	quote, err := h.regs.Quote(
		ctx.Request.Context(),
		ctx.Query("region"),
		ctx.Query("role"),
		ctx.Query("lodging") == "si",
	)
	if err != nil {
		if errors.Is(err, service.ErrRegistrationClosed) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}

		err = fmt.Errorf("v1.HandleQuote -> h.regs.Quote -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, quote)
}

// HandleSubmitRegistration godoc
// @Summary      Submit a registration with its payment receipt
// @Tags         public
// @Accept       mpfd
// @Produce      json
// @Param        receipt  formData  file   true "payment receipt (jpeg, png or webp)"
// @Success      201 {object} response.RegistrationSubmittedResponse
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      413 {object} response.Err
// @Failure      422 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /registrations [post]
func (h *PublicHandler) HandleSubmitRegistration(ctx *gin.Context) {
	req := request.SubmitRegistrationRequest{}
	if err := ctx.ShouldBind(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	fileHeader, err := ctx.FormFile("receipt")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrReceiptMissing))

		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		err = fmt.Errorf("v1.HandleSubmitRegistration -> fileHeader.Open -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}
	defer file.Close()

	created, err := h.regs.Submit(ctx.Request.Context(), service.SubmitInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		HealthEntity: req.HealthEntity,
		RegionName:   req.Region,
		RoleKey:      req.Role,
		WantsLodging: req.WantsLodging(),
		Receipt: service.ReceiptUpload{
			FileName:    fileHeader.Filename,
			Size:        fileHeader.Size,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Data:        file,
		},
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationClosed):
			response.RenderErr(ctx, response.ErrNotFound(err))
		case errors.Is(err, service.ErrReceiptTooLarge):
			response.RenderErr(ctx, response.ErrPayloadTooLarge(err))
		case errors.Is(err, service.ErrReceiptMissing),
			errors.Is(err, service.ErrReceiptUnsupported),
			errors.Is(err, service.ErrUnknownRegion),
			errors.Is(err, service.ErrUnknownRole),
			errors.Is(err, service.ErrUnknownHealthEntity):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrRoleCapacityFull):
			response.RenderErr(ctx, response.ErrUnprocessable(err))
		default:
			err = fmt.Errorf("v1.HandleSubmitRegistration -> h.regs.Submit -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, response.RegistrationSubmittedResponse{
		ID:          created.ID,
		Status:      string(created.Status),
		AgreedPrice: created.AgreedPrice,
		ReceiptURL:  created.ReceiptURL,
	})
}

func (h *PublicHandler) requireActiveEvent(ctx *gin.Context) (domain.Event, bool) {
	event, err := h.catalog.ActiveEvent(ctx.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoActiveEvent) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return domain.Event{}, false
		}

		err = fmt.Errorf("v1.requireActiveEvent -> h.catalog.ActiveEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return domain.Event{}, false
	}

	return event, true
}
