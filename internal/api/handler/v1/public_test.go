package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andescode/event-registration-api/internal/domain"
	"github.com/andescode/event-registration-api/internal/pricing"
	"github.com/andescode/event-registration-api/internal/service"
)

type stubCatalog struct {
	event    domain.Event
	eventErr error
	regions  []domain.Region
	roles    []domain.RoleProfile
	pricing  domain.PricingConfig
	entities []domain.HealthEntity
}

func (s *stubCatalog) ActiveEvent(context.Context) (domain.Event, error) {
	return s.event, s.eventErr
}

func (s *stubCatalog) RegionsForEvent(context.Context, uint) ([]domain.Region, error) {
	return s.regions, nil
}

func (s *stubCatalog) RoleProfilesForEvent(context.Context, uint) ([]domain.RoleProfile, error) {
	return s.roles, nil
}

func (s *stubCatalog) PricingConfigForEvent(context.Context, uint) (domain.PricingConfig, error) {
	return s.pricing, nil
}

func (s *stubCatalog) HealthEntities(context.Context) ([]domain.HealthEntity, error) {
	return s.entities, nil
}

type stubRegistrations struct {
	quote     pricing.Quote
	quoteErr  error
	submitted domain.Registration
	submitErr error
	lastInput service.SubmitInput
}

func (s *stubRegistrations) Quote(context.Context, string, string, bool) (pricing.Quote, error) {
	return s.quote, s.quoteErr
}

func (s *stubRegistrations) Submit(_ context.Context, input service.SubmitInput) (domain.Registration, error) {
	s.lastInput = input
	return s.submitted, s.submitErr
}

func newPublicRouter(catalog *stubCatalog, regs *stubRegistrations) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	h := NewPublicHandler(catalog, regs)
	router.GET("/event", h.HandleGetActiveEvent)
	router.GET("/registrations/quote", h.HandleQuote)
	router.POST("/registrations", h.HandleSubmitRegistration)

	return router
}

func submitForm(t *testing.T, fields map[string]string, withReceipt bool) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}

	if withReceipt {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="receipt"; filename="receipt.jpg"`)
		header.Set("Content-Type", "image/jpeg")
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(bytes.Repeat([]byte{0xFF}, 64))
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func validFormFields() map[string]string {
	return map[string]string{
		"first_name":    "María",
		"last_name":     "Gómez",
		"email":         "maria@example.com",
		"phone":         "3001234567",
		"health_entity": "Sura",
		"region":        "Bogotá",
		"role":          "laico",
		"lodging":       "si",
	}
}

func TestHandleGetActiveEvent(t *testing.T) {
	t.Run("open event", func(t *testing.T) {
		catalog := &stubCatalog{event: domain.Event{ID: 1, Slug: "encuentro-2026", IsActive: true}}
		router := newPublicRouter(catalog, &stubRegistrations{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/event", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Open  bool          `json:"open"`
			Event *domain.Event `json:"event"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Open)
		require.NotNil(t, resp.Event)
		assert.Equal(t, "encuentro-2026", resp.Event.Slug)
	})

	t.Run("registration closed", func(t *testing.T) {
		catalog := &stubCatalog{eventErr: service.ErrNoActiveEvent}
		router := newPublicRouter(catalog, &stubRegistrations{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/event", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"open":false}`, w.Body.String())
	})
}

func TestHandleQuote(t *testing.T) {
	t.Run("returns the quote", func(t *testing.T) {
		regs := &stubRegistrations{quote: pricing.Quote{Base: 120000, Lodging: 30000, Total: 150000}}
		router := newPublicRouter(&stubCatalog{}, regs)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/registrations/quote?region=Bogot%C3%A1&role=laico&lodging=si", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var quote pricing.Quote
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quote))
		assert.Equal(t, 150000.0, quote.Total)
	})

	t.Run("closed registration returns 404", func(t *testing.T) {
		regs := &stubRegistrations{quoteErr: service.ErrRegistrationClosed}
		router := newPublicRouter(&stubCatalog{}, regs)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/registrations/quote?region=Bogot%C3%A1&role=laico", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandleSubmitRegistration(t *testing.T) {
	t.Run("valid submission", func(t *testing.T) {
		regs := &stubRegistrations{
			submitted: domain.Registration{ID: "abc-123", Status: domain.StatusPending, AgreedPrice: 150000},
		}
		router := newPublicRouter(&stubCatalog{}, regs)

		body, contentType := submitForm(t, validFormFields(), true)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/registrations", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "maria@example.com", regs.lastInput.Email)
		assert.True(t, regs.lastInput.WantsLodging)
		assert.Equal(t, "image/jpeg", regs.lastInput.Receipt.ContentType)
	})

	t.Run("missing receipt part", func(t *testing.T) {
		router := newPublicRouter(&stubCatalog{}, &stubRegistrations{})

		body, contentType := submitForm(t, validFormFields(), false)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/registrations", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid lodging value", func(t *testing.T) {
		router := newPublicRouter(&stubCatalog{}, &stubRegistrations{})

		fields := validFormFields()
		fields["lodging"] = "maybe"
		body, contentType := submitForm(t, fields, true)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/registrations", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("short first name", func(t *testing.T) {
		router := newPublicRouter(&stubCatalog{}, &stubRegistrations{})

		fields := validFormFields()
		fields["first_name"] = "M"
		body, contentType := submitForm(t, fields, true)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/registrations", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("oversized receipt maps to 413", func(t *testing.T) {
		regs := &stubRegistrations{submitErr: service.ErrReceiptTooLarge}
		router := newPublicRouter(&stubCatalog{}, regs)

		body, contentType := submitForm(t, validFormFields(), true)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/registrations", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})

	t.Run("full role maps to 422", func(t *testing.T) {
		regs := &stubRegistrations{submitErr: service.ErrRoleCapacityFull}
		router := newPublicRouter(&stubCatalog{}, regs)

		body, contentType := submitForm(t, validFormFields(), true)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/registrations", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
