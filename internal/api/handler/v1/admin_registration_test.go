package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andescode/event-registration-api/internal/domain"
	"github.com/andescode/event-registration-api/internal/repository"
	"github.com/andescode/event-registration-api/internal/service"
)

type stubAdminRegistrations struct {
	regs       []domain.Registration
	reg        domain.Registration
	getErr     error
	statusErr  error
	paymentErr error
	lastStatus domain.RegistrationStatus
}

func (s *stubAdminRegistrations) List(context.Context, repository.RegistrationFilter) ([]domain.Registration, error) {
	return s.regs, nil
}

func (s *stubAdminRegistrations) Get(context.Context, string) (domain.Registration, error) {
	return s.reg, s.getErr
}

func (s *stubAdminRegistrations) UpdateStatus(_ context.Context, _ string, next domain.RegistrationStatus) (domain.Registration, error) {
	if s.statusErr != nil {
		return domain.Registration{}, s.statusErr
	}

	s.lastStatus = next
	s.reg.Status = next

	return s.reg, nil
}

func (s *stubAdminRegistrations) UpdateAmountPaid(_ context.Context, _ string, amount float64) (domain.Registration, error) {
	if s.paymentErr != nil {
		return domain.Registration{}, s.paymentErr
	}

	s.reg.AmountPaid = &amount

	return s.reg, nil
}

type stubExporter struct{}

func (stubExporter) Registrations(context.Context, repository.RegistrationFilter) (*bytes.Buffer, error) {
	return bytes.NewBufferString("xlsx-bytes"), nil
}

func newAdminRouter(svc *stubAdminRegistrations, catalog *stubCatalog) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	h := NewAdminRegistrationHandler(svc, stubExporter{}, catalog)
	router.GET("/admin/registrations", h.HandleListRegistrations)
	router.GET("/admin/registrations/export", h.HandleExportRegistrations)
	router.GET("/admin/registrations/:registrationID", h.HandleGetRegistration)
	router.PATCH("/admin/registrations/:registrationID/status", h.HandleUpdateStatus)
	router.PATCH("/admin/registrations/:registrationID/payment", h.HandleUpdateAmountPaid)

	return router
}

func activeCatalog() *stubCatalog {
	return &stubCatalog{event: domain.Event{ID: 1, Slug: "encuentro-2026", IsActive: true}}
}

func TestHandleListRegistrations(t *testing.T) {
	svc := &stubAdminRegistrations{
		regs: []domain.Registration{
			{ID: "a", Status: domain.StatusPending},
			{ID: "b", Status: domain.StatusApproved},
		},
	}
	router := newAdminRouter(svc, activeCatalog())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/registrations?status=pending", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var regs []domain.Registration
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &regs))
	assert.Len(t, regs, 2)
}

func TestHandleListRegistrations_BadDateFilter(t *testing.T) {
	router := newAdminRouter(&stubAdminRegistrations{}, activeCatalog())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/registrations?from=yesterday", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleUpdateStatus(t *testing.T) {
	patch := func(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
		t.Helper()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/admin/registrations/abc-123/status", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		return w
	}

	t.Run("approves a pending registration", func(t *testing.T) {
		svc := &stubAdminRegistrations{reg: domain.Registration{ID: "abc-123", Status: domain.StatusPending}}
		router := newAdminRouter(svc, activeCatalog())

		w := patch(t, router, `{"status":"approved"}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, domain.StatusApproved, svc.lastStatus)
	})

	t.Run("rejects an unknown status value", func(t *testing.T) {
		router := newAdminRouter(&stubAdminRegistrations{}, activeCatalog())

		w := patch(t, router, `{"status":"archived"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid transition maps to 422", func(t *testing.T) {
		svc := &stubAdminRegistrations{statusErr: service.ErrInvalidTransition}
		router := newAdminRouter(svc, activeCatalog())

		w := patch(t, router, `{"status":"approved"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("concurrent change maps to 409", func(t *testing.T) {
		svc := &stubAdminRegistrations{statusErr: service.ErrStatusConflict}
		router := newAdminRouter(svc, activeCatalog())

		w := patch(t, router, `{"status":"approved"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("unknown registration maps to 404", func(t *testing.T) {
		svc := &stubAdminRegistrations{statusErr: service.ErrRegistrationNotFound}
		router := newAdminRouter(svc, activeCatalog())

		w := patch(t, router, `{"status":"rejected"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandleUpdateAmountPaid(t *testing.T) {
	svc := &stubAdminRegistrations{reg: domain.Registration{ID: "abc-123", Status: domain.StatusApproved}}
	router := newAdminRouter(svc, activeCatalog())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/admin/registrations/abc-123/payment", strings.NewReader(`{"amount_paid":120000}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var reg domain.Registration
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))
	require.NotNil(t, reg.AmountPaid)
	assert.Equal(t, 120000.0, *reg.AmountPaid)
}

func TestHandleExportRegistrations(t *testing.T) {
	router := newAdminRouter(&stubAdminRegistrations{}, activeCatalog())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/registrations/export", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "registrations-")
	assert.Equal(t, "xlsx-bytes", w.Body.String())
}
