package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/andescode/event-registration-api/internal/domain"
	"github.com/andescode/event-registration-api/internal/notifier"
	"github.com/andescode/event-registration-api/internal/pricing"
	"github.com/andescode/event-registration-api/internal/repository"
	"github.com/andescode/event-registration-api/internal/storage"
)

const maxReceiptSize = 5_000_000

var (
	ErrRegistrationNotFound = repository.ErrRegistrationNotFound
	ErrRegistrationClosed   = errors.New("registration is closed")
	ErrUnknownRegion        = errors.New("unknown region")
	ErrUnknownRole          = errors.New("unknown role")
	ErrUnknownHealthEntity  = errors.New("unknown health entity")
	ErrRoleCapacityFull     = errors.New("role capacity reached")
	ErrReceiptMissing       = errors.New("payment receipt is required")
	ErrReceiptTooLarge      = errors.New("payment receipt exceeds the size limit")
	ErrReceiptUnsupported   = errors.New("payment receipt type is not supported")
	ErrInvalidTransition    = errors.New("status transition not allowed")
	ErrStatusConflict       = errors.New("registration status changed concurrently")
)

var receiptExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// ReceiptUpload carries the payment proof exactly as received from the
// multipart form.
type ReceiptUpload struct {
	FileName    string
	Size        int64
	ContentType string
	Data        io.Reader
}

type SubmitInput struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	HealthEntity string
	RegionName   string
	RoleKey      string
	WantsLodging bool
	Receipt      ReceiptUpload
}

type RegistrationRepository interface {
	Create(ctx context.Context, reg domain.Registration) (domain.Registration, error)
	FindByID(ctx context.Context, id string) (domain.Registration, error)
	List(ctx context.Context, filter repository.RegistrationFilter) ([]domain.Registration, error)
	UpdateStatus(ctx context.Context, id string, expected, next domain.RegistrationStatus) (bool, error)
	UpdateAmountPaid(ctx context.Context, id string, amount float64) error
	CountByRoleKey(ctx context.Context, eventID uint, roleKey string) (int64, error)
}

type RegistrationService struct {
	repo     RegistrationRepository
	catalog  *CatalogService
	uploader storage.Uploader
	notify   notifier.Notifier
}

func NewRegistrationService(repo RegistrationRepository, catalog *CatalogService, uploader storage.Uploader, notify notifier.Notifier) *RegistrationService {
	if notify == nil {
		notify = notifier.Nop{}
	}

	return &RegistrationService{
		repo:     repo,
		catalog:  catalog,
		uploader: uploader,
		notify:   notify,
	}
}

// Quote prices a would-be registration against the active event without
// persisting anything. Unknown region or role names degrade to zero
// contributions rather than failing, so the public form can always show
// a number.
func (s *RegistrationService) Quote(ctx context.Context, regionName, roleKey string, wantsLodging bool) (pricing.Quote, error) {
	event, err := s.catalog.ActiveEvent(ctx)
	if err != nil {
		if errors.Is(err, ErrNoActiveEvent) {
			return pricing.Quote{}, ErrRegistrationClosed
		}

		return pricing.Quote{}, fmt.Errorf("s.catalog.ActiveEvent -> %w", err)
	}

	conf, err := s.catalog.PricingConfigForEvent(ctx, event.ID)
	if err != nil {
		if errors.Is(err, ErrPricingConfigNotFound) {
			return pricing.Quote{}, ErrRegistrationClosed
		}

		return pricing.Quote{}, fmt.Errorf("s.catalog.PricingConfigForEvent -> %w", err)
	}

	region, role, err := s.lookupOptions(ctx, event.ID, regionName, roleKey)
	if err != nil {
		return pricing.Quote{}, err
	}

	return pricing.Resolve(conf, region, role, wantsLodging), nil
}

// Submit validates the form, prices it, stores the receipt and only then
// inserts the registration. A failed upload leaves no partial record.
func (s *RegistrationService) Submit(ctx context.Context, input SubmitInput) (domain.Registration, error) {
	event, err := s.catalog.ActiveEvent(ctx)
	if err != nil {
		if errors.Is(err, ErrNoActiveEvent) {
			return domain.Registration{}, ErrRegistrationClosed
		}

		return domain.Registration{}, fmt.Errorf("s.catalog.ActiveEvent -> %w", err)
	}

	conf, err := s.catalog.PricingConfigForEvent(ctx, event.ID)
	if err != nil {
		if errors.Is(err, ErrPricingConfigNotFound) {
			return domain.Registration{}, ErrRegistrationClosed
		}

		return domain.Registration{}, fmt.Errorf("s.catalog.PricingConfigForEvent -> %w", err)
	}

	if err = s.checkReceipt(input.Receipt); err != nil {
		return domain.Registration{}, err
	}

	region, role, err := s.requireOptions(ctx, event.ID, input.RegionName, input.RoleKey)
	if err != nil {
		return domain.Registration{}, err
	}

	if err = s.checkHealthEntity(ctx, input.HealthEntity); err != nil {
		return domain.Registration{}, err
	}

	if role.Capacity != nil {
		taken, err := s.repo.CountByRoleKey(ctx, event.ID, role.ValueKey)
		if err != nil {
			return domain.Registration{}, fmt.Errorf("s.repo.CountByRoleKey -> %w", err)
		}
		if taken >= int64(*role.Capacity) {
			return domain.Registration{}, ErrRoleCapacityFull
		}
	}

	quote := pricing.Resolve(conf, region, role, input.WantsLodging)

	receiptURL, err := s.uploader.Upload(
		ctx,
		receiptPath(event.Slug, input.LastName, input.Receipt.ContentType),
		input.Receipt.ContentType,
		input.Receipt.Data,
	)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.uploader.Upload -> %w", err)
	}

	reg := domain.Registration{
		ID:           uuid.NewString(),
		EventID:      event.ID,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        strings.TrimSpace(input.Email),
		Phone:        strings.TrimSpace(input.Phone),
		HealthEntity: input.HealthEntity,
		RegionName:   input.RegionName,
		RoleKey:      input.RoleKey,
		WantsLodging: input.WantsLodging,
		ReceiptURL:   receiptURL,
		AgreedPrice:  quote.Total,
		Status:       domain.StatusPending,
	}

	created, err := s.repo.Create(ctx, reg)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	s.publish(ctx, event.Slug, created)

	return created, nil
}

func (s *RegistrationService) Get(ctx context.Context, id string) (domain.Registration, error) {
	reg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Registration{}, err
	}

	return reg, nil
}

func (s *RegistrationService) List(ctx context.Context, filter repository.RegistrationFilter) ([]domain.Registration, error) {
	regs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return regs, nil
}

// UpdateStatus moves a registration through the review state machine.
// Allowed transitions are pending to approved, pending to rejected and
// approved to rejected. Re-approving an approved registration is a no-op.
func (s *RegistrationService) UpdateStatus(ctx context.Context, id string, next domain.RegistrationStatus) (domain.Registration, error) {
	reg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Registration{}, err
	}

	if reg.Status == next {
		return reg, nil
	}

	if !transitionAllowed(reg.Status, next) {
		return domain.Registration{}, ErrInvalidTransition
	}

	changed, err := s.repo.UpdateStatus(ctx, id, reg.Status, next)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}
	if !changed {
		// Another reviewer got there first. Re-read to tell a benign
		// duplicate apart from a real conflict.
		current, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return domain.Registration{}, err
		}
		if current.Status == next {
			return current, nil
		}

		return domain.Registration{}, ErrStatusConflict
	}

	reg.Status = next

	if event, err := s.catalog.events.FindByID(ctx, reg.EventID); err == nil {
		s.publish(ctx, event.Slug, reg)
	}

	return reg, nil
}

func (s *RegistrationService) UpdateAmountPaid(ctx context.Context, id string, amount float64) (domain.Registration, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return domain.Registration{}, err
	}

	if err := s.repo.UpdateAmountPaid(ctx, id, amount); err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.UpdateAmountPaid -> %w", err)
	}

	return s.repo.FindByID(ctx, id)
}

// ExportRow is a denormalized registration line for spreadsheet export.
type ExportRow struct {
	ID           string
	SubmittedAt  time.Time
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	HealthEntity string
	Region       string
	Role         string
	Lodging      bool
	AgreedPrice  float64
	AmountPaid   float64
	Status       string
}

// ExportRows resolves role keys back to display names so the spreadsheet
// reads like the admin console, not like the database.
func (s *RegistrationService) ExportRows(ctx context.Context, filter repository.RegistrationFilter) ([]ExportRow, error) {
	regs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	roleNames := map[string]string{}
	if filter.EventID != 0 {
		roles, err := s.catalog.RoleProfilesForEvent(ctx, filter.EventID)
		if err != nil {
			return nil, err
		}
		for _, role := range roles {
			roleNames[role.ValueKey] = role.Name
		}
	}

	rows := make([]ExportRow, len(regs))
	for i, reg := range regs {
		roleName := roleNames[reg.RoleKey]
		if roleName == "" {
			roleName = reg.RoleKey
		}

		var paid float64
		if reg.AmountPaid != nil {
			paid = *reg.AmountPaid
		}

		rows[i] = ExportRow{
			ID:           reg.ID,
			SubmittedAt:  reg.CreatedAt,
			FirstName:    reg.FirstName,
			LastName:     reg.LastName,
			Email:        reg.Email,
			Phone:        reg.Phone,
			HealthEntity: reg.HealthEntity,
			Region:       reg.RegionName,
			Role:         roleName,
			Lodging:      reg.WantsLodging,
			AgreedPrice:  reg.AgreedPrice,
			AmountPaid:   paid,
			Status:       string(reg.Status),
		}
	}

	return rows, nil
}

func (s *RegistrationService) checkReceipt(receipt ReceiptUpload) error {
	if receipt.Data == nil || receipt.Size == 0 {
		return ErrReceiptMissing
	}
	if receipt.Size > maxReceiptSize {
		return ErrReceiptTooLarge
	}
	if _, ok := receiptExtensions[receipt.ContentType]; !ok {
		return ErrReceiptUnsupported
	}

	return nil
}

func (s *RegistrationService) checkHealthEntity(ctx context.Context, name string) error {
	entities, err := s.catalog.HealthEntities(ctx)
	if err != nil {
		return err
	}

	for _, e := range entities {
		if e.Name == name {
			return nil
		}
	}

	return ErrUnknownHealthEntity
}

// lookupOptions tolerates unknown names, returning nil entries so the
// price resolver can degrade their contributions to zero.
func (s *RegistrationService) lookupOptions(ctx context.Context, eventID uint, regionName, roleKey string) (*domain.Region, *domain.RoleProfile, error) {
	regions, err := s.catalog.RegionsForEvent(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}
	roles, err := s.catalog.RoleProfilesForEvent(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}

	var region *domain.Region
	for i := range regions {
		if regions[i].Name == regionName {
			region = &regions[i]
			break
		}
	}

	var role *domain.RoleProfile
	for i := range roles {
		if roles[i].ValueKey == roleKey {
			role = &roles[i]
			break
		}
	}

	return region, role, nil
}

// requireOptions is the strict variant used at submit time, where the
// selections must come from the published option sets.
func (s *RegistrationService) requireOptions(ctx context.Context, eventID uint, regionName, roleKey string) (*domain.Region, *domain.RoleProfile, error) {
	region, role, err := s.lookupOptions(ctx, eventID, regionName, roleKey)
	if err != nil {
		return nil, nil, err
	}
	if region == nil {
		return nil, nil, ErrUnknownRegion
	}
	if role == nil {
		return nil, nil, ErrUnknownRole
	}

	return region, role, nil
}

func (s *RegistrationService) publish(ctx context.Context, eventSlug string, reg domain.Registration) {
	err := s.notify.Publish(ctx, notifier.Message{
		RegistrationID: reg.ID,
		EventSlug:      eventSlug,
		Email:          reg.Email,
		FullName:       reg.FirstName + " " + reg.LastName,
		Status:         string(reg.Status),
	})
	if err != nil {
		zap.L().Warn("registration notification failed",
			zap.String("registration_id", reg.ID),
			zap.Error(err))
	}
}

func receiptPath(eventSlug, lastName, contentType string) string {
	ext := receiptExtensions[contentType]

	surname := strings.ToLower(strings.TrimSpace(lastName))
	surname = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, surname)

	name := fmt.Sprintf("%d_%s.%s", time.Now().UnixMilli(), surname, ext)

	return path.Join(eventSlug, name)
}

func transitionAllowed(from, to domain.RegistrationStatus) bool {
	switch from {
	case domain.StatusPending:
		return to == domain.StatusApproved || to == domain.StatusRejected
	case domain.StatusApproved:
		return to == domain.StatusRejected
	default:
		return false
	}
}
