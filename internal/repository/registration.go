package repository

import (
	"context"
	"time"

	"github.com/andescode/event-registration-api/internal/domain"
	"github.com/andescode/event-registration-api/internal/repository/dao"
)

var ErrRegistrationNotFound = dao.ErrRegistrationNotFound

// RegistrationFilter narrows admin listings; zero values mean "no filter".
type RegistrationFilter struct {
	EventID    uint
	Status     domain.RegistrationStatus
	RegionName string
	RoleKey    string
	From       time.Time
	To         time.Time
}

type RegistrationRepository struct {
	dao *dao.RegistrationDAO
}

func NewRegistrationRepository(registrationDAO *dao.RegistrationDAO) *RegistrationRepository {
	return &RegistrationRepository{
		dao: registrationDAO,
	}
}

func (r *RegistrationRepository) Create(ctx context.Context, reg domain.Registration) (domain.Registration, error) {
	created, err := r.dao.Insert(ctx, registrationDomainToDAO(reg))
	if err != nil {
		return domain.Registration{}, err
	}

	return registrationDAOToDomain(created), nil
}

func (r *RegistrationRepository) FindByID(ctx context.Context, id string) (domain.Registration, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Registration{}, err
	}

	return registrationDAOToDomain(found), nil
}

func (r *RegistrationRepository) List(ctx context.Context, filter RegistrationFilter) ([]domain.Registration, error) {
	found, err := r.dao.List(ctx, dao.RegistrationFilter{
		EventID:    filter.EventID,
		Status:     string(filter.Status),
		RegionName: filter.RegionName,
		RoleKey:    filter.RoleKey,
		From:       filter.From,
		To:         filter.To,
	})
	if err != nil {
		return nil, err
	}

	regs := make([]domain.Registration, len(found))
	for i, reg := range found {
		regs[i] = registrationDAOToDomain(reg)
	}

	return regs, nil
}

// UpdateStatus applies the transition only when the stored status still
// matches expected; it reports whether a row actually changed.
func (r *RegistrationRepository) UpdateStatus(ctx context.Context, id string, expected, next domain.RegistrationStatus) (bool, error) {
	affected, err := r.dao.UpdateStatus(ctx, id, string(expected), string(next))
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (r *RegistrationRepository) UpdateAmountPaid(ctx context.Context, id string, amount float64) error {
	return r.dao.UpdateAmountPaid(ctx, id, amount)
}

func (r *RegistrationRepository) CountByRoleKey(ctx context.Context, eventID uint, roleKey string) (int64, error) {
	return r.dao.CountByRoleKey(ctx, eventID, roleKey)
}

func registrationDomainToDAO(reg domain.Registration) dao.Registration {
	return dao.Registration{
		ID:           reg.ID,
		EventID:      reg.EventID,
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		Email:        reg.Email,
		Phone:        reg.Phone,
		HealthEntity: reg.HealthEntity,
		RegionName:   reg.RegionName,
		RoleKey:      reg.RoleKey,
		WantsLodging: reg.WantsLodging,
		ReceiptURL:   reg.ReceiptURL,
		AgreedPrice:  reg.AgreedPrice,
		AmountPaid:   reg.AmountPaid,
		Status:       string(reg.Status),
		CreatedAt:    reg.CreatedAt,
		UpdatedAt:    reg.UpdatedAt,
	}
}

func registrationDAOToDomain(reg dao.Registration) domain.Registration {
	return domain.Registration{
		ID:           reg.ID,
		EventID:      reg.EventID,
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		Email:        reg.Email,
		Phone:        reg.Phone,
		HealthEntity: reg.HealthEntity,
		RegionName:   reg.RegionName,
		RoleKey:      reg.RoleKey,
		WantsLodging: reg.WantsLodging,
		ReceiptURL:   reg.ReceiptURL,
		AgreedPrice:  reg.AgreedPrice,
		AmountPaid:   reg.AmountPaid,
		Status:       domain.RegistrationStatus(reg.Status),
		CreatedAt:    reg.CreatedAt,
		UpdatedAt:    reg.UpdatedAt,
	}
}
