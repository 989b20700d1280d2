package repository

import (
	"context"

	"github.com/andescode/event-registration-api/internal/domain"
	"github.com/andescode/event-registration-api/internal/repository/dao"
)

var (
	ErrAdminEmailExists = dao.ErrAdminEmailExists
	ErrAdminNotFound    = dao.ErrAdminNotFound
)

type AdminRepository struct {
	dao *dao.AdminDAO
}

func NewAdminRepository(adminDAO *dao.AdminDAO) *AdminRepository {
	return &AdminRepository{
		dao: adminDAO,
	}
}

func (r *AdminRepository) Create(ctx context.Context, admin domain.Admin) (domain.Admin, error) {
	created, err := r.dao.Insert(ctx, adminDomainToDAO(admin))
	if err != nil {
		return domain.Admin{}, err
	}

	return adminDAOToDomain(created), nil
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (domain.Admin, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.Admin{}, err
	}

	return adminDAOToDomain(found), nil
}

func (r *AdminRepository) FindByID(ctx context.Context, id uint) (domain.Admin, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Admin{}, err
	}

	return adminDAOToDomain(found), nil
}

func (r *AdminRepository) Count(ctx context.Context) (int64, error) {
	return r.dao.Count(ctx)
}

func adminDomainToDAO(a domain.Admin) dao.Admin {
	return dao.Admin{
		ID:        a.ID,
		Email:     a.Email,
		Password:  a.Password,
		Name:      a.Name,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func adminDAOToDomain(a dao.Admin) domain.Admin {
	return domain.Admin{
		ID:        a.ID,
		Email:     a.Email,
		Password:  a.Password,
		Name:      a.Name,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
