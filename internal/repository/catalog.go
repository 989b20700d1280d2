package repository

import (
	"context"

	"github.com/andescode/event-registration-api/internal/domain"
	"github.com/andescode/event-registration-api/internal/repository/dao"
)

var (
	ErrRegionNotFound        = dao.ErrRegionNotFound
	ErrRegionNameExists      = dao.ErrRegionNameExists
	ErrRoleProfileNotFound   = dao.ErrRoleProfileNotFound
	ErrRoleKeyExists         = dao.ErrRoleKeyExists
	ErrPricingConfigNotFound = dao.ErrPricingConfigNotFound
)

type CatalogRepository struct {
	dao *dao.CatalogDAO
}

func NewCatalogRepository(catalogDAO *dao.CatalogDAO) *CatalogRepository {
	return &CatalogRepository{
		dao: catalogDAO,
	}
}

func (r *CatalogRepository) CreateRegion(ctx context.Context, region domain.Region) (domain.Region, error) {
	created, err := r.dao.InsertRegion(ctx, regionDomainToDAO(region))
	if err != nil {
		return domain.Region{}, err
	}

	return regionDAOToDomain(created), nil
}

func (r *CatalogRepository) UpdateRegion(ctx context.Context, region domain.Region) (domain.Region, error) {
	updated, err := r.dao.UpdateRegion(ctx, regionDomainToDAO(region))
	if err != nil {
		return domain.Region{}, err
	}

	return regionDAOToDomain(updated), nil
}

func (r *CatalogRepository) DeleteRegion(ctx context.Context, id uint) error {
	return r.dao.DeleteRegion(ctx, id)
}

func (r *CatalogRepository) FindRegionsByEvent(ctx context.Context, eventID uint) ([]domain.Region, error) {
	found, err := r.dao.FindRegionsByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	regions := make([]domain.Region, len(found))
	for i, reg := range found {
		regions[i] = regionDAOToDomain(reg)
	}

	return regions, nil
}

func (r *CatalogRepository) CreateRoleProfile(ctx context.Context, role domain.RoleProfile) (domain.RoleProfile, error) {
	created, err := r.dao.InsertRoleProfile(ctx, roleDomainToDAO(role))
	if err != nil {
		return domain.RoleProfile{}, err
	}

	return roleDAOToDomain(created), nil
}

func (r *CatalogRepository) UpdateRoleProfile(ctx context.Context, role domain.RoleProfile) (domain.RoleProfile, error) {
	updated, err := r.dao.UpdateRoleProfile(ctx, roleDomainToDAO(role))
	if err != nil {
		return domain.RoleProfile{}, err
	}

	return roleDAOToDomain(updated), nil
}

func (r *CatalogRepository) DeleteRoleProfile(ctx context.Context, id uint) error {
	return r.dao.DeleteRoleProfile(ctx, id)
}

func (r *CatalogRepository) FindRoleProfilesByEvent(ctx context.Context, eventID uint) ([]domain.RoleProfile, error) {
	found, err := r.dao.FindRoleProfilesByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	roles := make([]domain.RoleProfile, len(found))
	for i, role := range found {
		roles[i] = roleDAOToDomain(role)
	}

	return roles, nil
}

func (r *CatalogRepository) FindPricingConfigByEvent(ctx context.Context, eventID uint) (domain.PricingConfig, error) {
	found, err := r.dao.FindPricingConfigByEvent(ctx, eventID)
	if err != nil {
		return domain.PricingConfig{}, err
	}

	return pricingDAOToDomain(found), nil
}

func (r *CatalogRepository) UpsertPricingConfig(ctx context.Context, conf domain.PricingConfig) (domain.PricingConfig, error) {
	saved, err := r.dao.UpsertPricingConfig(ctx, pricingDomainToDAO(conf))
	if err != nil {
		return domain.PricingConfig{}, err
	}

	return pricingDAOToDomain(saved), nil
}

func (r *CatalogRepository) FindHealthEntities(ctx context.Context) ([]domain.HealthEntity, error) {
	found, err := r.dao.FindHealthEntities(ctx)
	if err != nil {
		return nil, err
	}

	entities := make([]domain.HealthEntity, len(found))
	for i, e := range found {
		entities[i] = domain.HealthEntity{ID: e.ID, Name: e.Name}
	}

	return entities, nil
}

func regionDomainToDAO(reg domain.Region) dao.Region {
	return dao.Region{
		ID:           reg.ID,
		EventID:      reg.EventID,
		Name:         reg.Name,
		BasePrice:    reg.BasePrice,
		LodgingPrice: reg.LodgingPrice,
		ContactEmail: reg.ContactEmail,
		CreatedAt:    reg.CreatedAt,
		UpdatedAt:    reg.UpdatedAt,
	}
}

func regionDAOToDomain(reg dao.Region) domain.Region {
	return domain.Region{
		ID:           reg.ID,
		EventID:      reg.EventID,
		Name:         reg.Name,
		BasePrice:    reg.BasePrice,
		LodgingPrice: reg.LodgingPrice,
		ContactEmail: reg.ContactEmail,
		CreatedAt:    reg.CreatedAt,
		UpdatedAt:    reg.UpdatedAt,
	}
}

func roleDomainToDAO(role domain.RoleProfile) dao.RoleProfile {
	return dao.RoleProfile{
		ID:                  role.ID,
		EventID:             role.EventID,
		Name:                role.Name,
		ValueKey:            role.ValueKey,
		ActiveMethod:        string(role.ActiveMethod),
		DiscountPercentage:  role.DiscountPercentage,
		DiscountFixedAmount: role.DiscountFixedAmount,
		Capacity:            role.Capacity,
		Color:               role.Color,
		CreatedAt:           role.CreatedAt,
		UpdatedAt:           role.UpdatedAt,
	}
}

func roleDAOToDomain(role dao.RoleProfile) domain.RoleProfile {
	return domain.RoleProfile{
		ID:                  role.ID,
		EventID:             role.EventID,
		Name:                role.Name,
		ValueKey:            role.ValueKey,
		ActiveMethod:        domain.DiscountMethod(role.ActiveMethod),
		DiscountPercentage:  role.DiscountPercentage,
		DiscountFixedAmount: role.DiscountFixedAmount,
		Capacity:            role.Capacity,
		Color:               role.Color,
		CreatedAt:           role.CreatedAt,
		UpdatedAt:           role.UpdatedAt,
	}
}

func pricingDomainToDAO(conf domain.PricingConfig) dao.PricingConfig {
	return dao.PricingConfig{
		ID:                 conf.ID,
		EventID:            conf.EventID,
		PricingMode:        string(conf.PricingMode),
		GlobalBasePrice:    conf.GlobalBasePrice,
		LodgingSource:      string(conf.LodgingSource),
		GlobalLodgingPrice: conf.GlobalLodgingPrice,
	}
}

func pricingDAOToDomain(conf dao.PricingConfig) domain.PricingConfig {
	return domain.PricingConfig{
		ID:                 conf.ID,
		EventID:            conf.EventID,
		PricingMode:        domain.PricingMode(conf.PricingMode),
		GlobalBasePrice:    conf.GlobalBasePrice,
		LodgingSource:      domain.LodgingSource(conf.LodgingSource),
		GlobalLodgingPrice: conf.GlobalLodgingPrice,
		UpdatedAt:          conf.UpdatedAt,
	}
}
