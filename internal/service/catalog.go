package service

import (
	"context"
	"fmt"

	"github.com/andescode/event-registration-api/internal/domain"
	"github.com/andescode/event-registration-api/internal/repository"
)

var (
	ErrNoActiveEvent         = repository.ErrNoActiveEvent
	ErrEventNotFound         = repository.ErrEventNotFound
	ErrEventSlugExists       = repository.ErrEventSlugExists
	ErrRegionNotFound        = repository.ErrRegionNotFound
	ErrRegionNameExists      = repository.ErrRegionNameExists
	ErrRoleProfileNotFound   = repository.ErrRoleProfileNotFound
	ErrRoleKeyExists         = repository.ErrRoleKeyExists
	ErrPricingConfigNotFound = repository.ErrPricingConfigNotFound
)

const (
	cacheKeyActiveEvent    = "catalog:event:active"
	cacheKeyHealthEntities = "catalog:health_entities"
)

func cacheKeyRegions(eventID uint) string { return fmt.Sprintf("catalog:regions:%d", eventID) }
func cacheKeyRoles(eventID uint) string   { return fmt.Sprintf("catalog:roles:%d", eventID) }
func cacheKeyPricing(eventID uint) string { return fmt.Sprintf("catalog:pricing:%d", eventID) }

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindActive(ctx context.Context) (domain.Event, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	Activate(ctx context.Context, id uint) error
}

type CatalogRepository interface {
	CreateRegion(ctx context.Context, region domain.Region) (domain.Region, error)
	UpdateRegion(ctx context.Context, region domain.Region) (domain.Region, error)
	DeleteRegion(ctx context.Context, id uint) error
	FindRegionsByEvent(ctx context.Context, eventID uint) ([]domain.Region, error)
	CreateRoleProfile(ctx context.Context, role domain.RoleProfile) (domain.RoleProfile, error)
	UpdateRoleProfile(ctx context.Context, role domain.RoleProfile) (domain.RoleProfile, error)
	DeleteRoleProfile(ctx context.Context, id uint) error
	FindRoleProfilesByEvent(ctx context.Context, eventID uint) ([]domain.RoleProfile, error)
	FindPricingConfigByEvent(ctx context.Context, eventID uint) (domain.PricingConfig, error)
	UpsertPricingConfig(ctx context.Context, conf domain.PricingConfig) (domain.PricingConfig, error)
	FindHealthEntities(ctx context.Context) ([]domain.HealthEntity, error)
}

// OptionCache keeps hot public-form reads out of the store. A nil cache
// disables caching entirely.
type OptionCache interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, v any)
	Invalidate(ctx context.Context, keys ...string)
}

type CatalogService struct {
	events EventRepository
	repo   CatalogRepository
	cache  OptionCache
}

func NewCatalogService(events EventRepository, repo CatalogRepository, cache OptionCache) *CatalogService {
	return &CatalogService{
		events: events,
		repo:   repo,
		cache:  cache,
	}
}

// ActiveEvent returns the event currently open for registration.
// ErrNoActiveEvent is the expected "registration closed" steady state,
// not a failure.
func (s *CatalogService) ActiveEvent(ctx context.Context) (domain.Event, error) {
	var cached domain.Event
	if s.cache != nil && s.cache.Get(ctx, cacheKeyActiveEvent, &cached) {
		return cached, nil
	}

	event, err := s.events.FindActive(ctx)
	if err != nil {
		return domain.Event{}, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, cacheKeyActiveEvent, event)
	}

	return event, nil
}

func (s *CatalogService) RegionsForEvent(ctx context.Context, eventID uint) ([]domain.Region, error) {
	var cached []domain.Region
	if s.cache != nil && s.cache.Get(ctx, cacheKeyRegions(eventID), &cached) {
		return cached, nil
	}

	regions, err := s.repo.FindRegionsByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindRegionsByEvent -> %w", err)
	}

	if s.cache != nil {
		s.cache.Set(ctx, cacheKeyRegions(eventID), regions)
	}

	return regions, nil
}

func (s *CatalogService) RoleProfilesForEvent(ctx context.Context, eventID uint) ([]domain.RoleProfile, error) {
	var cached []domain.RoleProfile
	if s.cache != nil && s.cache.Get(ctx, cacheKeyRoles(eventID), &cached) {
		return cached, nil
	}

	roles, err := s.repo.FindRoleProfilesByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindRoleProfilesByEvent -> %w", err)
	}

	if s.cache != nil {
		s.cache.Set(ctx, cacheKeyRoles(eventID), roles)
	}

	return roles, nil
}

func (s *CatalogService) PricingConfigForEvent(ctx context.Context, eventID uint) (domain.PricingConfig, error) {
	var cached domain.PricingConfig
	if s.cache != nil && s.cache.Get(ctx, cacheKeyPricing(eventID), &cached) {
		return cached, nil
	}

	conf, err := s.repo.FindPricingConfigByEvent(ctx, eventID)
	if err != nil {
		return domain.PricingConfig{}, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, cacheKeyPricing(eventID), conf)
	}

	return conf, nil
}

func (s *CatalogService) HealthEntities(ctx context.Context) ([]domain.HealthEntity, error) {
	var cached []domain.HealthEntity
	if s.cache != nil && s.cache.Get(ctx, cacheKeyHealthEntities, &cached) {
		return cached, nil
	}

	entities, err := s.repo.FindHealthEntities(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindHealthEntities -> %w", err)
	}

	if s.cache != nil {
		s.cache.Set(ctx, cacheKeyHealthEntities, entities)
	}

	return entities, nil
}

func (s *CatalogService) CreateRegion(ctx context.Context, region domain.Region) (domain.Region, error) {
	created, err := s.repo.CreateRegion(ctx, region)
	if err != nil {
		return domain.Region{}, err
	}

	s.invalidate(ctx, cacheKeyRegions(region.EventID))

	return created, nil
}

func (s *CatalogService) UpdateRegion(ctx context.Context, region domain.Region) (domain.Region, error) {
	updated, err := s.repo.UpdateRegion(ctx, region)
	if err != nil {
		return domain.Region{}, err
	}

	s.invalidate(ctx, cacheKeyRegions(updated.EventID))

	return updated, nil
}

// DeleteRegion removes the region only; registrations keep referencing it
// by name and surface as "unassigned" in reports.
func (s *CatalogService) DeleteRegion(ctx context.Context, eventID, id uint) error {
	if err := s.repo.DeleteRegion(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, cacheKeyRegions(eventID))

	return nil
}

func (s *CatalogService) CreateRoleProfile(ctx context.Context, role domain.RoleProfile) (domain.RoleProfile, error) {
	created, err := s.repo.CreateRoleProfile(ctx, role)
	if err != nil {
		return domain.RoleProfile{}, err
	}

	s.invalidate(ctx, cacheKeyRoles(role.EventID))

	return created, nil
}

func (s *CatalogService) UpdateRoleProfile(ctx context.Context, role domain.RoleProfile) (domain.RoleProfile, error) {
	updated, err := s.repo.UpdateRoleProfile(ctx, role)
	if err != nil {
		return domain.RoleProfile{}, err
	}

	s.invalidate(ctx, cacheKeyRoles(updated.EventID))

	return updated, nil
}

func (s *CatalogService) DeleteRoleProfile(ctx context.Context, eventID, id uint) error {
	if err := s.repo.DeleteRoleProfile(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, cacheKeyRoles(eventID))

	return nil
}

func (s *CatalogService) UpdatePricingConfig(ctx context.Context, conf domain.PricingConfig) (domain.PricingConfig, error) {
	saved, err := s.repo.UpsertPricingConfig(ctx, conf)
	if err != nil {
		return domain.PricingConfig{}, fmt.Errorf("s.repo.UpsertPricingConfig -> %w", err)
	}

	s.invalidate(ctx, cacheKeyPricing(conf.EventID))

	return saved, nil
}

func (s *CatalogService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.events.List -> %w", err)
	}

	return events, nil
}

func (s *CatalogService) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := s.events.Create(ctx, event)
	if err != nil {
		return domain.Event{}, err
	}

	return created, nil
}

func (s *CatalogService) ActivateEvent(ctx context.Context, id uint) error {
	if err := s.events.Activate(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, cacheKeyActiveEvent)

	return nil
}

func (s *CatalogService) invalidate(ctx context.Context, keys ...string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, keys...)
	}
}
