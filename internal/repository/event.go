package repository

import (
	"context"

	"github.com/andescode/event-registration-api/internal/domain"
	"github.com/andescode/event-registration-api/internal/repository/dao"
)

var (
	ErrNoActiveEvent   = dao.ErrNoActiveEvent
	ErrEventNotFound   = dao.ErrEventNotFound
	ErrEventSlugExists = dao.ErrEventSlugExists
)

type EventRepository struct {
	dao *dao.EventDAO
}

func NewEventRepository(eventDAO *dao.EventDAO) *EventRepository {
	return &EventRepository{
		dao: eventDAO,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, eventDomainToDAO(event))
	if err != nil {
		return domain.Event{}, err
	}

	return eventDAOToDomain(created), nil
}

func (r *EventRepository) FindActive(ctx context.Context) (domain.Event, error) {
	found, err := r.dao.FindActive(ctx)
	if err != nil {
		return domain.Event{}, err
	}

	return eventDAOToDomain(found), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, err
	}

	return eventDAOToDomain(found), nil
}

func (r *EventRepository) List(ctx context.Context) ([]domain.Event, error) {
	found, err := r.dao.List(ctx)
	if err != nil {
		return nil, err
	}

	events := make([]domain.Event, len(found))
	for i, e := range found {
		events[i] = eventDAOToDomain(e)
	}

	return events, nil
}

func (r *EventRepository) Activate(ctx context.Context, id uint) error {
	return r.dao.Activate(ctx, id)
}

func eventDomainToDAO(e domain.Event) dao.Event {
	return dao.Event{
		ID:          e.ID,
		Name:        e.Name,
		Slug:        e.Slug,
		Description: e.Description,
		StartDate:   e.StartDate,
		RevenueGoal: e.RevenueGoal,
		IsActive:    e.IsActive,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func eventDAOToDomain(e dao.Event) domain.Event {
	return domain.Event{
		ID:          e.ID,
		Name:        e.Name,
		Slug:        e.Slug,
		Description: e.Description,
		StartDate:   e.StartDate,
		RevenueGoal: e.RevenueGoal,
		IsActive:    e.IsActive,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
