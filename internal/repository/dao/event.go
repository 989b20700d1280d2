package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNoActiveEvent   = errors.New("no active event")
	ErrEventNotFound   = errors.New("event not found")
	ErrEventSlugExists = errors.New("event slug already exists")
)

type Event struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"not null"`
	Slug        string    `gorm:"unique;not null"`
	Description string
	StartDate   time.Time
	RevenueGoal float64   `gorm:"not null;default:0"`
	IsActive    bool      `gorm:"not null;default:false;index"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Create(&event)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_events_slug"`) {
			return Event{}, ErrEventSlugExists
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindActive(ctx context.Context) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).Where("is_active = ?", true).First(&event)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrNoActiveEvent
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) List(ctx context.Context) ([]Event, error) {
	var events []Event

	result := d.db.WithContext(ctx).Order("start_date DESC").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

// Activate marks one event active and every other event inactive, in a
// single transaction, keeping the exactly-one-active invariant.
func (d *EventDAO) Activate(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event Event
		if err := tx.First(&event, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		if err := tx.Model(&Event{}).Where("is_active = ?", true).Update("is_active", false).Error; err != nil {
			return err
		}

		return tx.Model(&Event{}).Where("id = ?", id).Update("is_active", true).Error
	})
}
