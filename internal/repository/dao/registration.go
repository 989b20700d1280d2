package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrRegistrationNotFound = errors.New("registration not found")

type Registration struct {
	ID           string `gorm:"type:uuid;primaryKey"`
	EventID      uint   `gorm:"not null;index"`
	FirstName    string `gorm:"not null"`
	LastName     string `gorm:"not null"`
	Email        string `gorm:"not null"`
	Phone        string `gorm:"not null"`
	HealthEntity string `gorm:"not null"`
	RegionName   string `gorm:"not null;index"`
	RoleKey      string `gorm:"not null;index"`
	WantsLodging bool   `gorm:"not null;default:false"`
	ReceiptURL   string `gorm:"not null"`
	// AgreedPrice is written once at insert and never updated.
	AgreedPrice float64 `gorm:"not null"`
	AmountPaid  *float64
	Status      string    `gorm:"not null;default:'pending';index"`
	CreatedAt   time.Time `gorm:"not null;index"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// RegistrationFilter narrows admin listings. Zero values mean "no filter".
type RegistrationFilter struct {
	EventID    uint
	Status     string
	RegionName string
	RoleKey    string
	From       time.Time
	To         time.Time
}

type RegistrationDAO struct {
	db *gorm.DB
}

func NewRegistrationDAO(db *gorm.DB) *RegistrationDAO {
	return &RegistrationDAO{
		db: db,
	}
}

func (d *RegistrationDAO) Insert(ctx context.Context, reg Registration) (Registration, error) {
	result := d.db.WithContext(ctx).Create(&reg)
	if result.Error != nil {
		return Registration{}, result.Error
	}

	return reg, nil
}

func (d *RegistrationDAO) FindByID(ctx context.Context, id string) (Registration, error) {
	var reg Registration

	result := d.db.WithContext(ctx).Where("id = ?", id).First(&reg)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Registration{}, ErrRegistrationNotFound
		}

		return Registration{}, result.Error
	}

	return reg, nil
}

func (d *RegistrationDAO) List(ctx context.Context, filter RegistrationFilter) ([]Registration, error) {
	query := d.db.WithContext(ctx).Model(&Registration{})

	if filter.EventID != 0 {
		query = query.Where("event_id = ?", filter.EventID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.RegionName != "" {
		query = query.Where("region_name = ?", filter.RegionName)
	}
	if filter.RoleKey != "" {
		query = query.Where("role_key = ?", filter.RoleKey)
	}
	if !filter.From.IsZero() {
		query = query.Where("created_at >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("created_at <= ?", filter.To)
	}

	var regs []Registration
	if err := query.Order("created_at DESC").Find(&regs).Error; err != nil {
		return nil, err
	}

	return regs, nil
}

// UpdateStatus flips the status only when the row still holds the expected
// prior status, so two administrators racing on the same record cannot
// silently overwrite each other. Returns the number of rows changed.
func (d *RegistrationDAO) UpdateStatus(ctx context.Context, id, expected, next string) (int64, error) {
	result := d.db.WithContext(ctx).Model(&Registration{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(map[string]any{
			"status":     next,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

func (d *RegistrationDAO) UpdateAmountPaid(ctx context.Context, id string, amount float64) error {
	result := d.db.WithContext(ctx).Model(&Registration{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"amount_paid": amount,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRegistrationNotFound
	}

	return nil
}

func (d *RegistrationDAO) CountByRoleKey(ctx context.Context, eventID uint, roleKey string) (int64, error) {
	var count int64

	err := d.db.WithContext(ctx).Model(&Registration{}).
		Where("event_id = ? AND role_key = ? AND status <> ?", eventID, roleKey, "rejected").
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
