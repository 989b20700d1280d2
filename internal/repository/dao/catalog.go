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
	ErrRegionNotFound        = errors.New("region not found")
	ErrRegionNameExists      = errors.New("region name already exists for this event")
	ErrRoleProfileNotFound   = errors.New("role profile not found")
	ErrRoleKeyExists         = errors.New("role value key already exists for this event")
	ErrPricingConfigNotFound = errors.New("pricing config not found")
)

type Region struct {
	ID           uint    `gorm:"primaryKey"`
	EventID      uint    `gorm:"not null;uniqueIndex:idx_regions_event_name"`
	Name         string  `gorm:"not null;uniqueIndex:idx_regions_event_name"`
	BasePrice    float64 `gorm:"not null;default:0"`
	LodgingPrice float64 `gorm:"not null;default:0"`
	ContactEmail string
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

type RoleProfile struct {
	ID                  uint    `gorm:"primaryKey"`
	EventID             uint    `gorm:"not null;uniqueIndex:idx_role_profiles_event_key"`
	Name                string  `gorm:"not null"`
	ValueKey            string  `gorm:"not null;uniqueIndex:idx_role_profiles_event_key"`
	ActiveMethod        string  `gorm:"not null;default:'none'"` // "percentage", "fixed", or "none"
	DiscountPercentage  float64 `gorm:"not null;default:0"`
	DiscountFixedAmount float64 `gorm:"not null;default:0"`
	Capacity            *int
	Color               string
	CreatedAt           time.Time `gorm:"not null"`
	UpdatedAt           time.Time `gorm:"not null"`
}

type PricingConfig struct {
	ID                 uint    `gorm:"primaryKey"`
	EventID            uint    `gorm:"not null;uniqueIndex"`
	PricingMode        string  `gorm:"not null;default:'per_region'"` // "global" or "per_region"
	GlobalBasePrice    float64 `gorm:"not null;default:0"`
	LodgingSource      string  `gorm:"not null;default:'per_region'"` // "per_region" or "global_flat"
	GlobalLodgingPrice float64 `gorm:"not null;default:0"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type HealthEntity struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"unique;not null"`
}

type CatalogDAO struct {
	db *gorm.DB
}

func NewCatalogDAO(db *gorm.DB) *CatalogDAO {
	return &CatalogDAO{
		db: db,
	}
}

func (d *CatalogDAO) InsertRegion(ctx context.Context, region Region) (Region, error) {
	result := d.db.WithContext(ctx).Create(&region)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "idx_regions_event_name") {
			return Region{}, ErrRegionNameExists
		}

		return Region{}, result.Error
	}

	return region, nil
}

func (d *CatalogDAO) UpdateRegion(ctx context.Context, region Region) (Region, error) {
	result := d.db.WithContext(ctx).Model(&Region{}).
		Where("id = ?", region.ID).
		Updates(map[string]any{
			"name":          region.Name,
			"base_price":    region.BasePrice,
			"lodging_price": region.LodgingPrice,
			"contact_email": region.ContactEmail,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error, "idx_regions_event_name") {
			return Region{}, ErrRegionNameExists
		}

		return Region{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Region{}, ErrRegionNotFound
	}

	var updated Region
	if err := d.db.WithContext(ctx).First(&updated, region.ID).Error; err != nil {
		return Region{}, err
	}

	return updated, nil
}

// DeleteRegion removes the row without touching registrations that
// reference it by name. Orphaned references are tolerated.
func (d *CatalogDAO) DeleteRegion(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Region{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRegionNotFound
	}

	return nil
}

func (d *CatalogDAO) FindRegionsByEvent(ctx context.Context, eventID uint) ([]Region, error) {
	var regions []Region

	result := d.db.WithContext(ctx).Where("event_id = ?", eventID).Order("name").Find(&regions)
	if result.Error != nil {
		return nil, result.Error
	}

	return regions, nil
}

func (d *CatalogDAO) InsertRoleProfile(ctx context.Context, role RoleProfile) (RoleProfile, error) {
	result := d.db.WithContext(ctx).Create(&role)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "idx_role_profiles_event_key") {
			return RoleProfile{}, ErrRoleKeyExists
		}

		return RoleProfile{}, result.Error
	}

	return role, nil
}

func (d *CatalogDAO) UpdateRoleProfile(ctx context.Context, role RoleProfile) (RoleProfile, error) {
	result := d.db.WithContext(ctx).Model(&RoleProfile{}).
		Where("id = ?", role.ID).
		Updates(map[string]any{
			"name":                  role.Name,
			"value_key":             role.ValueKey,
			"active_method":         role.ActiveMethod,
			"discount_percentage":   role.DiscountPercentage,
			"discount_fixed_amount": role.DiscountFixedAmount,
			"capacity":              role.Capacity,
			"color":                 role.Color,
			"updated_at":            time.Now(),
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error, "idx_role_profiles_event_key") {
			return RoleProfile{}, ErrRoleKeyExists
		}

		return RoleProfile{}, result.Error
	}
	if result.RowsAffected == 0 {
		return RoleProfile{}, ErrRoleProfileNotFound
	}

	var updated RoleProfile
	if err := d.db.WithContext(ctx).First(&updated, role.ID).Error; err != nil {
		return RoleProfile{}, err
	}

	return updated, nil
}

func (d *CatalogDAO) DeleteRoleProfile(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&RoleProfile{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRoleProfileNotFound
	}

	return nil
}

func (d *CatalogDAO) FindRoleProfilesByEvent(ctx context.Context, eventID uint) ([]RoleProfile, error) {
	var roles []RoleProfile

	result := d.db.WithContext(ctx).Where("event_id = ?", eventID).Order("name").Find(&roles)
	if result.Error != nil {
		return nil, result.Error
	}

	return roles, nil
}

func (d *CatalogDAO) FindPricingConfigByEvent(ctx context.Context, eventID uint) (PricingConfig, error) {
	var conf PricingConfig

	result := d.db.WithContext(ctx).Where("event_id = ?", eventID).First(&conf)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return PricingConfig{}, ErrPricingConfigNotFound
		}

		return PricingConfig{}, result.Error
	}

	return conf, nil
}

// UpsertPricingConfig keeps the one-row-per-event invariant: it updates the
// existing row for the event or creates it when missing.
func (d *CatalogDAO) UpsertPricingConfig(ctx context.Context, conf PricingConfig) (PricingConfig, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing PricingConfig
		err := tx.Where("event_id = ?", conf.EventID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&conf).Error
		}
		if err != nil {
			return err
		}

		conf.ID = existing.ID
		conf.CreatedAt = existing.CreatedAt
		return tx.Save(&conf).Error
	})
	if err != nil {
		return PricingConfig{}, err
	}

	return conf, nil
}

func (d *CatalogDAO) FindHealthEntities(ctx context.Context) ([]HealthEntity, error) {
	var entities []HealthEntity

	result := d.db.WithContext(ctx).Order("name").Find(&entities)
	if result.Error != nil {
		return nil, result.Error
	}

	return entities, nil
}

func (d *CatalogDAO) SeedHealthEntities(ctx context.Context, names []string) error {
	for _, name := range names {
		entity := HealthEntity{Name: name}
		err := d.db.WithContext(ctx).Where("name = ?", name).FirstOrCreate(&entity).Error
		if err != nil {
			return err
		}
	}

	return nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == pgerrcode.UniqueViolation &&
		strings.Contains(pgErr.Message, constraint)
}
