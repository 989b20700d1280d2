package dao

import (
	"context"
	"fmt"
	"testing"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// startPostgres boots a throwaway postgres container and returns a
// migrated gorm handle.
func startPostgres(t *testing.T) *gorm.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err)
	require.NoError(t, pool.Client.Ping())

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=test",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = pool.Purge(resource)
	})
	_ = resource.Expire(180)

	dsn := fmt.Sprintf("host=localhost port=%s user=test password=test dbname=test sslmode=disable",
		resource.GetPort("5432/tcp"))

	var db *gorm.DB
	err = pool.Retry(func() error {
		var openErr error
		db, openErr = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if openErr != nil {
			return openErr
		}

		sqlDB, dbErr := db.DB()
		if dbErr != nil {
			return dbErr
		}

		return sqlDB.Ping()
	})
	require.NoError(t, err)

	require.NoError(t, InitTables(db))

	return db
}

func TestRegistrationDAO_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	db := startPostgres(t)
	ctx := context.Background()

	eventDAO := NewEventDAO(db)
	event, err := eventDAO.Insert(ctx, Event{Name: "Encuentro 2026", Slug: "encuentro-2026", IsActive: true})
	require.NoError(t, err)

	regDAO := NewRegistrationDAO(db)

	reg := Registration{
		ID:          "11111111-1111-1111-1111-111111111111",
		EventID:     event.ID,
		FirstName:   "María",
		LastName:    "Gómez",
		Email:       "maria@example.com",
		Phone:       "3001234567",
		RegionName:  "Bogotá",
		RoleKey:     "laico",
		AgreedPrice: 150000,
		Status:      "pending",
	}

	t.Run("insert and find", func(t *testing.T) {
		created, err := regDAO.Insert(ctx, reg)
		require.NoError(t, err)

		found, err := regDAO.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 150000.0, found.AgreedPrice)
		assert.Equal(t, "pending", found.Status)
	})

	t.Run("conditional status update", func(t *testing.T) {
		affected, err := regDAO.UpdateStatus(ctx, reg.ID, "pending", "approved")
		require.NoError(t, err)
		assert.EqualValues(t, 1, affected)

		// Stale expectation touches no rows.
		affected, err = regDAO.UpdateStatus(ctx, reg.ID, "pending", "rejected")
		require.NoError(t, err)
		assert.EqualValues(t, 0, affected)

		found, err := regDAO.FindByID(ctx, reg.ID)
		require.NoError(t, err)
		assert.Equal(t, "approved", found.Status)
	})

	t.Run("list filters by status", func(t *testing.T) {
		listed, err := regDAO.List(ctx, RegistrationFilter{EventID: event.ID, Status: "approved"})
		require.NoError(t, err)
		require.Len(t, listed, 1)

		listed, err = regDAO.List(ctx, RegistrationFilter{EventID: event.ID, Status: "pending"})
		require.NoError(t, err)
		assert.Empty(t, listed)
	})

	t.Run("count excludes rejected", func(t *testing.T) {
		second := reg
		second.ID = "22222222-2222-2222-2222-222222222222"
		second.Status = "rejected"
		_, err := regDAO.Insert(ctx, second)
		require.NoError(t, err)

		count, err := regDAO.CountByRoleKey(ctx, event.ID, "laico")
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})

	t.Run("find missing", func(t *testing.T) {
		_, err := regDAO.FindByID(ctx, "33333333-3333-3333-3333-333333333333")
		assert.ErrorIs(t, err, ErrRegistrationNotFound)
	})
}

func TestCatalogDAO_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	db := startPostgres(t)
	ctx := context.Background()

	eventDAO := NewEventDAO(db)
	event, err := eventDAO.Insert(ctx, Event{Name: "Encuentro 2026", Slug: "encuentro-2026", IsActive: true})
	require.NoError(t, err)

	catalogDAO := NewCatalogDAO(db)

	t.Run("duplicate region name in one event", func(t *testing.T) {
		_, err := catalogDAO.InsertRegion(ctx, Region{EventID: event.ID, Name: "Bogotá", BasePrice: 120000})
		require.NoError(t, err)

		_, err = catalogDAO.InsertRegion(ctx, Region{EventID: event.ID, Name: "Bogotá", BasePrice: 90000})
		assert.ErrorIs(t, err, ErrRegionNameExists)
	})

	t.Run("role value key update", func(t *testing.T) {
		laico, err := catalogDAO.InsertRoleProfile(ctx, RoleProfile{
			EventID: event.ID, Name: "Laico", ValueKey: "laico", ActiveMethod: "none",
		})
		require.NoError(t, err)
		_, err = catalogDAO.InsertRoleProfile(ctx, RoleProfile{
			EventID: event.ID, Name: "Seminarista", ValueKey: "seminarista", ActiveMethod: "none",
		})
		require.NoError(t, err)

		laico.ValueKey = "laicado"
		updated, err := catalogDAO.UpdateRoleProfile(ctx, laico)
		require.NoError(t, err)
		assert.Equal(t, "laicado", updated.ValueKey)

		laico.ValueKey = "seminarista"
		_, err = catalogDAO.UpdateRoleProfile(ctx, laico)
		assert.ErrorIs(t, err, ErrRoleKeyExists)
	})

	t.Run("pricing config upsert", func(t *testing.T) {
		first, err := catalogDAO.UpsertPricingConfig(ctx, PricingConfig{
			EventID:       event.ID,
			PricingMode:   "per_region",
			LodgingSource: "per_region",
		})
		require.NoError(t, err)

		second, err := catalogDAO.UpsertPricingConfig(ctx, PricingConfig{
			EventID:         event.ID,
			PricingMode:     "global",
			GlobalBasePrice: 80000,
			LodgingSource:   "global_flat",
		})
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, "global", second.PricingMode)
	})

	t.Run("only one active event", func(t *testing.T) {
		other, err := eventDAO.Insert(ctx, Event{Name: "Encuentro 2027", Slug: "encuentro-2027"})
		require.NoError(t, err)

		require.NoError(t, eventDAO.Activate(ctx, other.ID))

		active, err := eventDAO.FindActive(ctx)
		require.NoError(t, err)
		assert.Equal(t, other.ID, active.ID)

		previous, err := eventDAO.FindByID(ctx, event.ID)
		require.NoError(t, err)
		assert.False(t, previous.IsActive)
	})
}
