package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andescode/event-registration-api/internal/domain"
)

type fakeAdminRepo struct {
	admins map[string]domain.Admin
	nextID uint
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: map[string]domain.Admin{}}
}

func (f *fakeAdminRepo) Create(_ context.Context, admin domain.Admin) (domain.Admin, error) {
	if _, ok := f.admins[admin.Email]; ok {
		return domain.Admin{}, ErrAdminEmailExists
	}

	f.nextID++
	admin.ID = f.nextID
	f.admins[admin.Email] = admin

	return admin, nil
}

func (f *fakeAdminRepo) FindByEmail(_ context.Context, email string) (domain.Admin, error) {
	admin, ok := f.admins[email]
	if !ok {
		return domain.Admin{}, ErrAdminNotFound
	}

	return admin, nil
}

func (f *fakeAdminRepo) FindByID(_ context.Context, id uint) (domain.Admin, error) {
	for _, admin := range f.admins {
		if admin.ID == id {
			return admin, nil
		}
	}

	return domain.Admin{}, ErrAdminNotFound
}

func (f *fakeAdminRepo) Count(context.Context) (int64, error) {
	return int64(len(f.admins)), nil
}

func TestAuthService_Login(t *testing.T) {
	repo := newFakeAdminRepo()
	svc := NewAuthService(repo)

	created, err := svc.CreateAdmin(context.Background(), domain.Admin{
		Email:    "admin@example.com",
		Password: "Secret123",
		Name:     "Admin",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "Secret123", created.Password)

	t.Run("valid credentials", func(t *testing.T) {
		admin, err := svc.Login(context.Background(), "admin@example.com", "Secret123")

		require.NoError(t, err)
		assert.Equal(t, created.ID, admin.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "admin@example.com", "WrongPass1")

		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "nobody@example.com", "Secret123")

		assert.ErrorIs(t, err, ErrAdminNotFound)
	})
}

func TestAuthService_SeedAdmin(t *testing.T) {
	t.Run("seeds an empty table", func(t *testing.T) {
		repo := newFakeAdminRepo()
		svc := NewAuthService(repo)

		err := svc.SeedAdmin(context.Background(), "admin@example.com", "Secret123")

		require.NoError(t, err)
		_, err = svc.Login(context.Background(), "admin@example.com", "Secret123")
		assert.NoError(t, err)
	})

	t.Run("does nothing when admins exist", func(t *testing.T) {
		repo := newFakeAdminRepo()
		svc := NewAuthService(repo)

		_, err := svc.CreateAdmin(context.Background(), domain.Admin{Email: "first@example.com", Password: "Secret123"})
		require.NoError(t, err)

		err = svc.SeedAdmin(context.Background(), "admin@example.com", "Secret123")

		require.NoError(t, err)
		assert.Len(t, repo.admins, 1)
	})

	t.Run("does nothing without credentials configured", func(t *testing.T) {
		repo := newFakeAdminRepo()
		svc := NewAuthService(repo)

		err := svc.SeedAdmin(context.Background(), "", "")

		require.NoError(t, err)
		assert.Empty(t, repo.admins)
	})
}
