package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/andescode/event-registration-api/internal/domain"
	"github.com/andescode/event-registration-api/internal/repository"
)

var (
	ErrAdminEmailExists = repository.ErrAdminEmailExists
	ErrAdminNotFound    = repository.ErrAdminNotFound
	ErrWrongPassword    = errors.New("wrong password")
)

type AdminRepository interface {
	Create(ctx context.Context, admin domain.Admin) (domain.Admin, error)
	FindByEmail(ctx context.Context, email string) (domain.Admin, error)
	FindByID(ctx context.Context, id uint) (domain.Admin, error)
	Count(ctx context.Context) (int64, error)
}

type AuthService struct {
	repo AdminRepository
}

func NewAuthService(repo AdminRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Admin, error) {
	admin, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return domain.Admin{}, ErrAdminNotFound
		}

		return domain.Admin{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return domain.Admin{}, ErrWrongPassword
	}

	return admin, nil
}

func (s *AuthService) CreateAdmin(ctx context.Context, admin domain.Admin) (domain.Admin, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Admin{}, err
	}
	admin.Password = string(hash)

	created, err := s.repo.Create(ctx, admin)
	if err != nil {
		return domain.Admin{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// SeedAdmin creates the bootstrap administrator when the table is empty so
// a fresh deployment has a working console login.
func (s *AuthService) SeedAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("s.repo.Count -> %w", err)
	}
	if count > 0 {
		return nil
	}

	_, err = s.CreateAdmin(ctx, domain.Admin{
		Email:    email,
		Password: password,
		Name:     "Administrator",
	})
	if err != nil && !errors.Is(err, ErrAdminEmailExists) {
		return err
	}

	return nil
}

func (s *AuthService) GetAdmin(ctx context.Context, id uint) (domain.Admin, error) {
	admin, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Admin{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return admin, nil
}
