package seeder

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"riya-portal/internal/config"
	"riya-portal/internal/database"
	"riya-portal/internal/domain/user"
	"riya-portal/internal/repository"
)

// AdminSeeder creates the configured back-office account when no user with
// that email exists. Accounts are never updated here.
type AdminSeeder struct {
	Admin  config.AdminConfig
	Logger *log.Logger
}

func (AdminSeeder) Name() string { return "admin_user" }

func (s AdminSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "users", "id", "username", "email", "password_hash"); err != nil {
		return err
	}
	created, err := seedAdmin(ctx, repository.NewPostgresUserRepository(db), s.Admin)
	if err != nil {
		return err
	}
	if s.Logger != nil {
		if created {
			s.Logger.Printf("[Seeder] admin created email=%s", s.Admin.Email)
		} else {
			s.Logger.Printf("[Seeder] admin seeding skipped email=%s", s.Admin.Email)
		}
	}
	return nil
}

func seedAdmin(ctx context.Context, users user.Repository, admin config.AdminConfig) (bool, error) {
	email := strings.ToLower(strings.TrimSpace(admin.Email))
	if email == "" || admin.Password == "" {
		return false, nil
	}

	_, err := users.GetByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, user.ErrNotFound) {
		return false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	username := strings.TrimSpace(admin.Username)
	if username == "" {
		username = "admin"
	}
	err = users.Create(ctx, user.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	})
	if errors.Is(err, user.ErrEmailTaken) {
		return false, nil
	}
	return err == nil, err
}
