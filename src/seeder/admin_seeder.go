package seeder

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"sgformer-backend/src/config"
	"sgformer-backend/src/models"
	"sgformer-backend/src/repository"
	"sgformer-backend/src/services/auth"
)

// SeedAdmin creates the bootstrap admin when ADMIN_EMAIL and ADMIN_PASSWORD
// are set and no account with that email exists yet.
func SeedAdmin(ctx context.Context, users repository.UserStore, cfg config.Admin) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(cfg.Email))
	if email == "" || cfg.Password == "" {
		return nil, nil
	}

	existing, err := users.FindByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("find admin: %w", err)
	}

	hash, err := auth.HashPassword(cfg.Password)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	now := time.Now()
	admin := &models.User{
		Email:        email,
		Name:         cfg.Name,
		Role:         models.RoleAdmin,
		IsActive:     true,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	log.Println("✅ Admin account created:", email)
	return admin, nil
}
