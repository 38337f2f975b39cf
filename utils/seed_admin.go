package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/petiverse/petiversebackend/database"
	"github.com/petiverse/petiversebackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

// SeedAdminUser inserts the admin account unless a user with that email
// already exists. Empty credentials skip seeding.
func SeedAdminUser(ctx context.Context, users database.Collection[models.User], email, pass string) error {
	if email == "" || pass == "" {
		zap.L().Info("admin seed skipped: ADMIN_EMAIL or ADMIN_PASSWORD not set")
		return nil
	}

	_, err := users.FindOne(ctx, bson.M{"email": email})
	if err == nil {
		zap.L().Info("admin user already exists", zap.String("email", email))
		return nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("look up admin: %w", err)
	}

	hash, err := HashPassword(pass)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := models.User{
		Username:     "admin",
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := users.Insert(ctx, &admin); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	zap.L().Info("admin user seeded", zap.String("email", email))
	return nil
}
