package seeder

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sgformer-backend/src/config"
	"sgformer-backend/src/models"
	"sgformer-backend/src/repository"
	"sgformer-backend/src/services/auth"
	"sgformer-backend/src/services/forms"
)

func TestSeedAdmin(t *testing.T) {
	ctx := context.Background()
	users := repository.NewMemoryUserStore()
	cfg := config.Admin{Email: "Root@Example.com", Password: "s3cret!", Name: "Root"}

	admin, err := SeedAdmin(ctx, users, cfg)
	require.NoError(t, err)
	assert.Equal(t, "root@example.com", admin.Email)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.True(t, auth.CheckPassword(admin.PasswordHash, "s3cret!"))

	again, err := SeedAdmin(ctx, users, cfg)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, again.ID)

	none, err := SeedAdmin(ctx, users, config.Admin{})
	assert.NoError(t, err)
	assert.Nil(t, none)
}

func TestSeedSampleForms(t *testing.T) {
	ctx := context.Background()
	stores := repository.NewMemoryStores()
	svc := forms.NewService(stores, slog.New(slog.NewTextHandler(io.Discard, nil)))
	owner := &models.User{Email: "root@example.com", Role: models.RoleAdmin, IsActive: true}
	require.NoError(t, stores.Users.Create(ctx, owner))

	require.NoError(t, SeedSampleForms(ctx, stores, svc, owner))
	require.NoError(t, SeedSampleForms(ctx, stores, svc, owner))

	n, err := stores.Forms.Count(ctx, repository.FormFilter{CreatedBy: &owner.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
