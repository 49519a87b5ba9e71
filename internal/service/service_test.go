package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/freshkart/shopapi/internal/models"
	"github.com/freshkart/shopapi/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	return &repo.GormRepo{DB: db}
}

// fakeSigner resolves object keys without touching a real bucket.
type fakeSigner struct{}

func (fakeSigner) SignedURL(_ context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}
	return "https://signed.example/" + key, nil
}

func seedUser(t *testing.T, rp *repo.GormRepo, name, email string) *models.User {
	t.Helper()

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: "x",
		Role:         models.RoleUser,
	}
	require.NoError(t, rp.CreateUser(context.Background(), &user))
	return &user
}

func seedProduct(t *testing.T, rp *repo.GormRepo, title, img string) *models.Product {
	t.Helper()

	product := models.Product{
		Title:    title,
		NewPrice: "49",
		Img:      img,
	}
	require.NoError(t, rp.CreateProduct(context.Background(), &product))
	return &product
}

func newUserID() uuid.UUID { return uuid.New() }
