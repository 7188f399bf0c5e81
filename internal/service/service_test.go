package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jortega/store-api/internal/models"
	"github.com/jortega/store-api/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Cart{},
		&models.LineItem{},
		&models.Order{},
	))
	return &repo.GormRepo{DB: db}
}

func seedProduct(t *testing.T, r *repo.GormRepo, title string, price float64, qty int) *models.Product {
	t.Helper()

	product := &models.Product{
		Title:       title,
		Description: "test product",
		Price:       price,
		Quantity:    qty,
		Status:      models.StatusActive,
		UserID:      99,
	}
	require.NoError(t, r.DB.Create(product).Error)
	return product
}

func productQty(t *testing.T, r *repo.GormRepo, id uint) int {
	t.Helper()

	var product models.Product
	require.NoError(t, r.DB.First(&product, id).Error)
	return product.Quantity
}
