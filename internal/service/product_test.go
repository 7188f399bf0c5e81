package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jortega/store-api/internal/models"
	"github.com/jortega/store-api/internal/transport"
)

func TestProductLifecycle(t *testing.T) {
	r := newTestRepo(t)
	svc := &ProductService{Repo: r}

	product, err := svc.Create(context.Background(), 1, transport.ProductRequest{
		Title:       "keyboard",
		Description: "mechanical",
		Price:       50,
		Quantity:    5,
	})
	require.NoError(t, err)
	require.Equal(t, models.StatusActive, product.Status)

	got, err := svc.Get(context.Background(), product.ID)
	require.NoError(t, err)
	require.Equal(t, "keyboard", got.Title)

	updated, err := svc.Update(context.Background(), 1, product.ID, transport.ProductRequest{
		Title:       "keyboard v2",
		Description: "mechanical",
		Price:       60,
		Quantity:    7,
	})
	require.NoError(t, err)
	require.Equal(t, 60.0, updated.Price)

	// Only the owner may mutate.
	_, err = svc.Update(context.Background(), 2, product.ID, transport.ProductRequest{Title: "x"})
	require.ErrorIs(t, err, ErrUnauthorized)
	err = svc.Delete(context.Background(), 2, product.ID)
	require.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, svc.Delete(context.Background(), 1, product.ID))

	// Soft delete: gone from the catalog, the row survives.
	_, err = svc.Get(context.Background(), product.ID)
	require.ErrorIs(t, err, ErrNotFound)
	var row models.Product
	require.NoError(t, r.DB.First(&row, product.ID).Error)
	require.Equal(t, models.StatusRemoved, row.Status)
}

func TestProductValidation(t *testing.T) {
	r := newTestRepo(t)
	svc := &ProductService{Repo: r}

	_, err := svc.Create(context.Background(), 1, transport.ProductRequest{Title: ""})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), 1, transport.ProductRequest{Title: "x", Price: -1})
	require.ErrorIs(t, err, ErrValidation)
}

func TestProductList(t *testing.T) {
	r := newTestRepo(t)
	svc := &ProductService{Repo: r}

	seedProduct(t, r, "keyboard", 50, 5)
	seedProduct(t, r, "mouse", 20, 5)
	removed := seedProduct(t, r, "legacy", 10, 0)
	require.NoError(t, r.DB.Model(removed).Update("status", models.StatusRemoved).Error)

	products, total, err := svc.List(context.Background(), 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, products, 2)
}
