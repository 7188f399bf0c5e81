package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jortega/store-api/internal/models"
	"github.com/jortega/store-api/internal/repo"
	"github.com/jortega/store-api/internal/transport"
	"gorm.io/gorm"
)

// ProductService is the catalog collaborator. It is the sole mutator of
// title, description, price and status; available quantity is only ever
// decremented by checkout.
type ProductService struct {
	Repo *repo.GormRepo
}

func (s *ProductService) Create(ctx context.Context, userID uint, req transport.ProductRequest) (*models.Product, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if req.Price < 0 || req.Quantity < 0 {
		return nil, fmt.Errorf("%w: price and quantity must not be negative", ErrValidation)
	}

	product := &models.Product{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Status:      models.StatusActive,
		UserID:      userID,
	}
	if err := s.Repo.CreateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return product, nil
}

func (s *ProductService) Get(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.Repo.ActiveProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: product does not exist", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return product, nil
}

func (s *ProductService) List(ctx context.Context, offset, limit int) ([]models.Product, int64, error) {
	products, total, err := s.Repo.ActiveProducts(ctx, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return products, total, nil
}

func (s *ProductService) Update(ctx context.Context, userID, id uint, req transport.ProductRequest) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.UserID != userID {
		return nil, fmt.Errorf("%w: not authorized to update this product", ErrUnauthorized)
	}
	if req.Price < 0 || req.Quantity < 0 {
		return nil, fmt.Errorf("%w: price and quantity must not be negative", ErrValidation)
	}

	product.Title = req.Title
	product.Description = req.Description
	product.Price = req.Price
	product.Quantity = req.Quantity
	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return product, nil
}

// Delete soft-deletes: the row stays, flagged removed, so existing line items
// and orders keep a valid reference.
func (s *ProductService) Delete(ctx context.Context, userID, id uint) error {
	product, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if product.UserID != userID {
		return fmt.Errorf("%w: not authorized to delete this product", ErrUnauthorized)
	}

	product.Status = models.StatusRemoved
	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
