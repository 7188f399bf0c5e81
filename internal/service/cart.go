package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jortega/store-api/internal/models"
	"github.com/jortega/store-api/internal/repo"
	"gorm.io/gorm"
)

type CartService struct {
	Repo *repo.GormRepo
}

// GetCart returns the user's active cart with its active line items, or an
// empty cart view when none exists yet.
func (s *CartService) GetCart(ctx context.Context, userID uint) (*models.Cart, error) {
	cart, err := s.Repo.ActiveCartWithItems(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.Cart{UserID: userID, Status: models.StatusActive, Items: []models.LineItem{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return cart, nil
}

// AddItem puts qty units of a product into the user's active cart, creating
// the cart on first use. A removed row for the same product is reactivated
// with the fresh quantity; an active one is rejected. Stock is not reserved
// here, only checked against the current snapshot.
func (s *CartService) AddItem(ctx context.Context, userID, productID uint, qty int) (*models.LineItem, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}

	var item *models.LineItem
	err := s.Repo.Transaction(ctx, func(r *repo.GormRepo) error {
		product, err := r.ActiveProduct(ctx, productID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product does not exist", ErrNotFound)
		}
		if err != nil {
			return err
		}
		if qty > product.Quantity {
			return &StockError{ProductID: productID, Remaining: product.Quantity}
		}

		cart, err := r.ActiveCart(ctx, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cart = &models.Cart{UserID: userID, Status: models.StatusActive}
			created, err := r.CreateCart(ctx, cart)
			if err != nil {
				return err
			}
			if !created {
				// A concurrent first-add won the create; use its cart.
				if cart, err = r.ActiveCart(ctx, userID); err != nil {
					return err
				}
			}
		} else if err != nil {
			return err
		}

		existing, err := r.LineItem(ctx, cart.ID, productID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = &models.LineItem{
				CartID:    cart.ID,
				ProductID: productID,
				Quantity:  qty,
				Status:    models.StatusActive,
			}
			return r.CreateLineItem(ctx, item)
		case err != nil:
			return err
		case existing.Status == models.StatusActive:
			return ErrDuplicateItem
		case models.LineItemCanTransition(existing.Status, models.StatusActive):
			existing.Status = models.StatusActive
			existing.Quantity = qty
			item = existing
			return r.UpdateLineItem(ctx, existing)
		default:
			return fmt.Errorf("%w: line item cannot return to the cart from status %q", ErrConflict, existing.Status)
		}
	})
	if err != nil {
		return nil, storageErr(err)
	}
	return item, nil
}

// UpdateItem sets a new quantity on an active line item. Zero removes the
// item, negative values are rejected.
func (s *CartService) UpdateItem(ctx context.Context, userID, productID uint, newQty int) (*models.LineItem, error) {
	if newQty < 0 {
		return nil, fmt.Errorf("%w: cannot send negative values", ErrValidation)
	}

	var item *models.LineItem
	err := s.Repo.Transaction(ctx, func(r *repo.GormRepo) error {
		cart, err := r.ActiveCart(ctx, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoActiveCart
		}
		if err != nil {
			return err
		}

		product, err := r.ActiveProduct(ctx, productID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product does not exist", ErrNotFound)
		}
		if err != nil {
			return err
		}
		if newQty > product.Quantity {
			return &StockError{ProductID: productID, Remaining: product.Quantity}
		}

		item, err = r.ActiveLineItem(ctx, cart.ID, productID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotInCart
		}
		if err != nil {
			return err
		}

		if newQty == 0 {
			item.Quantity = 0
			item.Status = models.StatusRemoved
		} else {
			item.Quantity = newQty
		}
		return r.UpdateLineItem(ctx, item)
	})
	if err != nil {
		return nil, storageErr(err)
	}
	return item, nil
}

// RemoveItem flips the active line item for a product to removed. It is
// scoped to the caller's own active cart.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID uint) error {
	err := s.Repo.Transaction(ctx, func(r *repo.GormRepo) error {
		cart, err := r.ActiveCart(ctx, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotInCart
		}
		if err != nil {
			return err
		}

		item, err := r.ActiveLineItem(ctx, cart.ID, productID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotInCart
		}
		if err != nil {
			return err
		}

		item.Quantity = 0
		item.Status = models.StatusRemoved
		return r.UpdateLineItem(ctx, item)
	})
	return storageErr(err)
}

// storageErr passes domain outcomes through and tags everything else as a
// storage failure.
func storageErr(err error) error {
	if err == nil {
		return nil
	}
	var stockErr *StockError
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrConflict) || errors.Is(err, ErrUnauthorized) ||
		errors.As(err, &stockErr) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
