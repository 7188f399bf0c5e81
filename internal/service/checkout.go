package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jortega/store-api/internal/models"
	"github.com/jortega/store-api/internal/repo"
	"gorm.io/gorm"
)

type CheckoutService struct {
	Repo *repo.GormRepo
}

// Checkout converts the user's active cart into an order inside a single
// transaction: every active line item is re-validated against a fresh product
// read, stock is decremented per product in ascending product id order, items
// and cart flip to purchased and exactly one order row is created. Any
// failure rolls the whole thing back, leaving stock, items and cart untouched.
func (s *CheckoutService) Checkout(ctx context.Context, userID uint) (*models.Order, error) {
	var order *models.Order
	err := s.Repo.Transaction(ctx, func(r *repo.GormRepo) error {
		cart, err := r.ActiveCartWithItems(ctx, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoActiveCart
		}
		if err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		// Validate everything before touching stock. Items come back ordered
		// by product id, so competing checkouts decrement in the same order.
		for _, item := range cart.Items {
			product, err := r.ProductByID(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if item.Quantity > product.Quantity {
				return &StockError{ProductID: product.ID, Remaining: product.Quantity}
			}
		}

		var total float64
		for i := range cart.Items {
			item := &cart.Items[i]

			applied, err := r.DecrementStock(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if !applied {
				// Lost the race against a concurrent checkout between the
				// validation read and the decrement.
				product, err := r.ProductByID(ctx, item.ProductID)
				if err != nil {
					return err
				}
				return &StockError{ProductID: item.ProductID, Remaining: product.Quantity}
			}

			total += float64(item.Quantity) * item.Product.Price

			if !models.LineItemCanTransition(item.Status, models.StatusPurchased) {
				return fmt.Errorf("%w: line item %d cannot be purchased from status %q", ErrConflict, item.ID, item.Status)
			}
			item.Status = models.StatusPurchased
			if err := r.UpdateLineItem(ctx, item); err != nil {
				return err
			}
		}

		if !models.CartCanTransition(cart.Status, models.StatusPurchased) {
			return fmt.Errorf("%w: cart %d cannot be purchased from status %q", ErrConflict, cart.ID, cart.Status)
		}
		cart.Status = models.StatusPurchased
		if err := r.UpdateCartStatus(ctx, cart.ID, models.StatusPurchased); err != nil {
			return err
		}

		order = &models.Order{
			UserID:     userID,
			CartID:     cart.ID,
			TotalPrice: total,
			CreatedAt:  time.Now().Unix(),
		}
		return r.CreateOrder(ctx, order)
	})
	if err != nil {
		return nil, storageErr(err)
	}
	return order, nil
}
