package repo

import (
	"context"

	"github.com/jortega/store-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (r *GormRepo) ActiveCart(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.StatusActive).
		First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// ActiveCartWithItems loads the user's active cart together with its active
// line items and their products, ordered by product id.
func (r *GormRepo) ActiveCartWithItems(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.StatusActive).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", models.StatusActive).Order("product_id ASC")
		}).
		Preload("Items.Product").
		First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// CreateCart inserts a new cart unless the user already has an active one.
// The partial unique index on carts collapses concurrent first-adds to a
// single row; when created is false the caller must re-read the winner.
func (r *GormRepo) CreateCart(ctx context.Context, cart *models.Cart) (bool, error) {
	res := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(cart)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *GormRepo) UpdateCartStatus(ctx context.Context, cartID uint, status string) error {
	return r.DB.WithContext(ctx).Model(&models.Cart{}).
		Where("id = ?", cartID).
		Update("status", status).Error
}

// LineItem finds the row for a (cart, product) pair regardless of status.
func (r *GormRepo) LineItem(ctx context.Context, cartID, productID uint) (*models.LineItem, error) {
	var item models.LineItem
	if err := r.DB.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) ActiveLineItem(ctx context.Context, cartID, productID uint) (*models.LineItem, error) {
	var item models.LineItem
	if err := r.DB.WithContext(ctx).
		Where("cart_id = ? AND product_id = ? AND status = ?", cartID, productID, models.StatusActive).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) CreateLineItem(ctx context.Context, item *models.LineItem) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

// UpdateLineItem persists quantity and status only, never the loaded
// product association.
func (r *GormRepo) UpdateLineItem(ctx context.Context, item *models.LineItem) error {
	return r.DB.WithContext(ctx).Model(&models.LineItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{"quantity": item.Quantity, "status": item.Status}).Error
}
