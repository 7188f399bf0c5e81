package repo

import (
	"context"

	"github.com/jortega/store-api/internal/models"
	"gorm.io/gorm"
)

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

func (r *GormRepo) OrdersByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) OrderByID(ctx context.Context, userID, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// PurchasedItems loads the purchased line items of a cart with their product
// rows, for order display.
func (r *GormRepo) PurchasedItems(ctx context.Context, cartID uint) ([]models.LineItem, error) {
	var items []models.LineItem
	if err := r.DB.WithContext(ctx).
		Where("cart_id = ? AND status = ?", cartID, models.StatusPurchased).
		Order("product_id ASC").
		Preload("Product", func(db *gorm.DB) *gorm.DB { return db.Select("id", "title", "price") }).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
