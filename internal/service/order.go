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

type OrderService struct {
	Repo *repo.GormRepo
}

// ListOrders returns the user's purchase history, each order flattened with
// its purchased line items and product titles.
func (s *OrderService) ListOrders(ctx context.Context, userID uint) ([]transport.OrderView, error) {
	orders, err := s.Repo.OrdersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	views := make([]transport.OrderView, 0, len(orders))
	for i := range orders {
		view, err := s.orderView(ctx, &orders[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (s *OrderService) GetOrder(ctx context.Context, userID, orderID uint) (*transport.OrderView, error) {
	order, err := s.Repo.OrderByID(ctx, userID, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: order does not exist", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return s.orderView(ctx, order)
}

func (s *OrderService) orderView(ctx context.Context, order *models.Order) (*transport.OrderView, error) {
	items, err := s.Repo.PurchasedItems(ctx, order.CartID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	view := &transport.OrderView{
		ID:         order.ID,
		CartID:     order.CartID,
		TotalPrice: order.TotalPrice,
		CreatedAt:  order.CreatedAt,
		Items:      make([]transport.OrderItemView, 0, len(items)),
	}
	for _, item := range items {
		view.Items = append(view.Items, transport.OrderItemView{
			ProductID: item.ProductID,
			Title:     item.Product.Title,
			Quantity:  item.Quantity,
			UnitPrice: item.Product.Price,
		})
	}
	return view, nil
}
