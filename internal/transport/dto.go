package transport

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AddItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type UpdateItemRequest struct {
	ProductID uint `json:"product_id"`
	NewQty    *int `json:"new_qty"`
}

type ProductRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// OrderView flattens an order with its purchased line items for display,
// decoupled from the write-side entities.
type OrderView struct {
	ID         uint            `json:"id"`
	CartID     uint            `json:"cart_id"`
	TotalPrice float64         `json:"total_price"`
	CreatedAt  int64           `json:"created_at"`
	Items      []OrderItemView `json:"items"`
}

type OrderItemView struct {
	ProductID uint    `json:"product_id"`
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}
