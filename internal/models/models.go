package models

// Entity statuses. Rows are never deleted, only flagged.
const (
	StatusActive    = "active"
	StatusRemoved   = "removed"
	StatusPurchased = "purchased"
	StatusDeleted   = "deleted"
)

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	Email        string `gorm:"unique;not null"          json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null"                 json:"role"`
	Status       string `gorm:"not null;default:active"  json:"status"`
}

type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement"     json:"id"`
	Title       string  `gorm:"not null"                     json:"title"`
	Description string  `gorm:"not null"                     json:"description"`
	Price       float64 `gorm:"not null"                     json:"price"`
	Quantity    int     `gorm:"not null;check:quantity >= 0" json:"quantity"`
	Status      string  `gorm:"not null;default:active"      json:"status"`
	UserID      uint    `gorm:"index;not null"               json:"user_id"`
}

// Cart's partial unique index keeps one active cart per user at the schema
// level; purchased carts do not count against it.
type Cart struct {
	ID     uint       `gorm:"primaryKey;autoIncrement"                                               json:"id"`
	UserID uint       `gorm:"index;uniqueIndex:idx_one_active_cart,where:status = 'active';not null" json:"user_id"`
	Status string     `gorm:"not null;default:active"                                                json:"status"`
	Items  []LineItem `gorm:"foreignKey:CartID"                                                      json:"items,omitempty"`
}

// LineItem is one product's presence in a cart. The unique (cart, product)
// index means a removed row is reactivated on re-add, never duplicated.
type LineItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"              json:"id"`
	CartID    uint    `gorm:"uniqueIndex:idx_cart_product;not null" json:"cart_id"`
	ProductID uint    `gorm:"uniqueIndex:idx_cart_product;not null" json:"product_id"`
	Quantity  int     `gorm:"not null"                              json:"quantity"`
	Status    string  `gorm:"not null;default:active"               json:"status"`
	Product   Product `gorm:"foreignKey:ProductID"                  json:"product,omitempty"`
}

// Order is append-only: one row per purchased cart, immutable after creation.
type Order struct {
	ID         uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint    `gorm:"index;not null"           json:"user_id"`
	CartID     uint    `gorm:"uniqueIndex;not null"     json:"cart_id"`
	TotalPrice float64 `gorm:"not null"                 json:"total_price"`
	CreatedAt  int64   `gorm:"not null"                 json:"created_at"`
}

var lineItemTransitions = map[string]map[string]bool{
	StatusActive:  {StatusRemoved: true, StatusPurchased: true},
	StatusRemoved: {StatusActive: true},
}

var cartTransitions = map[string]map[string]bool{
	StatusActive: {StatusPurchased: true},
}

// LineItemCanTransition reports whether a line item may move between the two
// statuses. Purchased is terminal.
func LineItemCanTransition(from, to string) bool {
	return lineItemTransitions[from][to]
}

func CartCanTransition(from, to string) bool {
	return cartTransitions[from][to]
}
