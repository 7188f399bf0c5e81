package service

import (
	"errors"
	"fmt"
)

// Error taxonomy. Handlers map these onto HTTP statuses; everything here is an
// expected outcome, not a fault.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("storage unavailable")
)

var (
	ErrNoActiveCart  = fmt.Errorf("%w: you do not have an active cart", ErrNotFound)
	ErrNotInCart     = fmt.Errorf("%w: this product is not in your cart", ErrNotFound)
	ErrDuplicateItem = fmt.Errorf("%w: this product is already active in your cart", ErrConflict)
	ErrEmptyCart     = fmt.Errorf("%w: cart has no active items", ErrConflict)
)

// StockError reports a requested quantity above what remains for a product,
// either at cart mutation time or at checkout commit.
type StockError struct {
	ProductID uint
	Remaining int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("product %d only has %d items", e.ProductID, e.Remaining)
}

func (e *StockError) Is(target error) bool {
	return target == ErrConflict
}
