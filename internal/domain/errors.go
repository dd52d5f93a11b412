package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict on insert.
	ErrAlreadyExists = errors.New("already exists")
	// ErrUnauthorized indicates the caller does not own the resource and
	// lacks the privilege to act on it.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrEmptyCart is returned when checkout is attempted on a cart with no items.
	ErrEmptyCart = errors.New("cannot checkout an empty cart")
	// ErrInvalidQuantity is returned for non-positive item quantities.
	ErrInvalidQuantity = errors.New("quantity must be positive")
	// ErrInvalidInput is wrapped by field validation failures so they map
	// to a client error rather than an internal one.
	ErrInvalidInput = errors.New("invalid input")
)

// InsufficientStockError reports that a book does not have enough stock to
// satisfy a requested quantity. The same type is used by the advisory check
// on cart mutation and the authoritative check during checkout.
type InsufficientStockError struct {
	BookID int64
	Title  string
}

func (e *InsufficientStockError) Error() string {
	if e.Title != "" {
		return fmt.Sprintf("not enough stock for book: %s", e.Title)
	}
	return fmt.Sprintf("not enough stock for book id %d", e.BookID)
}

// StatusTransitionError reports an order status change that the transition
// table does not allow.
type StatusTransitionError struct {
	From string
	To   string
}

func (e *StatusTransitionError) Error() string {
	return fmt.Sprintf("cannot transition order status from %s to %s", e.From, e.To)
}
