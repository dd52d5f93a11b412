package domain

import "time"

// Order statuses form a closed set. An order starts PENDING and moves
// forward through the fulfillment chain; CANCELLED is reachable from any
// non-terminal status.
const (
	StatusPending   = "PENDING"
	StatusPaid      = "PAID"
	StatusShipped   = "SHIPPED"
	StatusDelivered = "DELIVERED"
	StatusCancelled = "CANCELLED"
)

var statusTransitions = map[string][]string{
	StatusPending: {StatusPaid, StatusCancelled},
	StatusPaid:    {StatusShipped, StatusCancelled},
	StatusShipped: {StatusDelivered, StatusCancelled},
}

// ValidStatus reports whether s is one of the known order statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order is immutable after creation except for Status.
type Order struct {
	ID              int64       `json:"id"`
	UserID          int64       `json:"userId"`
	UserName        string      `json:"userName,omitempty"`
	Status          string      `json:"status"`
	TotalCents      int64       `json:"totalCents"`
	ShippingAddress string      `json:"shippingAddress"`
	PaymentMethod   string      `json:"paymentMethod"`
	OrderDate       time.Time   `json:"orderDate"`
	Items           []OrderItem `json:"items"`
}

// OrderItem carries its own copies of title, author and price so the order
// stays readable if the book is later edited or removed.
type OrderItem struct {
	ID             int64  `json:"id"`
	OrderID        int64  `json:"-"`
	BookID         int64  `json:"bookId"`
	BookTitle      string `json:"bookTitle"`
	BookAuthor     string `json:"bookAuthor"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"priceCents"`
	SubtotalCents  int64  `json:"subtotalCents"`
}
