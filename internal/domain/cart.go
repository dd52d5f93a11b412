package domain

import "time"

// Cart is the user's single mutable cart. TotalCents is maintained by the
// repository as the sum of item subtotals after every mutation.
type Cart struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"-"`
	TotalCents int64      `json:"totalCents"`
	ItemCount  int        `json:"itemCount"`
	Items      []CartItem `json:"items"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// CartItem references its book by id only. UnitPriceCents is the price
// snapshot taken when the item was first added, not necessarily the book's
// current price.
type CartItem struct {
	ID             int64     `json:"id"`
	CartID         int64     `json:"-"`
	BookID         int64     `json:"bookId"`
	BookTitle      string    `json:"bookTitle,omitempty"`
	BookAuthor     string    `json:"bookAuthor,omitempty"`
	BookImage      string    `json:"bookImage,omitempty"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int64     `json:"priceCents"`
	SubtotalCents  int64     `json:"subtotalCents"`
	CreatedAt      time.Time `json:"addedAt"`
}
