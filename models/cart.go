package models

import "time"

// CartLine is one product entry in a user's active cart. A user holds at most one line per product.
type CartLine struct {
	ID         int       `json:"id"`
	UserID     int       `json:"userId"`
	ProductID  int       `json:"productId"`
	Product    *Product  `json:"product,omitempty"`
	Quantity   int       `json:"quantity"`
	Options    []string  `json:"options"`
	RawOptions string    `json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type CartLineView struct {
	ID           int      `json:"id"`
	ProductID    int      `json:"productId"`
	ProductName  string   `json:"productName"`
	ProductImage string   `json:"productImage"`
	BasePrice    int      `json:"basePrice"`
	UnitPrice    int      `json:"unitPrice"`
	Quantity     int      `json:"quantity"`
	LineTotal    int      `json:"lineTotal"`
	Options      []string `json:"options"`
}

type CartView struct {
	Items      []CartLineView `json:"items"`
	TotalPrice int            `json:"totalPrice"`
}
