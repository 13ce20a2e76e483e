package models

import "time"

const (
	OrderStatusPending    = "Pending"
	OrderStatusPreparing  = "Preparing"
	OrderStatusDelivering = "Delivering"
	OrderStatusCompleted  = "Completed"
	OrderStatusCancelled  = "Cancelled"
)

var orderStatuses = map[string]bool{
	OrderStatusPending:    true,
	OrderStatusPreparing:  true,
	OrderStatusDelivering: true,
	OrderStatusCompleted:  true,
	OrderStatusCancelled:  true,
}

func IsKnownOrderStatus(status string) bool {
	return orderStatuses[status]
}

type Order struct {
	ID              string      `json:"id"`
	UserID          int         `json:"userId"`
	TotalPrice      int         `json:"totalPrice"`
	Status          string      `json:"status"`
	AddressID       *int        `json:"addressId,omitempty"`
	Contact         string      `json:"contact,omitempty"`
	Items           []OrderLine `json:"items"`
	PricingWarnings []string    `json:"pricingWarnings,omitempty"`
	CreatedAt       time.Time   `json:"date"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// OrderLine is the frozen copy of a cart line. UnitPrice is base price plus surcharges at checkout time.
type OrderLine struct {
	ID          int      `json:"id"`
	OrderID     string   `json:"orderId"`
	ProductID   int      `json:"productId"`
	ProductName string   `json:"productName"`
	Quantity    int      `json:"quantity"`
	UnitPrice   int      `json:"unitPrice"`
	Options     []string `json:"options"`
	RawOptions  string   `json:"-"`
}

func (l OrderLine) LineTotal() int {
	return l.UnitPrice * l.Quantity
}

type OrderFilter struct {
	Status string
	Page   int
	Limit  int
}
