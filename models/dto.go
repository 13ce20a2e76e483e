package models

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=2"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

type AddCartItemRequest struct {
	ProductID int      `json:"productId" binding:"required"`
	Quantity  int      `json:"quantity"`
	Options   []string `json:"options"`
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// CheckoutRequest ignores any client-supplied items or totals; the cart is the only source.
type CheckoutRequest struct {
	AddressID *int   `json:"addressId"`
	Contact   string `json:"contact"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AddressRequest struct {
	ReceiverName string `json:"receiverName" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	AddressLine1 string `json:"addressLine1" binding:"required"`
	AddressLine2 string `json:"addressLine2"`
	IsDefault    bool   `json:"isDefault"`
}

type UpdateAddressRequest struct {
	ReceiverName *string `json:"receiverName"`
	Phone        *string `json:"phone"`
	AddressLine1 *string `json:"addressLine1"`
	AddressLine2 *string `json:"addressLine2"`
	IsDefault    *bool   `json:"isDefault"`
}

type CreateProductRequest struct {
	CategoryID  int    `json:"categoryId" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int    `json:"price" binding:"required,min=0"`
	ImageURL    string `json:"imageUrl"`
}

type UpdateProductRequest struct {
	CategoryID  *int    `json:"categoryId"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int    `json:"price"`
	ImageURL    *string `json:"imageUrl"`
	IsActive    *bool   `json:"isActive"`
}
