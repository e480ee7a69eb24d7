package orders

import (
	"github.com/google/uuid"
)

// OrderItemInput is one meal line on an incoming order.
type OrderItemInput struct {
	MealID uuid.UUID `json:"meal_id" validate:"required"`
	Qty    int       `json:"qty" validate:"required,min=1,max=50"`
}

// CreateOrderRequest records a sale. The customer link is optional: staff can
// type a free-text name for walk-ins and attach a CRM customer later or never.
type CreateOrderRequest struct {
	CustomerName   string           `json:"customer_name" validate:"required,min=2,max=120"`
	Phone          string           `json:"phone" validate:"omitempty,max=30"`
	CustomerID     *uuid.UUID       `json:"customer_id"`
	OrderType      string           `json:"order_type" validate:"required,oneof=single pack5 pack10 other"`
	OtherLabel     *string          `json:"other_label" validate:"omitempty,max=120"`
	Delivery       bool             `json:"delivery"`
	ManualSubtotal string           `json:"manual_subtotal"`
	Notes          string           `json:"notes" validate:"omitempty,max=2000"`
	OrderDate      string           `json:"order_date" validate:"omitempty,datetime=2006-01-02"`
	Items          []OrderItemInput `json:"items" validate:"omitempty,max=30,dive"`
}

// ListParams filters the order listing.
type ListParams struct {
	From      string
	To        string
	Status    string
	OrderType string
	Search    string
}

// UpdateStatusRequest moves an order through its payment/delivery lifecycle.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid delivered"`
}
