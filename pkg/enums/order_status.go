package enums

import (
	"fmt"
	"strings"
)

// OrderStatus tracks fulfillment of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusDelivered OrderStatus = "delivered"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusDelivered:
		return true
	}
	return false
}

func ParseOrderStatus(value string) (OrderStatus, error) {
	s := OrderStatus(strings.ToLower(strings.TrimSpace(value)))
	if !s.IsValid() {
		return "", fmt.Errorf("invalid order status %q", value)
	}
	return s, nil
}
