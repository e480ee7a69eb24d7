package enums

import (
	"fmt"
	"strings"
)

// OrderType identifies how an order is priced.
type OrderType string

const (
	// OrderTypeSingle is one loose meal priced per unit.
	OrderTypeSingle OrderType = "single"
	// OrderTypePack5 is the five-meal weekly bundle.
	OrderTypePack5 OrderType = "pack5"
	// OrderTypePack10 is the ten-meal weekly bundle.
	OrderTypePack10 OrderType = "pack10"
	// OrderTypeOther is a custom order with a manually entered price.
	OrderTypeOther OrderType = "other"
)

func (t OrderType) IsValid() bool {
	switch t {
	case OrderTypeSingle, OrderTypePack5, OrderTypePack10, OrderTypeOther:
		return true
	}
	return false
}

// IsPack reports whether the type is one of the bundled pack types.
func (t OrderType) IsPack() bool {
	return strings.HasPrefix(string(t), "pack")
}

func ParseOrderType(value string) (OrderType, error) {
	t := OrderType(strings.ToLower(strings.TrimSpace(value)))
	if !t.IsValid() {
		return "", fmt.Errorf("invalid order type %q", value)
	}
	return t, nil
}
