package orders

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lucasmedina/viandas-backend/pkg/config"
	"github.com/lucasmedina/viandas-backend/pkg/enums"
)

// PriceQuote breaks a priced order into its components. Total is always
// subtotal plus delivery fee.
type PriceQuote struct {
	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
	Total       decimal.Decimal
}

// Quote prices an order from the fixed table. Custom orders take the manual
// subtotal as typed by staff; anything unparseable or negative collapses to
// zero rather than blocking the sale.
func Quote(orderType enums.OrderType, table config.PriceTable, delivery bool, manualSubtotal string) PriceQuote {
	var subtotal decimal.Decimal
	switch orderType {
	case enums.OrderTypeSingle:
		subtotal = table.Single
	case enums.OrderTypePack5:
		subtotal = table.Pack5
	case enums.OrderTypePack10:
		subtotal = table.Pack10
	case enums.OrderTypeOther:
		subtotal = parseManualSubtotal(manualSubtotal)
	default:
		subtotal = decimal.Zero
	}

	fee := decimal.Zero
	if delivery {
		fee = table.Delivery
	}

	return PriceQuote{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Total:       subtotal.Add(fee),
	}
}

func parseManualSubtotal(raw string) decimal.Decimal {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || value.IsNegative() {
		return decimal.Zero
	}
	return value
}
