package orders

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/lucasmedina/viandas-backend/pkg/config"
	"github.com/lucasmedina/viandas-backend/pkg/enums"
)

func testPriceTable() config.PriceTable {
	return config.PricesConfig{
		Single:   9800,
		Pack5:    49000,
		Pack10:   92000,
		Delivery: 3300,
	}.Table()
}

func TestQuote_FixedTable(t *testing.T) {
	table := testPriceTable()

	cases := []struct {
		name      string
		orderType enums.OrderType
		delivery  bool
		manual    string
		subtotal  int64
		fee       int64
	}{
		{"single pickup", enums.OrderTypeSingle, false, "", 9800, 0},
		{"single delivered", enums.OrderTypeSingle, true, "", 9800, 3300},
		{"pack5", enums.OrderTypePack5, false, "", 49000, 0},
		{"pack10 delivered", enums.OrderTypePack10, true, "", 92000, 3300},
		{"other with manual price", enums.OrderTypeOther, false, "15500", 15500, 0},
		{"other manual ignored decimals ok", enums.OrderTypeOther, true, "15500.50", 15500, 3300},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			quote := Quote(tc.orderType, table, tc.delivery, tc.manual)
			wantSubtotal := decimal.NewFromInt(tc.subtotal)
			if tc.name == "other manual ignored decimals ok" {
				wantSubtotal = decimal.NewFromFloat(15500.50)
			}
			assert.True(t, quote.Subtotal.Equal(wantSubtotal), "subtotal %s", quote.Subtotal)
			assert.True(t, quote.DeliveryFee.Equal(decimal.NewFromInt(tc.fee)), "fee %s", quote.DeliveryFee)
			assert.True(t, quote.Total.Equal(quote.Subtotal.Add(quote.DeliveryFee)))
		})
	}
}

func TestQuote_ManualSubtotalCoercion(t *testing.T) {
	table := testPriceTable()

	for _, raw := range []string{"", "   ", "abc", "12a", "-500"} {
		quote := Quote(enums.OrderTypeOther, table, false, raw)
		assert.True(t, quote.Subtotal.IsZero(), "input %q should collapse to zero, got %s", raw, quote.Subtotal)
		assert.True(t, quote.Total.IsZero())
	}
}

func TestQuote_ManualSubtotalIgnoredForFixedTypes(t *testing.T) {
	table := testPriceTable()
	quote := Quote(enums.OrderTypePack5, table, false, "99999")
	assert.True(t, quote.Subtotal.Equal(decimal.NewFromInt(49000)))
}

func TestQuote_TotalInvariant(t *testing.T) {
	table := testPriceTable()
	for _, orderType := range []enums.OrderType{enums.OrderTypeSingle, enums.OrderTypePack5, enums.OrderTypePack10, enums.OrderTypeOther} {
		for _, delivery := range []bool{true, false} {
			quote := Quote(orderType, table, delivery, "12345")
			assert.True(t, quote.Total.Equal(quote.Subtotal.Add(quote.DeliveryFee)))
		}
	}
}
