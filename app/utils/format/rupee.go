package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var rupee = accounting.Accounting{Symbol: "₹", Precision: 2, Thousand: ",", Decimal: "."}

// FormatRupee renders a money amount for API read models and reports,
// e.g. 12500 -> "₹12,500.00".
func FormatRupee(amount decimal.Decimal) string {
	return rupee.FormatMoneyDecimal(amount)
}
