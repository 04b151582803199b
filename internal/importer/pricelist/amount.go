package pricelist

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount accepts "1.234,56", "1234,56", "1234.56" and "R$ 12,50".
// A comma, when present, is the decimal separator and dots group thousands.
func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "R$")
	clean = strings.TrimPrefix(clean, "€")
	clean = strings.ReplaceAll(strings.TrimSpace(clean), " ", "")

	if strings.Contains(clean, ",") {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	}

	return decimal.NewFromString(clean)
}
