package enums

import "fmt"

// SaleType discriminates ledger entries: a sale decreases stock, an unsale
// (restock / reversal) increases it.
type SaleType string

const (
	SaleTypeSale   SaleType = "sale"
	SaleTypeUnsale SaleType = "unsale"
)

var validSaleTypes = []SaleType{
	SaleTypeSale,
	SaleTypeUnsale,
}

// IsValid reports whether the value matches the canonical sale type enum.
func (t SaleType) IsValid() bool {
	for _, candidate := range validSaleTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseSaleType converts raw input into SaleType.
func ParseSaleType(value string) (SaleType, error) {
	for _, candidate := range validSaleTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sale type %q", value)
}
