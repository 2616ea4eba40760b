package enums

import "fmt"

// PriceModel selects how a store prices quantities: plain retail, wholesale
// only, a single wholesale step, or a gradual discount ladder.
type PriceModel string

const (
	PriceModelRetailOnly       PriceModel = "retail_only"
	PriceModelWholesaleOnly    PriceModel = "wholesale_only"
	PriceModelSimpleWholesale  PriceModel = "simple_wholesale"
	PriceModelGradualWholesale PriceModel = "gradual_wholesale"
)

var validPriceModels = []PriceModel{
	PriceModelRetailOnly,
	PriceModelWholesaleOnly,
	PriceModelSimpleWholesale,
	PriceModelGradualWholesale,
}

// String implements fmt.Stringer.
func (m PriceModel) String() string {
	return string(m)
}

// IsValid reports whether the value is a known PriceModel.
func (m PriceModel) IsValid() bool {
	for _, candidate := range validPriceModels {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParsePriceModel converts raw input into a PriceModel.
func ParsePriceModel(value string) (PriceModel, error) {
	for _, candidate := range validPriceModels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid price model %q", value)
}
