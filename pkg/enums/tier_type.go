package enums

import "fmt"

// TierType distinguishes single-step wholesale tiers from ladder tiers.
type TierType string

const (
	TierTypeSimple  TierType = "simple"
	TierTypeGradual TierType = "gradual"
)

var validTierTypes = []TierType{
	TierTypeSimple,
	TierTypeGradual,
}

// String implements fmt.Stringer.
func (t TierType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TierType.
func (t TierType) IsValid() bool {
	for _, candidate := range validTierTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTierType converts raw input into a TierType.
func ParseTierType(value string) (TierType, error) {
	for _, candidate := range validTierTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid tier type %q", value)
}
