package view

import (
	"fmt"
)

// Variant selects between the dashboard layouts.
type Variant string

const (
	VARIANT_EXTENDED Variant = "extended"
	VARIANT_LEGACY   Variant = "legacy"
)

func ParseVariant(value string) (Variant, error) {
	switch Variant(value) {
	case VARIANT_EXTENDED, VARIANT_LEGACY:
		return Variant(value), nil
	case "":
		return VARIANT_EXTENDED, nil
	}
	return "", fmt.Errorf("invalid dashboard variant: %s", value)
}

func (v Variant) IsLegacy() bool {
	return v == VARIANT_LEGACY
}
