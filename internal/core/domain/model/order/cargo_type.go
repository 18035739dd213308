package order

import (
	"fmt"

	"github.com/smaikl/GLG-bot/internal/pkg/errs"
)

// CargoType classifies the shipment for carriers browsing the exchange.
type CargoType int

const (
	CargoUnknown CargoType = iota
	CargoStandard
	CargoOversized
	CargoFragile
	CargoValuable
)

var cargoTypeNames = map[CargoType]string{
	CargoStandard:  "standard",
	CargoOversized: "oversized",
	CargoFragile:   "fragile",
	CargoValuable:  "valuable",
}

// CargoTypes lists the selectable cargo types.
func CargoTypes() []CargoType {
	return []CargoType{CargoStandard, CargoOversized, CargoFragile, CargoValuable}
}

func ParseCargoType(s string) (CargoType, error) {
	for ct, name := range cargoTypeNames {
		if name == s {
			return ct, nil
		}
	}
	return CargoUnknown, errs.NewValueIsInvalidErrorWithCause("cargo type", fmt.Errorf("%q is not a valid cargo type", s))
}

func (c CargoType) Validate() error {
	if _, ok := cargoTypeNames[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("cargo type", fmt.Errorf("%d is not a valid cargo type", c))
	}
	return nil
}

func (c CargoType) String() string {
	if name, ok := cargoTypeNames[c]; ok {
		return name
	}
	return "unknown"
}
