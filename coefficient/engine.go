// Package coefficient derives the volume, unit and totals of a budget line item
// from its list of coefficient factors, and converts that list to and from storage.
package coefficient

import (
	"math"
	"strings"

	"rkpd/model"
)

// TaxRates are the accepted PPN percentages.
var TaxRates = []float64{0, 11}

// Totals is the price breakdown of one line item.
type Totals struct {
	Subtotal  float64 `json:"subtotal"`
	TaxAmount float64 `json:"taxAmount"`
	Total     float64 `json:"total"`
}

// DeriveVolume multiplies every factor quantity, starting from 1.
func DeriveVolume(factors []model.CoefficientFactor) float64 {
	volume := 1.0
	for _, f := range factors {
		volume *= f.Quantity
	}
	return volume
}

// DeriveCombinedUnit joins the non-empty factor units with a single space, in list order.
// The result is only a suggestion for the line item unit.
func DeriveCombinedUnit(factors []model.CoefficientFactor) string {
	units := make([]string, 0, len(factors))
	for _, f := range factors {
		u := strings.TrimSpace(f.Unit)
		if u != "" {
			units = append(units, u)
		}
	}
	return strings.Join(units, " ")
}

// ComputeTotal applies the tax rate to unitPrice * volume.
func ComputeTotal(unitPrice, volume, taxRatePercent float64) Totals {
	subtotal := unitPrice * volume
	tax := subtotal * taxRatePercent / 100
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: tax,
		Total:     subtotal + tax,
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func validTaxRate(rate float64) bool {
	for _, r := range TaxRates {
		if r == rate {
			return true
		}
	}
	return false
}
