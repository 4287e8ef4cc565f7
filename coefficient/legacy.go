package coefficient

import (
	"strconv"
	"strings"

	"rkpd/model"
)

// LegacySeparator joins factor quantities in the koefisien text column.
const LegacySeparator = " x "

// Serialized holds both stored forms of a coefficient list.
type Serialized struct {
	Legacy     string                `json:"legacyString"`
	Structured model.CoefficientList `json:"structured"`
}

// Decoded is a coefficient list read back from storage.
// Degraded is set when the list was reconstructed heuristically and may not match what was entered.
type Decoded struct {
	Factors  model.CoefficientList `json:"factors"`
	Degraded bool                  `json:"degraded"`
}

// Serialize produces the legacy display string ("25 x 12") and a copy of the structured list.
func Serialize(factors []model.CoefficientFactor) Serialized {
	parts := make([]string, len(factors))
	for i, f := range factors {
		parts[i] = FormatQuantity(f.Quantity)
	}
	structured := make(model.CoefficientList, len(factors))
	copy(structured, factors)
	return Serialized{
		Legacy:     strings.Join(parts, LegacySeparator),
		Structured: structured,
	}
}

// Deserialize returns the stored structured list when present and falls back to DecodeLegacy otherwise.
func Deserialize(item model.BudgetLineItem) Decoded {
	if len(item.CoefficientList) > 0 {
		factors := make(model.CoefficientList, len(item.CoefficientList))
		copy(factors, item.CoefficientList)
		return Decoded{Factors: factors}
	}
	return DecodeLegacy(item.LegacyString, item.Unit, item.CombinedVolume)
}

// DecodeLegacy is a best-effort decoder for records written before the structured list existed.
// Quantities are split on " x " and the unit string on whitespace, then zipped positionally.
// When the counts differ, or a quantity is not a finite number, the result is a single
// factor carrying the stored volume and unit, flagged as degraded.
func DecodeLegacy(legacy, unit string, volume float64) Decoded {
	fallback := Decoded{
		Factors:  model.CoefficientList{{Quantity: volume, Unit: strings.TrimSpace(unit)}},
		Degraded: true,
	}

	legacy = strings.TrimSpace(legacy)
	if legacy == "" {
		return fallback
	}
	parts := strings.Split(legacy, LegacySeparator)
	units := strings.Fields(unit)
	if len(parts) != len(units) {
		return fallback
	}

	factors := make(model.CoefficientList, 0, len(parts))
	for i, p := range parts {
		q, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || !finite(q) {
			return fallback
		}
		factors = append(factors, model.CoefficientFactor{Quantity: q, Unit: units[i]})
	}
	return Decoded{Factors: factors}
}

// FormatQuantity prints a quantity without trailing zeros ("12", "0.5").
func FormatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
