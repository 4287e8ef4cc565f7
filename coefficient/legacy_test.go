package coefficient_test

import (
	"reflect"
	"testing"

	"rkpd/coefficient"
	"rkpd/model"
)

func TestSerialize(t *testing.T) {
	factors := []model.CoefficientFactor{{Quantity: 25, Unit: "Orang"}, {Quantity: 12, Unit: "Bulan"}, {Quantity: 0.5, Unit: "Hari"}}
	actual := coefficient.Serialize(factors)

	if actual.Legacy != "25 x 12 x 0.5" {
		t.Errorf("wrong legacy string: (actual, expected) = (%q, %q)", actual.Legacy, "25 x 12 x 0.5")
	}
	if !reflect.DeepEqual([]model.CoefficientFactor(actual.Structured), factors) {
		t.Errorf("wrong structured list: (actual, expected) = (%v, %v)", actual.Structured, factors)
	}

	factors[0].Quantity = 99
	if actual.Structured[0].Quantity != 25 {
		t.Error("structured list shares memory with the input")
	}
}

func TestDeserialize_StructuredRoundTrip(t *testing.T) {
	for name, factors := range map[string]model.CoefficientList{
		"single":                  {{Quantity: 1, Unit: "Paket"}},
		"two factors":             {{Quantity: 25, Unit: "Orang"}, {Quantity: 12, Unit: "Bulan"}},
		"unit with spaces":        {{Quantity: 3, Unit: "Orang Hari"}, {Quantity: 2, Unit: "Kali"}},
		"factor without any unit": {{Quantity: 4, Unit: ""}, {Quantity: 2, Unit: "Lembar"}},
	} {
		t.Run(name, func(t *testing.T) {
			s := coefficient.Serialize(factors)
			record := model.BudgetLineItem{
				LegacyString:    s.Legacy,
				CoefficientList: s.Structured,
				CombinedVolume:  coefficient.DeriveVolume(factors),
				Unit:            "ignored when structured",
			}
			actual := coefficient.Deserialize(record)
			if actual.Degraded {
				t.Error("structured record decoded as degraded")
			}
			if !reflect.DeepEqual(actual.Factors, factors) {
				t.Errorf("round trip mismatch: (actual, expected) = (%v, %v)", actual.Factors, factors)
			}
		})
	}
}

func TestDeserialize_LegacyFallback(t *testing.T) {
	for name, testcase := range map[string]struct {
		legacy, unit string
		volume       float64
		then         coefficient.Decoded
	}{
		"counts align": {
			legacy: "25 x 12", unit: "Orang Bulan", volume: 300,
			then: coefficient.Decoded{Factors: model.CoefficientList{{Quantity: 25, Unit: "Orang"}, {Quantity: 12, Unit: "Bulan"}}},
		},
		"single quantity and unit": {
			legacy: "4", unit: "Paket", volume: 4,
			then: coefficient.Decoded{Factors: model.CoefficientList{{Quantity: 4, Unit: "Paket"}}},
		},
		"fewer units than quantities": {
			legacy: "25 x 12", unit: "Orang", volume: 300,
			then: coefficient.Decoded{Factors: model.CoefficientList{{Quantity: 300, Unit: "Orang"}}, Degraded: true},
		},
		"multi-word unit on a single quantity": {
			legacy: "10", unit: "Orang Hari", volume: 10,
			then: coefficient.Decoded{Factors: model.CoefficientList{{Quantity: 10, Unit: "Orang Hari"}}, Degraded: true},
		},
		"empty legacy string": {
			legacy: "", unit: "Unit", volume: 2,
			then: coefficient.Decoded{Factors: model.CoefficientList{{Quantity: 2, Unit: "Unit"}}, Degraded: true},
		},
		"NaN and Inf quantities": {
			legacy: "NaN x Inf", unit: "Orang Bulan", volume: 5,
			then: coefficient.Decoded{Factors: model.CoefficientList{{Quantity: 5, Unit: "Orang Bulan"}}, Degraded: true},
		},
		"quantity beyond float range": {
			legacy: "1e400 x 2", unit: "Orang Bulan", volume: 2,
			then: coefficient.Decoded{Factors: model.CoefficientList{{Quantity: 2, Unit: "Orang Bulan"}}, Degraded: true},
		},
		"non numeric quantity": {
			legacy: "dua x 12", unit: "Orang Bulan", volume: 24,
			then: coefficient.Decoded{Factors: model.CoefficientList{{Quantity: 24, Unit: "Orang Bulan"}}, Degraded: true},
		},
	} {
		t.Run(name, func(t *testing.T) {
			record := model.BudgetLineItem{LegacyString: testcase.legacy, Unit: testcase.unit, CombinedVolume: testcase.volume}
			actual := coefficient.Deserialize(record)
			if !reflect.DeepEqual(actual, testcase.then) {
				t.Errorf("wrong decode: (actual, expected) = (%+v, %+v)", actual, testcase.then)
			}
		})
	}
}

func TestFormatQuantity(t *testing.T) {
	for in, expected := range map[float64]string{25: "25", 0.5: "0.5", 1.25: "1.25", 1e6: "1000000"} {
		if actual := coefficient.FormatQuantity(in); actual != expected {
			t.Errorf("FormatQuantity(%v): (actual, expected) = (%q, %q)", in, actual, expected)
		}
	}
}
