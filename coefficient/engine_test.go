package coefficient_test

import (
	"errors"
	"reflect"
	"testing"

	"rkpd/coefficient"
	"rkpd/model"
)

func TestDeriveVolume(t *testing.T) {
	for name, testcase := range map[string]struct {
		when []model.CoefficientFactor
		then float64
	}{
		"persons x months": {
			when: []model.CoefficientFactor{{Quantity: 25, Unit: "orang"}, {Quantity: 12, Unit: "bulan"}},
			then: 300,
		},
		"reordered factors give the same volume": {
			when: []model.CoefficientFactor{{Quantity: 12, Unit: "bulan"}, {Quantity: 25, Unit: "orang"}},
			then: 300,
		},
		"single factor": {
			when: []model.CoefficientFactor{{Quantity: 7, Unit: "paket"}},
			then: 7,
		},
		"a zero factor yields zero": {
			when: []model.CoefficientFactor{{Quantity: 3, Unit: "kali"}, {Quantity: 0, Unit: "hari"}},
			then: 0,
		},
		"fractional factors": {
			when: []model.CoefficientFactor{{Quantity: 0.5, Unit: "hari"}, {Quantity: 4, Unit: "orang"}},
			then: 2,
		},
	} {
		t.Run(name, func(t *testing.T) {
			actual := coefficient.DeriveVolume(testcase.when)
			if actual != testcase.then {
				t.Errorf("wrong volume: (actual, expected) = (%v, %v)", actual, testcase.then)
			}
		})
	}
}

func TestDeriveVolume_AllPermutations(t *testing.T) {
	factors := []model.CoefficientFactor{
		{Quantity: 2, Unit: "orang"}, {Quantity: 3, Unit: "hari"}, {Quantity: 5, Unit: "kali"},
	}
	expected := coefficient.DeriveVolume(factors)
	perms := [][]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}
	for _, p := range perms {
		shuffled := []model.CoefficientFactor{factors[p[0]], factors[p[1]], factors[p[2]]}
		if actual := coefficient.DeriveVolume(shuffled); actual != expected {
			t.Errorf("permutation %v: (actual, expected) = (%v, %v)", p, actual, expected)
		}
	}
}

func TestDeriveCombinedUnit(t *testing.T) {
	for name, testcase := range map[string]struct {
		when []model.CoefficientFactor
		then string
	}{
		"joined in list order": {
			when: []model.CoefficientFactor{{Quantity: 25, Unit: "Orang"}, {Quantity: 12, Unit: "Bulan"}},
			then: "Orang Bulan",
		},
		"empty units are skipped": {
			when: []model.CoefficientFactor{{Quantity: 25, Unit: "Orang"}, {Quantity: 2, Unit: " "}, {Quantity: 12, Unit: "Bulan"}},
			then: "Orang Bulan",
		},
		"no units": {
			when: []model.CoefficientFactor{{Quantity: 1}},
			then: "",
		},
	} {
		t.Run(name, func(t *testing.T) {
			if actual := coefficient.DeriveCombinedUnit(testcase.when); actual != testcase.then {
				t.Errorf("wrong unit: (actual, expected) = (%q, %q)", actual, testcase.then)
			}
		})
	}
}

func TestComputeTotal(t *testing.T) {
	for name, testcase := range map[string]struct {
		price, volume, rate float64
		then                coefficient.Totals
	}{
		"with 11% tax": {
			price: 1_000_000, volume: 300, rate: 11,
			then: coefficient.Totals{Subtotal: 300_000_000, TaxAmount: 33_000_000, Total: 333_000_000},
		},
		"without tax": {
			price: 15_000, volume: 4, rate: 0,
			then: coefficient.Totals{Subtotal: 60_000, TaxAmount: 0, Total: 60_000},
		},
		"zero price": {
			price: 0, volume: 10, rate: 11,
			then: coefficient.Totals{},
		},
	} {
		t.Run(name, func(t *testing.T) {
			actual := coefficient.ComputeTotal(testcase.price, testcase.volume, testcase.rate)
			if actual != testcase.then {
				t.Errorf("wrong totals: (actual, expected) = (%+v, %+v)", actual, testcase.then)
			}
			if actual.Total < 0 || actual.TaxAmount < 0 || actual.Subtotal < 0 {
				t.Errorf("negative totals for non-negative input: %+v", actual)
			}
		})
	}
}

func TestValidationErrors(t *testing.T) {
	var verr *coefficient.ValidationError
	if !errors.As(coefficient.ErrVolumeIncomplete, &verr) {
		t.Fatal("ErrVolumeIncomplete is not a *ValidationError")
	}
	if verr.Message != "volume must be completed" {
		t.Errorf("wrong message: %q", verr.Message)
	}
	if !reflect.DeepEqual(coefficient.TaxRates, []float64{0, 11}) {
		t.Errorf("wrong tax rates: %v", coefficient.TaxRates)
	}
}
