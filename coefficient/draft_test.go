package coefficient_test

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"rkpd/coefficient"
	"rkpd/model"
)

var catalogPaper = model.CatalogItem{
	ID: 7, Code: "1.1.12.01.03.0004", Description: "Kertas HVS A4", Specification: "80 gram",
	Unit: "Rim", UnitPrice: 55_000, AccountCode: "5.1.02.01.01.0024", Source: model.SourceSSH,
}

func TestInitializeForNewSelection(t *testing.T) {
	d := coefficient.InitializeForNewSelection(3, catalogPaper)

	expected := model.CoefficientList{{Quantity: 1, Unit: "Rim"}}
	if !reflect.DeepEqual(d.Factors, expected) {
		t.Errorf("wrong factors: (actual, expected) = (%v, %v)", d.Factors, expected)
	}
	if d.Unit != "Rim" || d.UnitLocked {
		t.Errorf("wrong unit state: unit=%q locked=%v", d.Unit, d.UnitLocked)
	}
	if d.TaxRatePercent != 0 {
		t.Errorf("tax rate not reset: %v", d.TaxRatePercent)
	}
	if d.ParentBudgetID != 3 || d.CatalogItemID != 7 || d.Source != model.SourceSSH {
		t.Errorf("wrong identity: %+v", d)
	}
}

func TestSelectCatalogItem_ResetsEvenWhenEditing(t *testing.T) {
	d := coefficient.InitializeForEdit(model.BudgetLineItem{
		ID: 11, ParentBudgetID: 3, Description: "Honor", Unit: "OB",
		CoefficientList: model.CoefficientList{{Quantity: 5, Unit: "Orang"}, {Quantity: 12, Unit: "Bulan"}},
		CombinedVolume:  60, UnitPrice: 300_000, TaxRatePercent: 11, Category: "SBU",
	})
	d.SelectCatalogItem(catalogPaper)

	if d.ID != 11 {
		t.Errorf("record id lost: %d", d.ID)
	}
	if len(d.Factors) != 1 || d.Factors[0] != (model.CoefficientFactor{Quantity: 1, Unit: "Rim"}) {
		t.Errorf("factors not reset: %v", d.Factors)
	}
	if d.TaxRatePercent != 0 || d.Unit != "Rim" {
		t.Errorf("tax or unit not reset: %+v", d)
	}
}

func TestInitializeForEdit(t *testing.T) {
	for name, testcase := range map[string]struct {
		when         model.BudgetLineItem
		thenFactors  model.CoefficientList
		thenDegraded bool
		thenSource   model.CatalogSource
	}{
		"structured record keeps its coefficients": {
			when: model.BudgetLineItem{
				ID: 1, ParentBudgetID: 2, Description: "Honor narasumber", Unit: "OJ",
				LegacyString:    "2 x 3",
				CoefficientList: model.CoefficientList{{Quantity: 2, Unit: "Orang"}, {Quantity: 3, Unit: "Jam"}},
				CombinedVolume:  6, UnitPrice: 900_000, TaxRatePercent: 11, Category: "SBU",
			},
			thenFactors: model.CoefficientList{{Quantity: 2, Unit: "Orang"}, {Quantity: 3, Unit: "Jam"}},
			thenSource:  model.SourceSBU,
		},
		"legacy record with aligned units": {
			when: model.BudgetLineItem{
				ID: 1, ParentBudgetID: 2, Description: "Makan", Unit: "Orang Kali",
				LegacyString: "40 x 2", CombinedVolume: 80, UnitPrice: 35_000, Category: "MANUAL",
			},
			thenFactors: model.CoefficientList{{Quantity: 40, Unit: "Orang"}, {Quantity: 2, Unit: "Kali"}},
			thenSource:  model.SourceManual,
		},
		"legacy record with a custom unit": {
			when: model.BudgetLineItem{
				ID: 1, ParentBudgetID: 2, Description: "Makan", Unit: "Kotak",
				LegacyString: "40 x 2", CombinedVolume: 80, UnitPrice: 35_000, Category: "SSH",
			},
			thenFactors:  model.CoefficientList{{Quantity: 80, Unit: "Kotak"}},
			thenDegraded: true,
			thenSource:   model.SourceSSH,
		},
	} {
		t.Run(name, func(t *testing.T) {
			d := coefficient.InitializeForEdit(testcase.when)
			if !reflect.DeepEqual(d.Factors, testcase.thenFactors) {
				t.Errorf("wrong factors: (actual, expected) = (%v, %v)", d.Factors, testcase.thenFactors)
			}
			if d.Degraded != testcase.thenDegraded {
				t.Errorf("wrong degraded flag: (actual, expected) = (%v, %v)", d.Degraded, testcase.thenDegraded)
			}
			if d.Source != testcase.thenSource {
				t.Errorf("wrong source: (actual, expected) = (%v, %v)", d.Source, testcase.thenSource)
			}
			if d.Unit != testcase.when.Unit || !d.UnitLocked {
				t.Errorf("stored unit not kept: unit=%q locked=%v", d.Unit, d.UnitLocked)
			}
			if d.TaxRatePercent != testcase.when.TaxRatePercent {
				t.Errorf("tax rate not kept: %v", d.TaxRatePercent)
			}
		})
	}
}

func TestDraft_UnitOverride(t *testing.T) {
	d := coefficient.InitializeForNewSelection(1, model.CatalogItem{ID: 1, Description: "Honor", Unit: "Orang", UnitPrice: 100, Source: model.SourceSBU})

	d.AddFactor(model.CoefficientFactor{Quantity: 12, Unit: "Bulan"})
	if d.Unit != "Orang Bulan" {
		t.Errorf("unit does not follow the combined suggestion: %q", d.Unit)
	}

	d.SetUnit("OB")
	d.AddFactor(model.CoefficientFactor{Quantity: 2, Unit: "Kali"})
	if d.Unit != "OB" {
		t.Errorf("manual unit overwritten: %q", d.Unit)
	}
	if p := d.Preview(); p.SuggestedUnit != "Orang Bulan Kali" {
		t.Errorf("wrong suggestion: %q", p.SuggestedUnit)
	}

	d.ResetUnitToCombined()
	if d.Unit != "Orang Bulan Kali" || d.UnitLocked {
		t.Errorf("reset did not restore the suggestion: unit=%q locked=%v", d.Unit, d.UnitLocked)
	}
}

func TestDraft_RemoveFactor(t *testing.T) {
	d := coefficient.InitializeForNewSelection(1, catalogPaper)
	if d.RemoveFactor(0) {
		t.Error("last factor removed")
	}
	d.AddFactor(model.CoefficientFactor{Quantity: 3, Unit: "Bulan"})
	if !d.RemoveFactor(0) {
		t.Fatal("factor not removed")
	}
	if len(d.Factors) != 1 || d.Factors[0].Unit != "Bulan" {
		t.Errorf("wrong remaining factors: %v", d.Factors)
	}
	if d.SetFactor(5, model.CoefficientFactor{}) {
		t.Error("out of range factor accepted")
	}
}

func TestDraft_Validate(t *testing.T) {
	valid := func() coefficient.Draft {
		d := coefficient.InitializeForNewSelection(1, catalogPaper)
		d.SetFactor(0, model.CoefficientFactor{Quantity: 10, Unit: "Rim"})
		return d
	}

	for name, testcase := range map[string]struct {
		when func(d *coefficient.Draft)
		then error
	}{
		"valid draft": {
			when: func(d *coefficient.Draft) {},
			then: nil,
		},
		"zero quantity": {
			when: func(d *coefficient.Draft) { d.AddFactor(model.CoefficientFactor{Quantity: 0, Unit: "Bulan"}) },
			then: coefficient.ErrVolumeIncomplete,
		},
		"negative quantity": {
			when: func(d *coefficient.Draft) { d.SetFactor(0, model.CoefficientFactor{Quantity: -2, Unit: "Rim"}) },
			then: coefficient.ErrVolumeIncomplete,
		},
		"NaN quantity": {
			when: func(d *coefficient.Draft) { d.SetFactor(0, model.CoefficientFactor{Quantity: math.NaN(), Unit: "Rim"}) },
			then: coefficient.ErrVolumeIncomplete,
		},
		"infinite quantity": {
			when: func(d *coefficient.Draft) { d.SetFactor(0, model.CoefficientFactor{Quantity: math.Inf(1), Unit: "Rim"}) },
			then: coefficient.ErrVolumeIncomplete,
		},
		"volume overflows": {
			when: func(d *coefficient.Draft) {
				d.SetFactor(0, model.CoefficientFactor{Quantity: 1e200, Unit: "a"})
				d.AddFactor(model.CoefficientFactor{Quantity: 1e200, Unit: "b"})
			},
			then: coefficient.ErrTotalOutOfRange,
		},
		"total overflows": {
			when: func(d *coefficient.Draft) {
				d.SetFactor(0, model.CoefficientFactor{Quantity: 1e300, Unit: "Rim"})
				d.UnitPrice = 1e10
			},
			then: coefficient.ErrTotalOutOfRange,
		},
		"NaN price": {
			when: func(d *coefficient.Draft) { d.UnitPrice = math.NaN() },
			then: coefficient.ErrInvalidPrice,
		},
		"no factors": {
			when: func(d *coefficient.Draft) { d.Factors = nil },
			then: coefficient.ErrVolumeIncomplete,
		},
		"missing description": {
			when: func(d *coefficient.Draft) { d.Description = "  " },
			then: coefficient.ErrMissingDescription,
		},
		"missing unit": {
			when: func(d *coefficient.Draft) { d.SetUnit("") },
			then: coefficient.ErrMissingUnit,
		},
		"missing catalog item": {
			when: func(d *coefficient.Draft) { d.CatalogItemID = 0 },
			then: coefficient.ErrMissingCatalogItem,
		},
		"manual item without catalog row": {
			when: func(d *coefficient.Draft) { d.CatalogItemID = 0; d.Source = model.SourceManual },
			then: nil,
		},
		"unsupported tax rate": {
			when: func(d *coefficient.Draft) { d.TaxRatePercent = 10 },
			then: coefficient.ErrInvalidTaxRate,
		},
		"negative price": {
			when: func(d *coefficient.Draft) { d.UnitPrice = -1 },
			then: coefficient.ErrInvalidPrice,
		},
		"no parent budget": {
			when: func(d *coefficient.Draft) { d.ParentBudgetID = 0 },
			then: coefficient.ErrMissingParent,
		},
	} {
		t.Run(name, func(t *testing.T) {
			d := valid()
			testcase.when(&d)
			err := d.Validate()
			if !errors.Is(err, testcase.then) {
				t.Errorf("wrong error: (actual, expected) = (%v, %v)", err, testcase.then)
			}
			if _, buildErr := d.Build(); !errors.Is(buildErr, testcase.then) {
				t.Errorf("Build disagrees with Validate: (actual, expected) = (%v, %v)", buildErr, testcase.then)
			}
		})
	}
}

func TestDraft_Build(t *testing.T) {
	d := coefficient.InitializeForNewSelection(4, model.CatalogItem{
		ID: 2, Description: "Honor narasumber", Unit: "Orang", UnitPrice: 1_000_000,
		AccountCode: "5.1.02.02.01.0003", Source: model.SourceSBU,
	})
	d.SetFactor(0, model.CoefficientFactor{Quantity: 25, Unit: "Orang"})
	d.AddFactor(model.CoefficientFactor{Quantity: 12, Unit: "Bulan"})
	d.TaxRatePercent = 11

	item, err := d.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := model.BudgetLineItem{
		ParentBudgetID:  4,
		Description:     "Honor narasumber",
		LegacyString:    "25 x 12",
		CoefficientList: model.CoefficientList{{Quantity: 25, Unit: "Orang"}, {Quantity: 12, Unit: "Bulan"}},
		CombinedVolume:  300,
		Unit:            "Orang Bulan",
		UnitPrice:       1_000_000,
		TaxRatePercent:  11,
		Total:           333_000_000,
		AccountCode:     "5.1.02.02.01.0003",
		Category:        "SBU",
	}
	if !reflect.DeepEqual(item, expected) {
		t.Errorf("wrong line item:\n actual   = %+v\n expected = %+v", item, expected)
	}

	if item.CombinedVolume != coefficient.DeriveVolume(item.CoefficientList) {
		t.Error("stored volume is not the product of the factors")
	}
}
