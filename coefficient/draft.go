package coefficient

import (
	"strings"

	"rkpd/model"
)

// Draft is the editable state of a line item before it is saved.
// UnitLocked is set once the unit was typed by the user or came from a stored record;
// after that, factor edits no longer replace the unit with the combined suggestion.
type Draft struct {
	ID             int64                 `json:"id,omitempty"`
	ParentBudgetID int64                 `json:"parentBudgetId"`
	CatalogItemID  int64                 `json:"catalogItemId,omitempty"`
	Source         model.CatalogSource   `json:"source"`
	Description    string                `json:"description"`
	Factors        model.CoefficientList `json:"coefficientList"`
	Unit           string                `json:"unit"`
	UnitLocked     bool                  `json:"unitLocked"`
	UnitPrice      float64               `json:"unitPrice"`
	TaxRatePercent float64               `json:"taxRatePercent"`
	AccountCode    string                `json:"accountCode"`
	Degraded       bool                  `json:"degraded,omitempty"`
}

// Preview is the derived figures for a draft.
type Preview struct {
	Volume        float64 `json:"volume"`
	SuggestedUnit string  `json:"suggestedUnit"`
	Legacy        string  `json:"legacyString"`
	Totals
}

// InRange reports whether the volume and totals are finite numbers.
func (p Preview) InRange() bool {
	return finite(p.Volume) && finite(p.Subtotal) && finite(p.TaxAmount) && finite(p.Total)
}

// InitializeForNewSelection starts a draft from a catalog item:
// one factor of quantity 1 in the item's unit, tax 0%.
func InitializeForNewSelection(parentBudgetID int64, item model.CatalogItem) Draft {
	return Draft{
		ParentBudgetID: parentBudgetID,
		CatalogItemID:  item.ID,
		Source:         item.Source,
		Description:    item.Description,
		Factors:        model.CoefficientList{{Quantity: 1, Unit: item.Unit}},
		Unit:           item.Unit,
		UnitPrice:      item.UnitPrice,
		AccountCode:    item.AccountCode,
	}
}

// InitializeForEdit rebuilds a draft from a stored line item, keeping its coefficients,
// unit and tax rate.
func InitializeForEdit(item model.BudgetLineItem) Draft {
	decoded := Deserialize(item)
	return Draft{
		ID:             item.ID,
		ParentBudgetID: item.ParentBudgetID,
		Source:         sourceFromCategory(item.Category),
		Description:    item.Description,
		Factors:        decoded.Factors,
		Unit:           item.Unit,
		UnitLocked:     true,
		UnitPrice:      item.UnitPrice,
		TaxRatePercent: item.TaxRatePercent,
		AccountCode:    item.AccountCode,
		Degraded:       decoded.Degraded,
	}
}

// SelectCatalogItem replaces the catalog item of an existing draft.
// Coefficients and tax are reset as for a new selection; the record id is kept.
func (d *Draft) SelectCatalogItem(item model.CatalogItem) {
	id := d.ID
	*d = InitializeForNewSelection(d.ParentBudgetID, item)
	d.ID = id
}

func (d *Draft) AddFactor(f model.CoefficientFactor) {
	d.Factors = append(d.Factors, f)
	d.followCombinedUnit()
}

// RemoveFactor drops the factor at i. The last remaining factor cannot be removed.
func (d *Draft) RemoveFactor(i int) bool {
	if i < 0 || i >= len(d.Factors) || len(d.Factors) == 1 {
		return false
	}
	d.Factors = append(d.Factors[:i:i], d.Factors[i+1:]...)
	d.followCombinedUnit()
	return true
}

func (d *Draft) SetFactor(i int, f model.CoefficientFactor) bool {
	if i < 0 || i >= len(d.Factors) {
		return false
	}
	d.Factors[i] = f
	d.followCombinedUnit()
	return true
}

// SetUnit records a manual unit; it wins over the combined suggestion from then on.
func (d *Draft) SetUnit(unit string) {
	d.Unit = unit
	d.UnitLocked = true
}

// ResetUnitToCombined discards a manual unit and goes back to the suggestion.
func (d *Draft) ResetUnitToCombined() {
	d.UnitLocked = false
	d.Unit = DeriveCombinedUnit(d.Factors)
}

func (d *Draft) followCombinedUnit() {
	if d.UnitLocked {
		return
	}
	if u := DeriveCombinedUnit(d.Factors); u != "" {
		d.Unit = u
	}
}

func (d Draft) Preview() Preview {
	volume := DeriveVolume(d.Factors)
	return Preview{
		Volume:        volume,
		SuggestedUnit: DeriveCombinedUnit(d.Factors),
		Legacy:        Serialize(d.Factors).Legacy,
		Totals:        ComputeTotal(d.UnitPrice, volume, d.TaxRatePercent),
	}
}

// Validate reports the first problem that blocks saving the draft.
func (d Draft) Validate() error {
	if d.ParentBudgetID <= 0 {
		return ErrMissingParent
	}
	if d.Source != model.SourceManual && d.CatalogItemID == 0 && d.ID == 0 {
		return ErrMissingCatalogItem
	}
	if strings.TrimSpace(d.Description) == "" {
		return ErrMissingDescription
	}
	if len(d.Factors) == 0 {
		return ErrVolumeIncomplete
	}
	for _, f := range d.Factors {
		if !(f.Quantity > 0) || !finite(f.Quantity) {
			return ErrVolumeIncomplete
		}
	}
	if strings.TrimSpace(d.Unit) == "" {
		return ErrMissingUnit
	}
	if !(d.UnitPrice >= 0) || !finite(d.UnitPrice) {
		return ErrInvalidPrice
	}
	if !validTaxRate(d.TaxRatePercent) {
		return ErrInvalidTaxRate
	}
	volume := DeriveVolume(d.Factors)
	if !finite(volume) || !finite(ComputeTotal(d.UnitPrice, volume, d.TaxRatePercent).Total) {
		return ErrTotalOutOfRange
	}
	return nil
}

// Build validates the draft and produces the record to persist.
func (d Draft) Build() (model.BudgetLineItem, error) {
	if err := d.Validate(); err != nil {
		return model.BudgetLineItem{}, err
	}
	volume := DeriveVolume(d.Factors)
	serialized := Serialize(d.Factors)
	totals := ComputeTotal(d.UnitPrice, volume, d.TaxRatePercent)
	return model.BudgetLineItem{
		ID:              d.ID,
		ParentBudgetID:  d.ParentBudgetID,
		Description:     strings.TrimSpace(d.Description),
		LegacyString:    serialized.Legacy,
		CoefficientList: serialized.Structured,
		CombinedVolume:  volume,
		Unit:            strings.TrimSpace(d.Unit),
		UnitPrice:       d.UnitPrice,
		TaxRatePercent:  d.TaxRatePercent,
		Total:           totals.Total,
		AccountCode:     strings.TrimSpace(d.AccountCode),
		Category:        d.Source.Category(),
	}, nil
}

func sourceFromCategory(category string) model.CatalogSource {
	if s, ok := model.ParseCatalogSource(category); ok {
		return s
	}
	return model.SourceManual
}
