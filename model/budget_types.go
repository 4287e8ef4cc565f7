package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// CoefficientFactor is one quantity x unit factor of a line item volume.
type CoefficientFactor struct {
	Quantity float64 `json:"volume"`
	Unit     string  `json:"satuan"`
}

// CoefficientList is persisted as JSON text in koefisien_multi.
// A nil list is stored as NULL, which marks a record written before the structured form existed.
type CoefficientList []CoefficientFactor

func (l CoefficientList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	b, err := json.Marshal([]CoefficientFactor(l))
	if err != nil {
		return nil, fmt.Errorf("failed to encode coefficient list: %w", err)
	}
	return string(b), nil
}

func (l *CoefficientList) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("unsupported type for coefficient list: %T", src)
	}
	if len(raw) == 0 {
		*l = nil
		return nil
	}
	var factors []CoefficientFactor
	if err := json.Unmarshal(raw, &factors); err != nil {
		return fmt.Errorf("failed to decode coefficient list: %w", err)
	}
	if len(factors) == 0 {
		*l = nil
		return nil
	}
	*l = factors
	return nil
}

// BudgetLineItem is a row of rka_rincian.
type BudgetLineItem struct {
	ID              int64           `db:"id" json:"id"`
	ParentBudgetID  int64           `db:"rka_id" json:"parentBudgetId"`
	Description     string          `db:"uraian" json:"description"`
	LegacyString    string          `db:"koefisien" json:"legacyString"`
	CoefficientList CoefficientList `db:"koefisien_multi" json:"coefficientList"`
	CombinedVolume  float64         `db:"volume" json:"combinedVolume"`
	Unit            string          `db:"satuan" json:"unit"`
	UnitPrice       float64         `db:"harga_satuan" json:"unitPrice"`
	TaxRatePercent  float64         `db:"ppn" json:"taxRatePercent"`
	Total           float64         `db:"total" json:"total"`
	AccountCode     string          `db:"kode_rekening" json:"accountCode"`
	Category        string          `db:"jenis_belanja" json:"category"`
	CreatedAt       string          `db:"created_at" json:"createdAt,omitempty"`
}

// BudgetHeader is a row of rka_renja: one sub-activity budget of an OPD for a fiscal year.
type BudgetHeader struct {
	ID               int64   `db:"id" json:"id"`
	OrganizationID   int64   `db:"opd_id" json:"organizationId"`
	SubActivityCode  string  `db:"sub_kegiatan_kode" json:"subActivityCode"`
	FiscalYear       int     `db:"tahun" json:"fiscalYear"`
	ValidatedCeiling float64 `db:"pagu_validasi" json:"validatedCeiling"`
	Status           string  `db:"status" json:"status"`
	CreatedAt        string  `db:"created_at" json:"createdAt,omitempty"`
}

const BudgetStatusDraft = "Draft"
