package model

import "database/sql"

// BudgetReportRow is one line item joined with its budget header and hierarchy.
// Rows whose sub-activity, activity or program cannot be resolved carry NULL codes.
type BudgetReportRow struct {
	HeaderID         int64           `db:"rka_id" json:"headerId"`
	OrganizationID   int64           `db:"opd_id" json:"organizationId"`
	FiscalYear       int             `db:"tahun" json:"fiscalYear"`
	ValidatedCeiling float64         `db:"pagu_validasi" json:"validatedCeiling"`
	Status           string          `db:"status" json:"status"`
	AffairCode       NullableString  `db:"urusan_kode" json:"affairCode"`
	AffairName       NullableString  `db:"urusan_nama" json:"affairName"`
	ProgramCode      NullableString  `db:"program_kode" json:"programCode"`
	ProgramName      NullableString  `db:"program_nama" json:"programName"`
	ActivityCode     NullableString  `db:"kegiatan_kode" json:"activityCode"`
	ActivityName     NullableString  `db:"kegiatan_nama" json:"activityName"`
	SubActivityCode  NullableString  `db:"sub_kegiatan_kode" json:"subActivityCode"`
	SubActivityName  NullableString  `db:"sub_kegiatan_nama" json:"subActivityName"`
	LineItemID       sql.NullInt64   `db:"rincian_id" json:"-"`
	Description      NullableString  `db:"uraian" json:"description"`
	AccountCode      NullableString  `db:"kode_rekening" json:"accountCode"`
	Total            sql.NullFloat64 `db:"total" json:"-"`
}

// RecapRow is one account-code line of the recap report.
type RecapRow struct {
	AccountCode string  `json:"accountCode"`
	Description string  `json:"description"`
	Total       float64 `json:"total"`
}

// Variance classifies the ceiling against the itemized total.
type Variance string

const (
	VarianceSurplus  Variance = "surplus"
	VarianceDeficit  Variance = "deficit"
	VarianceBalanced Variance = "balanced"
)

// RenjaEntry is one budget header as shown on the Renja screen.
type RenjaEntry struct {
	HeaderID         int64    `json:"headerId"`
	SubActivityCode  string   `json:"subActivityCode"`
	SubActivityName  string   `json:"subActivityName"`
	ValidatedCeiling float64  `json:"validatedCeiling"`
	Status           string   `json:"status"`
	ItemTotal        float64  `json:"itemTotal"`
	Difference       float64  `json:"difference"`
	Variance         Variance `json:"variance"`
}

// DashboardSummary holds the figures shown on the home screen.
type DashboardSummary struct {
	BudgetCount    int        `db:"budget_count" json:"budgetCount"`
	OPDCount       int        `db:"opd_count" json:"opdCount"`
	CatalogCount   int        `db:"catalog_count" json:"catalogCount"`
	TotalCeiling   float64    `db:"total_ceiling" json:"totalCeiling"`
	TotalItems     float64    `db:"total_items" json:"totalItems"`
	Progress       float64    `json:"progress"`
	UpcomingStages []Schedule `json:"upcomingStages"`
}
