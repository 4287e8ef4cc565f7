package model

import "strings"

// CatalogSource identifies which price-standard table a catalog row came from.
type CatalogSource string

const (
	SourceSSH    CatalogSource = "ssh"  // Standar Satuan Harga (unit price standard)
	SourceSBU    CatalogSource = "sbu"  // Standar Biaya Umum (general cost standard)
	SourceHSPK   CatalogSource = "hspk" // Harga Satuan Pokok Kegiatan (activity cost standard)
	SourceASB    CatalogSource = "asb"  // Analisis Standar Belanja (expenditure analysis standard)
	SourceManual CatalogSource = "manual"
)

// CatalogSources lists the four price-standard tables in display order.
var CatalogSources = []CatalogSource{SourceSSH, SourceSBU, SourceHSPK, SourceASB}

// ParseCatalogSource accepts the table name in any case.
func ParseCatalogSource(s string) (CatalogSource, bool) {
	switch CatalogSource(strings.ToLower(strings.TrimSpace(s))) {
	case SourceSSH:
		return SourceSSH, true
	case SourceSBU:
		return SourceSBU, true
	case SourceHSPK:
		return SourceHSPK, true
	case SourceASB:
		return SourceASB, true
	}
	return "", false
}

// Table returns the sqlite table holding rows of this source.
func (s CatalogSource) Table() string {
	return string(s)
}

// Category is the upper-case tag stored on a budget line item (jenis_belanja).
func (s CatalogSource) Category() string {
	if s == "" {
		return "MANUAL"
	}
	return strings.ToUpper(string(s))
}

// CatalogRecord is one row of any of the four price-standard tables.
// Values are normalized to CatalogItem at the boundary (mappers.NormalizeCatalog).
type CatalogRecord interface {
	CatalogSource() CatalogSource
}

// UnitPriceStandard is a row of the ssh table.
type UnitPriceStandard struct {
	ID               int64   `db:"id" json:"id"`
	GroupCode        string  `db:"kode_kelompok_barang" json:"groupCode"`
	GroupDescription string  `db:"uraian_kelompok_barang" json:"groupDescription"`
	ItemCode         string  `db:"kode_barang" json:"itemCode"`
	ItemDescription  string  `db:"uraian_barang" json:"itemDescription"`
	Specification    string  `db:"spesifikasi" json:"specification"`
	Unit             string  `db:"satuan" json:"unit"`
	UnitPrice        float64 `db:"harga_satuan" json:"unitPrice"`
	AccountCode      string  `db:"kode_rekening" json:"accountCode"`
	Year             int     `db:"tahun" json:"year"`
	ImportBatch      string  `db:"import_batch" json:"importBatch,omitempty"`
}

func (UnitPriceStandard) CatalogSource() CatalogSource { return SourceSSH }

// CostStandard is a row of the sbu, hspk or asb table; the three share one shape.
type CostStandard struct {
	ID            int64         `db:"id" json:"id"`
	Kind          CatalogSource `db:"-" json:"kind"`
	Code          string        `db:"kode" json:"code"`
	Description   string        `db:"uraian" json:"description"`
	Specification string        `db:"spesifikasi" json:"specification"`
	Unit          string        `db:"satuan" json:"unit"`
	Price         float64       `db:"harga" json:"price"`
	AccountCode   string        `db:"kode_rekening" json:"accountCode"`
	Year          int           `db:"tahun" json:"year"`
	ImportBatch   string        `db:"import_batch" json:"importBatch,omitempty"`
}

func (c CostStandard) CatalogSource() CatalogSource { return c.Kind }

// CatalogItem is the single shape the budget engine works with.
type CatalogItem struct {
	ID            int64         `json:"id"`
	Code          string        `json:"code"`
	Description   string        `json:"description"`
	Specification string        `json:"specification"`
	Unit          string        `json:"unit"`
	UnitPrice     float64       `json:"unitPrice"`
	AccountCode   string        `json:"accountCode"`
	Source        CatalogSource `json:"source"`
}

// CatalogCounts holds the row count of every price-standard table.
type CatalogCounts struct {
	SSH   int `json:"ssh"`
	SBU   int `json:"sbu"`
	HSPK  int `json:"hspk"`
	ASB   int `json:"asb"`
	Total int `json:"total"`
}
