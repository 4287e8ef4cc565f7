package mappers

import (
	"strings"

	"rkpd/model"
	"rkpd/parsers"
	"rkpd/units"
)

/**
 * NormalizeCatalog turns a row of any price-standard table into the single CatalogItem shape.
 *
 * SSH rows use the item code and item description; when the item description is empty the
 * group description is used so that a picker never shows a blank line.
 */
func NormalizeCatalog(rec model.CatalogRecord) model.CatalogItem {
	switch r := rec.(type) {
	case model.UnitPriceStandard:
		desc := r.ItemDescription
		if desc == "" {
			desc = r.GroupDescription
		}
		code := r.ItemCode
		if code == "" {
			code = r.GroupCode
		}
		return model.CatalogItem{
			ID: r.ID, Code: code, Description: desc, Specification: r.Specification,
			Unit: r.Unit, UnitPrice: r.UnitPrice, AccountCode: r.AccountCode, Source: model.SourceSSH,
		}
	case model.CostStandard:
		return model.CatalogItem{
			ID: r.ID, Code: r.Code, Description: r.Description, Specification: r.Specification,
			Unit: r.Unit, UnitPrice: r.Price, AccountCode: r.AccountCode, Source: r.Kind,
		}
	}
	return model.CatalogItem{}
}

func NormalizeUnitPriceStandards(rows []model.UnitPriceStandard) []model.CatalogItem {
	out := make([]model.CatalogItem, len(rows))
	for i, r := range rows {
		out[i] = NormalizeCatalog(r)
	}
	return out
}

func NormalizeCostStandards(rows []model.CostStandard) []model.CatalogItem {
	out := make([]model.CatalogItem, len(rows))
	for i, r := range rows {
		out[i] = NormalizeCatalog(r)
	}
	return out
}

// Header aliases accepted by the spreadsheet import, compared case-insensitively.
var (
	aliasGroupCode = []string{"kode kelompok barang", "kode_kelompok_barang", "kode kelompok"}
	aliasGroupDesc = []string{"uraian kelompok barang", "uraian_kelompok_barang", "uraian kelompok", "kelompok barang"}
	aliasItemCode  = []string{"kode barang", "kode_barang", "kode"}
	aliasItemDesc  = []string{"uraian barang", "uraian_barang", "nama barang", "uraian", "nama"}
	aliasCode      = []string{"kode", "kode standar", "kode_standar", "kode barang", "kode_barang"}
	aliasDesc      = []string{"uraian", "uraian barang", "uraian_barang", "nama", "nama barang", "uraian komponen"}
	aliasSpec      = []string{"spesifikasi", "spek", "spesifikasi barang", "keterangan"}
	aliasUnit      = []string{"satuan", "satuan barang", "unit"}
	aliasPrice     = []string{"harga satuan", "harga_satuan", "harga", "nilai"}
	aliasAccount   = []string{"kode rekening", "kode_rekening", "rekening", "kode akun", "akun belanja"}
	aliasYear      = []string{"tahun", "tahun anggaran"}
	aliasOPDCode   = []string{"kode", "kode opd", "kode_opd", "kode skpd"}
	aliasOPDName   = []string{"nama", "nama opd", "nama_opd", "uraian", "nama skpd"}
	aliasOPDShort  = []string{"singkatan", "nama singkat", "alias"}
)

// MapUnitPriceStandardRecord maps an uploaded row to the ssh table. Rows without a
// description, or with a price cell that is not an amount, are rejected.
func MapUnitPriceStandardRecord(rec parsers.Record, year int, batch string) (model.UnitPriceStandard, bool) {
	r := model.UnitPriceStandard{
		GroupCode:        rec.Get(aliasGroupCode...),
		GroupDescription: rec.Get(aliasGroupDesc...),
		ItemCode:         rec.Get(aliasItemCode...),
		ItemDescription:  rec.Get(aliasItemDesc...),
		Specification:    rec.Get(aliasSpec...),
		Unit:             units.ResolveName(rec.Get(aliasUnit...)),
		AccountCode:      rec.Get(aliasAccount...),
		Year:             parsers.ParseYear(rec.Get(aliasYear...), year),
		ImportBatch:      batch,
	}
	price, ok := parsers.ParsePrice(rec.Get(aliasPrice...))
	r.UnitPrice = price
	if !ok || strings.TrimSpace(r.ItemDescription) == "" {
		return r, false
	}
	return r, true
}

// MapCostStandardRecord maps an uploaded row to the sbu, hspk or asb table.
func MapCostStandardRecord(kind model.CatalogSource, rec parsers.Record, year int, batch string) (model.CostStandard, bool) {
	r := model.CostStandard{
		Kind:          kind,
		Code:          rec.Get(aliasCode...),
		Description:   rec.Get(aliasDesc...),
		Specification: rec.Get(aliasSpec...),
		Unit:          units.ResolveName(rec.Get(aliasUnit...)),
		AccountCode:   rec.Get(aliasAccount...),
		Year:          parsers.ParseYear(rec.Get(aliasYear...), year),
		ImportBatch:   batch,
	}
	price, ok := parsers.ParsePrice(rec.Get(aliasPrice...))
	r.Price = price
	if !ok || strings.TrimSpace(r.Description) == "" {
		return r, false
	}
	return r, true
}

// MapOPDRecord needs both a code and a name.
func MapOPDRecord(rec parsers.Record) (model.OPD, bool) {
	o := model.OPD{
		Code:         rec.Get(aliasOPDCode...),
		Name:         rec.Get(aliasOPDName...),
		Abbreviation: rec.Get(aliasOPDShort...),
	}
	return o, o.Code != "" && o.Name != ""
}
