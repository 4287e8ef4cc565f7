package export

import (
	"fmt"
	"net/http"
	"net/url"

	"rkpd/model"
	"rkpd/render"

	"github.com/xuri/excelize/v2"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// BudgetSheet is the sheet name of the RKA workbook.
const BudgetSheet = "RKA"

// BudgetItemHeaders is the header row of the line item table.
var BudgetItemHeaders = []interface{}{"No", "Kode Rekening", "Uraian", "Volume", "Satuan", "Harga Satuan", "PPN (%)", "Total"}

// BudgetWorkbook lays out an RKA: an info block, a blank row, the title of the
// item table, a blank row, then the header and one row per line item.
func BudgetWorkbook(doc render.BudgetDocument) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", BudgetSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	info := [][]interface{}{
		{"Tahun Anggaran", doc.FiscalYear},
		{"Perangkat Daerah", doc.OPDName},
		{"Program", joinCodeName(doc.ProgramCode, doc.ProgramName)},
		{"Kegiatan", joinCodeName(doc.ActivityCode, doc.ActivityName)},
		{"Sub Kegiatan", joinCodeName(doc.SubActivityCode, doc.SubActivityName)},
		{"Pagu Validasi", doc.Ceiling},
		{},
		{"DAFTAR RINCIAN BELANJA"},
		{},
		BudgetItemHeaders,
	}
	row := 1
	for _, values := range info {
		if err := setRow(f, BudgetSheet, row, values); err != nil {
			return nil, err
		}
		row++
	}

	for i, it := range doc.Items {
		values := []interface{}{i + 1, it.AccountCode, it.Description, it.VolumeDisplay, it.Unit, it.UnitPrice, it.TaxRatePercent, it.Total}
		if err := setRow(f, BudgetSheet, row, values); err != nil {
			return nil, err
		}
		row++
	}

	if err := setRow(f, BudgetSheet, row, []interface{}{"", "", "Jumlah", "", "", "", "", doc.Total}); err != nil {
		return nil, err
	}

	for _, w := range budgetColumnWidths {
		if err := f.SetColWidth(BudgetSheet, w.from, w.to, w.width); err != nil {
			return nil, fmt.Errorf("failed to set width of columns %s:%s: %w", w.from, w.to, err)
		}
	}
	return f, nil
}

var budgetColumnWidths = []struct {
	from, to string
	width    float64
}{
	{"A", "A", 18},
	{"B", "B", 20},
	{"C", "C", 48},
	{"D", "H", 16},
}

// CatalogWorkbook writes a price-standard table with the same headers the import understands,
// so an exported file can be uploaded again.
func CatalogWorkbook(kind model.CatalogSource, ssh []model.UnitPriceStandard, costs []model.CostStandard) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := kind.Category()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	if kind == model.SourceSSH {
		headers := []interface{}{"Kode Kelompok Barang", "Uraian Kelompok Barang", "Kode Barang", "Uraian Barang",
			"Spesifikasi", "Satuan", "Harga Satuan", "Kode Rekening", "Tahun"}
		if err := setRow(f, sheet, 1, headers); err != nil {
			return nil, err
		}
		for i, r := range ssh {
			values := []interface{}{r.GroupCode, r.GroupDescription, r.ItemCode, r.ItemDescription,
				r.Specification, r.Unit, r.UnitPrice, r.AccountCode, r.Year}
			if err := setRow(f, sheet, i+2, values); err != nil {
				return nil, err
			}
		}
		return f, nil
	}

	headers := []interface{}{"Kode", "Uraian", "Spesifikasi", "Satuan", "Harga", "Kode Rekening", "Tahun"}
	if err := setRow(f, sheet, 1, headers); err != nil {
		return nil, err
	}
	for i, r := range costs {
		values := []interface{}{r.Code, r.Description, r.Specification, r.Unit, r.Price, r.AccountCode, r.Year}
		if err := setRow(f, sheet, i+2, values); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// WriteXLSX streams the workbook as an attachment.
func WriteXLSX(w http.ResponseWriter, f *excelize.File, fileName string) error {
	defer f.Close()
	w.Header().Set("Content-Type", XLSXContentType)
	w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(fileName))
	return f.Write(w)
}

// WritePDF sends already printed PDF bytes as an attachment.
func WritePDF(w http.ResponseWriter, pdf []byte, fileName string) error {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(fileName))
	_, err := w.Write(pdf)
	return err
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	if len(values) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

func joinCodeName(code, name string) string {
	switch {
	case code == "":
		return name
	case name == "":
		return code
	}
	return code + " - " + name
}
