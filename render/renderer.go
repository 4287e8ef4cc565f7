package render

import (
	"fmt"
	"html"
	"strings"

	"rkpd/mappers"
	"rkpd/model"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Indonesian)

// FormatRupiah formats an amount as IDR without fraction digits ("Rp 1.500.000").
func FormatRupiah(v float64) string {
	return "Rp " + printer.Sprintf("%.0f", v)
}

// FormatNumber formats a quantity with Indonesian grouping, keeping up to two decimals.
func FormatNumber(v float64) string {
	if v == float64(int64(v)) {
		return printer.Sprintf("%d", int64(v))
	}
	return printer.Sprintf("%.2f", v)
}

// BudgetDocument is everything printed on one RKA sheet.
type BudgetDocument struct {
	FiscalYear      int                    `json:"fiscalYear"`
	OPDName         string                 `json:"opdName"`
	ProgramCode     string                 `json:"programCode"`
	ProgramName     string                 `json:"programName"`
	ActivityCode    string                 `json:"activityCode"`
	ActivityName    string                 `json:"activityName"`
	SubActivityCode string                 `json:"subActivityCode"`
	SubActivityName string                 `json:"subActivityName"`
	Ceiling         float64                `json:"validatedCeiling"`
	Items           []mappers.LineItemView `json:"items"`
	Total           float64                `json:"total"`
	Difference      float64                `json:"difference"`
	Variance        model.Variance         `json:"variance"`
}

var varianceLabels = map[model.Variance]string{
	model.VarianceSurplus:  "Sisa Pagu",
	model.VarianceDeficit:  "Melebihi Pagu",
	model.VarianceBalanced: "Sesuai Pagu",
}

// RenderBudgetDocumentHTML produces a standalone HTML page for printing an RKA.
func RenderBudgetDocumentHTML(doc BudgetDocument) string {
	var sb strings.Builder
	esc := html.EscapeString

	sb.WriteString(`<!DOCTYPE html><html lang="id"><head><meta charset="utf-8"><title>RKA</title>
<style>
body { font-family: Arial, sans-serif; font-size: 10pt; margin: 16px; }
h1 { font-size: 14pt; text-align: center; margin: 0 0 12px; }
table { border-collapse: collapse; width: 100%; }
.info td { padding: 2px 6px; }
.items th, .items td { border: 1px solid #333; padding: 4px 6px; }
.items th { background: #e8e8e8; }
.right { text-align: right; }
.center { text-align: center; }
.total td { font-weight: bold; }
</style></head><body>`)
	sb.WriteString(`<h1>RENCANA KERJA DAN ANGGARAN</h1>`)

	sb.WriteString(`<table class="info">`)
	writeInfo := func(label, value string) {
		sb.WriteString(fmt.Sprintf(`<tr><td>%s</td><td>:</td><td>%s</td></tr>`, label, esc(value)))
	}
	writeInfo("Tahun Anggaran", fmt.Sprintf("%d", doc.FiscalYear))
	writeInfo("Perangkat Daerah", doc.OPDName)
	writeInfo("Program", joinCodeName(doc.ProgramCode, doc.ProgramName))
	writeInfo("Kegiatan", joinCodeName(doc.ActivityCode, doc.ActivityName))
	writeInfo("Sub Kegiatan", joinCodeName(doc.SubActivityCode, doc.SubActivityName))
	writeInfo("Pagu Validasi", FormatRupiah(doc.Ceiling))
	sb.WriteString(`</table><br>`)

	sb.WriteString(`<table class="items"><thead><tr>
<th>No</th><th>Kode Rekening</th><th>Uraian</th><th>Volume</th><th>Satuan</th>
<th>Harga Satuan</th><th>PPN</th><th>Total</th></tr></thead><tbody>`)
	if len(doc.Items) == 0 {
		sb.WriteString(`<tr><td colspan="8" class="center">Belum ada rincian belanja.</td></tr>`)
	}
	for i, it := range doc.Items {
		sb.WriteString(`<tr>`)
		sb.WriteString(fmt.Sprintf(`<td class="center">%d</td>`, i+1))
		sb.WriteString(fmt.Sprintf(`<td>%s</td>`, esc(it.AccountCode)))
		sb.WriteString(fmt.Sprintf(`<td>%s</td>`, esc(it.Description)))
		sb.WriteString(fmt.Sprintf(`<td class="center">%s</td>`, esc(it.VolumeDisplay)))
		sb.WriteString(fmt.Sprintf(`<td class="center">%s</td>`, esc(it.Unit)))
		sb.WriteString(fmt.Sprintf(`<td class="right">%s</td>`, FormatRupiah(it.UnitPrice)))
		sb.WriteString(fmt.Sprintf(`<td class="center">%s%%</td>`, FormatNumber(it.TaxRatePercent)))
		sb.WriteString(fmt.Sprintf(`<td class="right">%s</td>`, FormatRupiah(it.Total)))
		sb.WriteString(`</tr>`)
	}
	sb.WriteString(fmt.Sprintf(`<tr class="total"><td colspan="7" class="right">Jumlah</td><td class="right">%s</td></tr>`, FormatRupiah(doc.Total)))
	if label, ok := varianceLabels[doc.Variance]; ok {
		sb.WriteString(fmt.Sprintf(`<tr class="total"><td colspan="7" class="right">%s</td><td class="right">%s</td></tr>`, label, FormatRupiah(doc.Difference)))
	}
	sb.WriteString(`</tbody></table></body></html>`)

	return sb.String()
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
