package parsers

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// HeaderScanRows is how many leading rows are searched for the header row.
const HeaderScanRows = 20

// headerHints are the words that mark a header row in catalog and master uploads.
var headerHints = []string{"kode", "uraian", "harga", "satuan", "spesifikasi", "rekening", "nama"}

// ReadSheetRows reads the first sheet of an .xlsx file or the rows of a .csv file.
func ReadSheetRows(filename string, r io.Reader) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ReadCSV(r)
	case ".xlsx", ".xlsm":
		f, err := excelize.OpenReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to open workbook %s: %w", filename, err)
		}
		defer f.Close()
		sheet := f.GetSheetName(0)
		if sheet == "" {
			return nil, fmt.Errorf("workbook %s has no sheet", filename)
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
	}
}

// DetectHeaderRow returns the index of the row among the first HeaderScanRows with the most
// cells containing a header hint. It is 0 when no row has any.
func DetectHeaderRow(rows [][]string) int {
	best, bestHits := 0, 0
	for i, row := range rows {
		if i >= HeaderScanRows {
			break
		}
		hits := 0
		for _, cell := range row {
			c := strings.ToLower(cell)
			for _, h := range headerHints {
				if strings.Contains(c, h) {
					hits++
					break
				}
			}
		}
		if hits > bestHits {
			best, bestHits = i, hits
		}
	}
	return best
}

// Record is one data row keyed by its normalized header.
type Record map[string]string

// Get returns the first non-empty value among the header aliases, compared case-insensitively.
func (r Record) Get(aliases ...string) string {
	for _, a := range aliases {
		if v, ok := r[normalizeHeader(a)]; ok && v != "" {
			return v
		}
	}
	return ""
}

// Records turns sheet rows into records below the detected header row. Blank rows are skipped.
func Records(rows [][]string) []Record {
	if len(rows) == 0 {
		return nil
	}
	h := DetectHeaderRow(rows)
	header := make([]string, len(rows[h]))
	for i, name := range rows[h] {
		header[i] = normalizeHeader(name)
	}

	var out []Record
	for _, row := range rows[h+1:] {
		rec := make(Record, len(header))
		blank := true
		for i, name := range header {
			if name == "" || i >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[i])
			if v != "" {
				blank = false
			}
			if _, seen := rec[name]; !seen || rec[name] == "" {
				rec[name] = v
			}
		}
		if !blank {
			out = append(out, rec)
		}
	}
	return out
}

func normalizeHeader(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
