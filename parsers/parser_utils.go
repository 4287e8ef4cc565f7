package parsers

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// SkipBOM skips a UTF-8 BOM.
func SkipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	bom := []byte{0xEF, 0xBB, 0xBF}
	peeked, err := br.Peek(3)
	if err != nil {
		return br
	}
	if bytes.Equal(peeked, bom) {
		br.Discard(3)
	}
	return br
}

// DecodeText returns r as UTF-8. Input that is not valid UTF-8 is read as Windows-1252,
// which is what spreadsheet programs on Indonesian office PCs write for "CSV".
func DecodeText(r io.Reader) (io.Reader, error) {
	raw, err := io.ReadAll(SkipBOM(r))
	if err != nil {
		return nil, fmt.Errorf("failed to read text: %w", err)
	}
	if utf8.Valid(raw) {
		return bytes.NewReader(raw), nil
	}
	return transform.NewReader(bytes.NewReader(raw), charmap.Windows1252.NewDecoder()), nil
}

// ReadCSV reads every record of a CSV stream. Both "," and ";" separated files are accepted.
func ReadCSV(r io.Reader) ([][]string, error) {
	text, err := DecodeText(r)
	if err != nil {
		return nil, err
	}
	raw, err := io.ReadAll(text)
	if err != nil {
		return nil, fmt.Errorf("failed to decode csv: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.Comma = detectComma(raw)

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

// detectComma picks ';' when it outnumbers ',' over the first HeaderScanRows lines, so a
// title line above the header does not decide the separator.
func detectComma(raw []byte) rune {
	semicolons, commas := 0, 0
	for i, line := range bytes.SplitN(raw, []byte("\n"), HeaderScanRows+1) {
		if i == HeaderScanRows {
			break
		}
		semicolons += bytes.Count(line, []byte(";"))
		commas += bytes.Count(line, []byte(","))
	}
	if semicolons > commas {
		return ';'
	}
	return ','
}

// ParsePrice reads a money cell. Indonesian formatting ("Rp 1.500.000,50", "Rp 15.000,-",
// "IDR 5.000") and plain numbers ("1500000.5") are both accepted. An empty cell is 0 and ok;
// text that is not a finite amount is 0 and not ok.
func ParsePrice(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	for _, prefix := range []string{"rp.", "rp", "idr"} {
		if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
			s = s[len(prefix):]
			break
		}
	}
	if strings.HasSuffix(s, "-") {
		s = strings.TrimRight(strings.TrimSuffix(s, "-"), ",.")
	}
	if s == "" {
		return 0, true
	}

	dots := strings.Count(s, ".")
	commas := strings.Count(s, ",")
	switch {
	case dots > 0 && commas > 0:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case dots > 0:
		if dots > 1 || groupedThousands(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
		}
	case commas > 0:
		if commas > 1 || groupedThousands(s, ",") {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func groupedThousands(s, sep string) bool {
	i := strings.LastIndex(s, sep)
	return len(s)-i-1 == 3
}

// ParseYear reads a year cell; fallback is returned for anything that is not a year.
func ParseYear(s string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 1900 || v > 9999 {
		return fallback
	}
	return v
}

