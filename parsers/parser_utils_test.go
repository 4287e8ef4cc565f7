package parsers_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"rkpd/parsers"

	"github.com/xuri/excelize/v2"
)

func TestParsePrice_Formats(t *testing.T) {
	for in, expected := range map[string]float64{
		"1500000":         1_500_000,
		"1.500.000":       1_500_000,
		"Rp 1.500.000,50": 1_500_000.5,
		"Rp. 25.000":      25_000,
		"1,500,000.75":    1_500_000.75,
		"2.5":             2.5,
		"2,5":             2.5,
		"12.000":          12_000,
		"":                0,
		"tidak ada":       0,
		" 350 000 ":       350_000,
		"Rp 15.000,-":     15_000,
		"Rp15.000,00-":    15_000,
		"IDR 5.000":       5_000,
		"idr 7.500,-":     7_500,
		"NaN":             0,
	} {
		if actual, _ := parsers.ParsePrice(in); actual != expected {
			t.Errorf("ParsePrice(%q): (actual, expected) = (%v, %v)", in, actual, expected)
		}
	}
}

func TestParsePrice(t *testing.T) {
	type then struct {
		value float64
		ok    bool
	}
	for name, testcase := range map[string]struct {
		when string
		then then
	}{
		"empty cell":        {when: "  ", then: then{value: 0, ok: true}},
		"literal zero":      {when: "0", then: then{value: 0, ok: true}},
		"rupiah with dash":  {when: "Rp 15.000,-", then: then{value: 15_000, ok: true}},
		"text":              {when: "tidak ada", then: then{value: 0, ok: false}},
		"only a dash":       {when: "-", then: then{value: 0, ok: true}},
		"infinite notation": {when: "Inf", then: then{value: 0, ok: false}},
	} {
		t.Run(name, func(t *testing.T) {
			value, ok := parsers.ParsePrice(testcase.when)
			if value != testcase.then.value || ok != testcase.then.ok {
				t.Errorf("ParsePrice(%q): (actual, expected) = (%v %v, %v %v)", testcase.when, value, ok, testcase.then.value, testcase.then.ok)
			}
		})
	}
}

func TestReadCSV(t *testing.T) {
	for name, testcase := range map[string]struct {
		when []byte
		then [][]string
	}{
		"utf-8 with BOM": {
			when: []byte("\xEF\xBB\xBFkode,nama\n1.01,Dinas Pendidikan\n"),
			then: [][]string{{"kode", "nama"}, {"1.01", "Dinas Pendidikan"}},
		},
		"semicolon separated": {
			when: []byte("kode;nama\n1.02;Dinas Kesehatan\n"),
			then: [][]string{{"kode", "nama"}, {"1.02", "Dinas Kesehatan"}},
		},
		"windows-1252 text": {
			when: []byte("kode,uraian\nA1,Caf\xe9\n"),
			then: [][]string{{"kode", "uraian"}, {"A1", "Café"}},
		},
	} {
		t.Run(name, func(t *testing.T) {
			actual, err := parsers.ReadCSV(bytes.NewReader(testcase.when))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(actual, testcase.then) {
				t.Errorf("wrong rows: (actual, expected) = (%q, %q)", actual, testcase.then)
			}
		})
	}
}

func TestDetectHeaderRow(t *testing.T) {
	rows := [][]string{
		{"DAFTAR STANDAR SATUAN HARGA"},
		{"Tahun 2027"},
		{},
		{"No", "Kode Barang", "Uraian Barang", "Spesifikasi", "Satuan", "Harga Satuan", "Kode Rekening"},
		{"1", "1.1.7.01", "Kertas HVS", "A4 80gr", "Rim", "55000", "5.1.02.01"},
	}
	if actual := parsers.DetectHeaderRow(rows); actual != 3 {
		t.Errorf("wrong header row: (actual, expected) = (%d, %d)", actual, 3)
	}
	if actual := parsers.DetectHeaderRow([][]string{{"a", "b"}, {"1", "2"}}); actual != 0 {
		t.Errorf("no hints should give row 0, got %d", actual)
	}
}

func TestRecords_AliasLookup(t *testing.T) {
	rows := [][]string{
		{"Judul"},
		{"KODE", "  Uraian  Barang ", "Satuan", "Harga"},
		{"A.1", "Kertas", "Rim", "55.000"},
		{"", "", "", ""},
		{"A.2", "Tinta", "Botol"},
	}
	records := parsers.Records(rows)
	if len(records) != 2 {
		t.Fatalf("wrong record count: (actual, expected) = (%d, %d)", len(records), 2)
	}
	if actual := records[0].Get("kode", "Kode Barang"); actual != "A.1" {
		t.Errorf("wrong code: %q", actual)
	}
	if actual := records[0].Get("Uraian", "uraian barang"); actual != "Kertas" {
		t.Errorf("wrong description: %q", actual)
	}
	if actual := records[1].Get("harga", "harga satuan"); actual != "" {
		t.Errorf("short row should give an empty price, got %q", actual)
	}
}

func TestReadSheetRows_Workbook(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"Kode", "Nama", "Singkatan"}); err != nil {
		t.Fatal(err)
	}
	if err := f.SetSheetRow(sheet, "A2", &[]interface{}{"1.01.01", "Dinas Pendidikan", "Disdik"}); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}

	rows, err := parsers.ReadSheetRows("opd.xlsx", &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := [][]string{{"Kode", "Nama", "Singkatan"}, {"1.01.01", "Dinas Pendidikan", "Disdik"}}
	if !reflect.DeepEqual(rows, expected) {
		t.Errorf("wrong rows: (actual, expected) = (%q, %q)", rows, expected)
	}
}

func TestReadSheetRows_UnsupportedType(t *testing.T) {
	if _, err := parsers.ReadSheetRows("data.pdf", strings.NewReader("")); err == nil {
		t.Error("expected an error for an unsupported file type")
	}
}

func TestParseYear(t *testing.T) {
	if parsers.ParseYear("2026", 2027) != 2026 || parsers.ParseYear("x", 2027) != 2027 {
		t.Error("wrong ParseYear result")
	}
}
