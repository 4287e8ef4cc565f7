package opd_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rkpd/database"
	"rkpd/loader"
	"rkpd/opd"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := loader.ApplySchema(db); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}
	return db
}

func TestImportHandler(t *testing.T) {
	db := newTestDB(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", "opd.csv")
	fw.Write([]byte("Kode OPD,Nama OPD,Singkatan\n1.01.01,Dinas Pendidikan,Disdik\n1.02.01,,\n1.02.02,Dinas Kesehatan,Dinkes\n"))
	mw.Close()
	req := httptest.NewRequest(http.MethodPost, "/api/opd/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	opd.ImportHandler(db)(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: (actual, expected) = (%d, %d) body=%s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var body struct {
		Imported int `json:"imported"`
		Skipped  int `json:"skipped"`
	}
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Imported != 2 || body.Skipped != 1 {
		t.Errorf("result: (actual, expected) = (%d/%d, 2/1)", body.Imported, body.Skipped)
	}

	list, err := database.ListOPD(db, "dinkes")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Name != "Dinas Kesehatan" {
		t.Errorf("search by abbreviation: %+v", list)
	}
}

func TestSaveHandler(t *testing.T) {
	db := newTestDB(t)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/opd", opd.SaveHandler(db))
	mux.HandleFunc("PUT /api/opd/{id}", opd.SaveHandler(db))
	mux.HandleFunc("DELETE /api/opd/{id}", opd.DeleteHandler(db))

	for name, testcase := range map[string]struct {
		method string
		path   string
		body   string
		then   int
	}{
		"create":         {method: http.MethodPost, path: "/api/opd", body: `{"code":"1.01.01","name":"Dinas Pendidikan"}`, then: http.StatusOK},
		"missing name":   {method: http.MethodPost, path: "/api/opd", body: `{"code":"1.01.01"}`, then: http.StatusBadRequest},
		"update missing": {method: http.MethodPut, path: "/api/opd/99", body: `{"code":"x","name":"y"}`, then: http.StatusNotFound},
		"bad id":         {method: http.MethodPut, path: "/api/opd/abc", body: `{"code":"x","name":"y"}`, then: http.StatusBadRequest},
		"delete missing": {method: http.MethodDelete, path: "/api/opd/99", then: http.StatusNotFound},
	} {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(testcase.method, testcase.path, strings.NewReader(testcase.body)))
			if rec.Code != testcase.then {
				t.Errorf("status: (actual, expected) = (%d, %d)", rec.Code, testcase.then)
			}
		})
	}
}
