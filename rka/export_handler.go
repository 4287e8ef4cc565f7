package rka

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"

	"rkpd/automation"
	"rkpd/config"
	"rkpd/export"
	"rkpd/render"

	"github.com/jmoiron/sqlx"
)

func loadForExport(db *sqlx.DB, w http.ResponseWriter, r *http.Request) (render.BudgetDocument, string, bool) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return render.BudgetDocument{}, "", false
	}
	header, doc, err := LoadDocument(db, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJsonError(w, "RKA tidak ditemukan", http.StatusNotFound)
			return doc, "", false
		}
		log.Printf("ERROR: load rka %d for export: %v", id, err)
		writeJsonError(w, "Gagal memuat RKA", http.StatusInternalServerError)
		return doc, "", false
	}
	return doc, fmt.Sprintf("RKA_%s_%d", header.SubActivityCode, header.FiscalYear), true
}

// ExportXLSXHandler downloads header {id} as a workbook.
func ExportXLSXHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, name, ok := loadForExport(db, w, r)
		if !ok {
			return
		}
		f, err := export.BudgetWorkbook(doc)
		if err != nil {
			log.Printf("ERROR: build workbook %s: %v", name, err)
			writeJsonError(w, "Gagal membuat file Excel", http.StatusInternalServerError)
			return
		}
		if err := export.WriteXLSX(w, f, name+".xlsx"); err != nil {
			log.Printf("ERROR: write %s.xlsx: %v", name, err)
		}
	}
}

// ExportPDFHandler renders header {id} to HTML and prints it with the configured browser.
func ExportPDFHandler(db *sqlx.DB, newPrinter func(browserPath string) automation.PDFPrinter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, name, ok := loadForExport(db, w, r)
		if !ok {
			return
		}
		printer := newPrinter(config.GetConfig().BrowserPath)
		pdf, err := printer.PrintPDF(r.Context(), render.RenderBudgetDocumentHTML(doc))
		if err != nil {
			log.Printf("ERROR: print %s: %v", name, err)
			writeJsonError(w, "Gagal membuat PDF: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if err := export.WritePDF(w, pdf, name+".pdf"); err != nil {
			log.Printf("ERROR: write %s.pdf: %v", name, err)
		}
	}
}
