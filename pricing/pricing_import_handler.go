package pricing

import (
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"time"

	"rkpd/config"
	"rkpd/database"
	"rkpd/mappers"
	"rkpd/model"
	"rkpd/parsers"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ImportResult is returned after an upload; Batch identifies the rows for undo.
type ImportResult struct {
	Message  string `json:"message"`
	Batch    string `json:"batch"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
}

// ImportCatalogHandler loads an uploaded .xlsx or .csv file (form field "file") into one catalog table.
func ImportCatalogHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, ok := sourceFromPath(w, r)
		if !ok {
			return
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			writeJsonError(w, "File upload error", http.StatusBadRequest)
			return
		}
		file, fileHeader, err := r.FormFile("file")
		if err != nil {
			writeJsonError(w, "File tidak ditemukan pada form", http.StatusBadRequest)
			return
		}
		defer file.Close()

		records, err := readRecords(file, fileHeader)
		if err != nil {
			writeJsonError(w, fmt.Sprintf("File '%s' tidak dapat dibaca: %v", fileHeader.Filename, err), http.StatusBadRequest)
			return
		}

		batch := uuid.New().String()
		result, err := importRecords(db, kind, records, batch, time.Now().Year(), config.GetConfig().ImportChunkSize)
		if err != nil {
			log.Printf("ERROR: import %s from %s: %v", kind, fileHeader.Filename, err)
			writeJsonError(w, "Gagal menyimpan data import: "+err.Error(), http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: imported %d %s rows from %s (batch %s, %d skipped)",
			result.Imported, kind, fileHeader.Filename, batch, result.Skipped)
		writeJson(w, result)
	}
}

func readRecords(file multipart.File, fileHeader *multipart.FileHeader) ([]parsers.Record, error) {
	rows, err := parsers.ReadSheetRows(fileHeader.Filename, file)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("file has no data rows")
	}
	return parsers.Records(rows), nil
}

// importRecords maps and inserts every record in a single transaction.
func importRecords(db *sqlx.DB, kind model.CatalogSource, records []parsers.Record, batch string, year, chunkSize int) (ImportResult, error) {
	result := ImportResult{Batch: batch}

	tx, err := db.Beginx()
	if err != nil {
		return result, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if kind == model.SourceSSH {
		rows := make([]model.UnitPriceStandard, 0, len(records))
		for _, rec := range records {
			if row, ok := mappers.MapUnitPriceStandardRecord(rec, year, batch); ok {
				rows = append(rows, row)
			}
		}
		result.Imported = len(rows)
		if err := database.InsertUnitPriceStandardsInTx(tx, rows, chunkSize); err != nil {
			return result, err
		}
	} else {
		rows := make([]model.CostStandard, 0, len(records))
		for _, rec := range records {
			if row, ok := mappers.MapCostStandardRecord(kind, rec, year, batch); ok {
				rows = append(rows, row)
			}
		}
		result.Imported = len(rows)
		if err := database.InsertCostStandardsInTx(tx, kind, rows, chunkSize); err != nil {
			return result, err
		}
	}
	result.Skipped = len(records) - result.Imported

	if err := tx.Commit(); err != nil {
		return result, fmt.Errorf("failed to commit import: %w", err)
	}
	result.Message = fmt.Sprintf("%d data %s berhasil diimport.", result.Imported, kind.Category())
	return result, nil
}

// UndoImportHandler removes every row written by one upload.
func UndoImportHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, ok := sourceFromPath(w, r)
		if !ok {
			return
		}
		batch := r.PathValue("batch")
		if _, err := uuid.Parse(batch); err != nil {
			writeJsonError(w, "Invalid import batch", http.StatusBadRequest)
			return
		}
		n, err := database.DeleteImportBatch(db, kind, batch)
		if err != nil {
			log.Printf("ERROR: undo import %s %s: %v", kind, batch, err)
			writeJsonError(w, "Gagal membatalkan import", http.StatusInternalServerError)
			return
		}
		if n == 0 {
			writeJsonError(w, "Import tidak ditemukan", http.StatusNotFound)
			return
		}
		log.Printf("INFO: removed %d %s rows of batch %s", n, kind, batch)
		writeJson(w, map[string]interface{}{
			"message": fmt.Sprintf("%d data %s dibatalkan.", n, kind.Category()),
			"deleted": n,
		})
	}
}
