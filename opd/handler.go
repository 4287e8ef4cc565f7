package opd

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"rkpd/config"
	"rkpd/database"
	"rkpd/mappers"
	"rkpd/model"
	"rkpd/parsers"

	"github.com/jmoiron/sqlx"
)

func writeJsonError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// ListHandler returns every OPD ordered by code, filtered by ?search= on code, name or abbreviation.
func ListHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := database.ListOPD(db, strings.TrimSpace(r.URL.Query().Get("search")))
		if err != nil {
			log.Printf("ERROR: list opd: %v", err)
			writeJsonError(w, "Gagal memuat daftar OPD", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(list)
	}
}

// SaveHandler creates an OPD (POST) or updates the one at {id} (PUT).
func SaveHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var o model.OPD
		if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
			writeJsonError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
		o.Code, o.Name = strings.TrimSpace(o.Code), strings.TrimSpace(o.Name)
		if o.Code == "" || o.Name == "" {
			writeJsonError(w, "Kode dan nama OPD wajib diisi", http.StatusBadRequest)
			return
		}

		var err error
		if raw := r.PathValue("id"); raw != "" {
			o.ID, err = strconv.ParseInt(raw, 10, 64)
			if err != nil {
				writeJsonError(w, "Invalid id", http.StatusBadRequest)
				return
			}
			err = database.UpdateOPD(db, o)
		} else {
			o.ID, err = database.CreateOPD(db, o)
		}
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				writeJsonError(w, "OPD tidak ditemukan", http.StatusNotFound)
				return
			}
			log.Printf("ERROR: save opd %s: %v", o.Code, err)
			writeJsonError(w, "Gagal menyimpan OPD", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(o)
	}
}

func DeleteHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			writeJsonError(w, "Invalid id", http.StatusBadRequest)
			return
		}
		if err := database.DeleteOPD(db, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				writeJsonError(w, "OPD tidak ditemukan", http.StatusNotFound)
				return
			}
			log.Printf("ERROR: delete opd %d: %v", id, err)
			writeJsonError(w, "Gagal menghapus OPD", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "OPD berhasil dihapus."})
	}
}

func ClearHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := database.ClearOPD(db)
		if err != nil {
			log.Printf("ERROR: clear opd: %v", err)
			writeJsonError(w, "Gagal mengosongkan OPD", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: cleared %d opd rows", n)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"message": fmt.Sprintf("%d OPD dihapus.", n), "deleted": n})
	}
}

// ImportHandler loads an uploaded OPD list (.xlsx or .csv, form field "file").
// Rows without a code or name are skipped.
func ImportHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, fileHeader, err := r.FormFile("file")
		if err != nil {
			writeJsonError(w, "Gagal membaca file: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()

		rows, err := parsers.ReadSheetRows(fileHeader.Filename, file)
		if err != nil {
			writeJsonError(w, "Gagal membaca file: "+err.Error(), http.StatusBadRequest)
			return
		}

		var list []model.OPD
		skipped := 0
		for _, rec := range parsers.Records(rows) {
			o, ok := mappers.MapOPDRecord(rec)
			if !ok {
				skipped++
				continue
			}
			list = append(list, o)
		}
		if len(list) == 0 {
			writeJsonError(w, "Tidak ada data OPD yang dapat diimport.", http.StatusBadRequest)
			return
		}

		tx, err := db.Beginx()
		if err != nil {
			writeJsonError(w, "Failed to start transaction", http.StatusInternalServerError)
			return
		}
		defer tx.Rollback()

		if err := database.InsertOPDsInTx(tx, list, config.GetConfig().ImportChunkSize); err != nil {
			log.Printf("ERROR: import opd: %v", err)
			writeJsonError(w, "Gagal menyimpan OPD: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if err := tx.Commit(); err != nil {
			writeJsonError(w, "Failed to commit transaction", http.StatusInternalServerError)
			return
		}

		if skipped > 0 {
			log.Printf("WARN: opd import skipped %d rows without code or name", skipped)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message":  fmt.Sprintf("%d OPD berhasil diimport.", len(list)),
			"imported": len(list),
			"skipped":  skipped,
		})
	}
}
