package renja

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"rkpd/aggregation"
	"rkpd/config"
	"rkpd/database"
	"rkpd/model"

	"github.com/jmoiron/sqlx"
)

// PickerLimit caps the sub-activity picker results.
const PickerLimit = 20

func writeJsonError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

func yearParam(r *http.Request) int {
	if y, err := strconv.Atoi(r.URL.Query().Get("year")); err == nil && y > 0 {
		return y
	}
	return config.GetConfig().FiscalYear
}

// Response is the Renja of one OPD for one fiscal year.
type Response struct {
	OPDID        int64   `json:"opdId"`
	FiscalYear   int     `json:"fiscalYear"`
	Groups       []*Node `json:"groups"`
	TotalCeiling float64 `json:"totalCeiling"`
	TotalItems   float64 `json:"totalItems"`
}

// ListHandler returns the Renja of ?opd= for ?year= (default: configured fiscal year).
func ListHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opdID, err := strconv.ParseInt(r.URL.Query().Get("opd"), 10, 64)
		if err != nil || opdID <= 0 {
			writeJsonError(w, "OPD wajib dipilih", http.StatusBadRequest)
			return
		}
		year := yearParam(r)

		rows, err := database.ListBudgetReportRows(db, year, opdID)
		if err != nil {
			log.Printf("ERROR: renja opd %d year %d: %v", opdID, year, err)
			writeJsonError(w, "Gagal memuat renja", http.StatusInternalServerError)
			return
		}
		tree := Build(rows)
		if skipped := len(Entries(rows)) - aggregation.CountRows(tree); skipped > 0 {
			log.Printf("WARN: %d renja entries of opd %d have an unresolved sub kegiatan and are not listed", skipped, opdID)
		}

		resp := Response{OPDID: opdID, FiscalYear: year, Groups: tree.Children}
		if resp.Groups == nil {
			resp.Groups = []*Node{}
		}
		resp.TotalCeiling, resp.TotalItems = Totals(tree)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

// AddHandler adds a sub-activity to an OPD's Renja. A second entry for the same
// OPD, sub-activity and year is rejected with 409.
func AddHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input struct {
			OPDID           int64  `json:"opdId"`
			SubActivityCode string `json:"subActivityCode"`
			FiscalYear      int    `json:"fiscalYear"`
		}
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeJsonError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
		input.SubActivityCode = strings.TrimSpace(input.SubActivityCode)
		if input.OPDID <= 0 || input.SubActivityCode == "" {
			writeJsonError(w, "OPD dan sub kegiatan wajib dipilih", http.StatusBadRequest)
			return
		}
		if input.FiscalYear == 0 {
			input.FiscalYear = config.GetConfig().FiscalYear
		}

		if _, err := database.GetOPD(db, input.OPDID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				writeJsonError(w, "OPD tidak ditemukan", http.StatusBadRequest)
				return
			}
			log.Printf("ERROR: %v", err)
			writeJsonError(w, "Gagal memeriksa OPD", http.StatusInternalServerError)
			return
		}
		if _, err := database.GetRefNode(db, model.LevelSubActivity, input.SubActivityCode); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				writeJsonError(w, "Sub kegiatan tidak ditemukan", http.StatusBadRequest)
				return
			}
			log.Printf("ERROR: %v", err)
			writeJsonError(w, "Gagal memeriksa sub kegiatan", http.StatusInternalServerError)
			return
		}

		id, err := database.CreateBudgetHeader(db, input.OPDID, input.SubActivityCode, input.FiscalYear)
		if err != nil {
			if errors.Is(err, database.ErrDuplicateBudget) {
				writeJsonError(w, "Sub kegiatan sudah ada di renja OPD ini untuk tahun tersebut", http.StatusConflict)
				return
			}
			log.Printf("ERROR: add renja %+v: %v", input, err)
			writeJsonError(w, "Gagal menambahkan sub kegiatan", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: renja %d added (opd %d, %s, %d)", id, input.OPDID, input.SubActivityCode, input.FiscalYear)

		h, err := database.GetBudgetHeader(db, id)
		if err != nil {
			log.Printf("ERROR: %v", err)
			writeJsonError(w, "Gagal memuat renja", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(h)
	}
}

// ValidateCeiling accepts any finite number >= 0.
func ValidateCeiling(v *float64) error {
	switch {
	case v == nil:
		return errors.New("pagu wajib diisi")
	case math.IsNaN(*v) || math.IsInf(*v, 0):
		return errors.New("pagu harus berupa angka")
	case *v < 0:
		return errors.New("pagu tidak boleh negatif")
	}
	return nil
}

func UpdateCeilingHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			writeJsonError(w, "Invalid id", http.StatusBadRequest)
			return
		}
		var input struct {
			Ceiling *float64 `json:"validatedCeiling"`
		}
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeJsonError(w, "Pagu harus berupa angka", http.StatusBadRequest)
			return
		}
		if err := ValidateCeiling(input.Ceiling); err != nil {
			writeJsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := database.UpdateBudgetCeiling(db, id, *input.Ceiling); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				writeJsonError(w, "Renja tidak ditemukan", http.StatusNotFound)
				return
			}
			log.Printf("ERROR: %v", err)
			writeJsonError(w, "Gagal menyimpan pagu", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"message": "Pagu disimpan.", "validatedCeiling": *input.Ceiling})
	}
}

// DeleteHandler removes a header and its line items.
func DeleteHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			writeJsonError(w, "Invalid id", http.StatusBadRequest)
			return
		}
		tx, err := db.Beginx()
		if err != nil {
			writeJsonError(w, "Failed to start transaction", http.StatusInternalServerError)
			return
		}
		defer tx.Rollback()

		if err := database.DeleteBudgetHeaderInTx(tx, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				writeJsonError(w, "Renja tidak ditemukan", http.StatusNotFound)
				return
			}
			log.Printf("ERROR: %v", err)
			writeJsonError(w, "Gagal menghapus renja", http.StatusInternalServerError)
			return
		}
		if err := tx.Commit(); err != nil {
			writeJsonError(w, "Failed to commit transaction", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Renja dihapus."})
	}
}

// SubActivityPickerHandler searches sub-activities by code or name for the add dialog.
func SubActivityPickerHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		nodes, err := database.ListRefNodes(db, model.LevelSubActivity, strings.TrimSpace(r.URL.Query().Get("q")), "", PickerLimit)
		if err != nil {
			log.Printf("ERROR: %v", err)
			writeJsonError(w, "Gagal mencari sub kegiatan", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(nodes)
	}
}
