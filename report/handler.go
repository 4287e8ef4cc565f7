package report

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"rkpd/database"

	"github.com/jmoiron/sqlx"
)

// RecapHandler returns the recap for ?year=, or for every year when it is absent.
func RecapHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year := 0
		if v := r.URL.Query().Get("year"); v != "" {
			y, err := strconv.Atoi(v)
			if err != nil || y <= 0 {
				http.Error(w, "Tahun tidak valid", http.StatusBadRequest)
				return
			}
			year = y
		}

		rows, err := database.ListBudgetReportRows(db, year, 0)
		if err != nil {
			log.Printf("ERROR: report rows (year %d): %v", year, err)
			http.Error(w, "Gagal memuat laporan", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Build(year, rows))
	}
}
