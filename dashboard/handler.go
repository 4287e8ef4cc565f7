package dashboard

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"rkpd/config"
	"rkpd/database"

	"github.com/jmoiron/sqlx"
)

// UpcomingLimit is how many schedule stages the home screen lists.
const UpcomingLimit = 5

// Progress is the share of the validated ceiling already spent on line items, in percent.
func Progress(items, ceiling float64) float64 {
	if ceiling == 0 {
		return 0
	}
	return items / ceiling * 100
}

// SummaryHandler returns counters, totals and the next schedule stages for ?year
// (default: the configured fiscal year).
func SummaryHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year := config.GetConfig().FiscalYear
		if v := r.URL.Query().Get("year"); v != "" {
			y, err := strconv.Atoi(v)
			if err != nil {
				http.Error(w, "Invalid year", http.StatusBadRequest)
				return
			}
			year = y
		}

		summary, err := database.GetDashboardTotals(db, year)
		if err != nil {
			log.Printf("ERROR: dashboard totals for %d: %v", year, err)
			http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
			return
		}
		summary.Progress = Progress(summary.TotalItems, summary.TotalCeiling)

		upcoming, err := database.UpcomingSchedules(db, time.Now().Format("2006-01-02"), UpcomingLimit)
		if err != nil {
			log.Printf("WARN: upcoming schedules: %v", err)
		}
		summary.UpcomingStages = upcoming

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(summary)
	}
}
