package pricing

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"rkpd/database"
	"rkpd/export"
	"rkpd/model"

	"github.com/jmoiron/sqlx"
)

// ExportCatalogHandler downloads a whole catalog table as .xlsx.
func ExportCatalogHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, ok := sourceFromPath(w, r)
		if !ok {
			return
		}

		var (
			ssh   []model.UnitPriceStandard
			costs []model.CostStandard
			err   error
		)
		// LIMIT -1 is "no limit" in sqlite
		if kind == model.SourceSSH {
			ssh, _, err = database.ListUnitPriceStandards(db, "", -1, 0)
		} else {
			costs, _, err = database.ListCostStandards(db, kind, "", -1, 0)
		}
		if err != nil {
			log.Printf("ERROR: export %s: %v", kind, err)
			writeJsonError(w, "Failed to get rows for export", http.StatusInternalServerError)
			return
		}

		f, err := export.CatalogWorkbook(kind, ssh, costs)
		if err != nil {
			log.Printf("ERROR: export %s: %v", kind, err)
			writeJsonError(w, "Failed to build workbook", http.StatusInternalServerError)
			return
		}
		fileName := fmt.Sprintf("%s_%s.xlsx", kind.Category(), time.Now().Format("20060102_150405"))
		if err := export.WriteXLSX(w, f, fileName); err != nil {
			log.Printf("ERROR: write %s: %v", fileName, err)
		}
	}
}
