package loader

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"rkpd/config"

	"github.com/jmoiron/sqlx"
)

// ReloadReferenceHandler re-reads the hierarchy and unit CSVs from the seed folder.
func ReloadReferenceHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		folder := config.GetConfig().SeedFolderPath
		log.Printf("HTTP request received: Reloading reference data from %s...", folder)

		if err := LoadSeedFolder(db, folder); err != nil {
			msg := fmt.Sprintf("failed to reload reference data: %v", err)
			log.Println(msg)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"message": msg})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"message": "Data referensi berhasil dimuat ulang.",
		})
	}
}
