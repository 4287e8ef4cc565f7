package pricing

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

	"github.com/jmoiron/sqlx"
)

// MinSearchLength is the shortest term the RKA catalog picker searches for.
const MinSearchLength = 3

// writeJsonError writes {"message": ...} with the given status.
func writeJsonError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

func writeJson(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// sourceFromPath reads {source} and rejects anything but the four catalog tables.
func sourceFromPath(w http.ResponseWriter, r *http.Request) (model.CatalogSource, bool) {
	kind, ok := model.ParseCatalogSource(r.PathValue("source"))
	if !ok {
		writeJsonError(w, "Unknown catalog: "+r.PathValue("source"), http.StatusNotFound)
	}
	return kind, ok
}

func idFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeJsonError(w, "Invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// pageParams reads page (1-based) and limit, falling back to the configured page size.
func pageParams(r *http.Request) (limit, offset int) {
	limit = config.GetConfig().SearchLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	page := 1
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	return limit, (page - 1) * limit
}

// ListCatalogHandler returns one page of a catalog table as stored.
func ListCatalogHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, ok := sourceFromPath(w, r)
		if !ok {
			return
		}
		search := strings.TrimSpace(r.URL.Query().Get("search"))
		limit, offset := pageParams(r)

		var (
			items interface{}
			total int
			err   error
		)
		if kind == model.SourceSSH {
			items, total, err = database.ListUnitPriceStandards(db, search, limit, offset)
		} else {
			items, total, err = database.ListCostStandards(db, kind, search, limit, offset)
		}
		if err != nil {
			log.Printf("ERROR: list %s: %v", kind, err)
			writeJsonError(w, "Gagal memuat data "+kind.Category(), http.StatusInternalServerError)
			return
		}
		writeJson(w, map[string]interface{}{"items": items, "total": total})
	}
}

// SearchCatalogHandler feeds the RKA catalog picker. Terms shorter than MinSearchLength
// return an empty result without querying.
func SearchCatalogHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, ok := sourceFromPath(w, r)
		if !ok {
			return
		}
		q := strings.TrimSpace(r.URL.Query().Get("q"))
		if len([]rune(q)) < MinSearchLength {
			writeJson(w, map[string]interface{}{"items": []model.CatalogItem{}, "total": 0})
			return
		}
		limit := config.GetConfig().SearchLimit

		var (
			items []model.CatalogItem
			total int
		)
		if kind == model.SourceSSH {
			rows, n, err := database.ListUnitPriceStandards(db, q, limit, 0)
			if err != nil {
				log.Printf("ERROR: search ssh %q: %v", q, err)
				writeJsonError(w, "Pencarian gagal", http.StatusInternalServerError)
				return
			}
			items, total = mappers.NormalizeUnitPriceStandards(rows), n
		} else {
			rows, n, err := database.ListCostStandards(db, kind, q, limit, 0)
			if err != nil {
				log.Printf("ERROR: search %s %q: %v", kind, q, err)
				writeJsonError(w, "Pencarian gagal", http.StatusInternalServerError)
				return
			}
			items, total = mappers.NormalizeCostStandards(rows), n
		}
		writeJson(w, map[string]interface{}{"items": items, "total": total})
	}
}

// GetCatalogItemHandler returns one catalog row normalized for the RKA draft.
func GetCatalogItemHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, ok := sourceFromPath(w, r)
		if !ok {
			return
		}
		id, ok := idFromPath(w, r)
		if !ok {
			return
		}
		rec, err := database.GetCatalogRecord(db, kind, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				writeJsonError(w, "Data tidak ditemukan", http.StatusNotFound)
				return
			}
			log.Printf("ERROR: get %s %d: %v", kind, id, err)
			writeJsonError(w, "Gagal memuat data", http.StatusInternalServerError)
			return
		}
		writeJson(w, mappers.NormalizeCatalog(rec))
	}
}

func CatalogCountsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts, err := database.CountCatalogs(db)
		if err != nil {
			log.Printf("ERROR: %v", err)
			writeJsonError(w, "Gagal menghitung data standar harga", http.StatusInternalServerError)
			return
		}
		writeJson(w, counts)
	}
}

func validateRecord(description string, price float64) error {
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("uraian wajib diisi")
	}
	if price < 0 {
		return fmt.Errorf("harga tidak boleh negatif")
	}
	return nil
}

// SaveCatalogHandler creates a row (POST) or, when {id} is present, updates it (PUT).
func SaveCatalogHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, ok := sourceFromPath(w, r)
		if !ok {
			return
		}
		var id int64
		if r.PathValue("id") != "" {
			if id, ok = idFromPath(w, r); !ok {
				return
			}
		}

		var err error
		if kind == model.SourceSSH {
			var rec model.UnitPriceStandard
			if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
				writeJsonError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
				return
			}
			if err := validateRecord(rec.ItemDescription, rec.UnitPrice); err != nil {
				writeJsonError(w, err.Error(), http.StatusBadRequest)
				return
			}
			if rec.Year == 0 {
				rec.Year = config.GetConfig().FiscalYear
			}
			if id == 0 {
				id, err = database.CreateUnitPriceStandard(db, rec)
			} else {
				rec.ID = id
				err = database.UpdateUnitPriceStandard(db, rec)
			}
		} else {
			var rec model.CostStandard
			if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
				writeJsonError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
				return
			}
			if err := validateRecord(rec.Description, rec.Price); err != nil {
				writeJsonError(w, err.Error(), http.StatusBadRequest)
				return
			}
			rec.Kind = kind
			if rec.Year == 0 {
				rec.Year = config.GetConfig().FiscalYear
			}
			if id == 0 {
				id, err = database.CreateCostStandard(db, rec)
			} else {
				rec.ID = id
				err = database.UpdateCostStandard(db, rec)
			}
		}
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				writeJsonError(w, "Data tidak ditemukan", http.StatusNotFound)
				return
			}
			log.Printf("ERROR: save %s %d: %v", kind, id, err)
			writeJsonError(w, "Gagal menyimpan data", http.StatusInternalServerError)
			return
		}
		writeJson(w, map[string]interface{}{"message": "Data berhasil disimpan.", "id": id})
	}
}

func DeleteCatalogHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, ok := sourceFromPath(w, r)
		if !ok {
			return
		}
		id, ok := idFromPath(w, r)
		if !ok {
			return
		}
		if err := database.DeleteCatalogRecord(db, kind, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				writeJsonError(w, "Data tidak ditemukan", http.StatusNotFound)
				return
			}
			log.Printf("ERROR: delete %s %d: %v", kind, id, err)
			writeJsonError(w, "Gagal menghapus data", http.StatusInternalServerError)
			return
		}
		writeJson(w, map[string]string{"message": "Data berhasil dihapus."})
	}
}

// ClearCatalogHandler empties a whole catalog table.
func ClearCatalogHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, ok := sourceFromPath(w, r)
		if !ok {
			return
		}
		n, err := database.ClearCatalog(db, kind)
		if err != nil {
			log.Printf("ERROR: clear %s: %v", kind, err)
			writeJsonError(w, "Gagal mengosongkan data", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: cleared %d rows from %s", n, kind)
		writeJson(w, map[string]interface{}{
			"message": fmt.Sprintf("%d data %s dihapus.", n, kind.Category()),
			"deleted": n,
		})
	}
}
