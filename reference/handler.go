package reference

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"rkpd/aggregation"
	"rkpd/database"
	"rkpd/model"

	"github.com/jmoiron/sqlx"
)

func writeJsonError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

func levelFromPath(w http.ResponseWriter, r *http.Request) (model.RefLevel, bool) {
	level, ok := model.ParseRefLevel(r.PathValue("level"))
	if !ok {
		writeJsonError(w, "Unknown reference level: "+r.PathValue("level"), http.StatusNotFound)
	}
	return level, ok
}

// ListHandler returns the nodes of one level. Query: search, parent, limit.
func ListHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		level, ok := levelFromPath(w, r)
		if !ok {
			return
		}
		q := r.URL.Query()
		limit, _ := strconv.Atoi(q.Get("limit"))
		nodes, err := database.ListRefNodes(db, level, strings.TrimSpace(q.Get("search")), q.Get("parent"), limit)
		if err != nil {
			log.Printf("ERROR: list %s: %v", level, err)
			writeJsonError(w, "Gagal memuat data referensi", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(nodes)
	}
}

// GroupedHandler returns the nodes of one level nested under their ancestors.
func GroupedHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		level, ok := levelFromPath(w, r)
		if !ok {
			return
		}
		if _, ok := groupLevels[level]; !ok {
			writeJsonError(w, "Urusan tidak memiliki induk", http.StatusBadRequest)
			return
		}
		paths, err := database.ListHierarchyPaths(db, level)
		if err != nil {
			log.Printf("ERROR: %v", err)
			writeJsonError(w, "Gagal memuat data referensi", http.StatusInternalServerError)
			return
		}
		tree := Group(level, paths)
		if skipped := len(paths) - aggregation.CountRows(tree); skipped > 0 {
			log.Printf("WARN: %d %s rows have a missing parent and are not listed", skipped, level)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(tree.Children)
	}
}

func validateNode(level model.RefLevel, n model.RefNode) string {
	switch {
	case strings.TrimSpace(n.Code) == "":
		return "Kode wajib diisi"
	case strings.TrimSpace(n.Name) == "":
		return "Nama wajib diisi"
	case level != model.LevelAffair && strings.TrimSpace(n.ParentCode) == "":
		return "Induk wajib dipilih"
	}
	return ""
}

// SaveHandler creates a node (POST) or updates the node at {code} (PUT); the code itself may change.
func SaveHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		level, ok := levelFromPath(w, r)
		if !ok {
			return
		}
		var n model.RefNode
		if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
			writeJsonError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
		n.Code = strings.TrimSpace(n.Code)
		if msg := validateNode(level, n); msg != "" {
			writeJsonError(w, msg, http.StatusBadRequest)
			return
		}

		var err error
		original := r.PathValue("code")
		if original == "" {
			err = database.CreateRefNode(db, level, n)
		} else {
			err = database.UpdateRefNode(db, level, original, n)
		}
		switch {
		case err == nil:
		case errors.Is(err, sql.ErrNoRows):
			writeJsonError(w, "Data tidak ditemukan", http.StatusNotFound)
			return
		case database.IsUniqueViolation(err):
			writeJsonError(w, "Kode "+n.Code+" sudah digunakan", http.StatusConflict)
			return
		default:
			log.Printf("ERROR: save %s %s: %v", level, n.Code, err)
			writeJsonError(w, "Gagal menyimpan data", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(n)
	}
}

func DeleteHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		level, ok := levelFromPath(w, r)
		if !ok {
			return
		}
		code := r.PathValue("code")
		if err := database.DeleteRefNode(db, level, code); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				writeJsonError(w, "Data tidak ditemukan", http.StatusNotFound)
				return
			}
			log.Printf("ERROR: delete %s %s: %v", level, code, err)
			writeJsonError(w, "Gagal menghapus data", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Data berhasil dihapus."})
	}
}
