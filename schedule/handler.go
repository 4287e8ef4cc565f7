package schedule

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"rkpd/database"
	"rkpd/model"

	"github.com/jmoiron/sqlx"
)

const dateLayout = "2006-01-02"

func writeJsonError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// Validate checks a stage: name required, dates as YYYY-MM-DD, end not before start,
// status Buka or Tutup (empty becomes Buka).
func Validate(s *model.Schedule) error {
	s.Stage = strings.TrimSpace(s.Stage)
	if s.Stage == "" {
		return errors.New("tahapan wajib diisi")
	}
	start, err := time.Parse(dateLayout, s.Start)
	if err != nil {
		return errors.New("tanggal mulai tidak valid")
	}
	end, err := time.Parse(dateLayout, s.End)
	if err != nil {
		return errors.New("tanggal selesai tidak valid")
	}
	if end.Before(start) {
		return errors.New("tanggal selesai sebelum tanggal mulai")
	}
	switch s.Status {
	case "":
		s.Status = model.ScheduleOpen
	case model.ScheduleOpen, model.ScheduleClosed:
	default:
		return errors.New("status harus Buka atau Tutup")
	}
	return nil
}

func ListHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := database.ListSchedules(db)
		if err != nil {
			log.Printf("ERROR: list schedules: %v", err)
			writeJsonError(w, "Gagal memuat jadwal", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(list)
	}
}

// SaveHandler creates a stage (POST) or updates the one at {id} (PUT).
func SaveHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var s model.Schedule
		if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
			writeJsonError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
		if err := Validate(&s); err != nil {
			writeJsonError(w, err.Error(), http.StatusBadRequest)
			return
		}

		var err error
		if raw := r.PathValue("id"); raw != "" {
			if s.ID, err = strconv.ParseInt(raw, 10, 64); err != nil {
				writeJsonError(w, "Invalid id", http.StatusBadRequest)
				return
			}
			err = database.UpdateSchedule(db, s)
		} else {
			s.ID, err = database.CreateSchedule(db, s)
		}
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				writeJsonError(w, "Jadwal tidak ditemukan", http.StatusNotFound)
				return
			}
			log.Printf("ERROR: save schedule %q: %v", s.Stage, err)
			writeJsonError(w, "Gagal menyimpan jadwal", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(s)
	}
}

func DeleteHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			writeJsonError(w, "Invalid id", http.StatusBadRequest)
			return
		}
		if err := database.DeleteSchedule(db, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				writeJsonError(w, "Jadwal tidak ditemukan", http.StatusNotFound)
				return
			}
			log.Printf("ERROR: delete schedule %d: %v", id, err)
			writeJsonError(w, "Gagal menghapus jadwal", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Jadwal dihapus."})
	}
}
