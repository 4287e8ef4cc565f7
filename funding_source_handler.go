package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"rkpd/database"
	"rkpd/model"

	"github.com/jmoiron/sqlx"
)

// ListFundingSourcesHandler returns every sumber dana ordered by code.
func ListFundingSourcesHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := database.GetAllFundingSources(db)
		if err != nil {
			log.Printf("ERROR: getting funding sources: %v", err)
			http.Error(w, "Gagal memuat sumber dana.", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(list)
	}
}

// SaveFundingSourceHandler creates a funding source or updates the one with the same code.
func SaveFundingSourceHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input model.FundingSource
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			http.Error(w, "Permintaan tidak valid.", http.StatusBadRequest)
			return
		}
		input.Code, input.Name = strings.TrimSpace(input.Code), strings.TrimSpace(input.Name)
		if input.Code == "" || input.Name == "" {
			http.Error(w, "Kode dan nama sumber dana wajib diisi.", http.StatusBadRequest)
			return
		}

		if err := database.UpsertFundingSource(db, input); err != nil {
			log.Printf("ERROR: saving funding source (Code: %s): %v", input.Code, err)
			http.Error(w, "Gagal menyimpan sumber dana.", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Sumber dana disimpan."})
	}
}

func DeleteFundingSourceHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.PathValue("code")
		if code == "" {
			http.Error(w, "Kode sumber dana tidak ada.", http.StatusBadRequest)
			return
		}

		if err := database.DeleteFundingSource(db, code); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				http.Error(w, "Sumber dana tidak ditemukan.", http.StatusNotFound)
				return
			}
			log.Printf("ERROR: deleting funding source (Code: %s): %v", code, err)
			http.Error(w, "Gagal menghapus sumber dana.", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Sumber dana dihapus."})
	}
}
