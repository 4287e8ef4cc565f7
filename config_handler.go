package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"

	"rkpd/config"
)

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// GetConfigHandler returns the current settings.
func GetConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := config.GetConfig()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(cfg)
	}
}

// SaveConfigHandler validates and persists the settings. Empty fields fall back to defaults.
func SaveConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var newCfg config.Config
		if err := json.NewDecoder(r.Body).Decode(&newCfg); err != nil {
			writeJSONError(w, "Permintaan tidak valid.", http.StatusBadRequest)
			return
		}

		if err := validateFolderPath(newCfg.SeedFolderPath); err != nil {
			writeJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := validateFilePath(newCfg.BrowserPath); err != nil {
			writeJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		if newCfg.FiscalYear < 0 || newCfg.SearchLimit < 0 || newCfg.ImportChunkSize < 0 {
			writeJSONError(w, "Nilai angka tidak boleh negatif.", http.StatusBadRequest)
			return
		}

		if err := config.SaveConfig(newCfg); err != nil {
			log.Printf("Error saving config: %v", err)
			writeJSONError(w, "Gagal menyimpan pengaturan.", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Pengaturan disimpan."})
	}
}

func validateFolderPath(path string) error {
	if path == "" {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.New("Folder tidak ditemukan: " + path)
		}
		log.Printf("Error checking folder path: %v", err)
		return errors.New("Gagal memeriksa folder.")
	}
	if !info.IsDir() {
		return errors.New("Path bukan folder: " + path)
	}
	return nil
}

func validateFilePath(path string) error {
	if path == "" {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.New("Berkas tidak ditemukan: " + path)
		}
		log.Printf("Error checking file path: %v", err)
		return errors.New("Gagal memeriksa berkas.")
	}
	if info.IsDir() {
		return errors.New("Path adalah folder, bukan berkas: " + path)
	}
	return nil
}
