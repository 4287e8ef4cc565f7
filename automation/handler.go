package automation

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"

	"rkpd/config"
)

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// CheckPrinterHandler prints a one-line page with the configured browser so the settings
// screen can confirm that PDF export works.
func CheckPrinterHandler(newPrinter func(browserPath string) PDFPrinter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := config.GetConfig()
		printer := newPrinter(cfg.BrowserPath)

		log.Println("Checking PDF printer...")
		pdf, err := printer.PrintPDF(r.Context(), `<html><body><p>RKPD</p></body></html>`)
		if err != nil {
			log.Printf("ERROR: PDF printer check failed: %v", err)
			writeJSONError(w, "Browser untuk PDF tidak dapat dijalankan: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if !bytes.HasPrefix(pdf, []byte("%PDF")) {
			writeJSONError(w, "Browser tidak menghasilkan PDF yang valid.", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "Browser untuk PDF siap digunakan.",
			"bytes":   len(pdf),
		})
	}
}
