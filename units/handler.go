package units

import (
	"encoding/json"
	"net/http"
)

// NamesHandler returns the alias to display-name map used by the unit picker.
func NamesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Names())
	}
}
