package rka

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"rkpd/coefficient"
	"rkpd/database"
	"rkpd/mappers"
	"rkpd/model"

	"github.com/jmoiron/sqlx"
)

func writeJsonError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

func writeJson(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		writeJsonError(w, "Invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// ViewHandler returns a header with its line items and totals.
func ViewHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}
		header, doc, err := LoadDocument(db, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				writeJsonError(w, "RKA tidak ditemukan", http.StatusNotFound)
				return
			}
			log.Printf("ERROR: load rka %d: %v", id, err)
			writeJsonError(w, "Gagal memuat RKA", http.StatusInternalServerError)
			return
		}
		writeJson(w, map[string]interface{}{"header": header, "document": doc})
	}
}

// DraftResponse is a draft together with its derived figures.
type DraftResponse struct {
	Draft   coefficient.Draft   `json:"draft"`
	Preview coefficient.Preview `json:"preview"`
}

func draftResponse(d coefficient.Draft) DraftResponse {
	return DraftResponse{Draft: d, Preview: d.Preview()}
}

// loadCatalogItem resolves a catalog selection. The manual source needs no row.
func loadCatalogItem(db *sqlx.DB, source string, id int64) (model.CatalogItem, error) {
	if model.CatalogSource(source) == model.SourceManual {
		return model.CatalogItem{Source: model.SourceManual}, nil
	}
	kind, ok := model.ParseCatalogSource(source)
	if !ok {
		return model.CatalogItem{}, errUnknownSource
	}
	rec, err := database.GetCatalogRecord(db, kind, id)
	if err != nil {
		return model.CatalogItem{}, err
	}
	return mappers.NormalizeCatalog(rec), nil
}

var errUnknownSource = errors.New("unknown catalog source")

// NewDraftHandler starts a draft for header {id} from ?source=&catalogId=.
func NewDraftHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}
		catalogID, _ := strconv.ParseInt(r.URL.Query().Get("catalogId"), 10, 64)
		item, err := loadCatalogItem(db, r.URL.Query().Get("source"), catalogID)
		if err != nil {
			writeCatalogError(w, err)
			return
		}
		writeJson(w, draftResponse(coefficient.InitializeForNewSelection(id, item)))
	}
}

func writeCatalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errUnknownSource):
		writeJsonError(w, "Sumber standar harga tidak dikenal", http.StatusBadRequest)
	case errors.Is(err, sql.ErrNoRows):
		writeJsonError(w, "Item standar harga tidak ditemukan", http.StatusNotFound)
	default:
		log.Printf("ERROR: load catalog item: %v", err)
		writeJsonError(w, "Gagal memuat item standar harga", http.StatusInternalServerError)
	}
}

// EditDraftHandler rebuilds the draft of a stored line item.
func EditDraftHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "itemId")
		if !ok {
			return
		}
		item, err := database.GetLineItem(db, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				writeJsonError(w, "Rincian tidak ditemukan", http.StatusNotFound)
				return
			}
			log.Printf("ERROR: get line item %d: %v", id, err)
			writeJsonError(w, "Gagal memuat rincian", http.StatusInternalServerError)
			return
		}
		d := coefficient.InitializeForEdit(item)
		if d.Degraded {
			log.Printf("WARN: line item %d coefficient %q could not be split per unit; editing as one factor", id, item.LegacyString)
		}
		writeJson(w, draftResponse(d))
	}
}

// DraftAction is one edit applied to a draft.
type DraftAction struct {
	Draft     coefficient.Draft       `json:"draft"`
	Action    string                  `json:"action"`
	Index     int                     `json:"index"`
	Factor    model.CoefficientFactor `json:"factor"`
	Unit      string                  `json:"unit"`
	Source    string                  `json:"source"`
	CatalogID int64                   `json:"catalogId"`
}

// ApplyDraftHandler applies an action (add-factor, remove-factor, set-factor, set-unit,
// reset-unit, select-item, or none for a plain preview) and returns the new draft.
func ApplyDraftHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in DraftAction
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJsonError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
		d := in.Draft
		switch in.Action {
		case "":
		case "add-factor":
			d.AddFactor(in.Factor)
		case "remove-factor":
			if !d.RemoveFactor(in.Index) {
				writeJsonError(w, "Koefisien tidak dapat dihapus", http.StatusBadRequest)
				return
			}
		case "set-factor":
			if !d.SetFactor(in.Index, in.Factor) {
				writeJsonError(w, "Koefisien tidak ditemukan", http.StatusBadRequest)
				return
			}
		case "set-unit":
			d.SetUnit(in.Unit)
		case "reset-unit":
			d.ResetUnitToCombined()
		case "select-item":
			item, err := loadCatalogItem(db, in.Source, in.CatalogID)
			if err != nil {
				writeCatalogError(w, err)
				return
			}
			d.SelectCatalogItem(item)
		default:
			writeJsonError(w, "Unknown action: "+in.Action, http.StatusBadRequest)
			return
		}
		resp := draftResponse(d)
		if !resp.Preview.InRange() {
			writeJsonError(w, coefficient.ErrTotalOutOfRange.Message, http.StatusBadRequest)
			return
		}
		writeJson(w, resp)
	}
}

// SaveLineItemHandler validates a draft for header {id} and inserts it, or updates the
// stored item when the draft carries an id. Nothing is written when validation fails.
func SaveLineItemHandler(store LineItemStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parentID, ok := pathID(w, r, "id")
		if !ok {
			return
		}
		var d coefficient.Draft
		if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
			writeJsonError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
		d.ParentBudgetID = parentID

		item, err := d.Build()
		if err != nil {
			var verr *coefficient.ValidationError
			if errors.As(err, &verr) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(map[string]string{"message": verr.Message, "field": verr.Field})
				return
			}
			writeJsonError(w, err.Error(), http.StatusBadRequest)
			return
		}

		exists, err := store.BudgetExists(parentID)
		if err != nil {
			log.Printf("ERROR: check budget %d: %v", parentID, err)
			writeJsonError(w, "Gagal memeriksa RKA", http.StatusInternalServerError)
			return
		}
		if !exists {
			writeJsonError(w, "RKA tidak ditemukan", http.StatusNotFound)
			return
		}

		if item.ID == 0 {
			item.ID, err = store.Insert(item)
		} else {
			var stored model.BudgetLineItem
			stored, err = store.Get(item.ID)
			if err == nil && stored.ParentBudgetID != parentID {
				writeJsonError(w, "Rincian bukan milik RKA ini", http.StatusBadRequest)
				return
			}
			if err == nil {
				err = store.Update(item)
			}
		}
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				writeJsonError(w, "Rincian tidak ditemukan", http.StatusNotFound)
				return
			}
			log.Printf("ERROR: save line item of budget %d: %v", parentID, err)
			writeJsonError(w, "Gagal menyimpan rincian", http.StatusInternalServerError)
			return
		}

		saved, err := store.Get(item.ID)
		if err != nil {
			log.Printf("ERROR: reload line item %d: %v", item.ID, err)
			writeJsonError(w, "Gagal memuat rincian", http.StatusInternalServerError)
			return
		}
		writeJson(w, mappers.ToLineItemView(saved))
	}
}

func DeleteLineItemHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "itemId")
		if !ok {
			return
		}
		if err := database.DeleteLineItem(db, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				writeJsonError(w, "Rincian tidak ditemukan", http.StatusNotFound)
				return
			}
			log.Printf("ERROR: delete line item %d: %v", id, err)
			writeJsonError(w, "Gagal menghapus rincian", http.StatusInternalServerError)
			return
		}
		writeJson(w, map[string]string{"message": "Rincian dihapus."})
	}
}
