package main

import (
	"net/http"

	"rkpd/automation"
	"rkpd/dashboard"
	"rkpd/loader"
	"rkpd/opd"
	"rkpd/pricing"
	"rkpd/reference"
	"rkpd/renja"
	"rkpd/report"
	"rkpd/rka"
	"rkpd/schedule"
	"rkpd/units"

	"github.com/jmoiron/sqlx"
)

func newChromePrinter(browserPath string) automation.PDFPrinter {
	return automation.ChromePrinter{BrowserPath: browserPath}
}

func SetupRoutes(mux *http.ServeMux, dbConn *sqlx.DB) {
	// price standards (SSH / SBU / HSPK / ASB)
	mux.HandleFunc("GET /api/catalog/counts", pricing.CatalogCountsHandler(dbConn))
	mux.HandleFunc("GET /api/catalog/{source}", pricing.ListCatalogHandler(dbConn))
	mux.HandleFunc("GET /api/catalog/{source}/search", pricing.SearchCatalogHandler(dbConn))
	mux.HandleFunc("GET /api/catalog/{source}/export", pricing.ExportCatalogHandler(dbConn))
	mux.HandleFunc("GET /api/catalog/{source}/{id}", pricing.GetCatalogItemHandler(dbConn))
	mux.HandleFunc("POST /api/catalog/{source}", pricing.SaveCatalogHandler(dbConn))
	mux.HandleFunc("PUT /api/catalog/{source}/{id}", pricing.SaveCatalogHandler(dbConn))
	mux.HandleFunc("DELETE /api/catalog/{source}/{id}", pricing.DeleteCatalogHandler(dbConn))
	mux.HandleFunc("POST /api/catalog/{source}/import", pricing.ImportCatalogHandler(dbConn))
	mux.HandleFunc("DELETE /api/catalog/{source}/import/{batch}", pricing.UndoImportHandler(dbConn))
	mux.HandleFunc("POST /api/catalog/{source}/clear", pricing.ClearCatalogHandler(dbConn))

	// government hierarchy
	mux.HandleFunc("POST /api/reference/reload", loader.ReloadReferenceHandler(dbConn))
	mux.HandleFunc("GET /api/reference/{level}", reference.ListHandler(dbConn))
	mux.HandleFunc("GET /api/reference/{level}/grouped", reference.GroupedHandler(dbConn))
	mux.HandleFunc("POST /api/reference/{level}", reference.SaveHandler(dbConn))
	mux.HandleFunc("PUT /api/reference/{level}/{code}", reference.SaveHandler(dbConn))
	mux.HandleFunc("DELETE /api/reference/{level}/{code}", reference.DeleteHandler(dbConn))

	mux.HandleFunc("GET /api/opd", opd.ListHandler(dbConn))
	mux.HandleFunc("POST /api/opd", opd.SaveHandler(dbConn))
	mux.HandleFunc("POST /api/opd/import", opd.ImportHandler(dbConn))
	mux.HandleFunc("POST /api/opd/clear", opd.ClearHandler(dbConn))
	mux.HandleFunc("PUT /api/opd/{id}", opd.SaveHandler(dbConn))
	mux.HandleFunc("DELETE /api/opd/{id}", opd.DeleteHandler(dbConn))

	mux.HandleFunc("GET /api/funding-sources", ListFundingSourcesHandler(dbConn))
	mux.HandleFunc("POST /api/funding-sources", SaveFundingSourceHandler(dbConn))
	mux.HandleFunc("DELETE /api/funding-sources/{code}", DeleteFundingSourceHandler(dbConn))

	mux.HandleFunc("GET /api/schedules", schedule.ListHandler(dbConn))
	mux.HandleFunc("POST /api/schedules", schedule.SaveHandler(dbConn))
	mux.HandleFunc("PUT /api/schedules/{id}", schedule.SaveHandler(dbConn))
	mux.HandleFunc("DELETE /api/schedules/{id}", schedule.DeleteHandler(dbConn))

	mux.HandleFunc("GET /api/units", units.NamesHandler())

	// work plan and budget headers
	mux.HandleFunc("GET /api/renja", renja.ListHandler(dbConn))
	mux.HandleFunc("POST /api/renja", renja.AddHandler(dbConn))
	mux.HandleFunc("GET /api/renja/sub-activities", renja.SubActivityPickerHandler(dbConn))
	mux.HandleFunc("PUT /api/renja/{id}/ceiling", renja.UpdateCeilingHandler(dbConn))
	mux.HandleFunc("DELETE /api/renja/{id}", renja.DeleteHandler(dbConn))

	// budget line items
	mux.HandleFunc("GET /api/rka/{id}", rka.ViewHandler(dbConn))
	mux.HandleFunc("GET /api/rka/{id}/draft", rka.NewDraftHandler(dbConn))
	mux.HandleFunc("POST /api/rka/draft", rka.ApplyDraftHandler(dbConn))
	mux.HandleFunc("POST /api/rka/{id}/items", rka.SaveLineItemHandler(rka.SQLStore{DB: dbConn}))
	mux.HandleFunc("GET /api/rka/items/{itemId}/draft", rka.EditDraftHandler(dbConn))
	mux.HandleFunc("DELETE /api/rka/items/{itemId}", rka.DeleteLineItemHandler(dbConn))
	mux.HandleFunc("GET /api/rka/{id}/export/xlsx", rka.ExportXLSXHandler(dbConn))
	mux.HandleFunc("GET /api/rka/{id}/export/pdf", rka.ExportPDFHandler(dbConn, newChromePrinter))

	mux.HandleFunc("GET /api/report", report.RecapHandler(dbConn))
	mux.HandleFunc("GET /api/dashboard", dashboard.SummaryHandler(dbConn))

	mux.HandleFunc("GET /api/config", GetConfigHandler())
	mux.HandleFunc("POST /api/config", SaveConfigHandler())
	mux.HandleFunc("POST /api/pdf/check", automation.CheckPrinterHandler(newChromePrinter))
}
