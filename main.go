package main

import (
	"log"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"rkpd/config"
	"rkpd/loader"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("WARN: Failed to load config file: %v. Using defaults.", err)
	}

	log.Println("Connecting to database...")
	dbConn, err := sqlx.Open("sqlite3", cfg.DatabasePath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	defer dbConn.Close()
	log.Println("Database connection successful.")

	if err := loader.InitDatabase(dbConn, cfg.SeedFolderPath); err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}
	log.Println("Database initialization complete.")

	mux := http.NewServeMux()

	if info, err := os.Stat("static"); err == nil && info.IsDir() {
		mux.Handle("/", http.FileServer(http.Dir("./static")))
	} else {
		log.Println("WARN: 'static' directory not found. Serving the API only.")
	}

	SetupRoutes(mux, dbConn)

	url := "http://localhost" + cfg.ListenAddr
	if !strings.HasPrefix(cfg.ListenAddr, ":") {
		url = "http://" + cfg.ListenAddr
	}
	log.Printf("Starting server on %s (fiscal year %d)", url, cfg.FiscalYear)

	if cfg.OpenBrowser {
		openBrowser(url)
	}

	if err := http.ListenAndServe(cfg.ListenAddr, mux); err != nil {
		log.Fatalf("server start error: %v", err)
	}
}

func openBrowser(url string) {
	var err error
	switch runtime.GOOS {
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	default:
		err = exec.Command("xdg-open", url).Start()
	}
	if err != nil {
		log.Printf("failed to open browser: %v", err)
	}
}
