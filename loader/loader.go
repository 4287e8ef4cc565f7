package loader

import (
	_ "embed"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"rkpd/database"
	"rkpd/model"
	"rkpd/parsers"
	"rkpd/units"

	"github.com/jmoiron/sqlx"
)

//go:embed schema.sql
var schemaSQL string

// seedFiles maps each hierarchy level to its CSV in the seed folder.
// Columns: kode, nama, parent kode (not for urusan), kinerja, satuan (sub kegiatan only).
var seedFiles = []struct {
	level model.RefLevel
	file  string
}{
	{model.LevelAffair, "urusan.csv"},
	{model.LevelField, "bidang_urusan.csv"},
	{model.LevelProgram, "program.csv"},
	{model.LevelActivity, "kegiatan.csv"},
	{model.LevelSubActivity, "sub_kegiatan.csv"},
}

// InitDatabase applies the schema and loads the seed folder.
func InitDatabase(db *sqlx.DB, seedFolder string) error {
	log.Println("Applying database schema...")
	if err := ApplySchema(db); err != nil {
		return fmt.Errorf("failed to apply schema.sql: %w", err)
	}
	log.Println("Schema applied successfully.")

	if err := LoadSeedFolder(db, seedFolder); err != nil {
		return err
	}
	return nil
}

func ApplySchema(db *sqlx.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// LoadSeedFolder loads every hierarchy CSV found in folder, then satuan.csv.
// Missing files are skipped with a warning.
func LoadSeedFolder(db *sqlx.DB, folder string) error {
	if folder == "" {
		return nil
	}
	if _, err := os.Stat(folder); os.IsNotExist(err) {
		log.Printf("WARN: seed folder %s not found, skipping.", folder)
		return nil
	}

	for _, s := range seedFiles {
		path := filepath.Join(folder, s.file)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			log.Printf("WARN: %s not found, skipping.", path)
			continue
		}
		log.Printf("Loading %s...", path)
		n, err := LoadCSV(db, path, s.level, true)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
		log.Printf("Inserted or replaced %d rows into %s", n, s.level)
	}

	unitPath := filepath.Join(folder, "satuan.csv")
	if _, err := os.Stat(unitPath); os.IsNotExist(err) {
		log.Printf("WARN: %s not found, using built-in unit names.", unitPath)
	} else if _, err := units.LoadUnitFile(unitPath); err != nil {
		log.Printf("WARN: Failed to load %s: %v", unitPath, err)
	} else {
		log.Printf("Unit names (%s) loaded successfully.", unitPath)
	}
	return nil
}

// LoadCSV inserts or replaces the rows of one hierarchy CSV in a single transaction.
func LoadCSV(db *sqlx.DB, path string, level model.RefLevel, skipHeader bool) (count int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("could not open file %s: %w", path, err)
	}
	defer f.Close()

	rows, err := parsers.ReadCSV(f)
	if err != nil {
		return 0, err
	}
	if skipHeader && len(rows) > 0 {
		rows = rows[1:]
	}

	nodes := make([]model.RefNode, 0, len(rows))
	for _, row := range rows {
		n, ok := nodeFromRow(level, row)
		if !ok {
			continue
		}
		nodes = append(nodes, n)
	}

	tx, err := db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			log.Printf("Rolling back transaction for %s due to error: %v", level, err)
			tx.Rollback()
		} else {
			err = tx.Commit()
			if err != nil {
				log.Printf("Error committing transaction for %s: %v", level, err)
			}
		}
	}()

	if err = database.ReplaceRefNodesInTx(tx, level, nodes); err != nil {
		return 0, err
	}
	return len(nodes), nil
}

func nodeFromRow(level model.RefLevel, row []string) (model.RefNode, bool) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	n := model.RefNode{Code: cell(0), Name: cell(1)}
	if n.Code == "" {
		return n, false
	}
	if level != model.LevelAffair {
		n.ParentCode = cell(2)
	}
	if level == model.LevelSubActivity {
		n.Performance = cell(3)
		n.Unit = cell(4)
	}
	return n, true
}
