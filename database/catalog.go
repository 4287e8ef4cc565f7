package database

import (
	"fmt"

	"rkpd/model"

	"github.com/jmoiron/sqlx"
)

const sshColumns = `id, kode_kelompok_barang, uraian_kelompok_barang, kode_barang, uraian_barang,
	spesifikasi, satuan, harga_satuan, kode_rekening, tahun, import_batch`

const costColumns = `id, kode, uraian, spesifikasi, satuan, harga, kode_rekening, tahun, import_batch`

// ListUnitPriceStandards returns one page of the ssh table ordered by item code, plus the
// number of rows matching the search.
func ListUnitPriceStandards(dbtx DBTX, search string, limit, offset int) ([]model.UnitPriceStandard, int, error) {
	where := ""
	var args []interface{}
	if search != "" {
		where = ` WHERE kode_barang LIKE ? OR uraian_barang LIKE ? OR spesifikasi LIKE ?`
		p := likePattern(search)
		args = append(args, p, p, p)
	}

	var total int
	if err := dbtx.Get(&total, `SELECT COUNT(*) FROM ssh`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count ssh rows: %w", err)
	}

	q := `SELECT ` + sshColumns + ` FROM ssh` + where + ` ORDER BY kode_barang, id LIMIT ? OFFSET ?`
	rows := []model.UnitPriceStandard{}
	if err := dbtx.Select(&rows, q, append(args, limit, offset)...); err != nil {
		return nil, 0, fmt.Errorf("failed to list ssh rows: %w", err)
	}
	return rows, total, nil
}

// ListCostStandards is ListUnitPriceStandards for the sbu, hspk and asb tables.
func ListCostStandards(dbtx DBTX, kind model.CatalogSource, search string, limit, offset int) ([]model.CostStandard, int, error) {
	if kind == model.SourceSSH {
		return nil, 0, fmt.Errorf("ssh is not a cost standard table")
	}
	table := kind.Table()
	where := ""
	var args []interface{}
	if search != "" {
		where = ` WHERE kode LIKE ? OR uraian LIKE ? OR spesifikasi LIKE ?`
		p := likePattern(search)
		args = append(args, p, p, p)
	}

	var total int
	if err := dbtx.Get(&total, `SELECT COUNT(*) FROM `+table+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count %s rows: %w", table, err)
	}

	q := `SELECT ` + costColumns + ` FROM ` + table + where + ` ORDER BY kode, id LIMIT ? OFFSET ?`
	rows := []model.CostStandard{}
	if err := dbtx.Select(&rows, q, append(args, limit, offset)...); err != nil {
		return nil, 0, fmt.Errorf("failed to list %s rows: %w", table, err)
	}
	for i := range rows {
		rows[i].Kind = kind
	}
	return rows, total, nil
}

// GetCatalogRecord loads one row of any catalog table.
func GetCatalogRecord(dbtx DBTX, kind model.CatalogSource, id int64) (model.CatalogRecord, error) {
	if kind == model.SourceSSH {
		var r model.UnitPriceStandard
		if err := dbtx.Get(&r, `SELECT `+sshColumns+` FROM ssh WHERE id = ?`, id); err != nil {
			return nil, fmt.Errorf("failed to get ssh row %d: %w", id, err)
		}
		return r, nil
	}
	var r model.CostStandard
	if err := dbtx.Get(&r, `SELECT `+costColumns+` FROM `+kind.Table()+` WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("failed to get %s row %d: %w", kind, id, err)
	}
	r.Kind = kind
	return r, nil
}

func CreateUnitPriceStandard(dbtx DBTX, r model.UnitPriceStandard) (int64, error) {
	const q = `INSERT INTO ssh (kode_kelompok_barang, uraian_kelompok_barang, kode_barang, uraian_barang,
		spesifikasi, satuan, harga_satuan, kode_rekening, tahun, import_batch)
		VALUES (:kode_kelompok_barang, :uraian_kelompok_barang, :kode_barang, :uraian_barang,
		:spesifikasi, :satuan, :harga_satuan, :kode_rekening, :tahun, :import_batch)`
	res, err := dbtx.NamedExec(q, r)
	if err != nil {
		return 0, fmt.Errorf("CreateUnitPriceStandard failed: %w", err)
	}
	return res.LastInsertId()
}

func UpdateUnitPriceStandard(dbtx DBTX, r model.UnitPriceStandard) error {
	const q = `UPDATE ssh SET
		kode_kelompok_barang = :kode_kelompok_barang, uraian_kelompok_barang = :uraian_kelompok_barang,
		kode_barang = :kode_barang, uraian_barang = :uraian_barang, spesifikasi = :spesifikasi,
		satuan = :satuan, harga_satuan = :harga_satuan, kode_rekening = :kode_rekening, tahun = :tahun
		WHERE id = :id`
	res, err := dbtx.NamedExec(q, r)
	if err != nil {
		return fmt.Errorf("UpdateUnitPriceStandard (id: %d) failed: %w", r.ID, err)
	}
	return mustAffect(res)
}

func CreateCostStandard(dbtx DBTX, r model.CostStandard) (int64, error) {
	q := `INSERT INTO ` + r.Kind.Table() + ` (kode, uraian, spesifikasi, satuan, harga, kode_rekening, tahun, import_batch)
		VALUES (:kode, :uraian, :spesifikasi, :satuan, :harga, :kode_rekening, :tahun, :import_batch)`
	res, err := dbtx.NamedExec(q, r)
	if err != nil {
		return 0, fmt.Errorf("CreateCostStandard (%s) failed: %w", r.Kind, err)
	}
	return res.LastInsertId()
}

func UpdateCostStandard(dbtx DBTX, r model.CostStandard) error {
	q := `UPDATE ` + r.Kind.Table() + ` SET kode = :kode, uraian = :uraian, spesifikasi = :spesifikasi,
		satuan = :satuan, harga = :harga, kode_rekening = :kode_rekening, tahun = :tahun
		WHERE id = :id`
	res, err := dbtx.NamedExec(q, r)
	if err != nil {
		return fmt.Errorf("UpdateCostStandard (%s id: %d) failed: %w", r.Kind, r.ID, err)
	}
	return mustAffect(res)
}

func DeleteCatalogRecord(dbtx DBTX, kind model.CatalogSource, id int64) error {
	res, err := dbtx.Exec(`DELETE FROM `+kind.Table()+` WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s row %d: %w", kind, id, err)
	}
	return mustAffect(res)
}

// ClearCatalog empties one catalog table and returns the number of removed rows.
func ClearCatalog(dbtx DBTX, kind model.CatalogSource) (int64, error) {
	res, err := dbtx.Exec(`DELETE FROM ` + kind.Table())
	if err != nil {
		return 0, fmt.Errorf("failed to clear %s: %w", kind, err)
	}
	return res.RowsAffected()
}

// DeleteImportBatch removes every row written by one upload.
func DeleteImportBatch(dbtx DBTX, kind model.CatalogSource, batch string) (int64, error) {
	if batch == "" {
		return 0, fmt.Errorf("import batch id is empty")
	}
	res, err := dbtx.Exec(`DELETE FROM `+kind.Table()+` WHERE import_batch = ?`, batch)
	if err != nil {
		return 0, fmt.Errorf("failed to delete %s batch %s: %w", kind, batch, err)
	}
	return res.RowsAffected()
}

// InsertUnitPriceStandardsInTx bulk-inserts rows in chunks.
func InsertUnitPriceStandardsInTx(tx *sqlx.Tx, rows []model.UnitPriceStandard, chunkSize int) error {
	const q = `INSERT INTO ssh (kode_kelompok_barang, uraian_kelompok_barang, kode_barang, uraian_barang,
		spesifikasi, satuan, harga_satuan, kode_rekening, tahun, import_batch)
		VALUES (:kode_kelompok_barang, :uraian_kelompok_barang, :kode_barang, :uraian_barang,
		:spesifikasi, :satuan, :harga_satuan, :kode_rekening, :tahun, :import_batch)`
	for start := 0; start < len(rows); start += chunkSize {
		end := min(start+chunkSize, len(rows))
		if _, err := tx.NamedExec(q, rows[start:end]); err != nil {
			return fmt.Errorf("failed to insert ssh rows %d-%d: %w", start+1, end, err)
		}
	}
	return nil
}

// InsertCostStandardsInTx bulk-inserts rows of one cost standard table in chunks.
func InsertCostStandardsInTx(tx *sqlx.Tx, kind model.CatalogSource, rows []model.CostStandard, chunkSize int) error {
	q := `INSERT INTO ` + kind.Table() + ` (kode, uraian, spesifikasi, satuan, harga, kode_rekening, tahun, import_batch)
		VALUES (:kode, :uraian, :spesifikasi, :satuan, :harga, :kode_rekening, :tahun, :import_batch)`
	for start := 0; start < len(rows); start += chunkSize {
		end := min(start+chunkSize, len(rows))
		if _, err := tx.NamedExec(q, rows[start:end]); err != nil {
			return fmt.Errorf("failed to insert %s rows %d-%d: %w", kind, start+1, end, err)
		}
	}
	return nil
}

// CountCatalogs counts the rows of the four catalog tables.
func CountCatalogs(dbtx DBTX) (model.CatalogCounts, error) {
	var c model.CatalogCounts
	const q = `SELECT
		(SELECT COUNT(*) FROM ssh) AS ssh,
		(SELECT COUNT(*) FROM sbu) AS sbu,
		(SELECT COUNT(*) FROM hspk) AS hspk,
		(SELECT COUNT(*) FROM asb) AS asb`
	row := dbtx.QueryRow(q)
	if err := row.Scan(&c.SSH, &c.SBU, &c.HSPK, &c.ASB); err != nil {
		return c, fmt.Errorf("failed to count catalogs: %w", err)
	}
	c.Total = c.SSH + c.SBU + c.HSPK + c.ASB
	return c, nil
}
