package database

import (
	"fmt"

	"rkpd/model"

	"github.com/jmoiron/sqlx"
)

// ListOPD returns OPDs ordered by code, filtered by code, name or abbreviation.
func ListOPD(dbtx DBTX, search string) ([]model.OPD, error) {
	q := `SELECT id, kode, nama, singkatan FROM opd`
	var args []interface{}
	if search != "" {
		q += ` WHERE kode LIKE ? OR nama LIKE ? OR singkatan LIKE ?`
		p := likePattern(search)
		args = append(args, p, p, p)
	}
	q += ` ORDER BY kode, id`
	list := []model.OPD{}
	if err := dbtx.Select(&list, q, args...); err != nil {
		return nil, fmt.Errorf("failed to list opd: %w", err)
	}
	return list, nil
}

func GetOPD(dbtx DBTX, id int64) (model.OPD, error) {
	var o model.OPD
	if err := dbtx.Get(&o, `SELECT id, kode, nama, singkatan FROM opd WHERE id = ?`, id); err != nil {
		return o, fmt.Errorf("failed to get opd %d: %w", id, err)
	}
	return o, nil
}

func CreateOPD(dbtx DBTX, o model.OPD) (int64, error) {
	res, err := dbtx.NamedExec(`INSERT INTO opd (kode, nama, singkatan) VALUES (:kode, :nama, :singkatan)`, o)
	if err != nil {
		return 0, fmt.Errorf("CreateOPD (kode: %s) failed: %w", o.Code, err)
	}
	return res.LastInsertId()
}

func UpdateOPD(dbtx DBTX, o model.OPD) error {
	res, err := dbtx.NamedExec(`UPDATE opd SET kode = :kode, nama = :nama, singkatan = :singkatan WHERE id = :id`, o)
	if err != nil {
		return fmt.Errorf("UpdateOPD (id: %d) failed: %w", o.ID, err)
	}
	return mustAffect(res)
}

func DeleteOPD(dbtx DBTX, id int64) error {
	res, err := dbtx.Exec(`DELETE FROM opd WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete opd %d: %w", id, err)
	}
	return mustAffect(res)
}

func ClearOPD(dbtx DBTX) (int64, error) {
	res, err := dbtx.Exec(`DELETE FROM opd`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear opd: %w", err)
	}
	return res.RowsAffected()
}

// InsertOPDsInTx bulk-inserts imported OPD rows in chunks.
func InsertOPDsInTx(tx *sqlx.Tx, list []model.OPD, chunkSize int) error {
	const q = `INSERT INTO opd (kode, nama, singkatan) VALUES (:kode, :nama, :singkatan)`
	for start := 0; start < len(list); start += chunkSize {
		end := min(start+chunkSize, len(list))
		if _, err := tx.NamedExec(q, list[start:end]); err != nil {
			return fmt.Errorf("failed to insert opd rows %d-%d: %w", start+1, end, err)
		}
	}
	return nil
}
