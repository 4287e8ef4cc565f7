package database

import (
	"fmt"

	"rkpd/model"
)

func GetAllFundingSources(dbtx DBTX) ([]model.FundingSource, error) {
	list := []model.FundingSource{}
	if err := dbtx.Select(&list, `SELECT id, kode, nama, is_input FROM sumber_dana ORDER BY kode`); err != nil {
		return nil, fmt.Errorf("failed to get all funding sources: %w", err)
	}
	return list, nil
}

// UpsertFundingSource inserts a funding source or updates the one with the same code.
func UpsertFundingSource(dbtx DBTX, f model.FundingSource) error {
	const q = `
		INSERT INTO sumber_dana (kode, nama, is_input)
		VALUES (:kode, :nama, :is_input)
		ON CONFLICT(kode) DO UPDATE SET
			nama = excluded.nama,
			is_input = excluded.is_input
	`
	if _, err := dbtx.NamedExec(q, f); err != nil {
		return fmt.Errorf("UpsertFundingSource (Code: %s, Name: %s) failed: %w", f.Code, f.Name, err)
	}
	return nil
}

func DeleteFundingSource(dbtx DBTX, code string) error {
	res, err := dbtx.Exec(`DELETE FROM sumber_dana WHERE kode = ?`, code)
	if err != nil {
		return fmt.Errorf("failed to delete funding source with code %s: %w", code, err)
	}
	return mustAffect(res)
}
