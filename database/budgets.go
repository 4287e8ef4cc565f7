package database

import (
	"database/sql"
	"errors"
	"fmt"

	"rkpd/model"

	"github.com/jmoiron/sqlx"
)

// ErrDuplicateBudget is returned when an OPD already budgets the sub-activity for the year.
var ErrDuplicateBudget = errors.New("sub kegiatan is already in this OPD's renja for the year")

const budgetColumns = `id, opd_id, sub_kegiatan_kode, tahun, pagu_validasi, status, created_at`

// CreateBudgetHeader adds a sub-activity to an OPD's renja with ceiling 0 and status Draft.
func CreateBudgetHeader(dbtx DBTX, opdID int64, subActivityCode string, year int) (int64, error) {
	var exists int
	err := dbtx.Get(&exists, `SELECT 1 FROM rka_renja WHERE opd_id = ? AND sub_kegiatan_kode = ? AND tahun = ? LIMIT 1`,
		opdID, subActivityCode, year)
	if err == nil {
		return 0, ErrDuplicateBudget
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to check existing budget: %w", err)
	}

	res, err := dbtx.Exec(`INSERT INTO rka_renja (opd_id, sub_kegiatan_kode, tahun, pagu_validasi, status) VALUES (?, ?, ?, 0, ?)`,
		opdID, subActivityCode, year, model.BudgetStatusDraft)
	if err != nil {
		return 0, fmt.Errorf("CreateBudgetHeader (opd: %d, sub kegiatan: %s) failed: %w", opdID, subActivityCode, err)
	}
	return res.LastInsertId()
}

func GetBudgetHeader(dbtx DBTX, id int64) (model.BudgetHeader, error) {
	var h model.BudgetHeader
	if err := dbtx.Get(&h, `SELECT `+budgetColumns+` FROM rka_renja WHERE id = ?`, id); err != nil {
		return h, fmt.Errorf("failed to get budget %d: %w", id, err)
	}
	return h, nil
}

// ListBudgetHeaders returns the headers of one OPD for a fiscal year.
func ListBudgetHeaders(dbtx DBTX, opdID int64, year int) ([]model.BudgetHeader, error) {
	headers := []model.BudgetHeader{}
	q := `SELECT ` + budgetColumns + ` FROM rka_renja WHERE opd_id = ? AND tahun = ? ORDER BY sub_kegiatan_kode, id`
	if err := dbtx.Select(&headers, q, opdID, year); err != nil {
		return nil, fmt.Errorf("failed to list budgets of opd %d: %w", opdID, err)
	}
	return headers, nil
}

func UpdateBudgetCeiling(dbtx DBTX, id int64, ceiling float64) error {
	res, err := dbtx.Exec(`UPDATE rka_renja SET pagu_validasi = ? WHERE id = ?`, ceiling, id)
	if err != nil {
		return fmt.Errorf("failed to update ceiling of budget %d: %w", id, err)
	}
	return mustAffect(res)
}

// DeleteBudgetHeaderInTx removes a header together with its line items.
func DeleteBudgetHeaderInTx(tx *sqlx.Tx, id int64) error {
	if _, err := tx.Exec(`DELETE FROM rka_rincian WHERE rka_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete line items of budget %d: %w", id, err)
	}
	res, err := tx.Exec(`DELETE FROM rka_renja WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete budget %d: %w", id, err)
	}
	return mustAffect(res)
}

// BudgetHeaderView is a header with the names needed on the RKA screen.
type BudgetHeaderView struct {
	model.BudgetHeader
	OPDName         string               `db:"opd_nama" json:"opdName"`
	ProgramCode     model.NullableString `db:"program_kode" json:"programCode"`
	ProgramName     model.NullableString `db:"program_nama" json:"programName"`
	ActivityCode    model.NullableString `db:"kegiatan_kode" json:"activityCode"`
	ActivityName    model.NullableString `db:"kegiatan_nama" json:"activityName"`
	SubActivityName model.NullableString `db:"sub_kegiatan_nama" json:"subActivityName"`
}

func GetBudgetHeaderView(dbtx DBTX, id int64) (BudgetHeaderView, error) {
	var v BudgetHeaderView
	const q = `
		SELECT h.id, h.opd_id, h.sub_kegiatan_kode, h.tahun, h.pagu_validasi, h.status, h.created_at,
			COALESCE(o.nama, '') AS opd_nama,
			p.kode AS program_kode, p.nama AS program_nama,
			k.kode AS kegiatan_kode, k.nama AS kegiatan_nama,
			s.nama AS sub_kegiatan_nama
		FROM rka_renja h
		LEFT JOIN opd o ON o.id = h.opd_id
		LEFT JOIN master_sub_kegiatan s ON s.kode = h.sub_kegiatan_kode
		LEFT JOIN master_kegiatan k ON k.kode = s.kegiatan_kode
		LEFT JOIN master_program p ON p.kode = k.program_kode
		WHERE h.id = ?`
	if err := dbtx.Get(&v, q, id); err != nil {
		return v, fmt.Errorf("failed to get budget view %d: %w", id, err)
	}
	return v, nil
}

// ListBudgetReportRows returns one row per line item, or one row with NULL item columns for a
// header without items, joined with the header's hierarchy. year 0 means every year and
// opdID 0 every OPD.
func ListBudgetReportRows(dbtx DBTX, year int, opdID int64) ([]model.BudgetReportRow, error) {
	q := `
		SELECT h.id AS rka_id, h.opd_id, h.tahun, h.pagu_validasi, h.status,
			u.kode AS urusan_kode, u.nama AS urusan_nama,
			p.kode AS program_kode, p.nama AS program_nama,
			k.kode AS kegiatan_kode, k.nama AS kegiatan_nama,
			s.kode AS sub_kegiatan_kode, s.nama AS sub_kegiatan_nama,
			r.id AS rincian_id, r.uraian, r.kode_rekening, r.total
		FROM rka_renja h
		LEFT JOIN rka_rincian r ON r.rka_id = h.id
		LEFT JOIN master_sub_kegiatan s ON s.kode = h.sub_kegiatan_kode
		LEFT JOIN master_kegiatan k ON k.kode = s.kegiatan_kode
		LEFT JOIN master_program p ON p.kode = k.program_kode
		LEFT JOIN master_bidang_urusan b ON b.kode = p.bidang_urusan_kode
		LEFT JOIN master_urusan u ON u.kode = b.urusan_kode
		WHERE 1=1`
	var args []interface{}
	if year != 0 {
		q += ` AND h.tahun = ?`
		args = append(args, year)
	}
	if opdID != 0 {
		q += ` AND h.opd_id = ?`
		args = append(args, opdID)
	}
	q += ` ORDER BY h.id, r.created_at, r.id`

	rows := []model.BudgetReportRow{}
	if err := dbtx.Select(&rows, q, args...); err != nil {
		return nil, fmt.Errorf("failed to list report rows: %w", err)
	}
	return rows, nil
}
