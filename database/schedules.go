package database

import (
	"fmt"

	"rkpd/model"
)

func ListSchedules(dbtx DBTX) ([]model.Schedule, error) {
	list := []model.Schedule{}
	if err := dbtx.Select(&list, `SELECT id, tahapan, mulai, selesai, status FROM jadwal ORDER BY mulai, id`); err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return list, nil
}

// UpcomingSchedules returns the next stages that have not ended on the given date (YYYY-MM-DD).
func UpcomingSchedules(dbtx DBTX, today string, limit int) ([]model.Schedule, error) {
	list := []model.Schedule{}
	const q = `SELECT id, tahapan, mulai, selesai, status FROM jadwal WHERE selesai >= ? ORDER BY mulai, id LIMIT ?`
	if err := dbtx.Select(&list, q, today, limit); err != nil {
		return nil, fmt.Errorf("failed to list upcoming schedules: %w", err)
	}
	return list, nil
}

func CreateSchedule(dbtx DBTX, s model.Schedule) (int64, error) {
	res, err := dbtx.NamedExec(`INSERT INTO jadwal (tahapan, mulai, selesai, status) VALUES (:tahapan, :mulai, :selesai, :status)`, s)
	if err != nil {
		return 0, fmt.Errorf("CreateSchedule (%s) failed: %w", s.Stage, err)
	}
	return res.LastInsertId()
}

func UpdateSchedule(dbtx DBTX, s model.Schedule) error {
	res, err := dbtx.NamedExec(`UPDATE jadwal SET tahapan = :tahapan, mulai = :mulai, selesai = :selesai, status = :status WHERE id = :id`, s)
	if err != nil {
		return fmt.Errorf("UpdateSchedule (id: %d) failed: %w", s.ID, err)
	}
	return mustAffect(res)
}

func DeleteSchedule(dbtx DBTX, id int64) error {
	res, err := dbtx.Exec(`DELETE FROM jadwal WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete schedule %d: %w", id, err)
	}
	return mustAffect(res)
}
