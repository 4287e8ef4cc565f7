package database

import (
	"fmt"

	"rkpd/model"
)

// GetDashboardTotals fills the counters and sums of the home screen. Progress and
// upcoming stages are left to the caller.
func GetDashboardTotals(dbtx DBTX, year int) (model.DashboardSummary, error) {
	var s model.DashboardSummary
	const q = `SELECT
		(SELECT COUNT(*) FROM rka_renja WHERE tahun = ?) AS budget_count,
		(SELECT COUNT(*) FROM opd) AS opd_count,
		(SELECT COUNT(*) FROM ssh) + (SELECT COUNT(*) FROM sbu) + (SELECT COUNT(*) FROM hspk) + (SELECT COUNT(*) FROM asb) AS catalog_count,
		(SELECT COALESCE(SUM(pagu_validasi), 0) FROM rka_renja WHERE tahun = ?) AS total_ceiling,
		(SELECT COALESCE(SUM(r.total), 0) FROM rka_rincian r JOIN rka_renja h ON h.id = r.rka_id WHERE h.tahun = ?) AS total_items`
	if err := dbtx.Get(&s, q, year, year, year); err != nil {
		return s, fmt.Errorf("failed to get dashboard totals: %w", err)
	}
	return s, nil
}
