package database

import (
	"fmt"

	"rkpd/model"
)

const lineItemColumns = `id, rka_id, uraian, koefisien, koefisien_multi, volume, satuan, harga_satuan,
	ppn, total, kode_rekening, jenis_belanja, created_at`

// InsertLineItem stores a new line item and returns its id.
func InsertLineItem(dbtx DBTX, item model.BudgetLineItem) (int64, error) {
	const q = `INSERT INTO rka_rincian (rka_id, uraian, koefisien, koefisien_multi, volume, satuan,
		harga_satuan, ppn, total, kode_rekening, jenis_belanja)
		VALUES (:rka_id, :uraian, :koefisien, :koefisien_multi, :volume, :satuan,
		:harga_satuan, :ppn, :total, :kode_rekening, :jenis_belanja)`
	res, err := dbtx.NamedExec(q, item)
	if err != nil {
		return 0, fmt.Errorf("InsertLineItem (budget: %d) failed: %w", item.ParentBudgetID, err)
	}
	return res.LastInsertId()
}

// UpdateLineItem rewrites a line item in place. The parent budget does not change.
func UpdateLineItem(dbtx DBTX, item model.BudgetLineItem) error {
	const q = `UPDATE rka_rincian SET uraian = :uraian, koefisien = :koefisien, koefisien_multi = :koefisien_multi,
		volume = :volume, satuan = :satuan, harga_satuan = :harga_satuan, ppn = :ppn, total = :total,
		kode_rekening = :kode_rekening, jenis_belanja = :jenis_belanja
		WHERE id = :id`
	res, err := dbtx.NamedExec(q, item)
	if err != nil {
		return fmt.Errorf("UpdateLineItem (id: %d) failed: %w", item.ID, err)
	}
	return mustAffect(res)
}

func DeleteLineItem(dbtx DBTX, id int64) error {
	res, err := dbtx.Exec(`DELETE FROM rka_rincian WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete line item %d: %w", id, err)
	}
	return mustAffect(res)
}

func GetLineItem(dbtx DBTX, id int64) (model.BudgetLineItem, error) {
	var item model.BudgetLineItem
	if err := dbtx.Get(&item, `SELECT `+lineItemColumns+` FROM rka_rincian WHERE id = ?`, id); err != nil {
		return item, fmt.Errorf("failed to get line item %d: %w", id, err)
	}
	return item, nil
}

// ListLineItems returns the items of one budget in creation order.
func ListLineItems(dbtx DBTX, budgetID int64) ([]model.BudgetLineItem, error) {
	items := []model.BudgetLineItem{}
	q := `SELECT ` + lineItemColumns + ` FROM rka_rincian WHERE rka_id = ? ORDER BY created_at, id`
	if err := dbtx.Select(&items, q, budgetID); err != nil {
		return nil, fmt.Errorf("failed to list line items of budget %d: %w", budgetID, err)
	}
	return items, nil
}
