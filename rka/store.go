package rka

import (
	"database/sql"
	"errors"
	"fmt"

	"rkpd/aggregation"
	"rkpd/database"
	"rkpd/mappers"
	"rkpd/model"
	"rkpd/render"

	"github.com/jmoiron/sqlx"
)

// LineItemStore is what saving a draft needs from persistence.
type LineItemStore interface {
	BudgetExists(id int64) (bool, error)
	Insert(item model.BudgetLineItem) (int64, error)
	Update(item model.BudgetLineItem) error
	Get(id int64) (model.BudgetLineItem, error)
}

// SQLStore is the sqlite LineItemStore.
type SQLStore struct {
	DB *sqlx.DB
}

func (s SQLStore) BudgetExists(id int64) (bool, error) {
	_, err := database.GetBudgetHeader(s.DB, id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (s SQLStore) Insert(item model.BudgetLineItem) (int64, error) {
	return database.InsertLineItem(s.DB, item)
}

func (s SQLStore) Update(item model.BudgetLineItem) error {
	return database.UpdateLineItem(s.DB, item)
}

func (s SQLStore) Get(id int64) (model.BudgetLineItem, error) {
	return database.GetLineItem(s.DB, id)
}

// LoadDocument gathers a header, its line items in creation order and the totals shown on
// the RKA screen and in the exports.
func LoadDocument(dbtx database.DBTX, id int64) (database.BudgetHeaderView, render.BudgetDocument, error) {
	header, err := database.GetBudgetHeaderView(dbtx, id)
	if err != nil {
		return header, render.BudgetDocument{}, err
	}
	items, err := database.ListLineItems(dbtx, id)
	if err != nil {
		return header, render.BudgetDocument{}, fmt.Errorf("failed to load items of budget %d: %w", id, err)
	}

	doc := render.BudgetDocument{
		FiscalYear:      header.FiscalYear,
		OPDName:         header.OPDName,
		ProgramCode:     header.ProgramCode.String,
		ProgramName:     header.ProgramName.String,
		ActivityCode:    header.ActivityCode.String,
		ActivityName:    header.ActivityName.String,
		SubActivityCode: header.SubActivityCode,
		SubActivityName: header.SubActivityName.String,
		Ceiling:         header.ValidatedCeiling,
		Items:           mappers.ToLineItemViews(items),
	}
	for _, it := range items {
		doc.Total += it.Total
	}
	doc.Difference, doc.Variance = aggregation.VarianceOf(doc.Ceiling, doc.Total)
	return header, doc, nil
}
