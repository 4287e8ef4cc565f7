package database_test

import (
	"database/sql"
	"errors"
	"reflect"
	"testing"

	"rkpd/database"
	"rkpd/loader"
	"rkpd/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := loader.ApplySchema(db); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}
	return db
}

func seedHierarchy(t *testing.T, db *sqlx.DB) {
	t.Helper()
	for _, s := range []struct {
		level model.RefLevel
		nodes []model.RefNode
	}{
		{model.LevelAffair, []model.RefNode{{Code: "1", Name: "Urusan Wajib Pelayanan Dasar"}}},
		{model.LevelField, []model.RefNode{{Code: "1.01", Name: "Pendidikan", ParentCode: "1"}}},
		{model.LevelProgram, []model.RefNode{
			{Code: "1.01.02", Name: "Program Pengelolaan Pendidikan", ParentCode: "1.01"},
			{Code: "1.01.09", Name: "Program Yatim", ParentCode: "9.99"},
		}},
		{model.LevelActivity, []model.RefNode{{Code: "1.01.02.1.01", Name: "Pengelolaan Pendidikan SD", ParentCode: "1.01.02"}}},
		{model.LevelSubActivity, []model.RefNode{
			{Code: "1.01.02.1.01.0001", Name: "Pembangunan Gedung", ParentCode: "1.01.02.1.01", Performance: "Jumlah gedung", Unit: "Unit"},
			{Code: "1.01.02.1.01.0002", Name: "Rehabilitasi Ruang", ParentCode: "1.01.02.1.01"},
		}},
	} {
		for _, n := range s.nodes {
			if err := database.CreateRefNode(db, s.level, n); err != nil {
				t.Fatalf("seed %s %s: %v", s.level, n.Code, err)
			}
		}
	}
}

func TestCatalogCRUDAndSearch(t *testing.T) {
	db := newTestDB(t)

	id, err := database.CreateUnitPriceStandard(db, model.UnitPriceStandard{
		ItemCode: "1.1.7.01.001", ItemDescription: "Kertas HVS", Specification: "A4 80 gram",
		Unit: "Rim", UnitPrice: 55_000, AccountCode: "5.1.02.01.01.0024", Year: 2027,
	})
	if err != nil {
		t.Fatalf("create ssh: %v", err)
	}
	if _, err := database.CreateCostStandard(db, model.CostStandard{
		Kind: model.SourceSBU, Code: "SBU.01", Description: "Honor Narasumber", Unit: "OJ", Price: 900_000, Year: 2027,
	}); err != nil {
		t.Fatalf("create sbu: %v", err)
	}

	rows, total, err := database.ListUnitPriceStandards(db, "kertas", 50, 0)
	if err != nil {
		t.Fatalf("list ssh: %v", err)
	}
	if total != 1 || len(rows) != 1 || rows[0].ID != id {
		t.Errorf("wrong search result: total=%d rows=%+v", total, rows)
	}

	costs, total, err := database.ListCostStandards(db, model.SourceSBU, "NARASUMBER", 50, 0)
	if err != nil {
		t.Fatalf("list sbu: %v", err)
	}
	if total != 1 || costs[0].Kind != model.SourceSBU || costs[0].Price != 900_000 {
		t.Errorf("wrong sbu result: total=%d rows=%+v", total, costs)
	}

	rec, err := database.GetCatalogRecord(db, model.SourceSSH, id)
	if err != nil {
		t.Fatalf("get ssh: %v", err)
	}
	if rec.CatalogSource() != model.SourceSSH {
		t.Errorf("wrong source: %v", rec.CatalogSource())
	}

	counts, err := database.CountCatalogs(db)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if counts != (model.CatalogCounts{SSH: 1, SBU: 1, Total: 2}) {
		t.Errorf("wrong counts: %+v", counts)
	}

	if err := database.DeleteCatalogRecord(db, model.SourceSSH, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := database.DeleteCatalogRecord(db, model.SourceSSH, id); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("second delete: (actual, expected) = (%v, %v)", err, sql.ErrNoRows)
	}
}

func TestImportBatchInsertAndUndo(t *testing.T) {
	db := newTestDB(t)

	rows := make([]model.CostStandard, 0, 7)
	for i := 0; i < 7; i++ {
		rows = append(rows, model.CostStandard{Kind: model.SourceHSPK, Code: "H", Description: "Item", Unit: "m2", Price: 10, ImportBatch: "batch-1"})
	}
	tx := db.MustBegin()
	if err := database.InsertCostStandardsInTx(tx, model.SourceHSPK, rows, 3); err != nil {
		tx.Rollback()
		t.Fatalf("insert: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatal(err)
	}

	n, err := database.DeleteImportBatch(db, model.SourceHSPK, "batch-1")
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if n != 7 {
		t.Errorf("wrong undo count: (actual, expected) = (%d, %d)", n, 7)
	}
}

func TestRefNodesAndPaths(t *testing.T) {
	db := newTestDB(t)
	seedHierarchy(t, db)

	node, err := database.GetRefNode(db, model.LevelSubActivity, "1.01.02.1.01.0001")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if node.Performance != "Jumlah gedung" || node.ParentCode != "1.01.02.1.01" {
		t.Errorf("wrong node: %+v", node)
	}

	progs, err := database.ListRefNodes(db, model.LevelProgram, "", "1.01", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(progs) != 1 || progs[0].Code != "1.01.02" {
		t.Errorf("wrong parent filter: %+v", progs)
	}

	paths, err := database.ListHierarchyPaths(db, model.LevelProgram)
	if err != nil {
		t.Fatalf("paths: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("wrong path count: %d", len(paths))
	}
	if !paths[0].FieldCode.Valid || paths[0].AffairName.String != "Urusan Wajib Pelayanan Dasar" {
		t.Errorf("ancestors not joined: %+v", paths[0])
	}
	if paths[1].FieldCode.Valid {
		t.Errorf("broken parent should give NULL ancestors: %+v", paths[1])
	}

	sub, err := database.ListHierarchyPaths(db, model.LevelSubActivity)
	if err != nil {
		t.Fatalf("sub paths: %v", err)
	}
	if len(sub) != 2 || sub[0].ProgramCode.String != "1.01.02" || sub[0].SubActivityUnit.String != "Unit" {
		t.Errorf("wrong sub paths: %+v", sub)
	}

	if err := database.UpdateRefNode(db, model.LevelField, "1.01", model.RefNode{Code: "1.01", Name: "Pendidikan Dasar", ParentCode: "1"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := database.DeleteRefNode(db, model.LevelField, "9.99"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("delete missing: (actual, expected) = (%v, %v)", err, sql.ErrNoRows)
	}
}

func TestBudgetHeaderLifecycle(t *testing.T) {
	db := newTestDB(t)
	seedHierarchy(t, db)
	opdID, err := database.CreateOPD(db, model.OPD{Code: "1.01.01", Name: "Dinas Pendidikan", Abbreviation: "Disdik"})
	if err != nil {
		t.Fatal(err)
	}

	id, err := database.CreateBudgetHeader(db, opdID, "1.01.02.1.01.0001", 2027)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := database.CreateBudgetHeader(db, opdID, "1.01.02.1.01.0001", 2027); !errors.Is(err, database.ErrDuplicateBudget) {
		t.Errorf("duplicate: (actual, expected) = (%v, %v)", err, database.ErrDuplicateBudget)
	}
	if _, err := database.CreateBudgetHeader(db, opdID, "1.01.02.1.01.0001", 2028); err != nil {
		t.Errorf("another year should be allowed: %v", err)
	}

	h, err := database.GetBudgetHeader(db, id)
	if err != nil {
		t.Fatal(err)
	}
	if h.ValidatedCeiling != 0 || h.Status != model.BudgetStatusDraft {
		t.Errorf("wrong new header: %+v", h)
	}

	if err := database.UpdateBudgetCeiling(db, id, 5_000_000); err != nil {
		t.Fatal(err)
	}
	view, err := database.GetBudgetHeaderView(db, id)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if view.OPDName != "Dinas Pendidikan" || view.ProgramCode.String != "1.01.02" || view.ValidatedCeiling != 5_000_000 {
		t.Errorf("wrong view: %+v", view)
	}

	headers, err := database.ListBudgetHeaders(db, opdID, 2027)
	if err != nil || len(headers) != 1 {
		t.Errorf("wrong header list: %v %+v", err, headers)
	}
}

func TestLineItemPersistence(t *testing.T) {
	db := newTestDB(t)
	budgetID, err := database.CreateBudgetHeader(db, 1, "X", 2027)
	if err != nil {
		t.Fatal(err)
	}

	structured := model.BudgetLineItem{
		ParentBudgetID: budgetID, Description: "Honor", LegacyString: "25 x 12",
		CoefficientList: model.CoefficientList{{Quantity: 25, Unit: "Orang"}, {Quantity: 12, Unit: "Bulan"}},
		CombinedVolume:  300, Unit: "OB", UnitPrice: 1000, TaxRatePercent: 11, Total: 333_000,
		AccountCode: "5.1.02.02", Category: "SBU",
	}
	id, err := database.InsertLineItem(db, structured)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	legacyID, err := database.InsertLineItem(db, model.BudgetLineItem{
		ParentBudgetID: budgetID, Description: "Makan", LegacyString: "40 x 2",
		CombinedVolume: 80, Unit: "Orang Kali", UnitPrice: 35_000, Total: 2_800_000, Category: "MANUAL",
	})
	if err != nil {
		t.Fatalf("insert legacy: %v", err)
	}

	got, err := database.GetLineItem(db, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(got.CoefficientList, structured.CoefficientList) {
		t.Errorf("coefficient list not round-tripped: (actual, expected) = (%v, %v)", got.CoefficientList, structured.CoefficientList)
	}
	if got.TaxRatePercent != 11 || got.Total != 333_000 {
		t.Errorf("wrong stored values: %+v", got)
	}

	legacy, err := database.GetLineItem(db, legacyID)
	if err != nil {
		t.Fatal(err)
	}
	if legacy.CoefficientList != nil {
		t.Errorf("legacy record should have no structured list: %v", legacy.CoefficientList)
	}

	got.Description = "Honor Pengelola"
	if err := database.UpdateLineItem(db, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	items, err := database.ListLineItems(db, budgetID)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 || items[0].ID != id || items[0].Description != "Honor Pengelola" {
		t.Errorf("wrong items: %+v", items)
	}

	tx := db.MustBegin()
	if err := database.DeleteBudgetHeaderInTx(tx, budgetID); err != nil {
		tx.Rollback()
		t.Fatal(err)
	}
	tx.Commit()
	if _, err := database.GetLineItem(db, id); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("line items survived their budget: %v", err)
	}
}

func TestReportRowsAndDashboard(t *testing.T) {
	db := newTestDB(t)
	seedHierarchy(t, db)
	id, _ := database.CreateBudgetHeader(db, 1, "1.01.02.1.01.0001", 2027)
	empty, _ := database.CreateBudgetHeader(db, 1, "1.01.02.1.01.0002", 2027)
	database.UpdateBudgetCeiling(db, id, 1000)
	database.UpdateBudgetCeiling(db, empty, 500)
	database.InsertLineItem(db, model.BudgetLineItem{ParentBudgetID: id, Description: "A", Total: 300, AccountCode: "5.1"})
	database.InsertLineItem(db, model.BudgetLineItem{ParentBudgetID: id, Description: "B", Total: 200, AccountCode: "5.2"})

	rows, err := database.ListBudgetReportRows(db, 2027, 0)
	if err != nil {
		t.Fatalf("report rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("wrong row count: (actual, expected) = (%d, %d)", len(rows), 3)
	}
	if rows[2].LineItemID.Valid || rows[2].ProgramCode.String != "1.01.02" {
		t.Errorf("empty header row wrong: %+v", rows[2])
	}

	s, err := database.GetDashboardTotals(db, 2027)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if s.BudgetCount != 2 || s.TotalCeiling != 1500 || s.TotalItems != 500 {
		t.Errorf("wrong dashboard totals: %+v", s)
	}
}

func TestFundingSourcesAndSchedules(t *testing.T) {
	db := newTestDB(t)
	if err := database.UpsertFundingSource(db, model.FundingSource{Code: "DAU", Name: "Dana Alokasi Umum", IsInput: true}); err != nil {
		t.Fatal(err)
	}
	if err := database.UpsertFundingSource(db, model.FundingSource{Code: "DAU", Name: "DAU 2027"}); err != nil {
		t.Fatal(err)
	}
	list, err := database.GetAllFundingSources(db)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Name != "DAU 2027" || list[0].IsInput {
		t.Errorf("upsert did not update: %+v", list)
	}

	database.CreateSchedule(db, model.Schedule{Stage: "Renja", Start: "2026-01-10", End: "2026-02-28", Status: model.ScheduleClosed})
	database.CreateSchedule(db, model.Schedule{Stage: "RKA", Start: "2026-09-01", End: "2026-11-30", Status: model.ScheduleOpen})
	upcoming, err := database.UpcomingSchedules(db, "2026-10-16", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(upcoming) != 1 || upcoming[0].Stage != "RKA" {
		t.Errorf("wrong upcoming stages: %+v", upcoming)
	}
}
