// Package report builds the recap of all budgets: program, activity and sub-activity
// with ceilings and itemized totals, down to one line per account code.
package report

import (
	"rkpd/aggregation"
	"rkpd/model"
)

type Section struct {
	aggregation.Key
	Ceiling    float64          `json:"ceiling"`
	Total      float64          `json:"total"`
	Difference float64          `json:"difference"`
	Variance   model.Variance   `json:"variance"`
	Children   []Section        `json:"children,omitempty"`
	Recap      []model.RecapRow `json:"recap,omitempty"`
}

type Report struct {
	FiscalYear int       `json:"fiscalYear,omitempty"`
	Programs   []Section `json:"programs"`
	Ceiling    float64   `json:"ceiling"`
	Total      float64   `json:"total"`
}

type rowNode = aggregation.Node[model.BudgetReportRow]

var (
	byProgram = aggregation.Required(
		func(r model.BudgetReportRow) string { return r.ProgramCode.String },
		func(r model.BudgetReportRow) string { return r.ProgramName.String })
	byActivity = aggregation.Required(
		func(r model.BudgetReportRow) string { return r.ActivityCode.String },
		func(r model.BudgetReportRow) string { return r.ActivityName.String })
	bySubActivity = aggregation.Required(
		func(r model.BudgetReportRow) string { return r.SubActivityCode.String },
		func(r model.BudgetReportRow) string { return r.SubActivityName.String })
)

func rowTotal(r model.BudgetReportRow) float64 {
	if !r.Total.Valid {
		return 0
	}
	return r.Total.Float64
}

// Build turns report rows into the recap. Rows whose program, activity or sub-activity
// cannot be resolved are left out.
func Build(year int, rows []model.BudgetReportRow) Report {
	tree := aggregation.Aggregate(rows, byProgram, byActivity, bySubActivity)
	rep := Report{FiscalYear: year, Programs: []Section{}}
	for _, p := range tree.Children {
		s := section(p)
		rep.Programs = append(rep.Programs, s)
		rep.Ceiling += s.Ceiling
		rep.Total += s.Total
	}
	return rep
}

func section(n *rowNode) Section {
	s := Section{
		Key:     n.Key,
		Ceiling: ceilingOf(n),
		Total:   aggregation.SumAtNode(n, rowTotal),
	}
	s.Difference, s.Variance = aggregation.VarianceOf(s.Ceiling, s.Total)
	for _, c := range n.Children {
		s.Children = append(s.Children, section(c))
	}
	if len(n.Children) == 0 {
		s.Recap = recap(n.Rows)
	}
	return s
}

// ceilingOf counts each header's ceiling once, however many line items it has.
func ceilingOf(n *rowNode) float64 {
	seen := make(map[int64]bool)
	var sum float64
	for _, leaf := range aggregation.Leaves(n) {
		for _, r := range leaf.Rows {
			if seen[r.HeaderID] {
				continue
			}
			seen[r.HeaderID] = true
			sum += r.ValidatedCeiling
		}
	}
	return sum
}

func recap(rows []model.BudgetReportRow) []model.RecapRow {
	items := make([]model.BudgetReportRow, 0, len(rows))
	for _, r := range rows {
		if r.LineItemID.Valid {
			items = append(items, r)
		}
	}
	return aggregation.RecapByAccount(items,
		func(r model.BudgetReportRow) string { return r.AccountCode.String },
		func(r model.BudgetReportRow) string { return r.Description.String },
		rowTotal)
}
