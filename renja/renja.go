package renja

import (
	"slices"
	"strings"

	"rkpd/aggregation"
	"rkpd/model"
)

// Entry is a budget header with the hierarchy it is listed under.
type Entry struct {
	model.RenjaEntry
	affair   aggregation.Key
	program  aggregation.Key
	activity aggregation.Key
}

type Node = aggregation.Node[Entry]

func keyOf(code, name model.NullableString) aggregation.Key {
	return aggregation.Key{Code: code.String, Title: name.String}
}

var (
	byAffair   = aggregation.Required(func(e Entry) string { return e.affair.Code }, func(e Entry) string { return e.affair.Title })
	byProgram  = aggregation.Required(func(e Entry) string { return e.program.Code }, func(e Entry) string { return e.program.Title })
	byActivity = aggregation.Required(func(e Entry) string { return e.activity.Code }, func(e Entry) string { return e.activity.Title })
)

// Entries collapses report rows to one entry per header, summing the line item totals.
// Rows are expected grouped by header, as database.ListBudgetReportRows returns them.
func Entries(rows []model.BudgetReportRow) []Entry {
	var out []Entry
	index := make(map[int64]int)
	for _, r := range rows {
		i, ok := index[r.HeaderID]
		if !ok {
			i = len(out)
			index[r.HeaderID] = i
			out = append(out, Entry{
				RenjaEntry: model.RenjaEntry{
					HeaderID:         r.HeaderID,
					SubActivityCode:  r.SubActivityCode.String,
					SubActivityName:  r.SubActivityName.String,
					ValidatedCeiling: r.ValidatedCeiling,
					Status:           r.Status,
				},
				affair:   keyOf(r.AffairCode, r.AffairName),
				program:  keyOf(r.ProgramCode, r.ProgramName),
				activity: keyOf(r.ActivityCode, r.ActivityName),
			})
		}
		if r.Total.Valid {
			out[i].ItemTotal += r.Total.Float64
		}
	}
	for i := range out {
		out[i].Difference, out[i].Variance = aggregation.VarianceOf(out[i].ValidatedCeiling, out[i].ItemTotal)
	}
	return out
}

// Build groups the entries affair -> program -> activity; entries sit at the activity level,
// ordered by sub-activity code. Entries whose hierarchy cannot be resolved are left out.
func Build(rows []model.BudgetReportRow) *Node {
	entries := Entries(rows)
	tree := aggregation.Aggregate(entries, byAffair, byProgram, byActivity)
	for _, leaf := range aggregation.Leaves(tree) {
		sortEntries(leaf.Rows)
	}
	return tree
}

func sortEntries(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.SubActivityCode, b.SubActivityCode)
	})
}

// Totals sums the ceiling and the item totals under n.
func Totals(n *Node) (ceiling, items float64) {
	ceiling = aggregation.SumAtNode(n, func(e Entry) float64 { return e.ValidatedCeiling })
	items = aggregation.SumAtNode(n, func(e Entry) float64 { return e.ItemTotal })
	return ceiling, items
}
