package aggregation

import (
	"slices"
	"strings"

	"rkpd/model"
)

// NoAccountCode is the recap group for line items without an account code.
const NoAccountCode = "Tanpa Kode"

// RecapByAccount folds rows into one line per account code. The description of a line is
// the distinct descriptions in first-seen order joined by ", "; totals are summed.
func RecapByAccount[R any](rows []R, account, description func(R) string, total func(R) float64) []model.RecapRow {
	type group struct {
		row  model.RecapRow
		seen map[string]bool
		desc []string
	}
	groups := make(map[string]*group)
	var order []string

	for _, r := range rows {
		code := strings.TrimSpace(account(r))
		if code == "" {
			code = NoAccountCode
		}
		g, ok := groups[code]
		if !ok {
			g = &group{row: model.RecapRow{AccountCode: code}, seen: make(map[string]bool)}
			groups[code] = g
			order = append(order, code)
		}
		if d := strings.TrimSpace(description(r)); d != "" && !g.seen[d] {
			g.seen[d] = true
			g.desc = append(g.desc, d)
		}
		g.row.Total += total(r)
	}

	slices.Sort(order)
	out := make([]model.RecapRow, 0, len(order))
	for _, code := range order {
		g := groups[code]
		g.row.Description = strings.Join(g.desc, ", ")
		out = append(out, g.row)
	}
	return out
}

// VarianceOf compares a validated ceiling with the itemized total.
// The returned difference is ceiling - total.
func VarianceOf(ceiling, total float64) (float64, model.Variance) {
	diff := ceiling - total
	switch {
	case diff > 0:
		return diff, model.VarianceSurplus
	case diff < 0:
		return diff, model.VarianceDeficit
	default:
		return 0, model.VarianceBalanced
	}
}
