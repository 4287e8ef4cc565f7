package mappers

import (
	"strconv"

	"rkpd/coefficient"
	"rkpd/model"
)

// LineItemView is a line item with the figures shown in tables and exports.
type LineItemView struct {
	model.BudgetLineItem
	VolumeDisplay string  `json:"volumeDisplay"`
	Subtotal      float64 `json:"subtotal"`
	TaxAmount     float64 `json:"taxAmount"`
}

// VolumeDisplay is "25 x 12 = 300", or just the volume for records without a legacy string.
func VolumeDisplay(item model.BudgetLineItem) string {
	vol := strconv.FormatFloat(item.CombinedVolume, 'f', -1, 64)
	if item.LegacyString == "" {
		return vol
	}
	return item.LegacyString + " = " + vol
}

func ToLineItemView(item model.BudgetLineItem) LineItemView {
	totals := coefficient.ComputeTotal(item.UnitPrice, item.CombinedVolume, item.TaxRatePercent)
	return LineItemView{
		BudgetLineItem: item,
		VolumeDisplay:  VolumeDisplay(item),
		Subtotal:       totals.Subtotal,
		TaxAmount:      totals.TaxAmount,
	}
}

func ToLineItemViews(items []model.BudgetLineItem) []LineItemView {
	out := make([]LineItemView, len(items))
	for i, it := range items {
		out[i] = ToLineItemView(it)
	}
	return out
}
