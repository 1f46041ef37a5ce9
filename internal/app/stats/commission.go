package stats

import (
	"github.com/ikkim/hubline-admin/internal/app/model"
)

type SplitCategory string

const (
	CategoryPlatform    SplitCategory = "platform"
	CategoryHub         SplitCategory = "hub"
	CategoryStation     SplitCategory = "station"
	CategoryRider       SplitCategory = "rider"
	CategoryShareholder SplitCategory = "shareholder"
)

var SplitCategories = []SplitCategory{
	CategoryPlatform,
	CategoryHub,
	CategoryStation,
	CategoryRider,
	CategoryShareholder,
}

type CommissionShare struct {
	Category   SplitCategory `json:"category"`
	Amount     float64       `json:"amount"`
	Percentage float64       `json:"percentage"`
}

type CommissionSplit struct {
	Total  float64           `json:"total"`
	Shares []CommissionShare `json:"shares"`
}

// Percentage returns amount as a share of sum, or 0 when sum is not positive.
func Percentage(amount, sum float64) float64 {
	if sum <= 0 {
		return 0
	}
	return amount / sum * 100
}

// ComputeCommissionSplit totals each category across all distributions. The
// percentages are relative to the sum of the categories.
func ComputeCommissionSplit(distributions []model.CommissionDistribution) CommissionSplit {
	amounts := make(map[SplitCategory]float64, len(SplitCategories))
	for _, d := range distributions {
		amounts[CategoryPlatform] += d.PlatformAmount
		amounts[CategoryHub] += d.HubAmount
		amounts[CategoryStation] += d.StationAmount
		amounts[CategoryRider] += d.RiderAmount
		amounts[CategoryShareholder] += d.ShareholderAmount
	}

	var total float64
	for _, category := range SplitCategories {
		total += amounts[category]
	}

	split := CommissionSplit{
		Total:  total,
		Shares: make([]CommissionShare, 0, len(SplitCategories)),
	}
	for _, category := range SplitCategories {
		split.Shares = append(split.Shares, CommissionShare{
			Category:   category,
			Amount:     amounts[category],
			Percentage: Percentage(amounts[category], total),
		})
	}
	return split
}
