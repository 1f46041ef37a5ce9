// Package stats derives dashboard figures from already-loaded rows. Nothing
// here touches the database or the clock.
package stats

import (
	"github.com/ikkim/hubline-admin/internal/app/model"
)

// Snapshot is the input of ComputeDashboard.
type Snapshot struct {
	Users         []model.User
	Entities      map[model.EntityKind][]model.Entity
	Distributions []model.CommissionDistribution
}

type KindCounts struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Pending   int `json:"pending"`
	Rejected  int `json:"rejected"`
	Suspended int `json:"suspended"`
	Inactive  int `json:"inactive"`
}

type DashboardStatistics struct {
	TotalUsers    int                             `json:"total_users"`
	UsersByRole   map[model.UserRole]int          `json:"users_by_role"`
	Entities      map[model.EntityKind]KindCounts `json:"entities"`
	RevenueByKind map[model.EntityKind]float64    `json:"revenue_by_kind"`
	TotalRevenue  float64                         `json:"total_revenue"`
	Commission    CommissionSplit                 `json:"commission"`
}

// ComputeDashboard counts and sums every collection in the snapshot. Every
// known role and kind is present in the result, with zeros when empty.
func ComputeDashboard(s Snapshot) DashboardStatistics {
	result := DashboardStatistics{
		UsersByRole:   make(map[model.UserRole]int, len(model.UserRoles)),
		Entities:      make(map[model.EntityKind]KindCounts, len(model.EntityKinds)),
		RevenueByKind: make(map[model.EntityKind]float64, len(model.EntityKinds)),
	}

	for _, role := range model.UserRoles {
		result.UsersByRole[role] = 0
	}
	for _, user := range s.Users {
		result.UsersByRole[user.Role]++
		result.TotalUsers++
	}

	for _, kind := range model.EntityKinds {
		var counts KindCounts
		var revenue float64
		for _, entity := range s.Entities[kind] {
			counts.add(entity.Base().Status)
			revenue += entity.Revenue()
		}
		result.Entities[kind] = counts
		result.RevenueByKind[kind] = revenue
		result.TotalRevenue += revenue
	}

	result.Commission = ComputeCommissionSplit(s.Distributions)
	return result
}

func (c *KindCounts) add(status model.EntityStatus) {
	c.Total++
	switch status {
	case model.StatusActive:
		c.Active++
	case model.StatusPending:
		c.Pending++
	case model.StatusRejected:
		c.Rejected++
	case model.StatusSuspended:
		c.Suspended++
	case model.StatusInactive:
		c.Inactive++
	}
}
