package handlers

import "sales-dashboard/internal/models"

// View names of the /api/revenue and /api/sales endpoints.
const (
	ViewByLocation = "by-location"
	ViewByMonth    = "by-month"
	ViewByCategory = "by-category"
)

func isView(name string) bool {
	switch name {
	case ViewByLocation, ViewByMonth, ViewByCategory:
		return true
	}
	return false
}

func revenueView(v *models.DashboardView, name string) any {
	switch name {
	case ViewByMonth:
		return v.RevenueByMonth
	case ViewByCategory:
		return v.RevenueByCategory
	default:
		return v.RevenueByLocation
	}
}

func salesView(v *models.DashboardView, name string) any {
	switch name {
	case ViewByMonth:
		return v.SalesByMonth
	case ViewByCategory:
		return v.SalesByCategory
	default:
		return v.SalesByLocation
	}
}
