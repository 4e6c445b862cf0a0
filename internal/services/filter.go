package services

import (
	"slices"

	"sales-dashboard/internal/models"
)

// FilterBySellers keeps the records sold by one of sellers. An empty seller
// set means no filter and returns records unchanged.
func FilterBySellers(records []models.SaleRecord, sellers []string) []models.SaleRecord {
	if len(sellers) == 0 {
		return records
	}

	allowed := make(map[string]struct{}, len(sellers))
	for _, s := range sellers {
		allowed[s] = struct{}{}
	}

	filtered := make([]models.SaleRecord, 0, len(records))
	for _, rec := range records {
		if _, ok := allowed[rec.Seller]; ok {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// SellerOptions lists the distinct sellers of records in ascending order.
func SellerOptions(records []models.SaleRecord) []string {
	seen := make(map[string]struct{})
	options := make([]string, 0)
	for _, rec := range records {
		if _, ok := seen[rec.Seller]; ok {
			continue
		}
		seen[rec.Seller] = struct{}{}
		options = append(options, rec.Seller)
	}
	slices.Sort(options)
	return options
}
