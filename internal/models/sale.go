package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleRecord is one sale as delivered by the upstream products API.
type SaleRecord struct {
	Location     string          `json:"location"`
	Lat          float64         `json:"lat"`
	Lon          float64         `json:"lon"`
	PurchaseDate time.Time       `json:"purchase_date"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	Seller       string          `json:"seller"`

	Product      string          `json:"product,omitempty"`
	Freight      decimal.Decimal `json:"freight"`
	PaymentType  string          `json:"payment_type,omitempty"`
	Installments int             `json:"installments,omitempty"`
	Rating       int             `json:"rating,omitempty"`
}

type LocationRow struct {
	Location string          `json:"location"`
	Lat      float64         `json:"lat"`
	Lon      float64         `json:"lon"`
	Value    decimal.Decimal `json:"value"`
}

type MonthRow struct {
	Year      int             `json:"year"`
	Month     time.Month      `json:"month"`
	MonthName string          `json:"month_name"`
	PeriodEnd time.Time       `json:"period_end"`
	Value     decimal.Decimal `json:"value"`
}

type CategoryRow struct {
	Category string          `json:"category"`
	Value    decimal.Decimal `json:"value"`
}

type SellerRow struct {
	Seller  string          `json:"seller"`
	Revenue decimal.Decimal `json:"revenue"`
	Sales   int             `json:"sales"`
}

// DashboardView is everything one render cycle produces for the presentation layer.
type DashboardView struct {
	Filter        FilterState  `json:"filter"`
	SellerOptions []string     `json:"seller_options"`
	Records       []SaleRecord `json:"records"`

	TotalRevenue decimal.Decimal `json:"total_revenue"`
	SalesCount   int             `json:"sales_count"`

	RevenueByLocation []LocationRow `json:"revenue_by_location"`
	RevenueByMonth    []MonthRow    `json:"revenue_by_month"`
	RevenueByCategory []CategoryRow `json:"revenue_by_category"`
	SalesByLocation   []LocationRow `json:"sales_by_location"`
	SalesByMonth      []MonthRow    `json:"sales_by_month"`
	SalesByCategory   []CategoryRow `json:"sales_by_category"`
	Sellers           []SellerRow   `json:"sellers"`

	TopSellersByRevenue []SellerRow `json:"top_sellers_by_revenue"`
	TopSellersByCount   []SellerRow `json:"top_sellers_by_count"`
}
