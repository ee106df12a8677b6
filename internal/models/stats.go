package models

import "github.com/shopspring/decimal"

// RevenueSummary aggregates delivered-ticket revenue
type RevenueSummary struct {
	Today              decimal.Decimal `json:"ingresosHoy"`
	Week               decimal.Decimal `json:"ingresosSemana"`
	Month              decimal.Decimal `json:"ingresosMes"`
	DeliveredThisMonth int64           `json:"tarjetasFinalizadas"`
}

// RevenueChart is a labelled revenue series
type RevenueChart struct {
	Labels []string          `json:"labels"`
	Values []decimal.Decimal `json:"valores"`
}
