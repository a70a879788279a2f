package domain

import "stuDealsWs/internal/shared/normalization"

// OverviewStats is the aggregate header card on the vendor dashboard.
type OverviewStats struct {
	ActiveProducts   int
	PendingOrders    int
	RedemptionsToday int
	Revenue          float64
	UnreadMessages   int
}

// BuildOverviewStats projects an overview payload into OverviewStats.
func BuildOverviewStats(payload any) (*OverviewStats, bool) {
	container := normalization.MapFromPayload(payload)
	if len(container) == 0 {
		return nil, false
	}
	return &OverviewStats{
		ActiveProducts:   normalization.AsInt(container["activeProducts"]),
		PendingOrders:    normalization.AsInt(container["pendingOrders"]),
		RedemptionsToday: normalization.AsInt(container["redemptionsToday"]),
		Revenue:          normalization.AsFloat64(container["revenue"]),
		UnreadMessages:   normalization.AsInt(container["unreadMessages"]),
	}, true
}

// AnalyticsReport aggregates channel metrics for the analytics view.
type AnalyticsReport struct {
	Views       int
	Clicks      int
	Conversions int
	ClaimRate   float64
	TopProduct  string
}

// BuildAnalyticsReport projects an analytics payload into AnalyticsReport.
func BuildAnalyticsReport(payload any) (*AnalyticsReport, bool) {
	container := normalization.MapFromPayload(payload)
	if len(container) == 0 {
		return nil, false
	}
	return &AnalyticsReport{
		Views:       normalization.AsInt(container["views"]),
		Clicks:      normalization.AsInt(container["clicks"]),
		Conversions: normalization.AsInt(container["conversions"]),
		ClaimRate:   normalization.AsFloat64(container["claimRate"]),
		TopProduct:  normalization.AsString(container["topProduct"]),
	}, true
}
