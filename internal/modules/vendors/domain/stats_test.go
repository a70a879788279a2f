package domain

import "testing"

func TestBuildOverviewStats(t *testing.T) {
	t.Parallel()

	payload := map[string]any{
		"data": map[string]any{
			"activeProducts":   3.0,
			"pendingOrders":    2.0,
			"redemptionsToday": 5.0,
			"revenue":          120.5,
		},
	}

	stats, ok := BuildOverviewStats(payload)
	if !ok {
		t.Fatal("expected stats to build")
	}
	if stats.ActiveProducts != 3 || stats.PendingOrders != 2 || stats.RedemptionsToday != 5 {
		t.Fatalf("unexpected counters: %+v", stats)
	}
	if stats.Revenue != 120.5 {
		t.Fatalf("unexpected revenue: %v", stats.Revenue)
	}

	if _, ok := BuildOverviewStats("not a map"); ok {
		t.Fatal("expected non-map payload to be rejected")
	}
}

func TestBuildProfileUnwrapsVendor(t *testing.T) {
	t.Parallel()

	payload := map[string]any{
		"vendor": map[string]any{
			"id":           "v1",
			"businessName": "Campus Tacos",
			"verified":     true,
		},
	}

	profile, ok := BuildProfile(payload)
	if !ok {
		t.Fatal("expected profile to build")
	}
	if profile.BusinessName != "Campus Tacos" || !profile.Verified {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}
