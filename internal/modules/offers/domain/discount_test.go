package domain

import (
	"errors"
	"testing"
)

func TestNormalizeDiscountStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		input    any
		expected DiscountStatus
	}{
		{name: "pending", input: " pending ", expected: DiscountStatusPending},
		{name: "approved uppercase", input: "APPROVED", expected: DiscountStatusApproved},
		{name: "unknown passthrough", input: "paused", expected: DiscountStatus("PAUSED")},
		{name: "non string", input: nil, expected: DiscountStatusUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := NormalizeDiscountStatus(tc.input)
			if result != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, result)
			}
		})
	}
}

func TestValidatePercentageBounds(t *testing.T) {
	t.Parallel()

	for _, pct := range []float64{0, -5, 100.1} {
		d := Discount{ID: "d1", Percentage: pct}
		if err := d.ValidatePercentage(); !errors.Is(err, ErrInvalidPercentage) {
			t.Fatalf("expected ErrInvalidPercentage for %v, got %v", pct, err)
		}
	}
	for _, pct := range []float64{0.5, 15, 100} {
		d := Discount{ID: "d1", Percentage: pct}
		if err := d.ValidatePercentage(); err != nil {
			t.Fatalf("expected %v to validate, got %v", pct, err)
		}
	}
}

func TestBuildDiscountList(t *testing.T) {
	t.Parallel()

	payload := map[string]any{
		"discounts": []any{
			map[string]any{"id": "d1", "percentage": 15, "status": "approved"},
			map[string]any{"percentage": 20},
		},
	}

	discounts, ok := BuildDiscountList(payload)
	if !ok {
		t.Fatal("expected discounts to build")
	}
	if len(discounts) != 1 {
		t.Fatalf("expected 1 discount, got %d", len(discounts))
	}
	if discounts[0].Status != DiscountStatusApproved {
		t.Fatalf("unexpected status: %s", discounts[0].Status)
	}
	if discounts[0].Percentage != 15 {
		t.Fatalf("unexpected percentage: %v", discounts[0].Percentage)
	}
}
