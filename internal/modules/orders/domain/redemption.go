package domain

import (
	"time"

	"stuDealsWs/internal/shared/normalization"
)

// Redemption records a student redeeming an offer at a vendor.
type Redemption struct {
	ID         string
	OrderID    string
	VendorID   string
	StudentID  string
	Amount     float64
	RedeemedAt time.Time
}

// NormalizeRedemption constructs a Redemption from a loosely typed map.
func NormalizeRedemption(raw map[string]any) (Redemption, bool) {
	id := normalization.AsString(raw["id"])
	if id == "" {
		return Redemption{}, false
	}
	return Redemption{
		ID:         id,
		OrderID:    normalization.AsString(raw["orderId"]),
		VendorID:   normalization.AsString(raw["vendorId"]),
		StudentID:  normalization.AsString(raw["studentId"]),
		Amount:     normalization.AsFloat64(raw["amount"]),
		RedeemedAt: normalization.AsTime(raw["redeemedAt"]),
	}, true
}

// CouponClaim is one discrete claim event streamed over the channel.
type CouponClaim struct {
	ID         string
	CouponID   string
	VendorID   string
	StudentID  string
	CouponCode string
	ClaimedAt  time.Time
}

// NormalizeCouponClaim constructs a CouponClaim from a loosely typed map.
// Claims arriving without their own id are still usable; the consumer assigns
// a local identity in that case.
func NormalizeCouponClaim(raw map[string]any) (CouponClaim, bool) {
	if len(raw) == 0 {
		return CouponClaim{}, false
	}
	claim := CouponClaim{
		ID:         normalization.AsString(raw["id"]),
		CouponID:   normalization.AsString(raw["couponId"]),
		VendorID:   normalization.AsString(raw["vendorId"]),
		StudentID:  normalization.AsString(raw["studentId"]),
		CouponCode: normalization.AsString(raw["couponCode"]),
		ClaimedAt:  normalization.AsTime(raw["claimedAt"]),
	}
	if claim.CouponID == "" && claim.CouponCode == "" {
		return CouponClaim{}, false
	}
	return claim, true
}

// ClaimedToday reports whether the claim landed on the given local day.
func (c CouponClaim) ClaimedToday(now time.Time) bool {
	if c.ClaimedAt.IsZero() {
		return false
	}
	y1, m1, d1 := c.ClaimedAt.Local().Date()
	y2, m2, d2 := now.Local().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
