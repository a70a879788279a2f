package views

import (
	"sync"
	"time"

	"stuDealsWs/internal/modules/dashboard/channel"
	orders "stuDealsWs/internal/modules/orders/domain"
	"stuDealsWs/internal/modules/realtime/domain"
	"stuDealsWs/internal/shared/normalization"
)

// CouponAnalytics is the aggregate slice of the coupons view, replaced
// wholesale by coupons-analytics pushes.
type CouponAnalytics struct {
	TotalClaims   int
	ActiveCoupons int
	ClaimRate     float64
}

// CouponsView combines the coupons-analytics aggregate with the live claim
// stream: each claimed event prepends to a capped recent list and bumps the
// claims-today counter.
type CouponsView struct {
	view
	mu          sync.RWMutex
	cap         int
	analytics   CouponAnalytics
	recent      []orders.CouponClaim
	claimsToday int
}

func NewCouponsView(ch *channel.Channel) *CouponsView {
	v := &CouponsView{view: view{ch: ch}, cap: defaultFeedCap}
	v.refresh = v.Refresh
	v.track(ch.Mux().Subscribe(domain.DomainCouponsAnalytics, v.applyAnalytics, v.applyAnalytics))
	if off, err := ch.Mux().SubscribeItem(domain.DomainCoupons, v.applyClaim); err == nil {
		v.track(off)
	}
	return v
}

func (v *CouponsView) Refresh() error {
	return v.ch.Request(domain.DomainCouponsAnalytics)
}

func (v *CouponsView) applyAnalytics(payload any, _ time.Time) {
	container := normalization.MapFromPayload(payload)

	v.mu.Lock()
	defer v.mu.Unlock()
	if len(container) == 0 {
		v.analytics = CouponAnalytics{}
		return
	}
	v.analytics = CouponAnalytics{
		TotalClaims:   normalization.AsInt(container["totalClaims"]),
		ActiveCoupons: normalization.AsInt(container["activeCoupons"]),
		ClaimRate:     normalization.AsFloat64(container["claimRate"]),
	}
}

func (v *CouponsView) applyClaim(payload any, at time.Time) {
	claim, ok := orders.NormalizeCouponClaim(normalization.MapFromPayload(payload))
	if !ok {
		return
	}
	if claim.ClaimedAt.IsZero() {
		claim.ClaimedAt = at
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.recent = append([]orders.CouponClaim{claim}, v.recent...)
	if len(v.recent) > v.cap {
		v.recent = v.recent[:v.cap]
	}
	v.claimsToday++
}

func (v *CouponsView) Analytics() CouponAnalytics {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.analytics
}

// RecentClaims returns the capped claim history, newest first.
func (v *CouponsView) RecentClaims() []orders.CouponClaim {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]orders.CouponClaim, len(v.recent))
	copy(out, v.recent)
	return out
}

func (v *CouponsView) ClaimsToday() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.claimsToday
}
