package views

import (
	"sync"
	"time"

	"stuDealsWs/internal/modules/dashboard/channel"
	"stuDealsWs/internal/modules/realtime/domain"
	vendors "stuDealsWs/internal/modules/vendors/domain"
)

// OverviewView mirrors the dashboard header stats. Push-only: the gateway
// decides when the aggregate moved, there is no client request event.
type OverviewView struct {
	view
	mu    sync.RWMutex
	stats vendors.OverviewStats
}

func NewOverviewView(ch *channel.Channel) *OverviewView {
	v := &OverviewView{view: view{ch: ch}}
	v.track(ch.Mux().Subscribe(domain.DomainOverview, v.apply, v.apply))
	return v
}

func (v *OverviewView) apply(payload any, _ time.Time) {
	stats, ok := vendors.BuildOverviewStats(payload)

	v.mu.Lock()
	defer v.mu.Unlock()
	if !ok {
		v.stats = vendors.OverviewStats{}
		return
	}
	v.stats = *stats
}

func (v *OverviewView) Stats() vendors.OverviewStats {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.stats
}

// ProfileView mirrors the vendor account record. Push-only like overview.
type ProfileView struct {
	view
	mu      sync.RWMutex
	profile vendors.VendorProfile
}

func NewProfileView(ch *channel.Channel) *ProfileView {
	v := &ProfileView{view: view{ch: ch}}
	v.track(ch.Mux().Subscribe(domain.DomainProfile, v.apply, v.apply))
	return v
}

func (v *ProfileView) apply(payload any, _ time.Time) {
	profile, ok := vendors.BuildProfile(payload)

	v.mu.Lock()
	defer v.mu.Unlock()
	if !ok {
		v.profile = vendors.VendorProfile{}
		return
	}
	v.profile = *profile
}

func (v *ProfileView) Profile() vendors.VendorProfile {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.profile
}

// AnalyticsView mirrors the channel metrics aggregate.
type AnalyticsView struct {
	view
	mu     sync.RWMutex
	report vendors.AnalyticsReport
}

func NewAnalyticsView(ch *channel.Channel) *AnalyticsView {
	v := &AnalyticsView{view: view{ch: ch}}
	v.refresh = v.Refresh
	v.track(ch.Mux().Subscribe(domain.DomainAnalytics, v.apply, v.apply))
	return v
}

func (v *AnalyticsView) Refresh() error {
	return v.ch.Request(domain.DomainAnalytics)
}

func (v *AnalyticsView) apply(payload any, _ time.Time) {
	report, ok := vendors.BuildAnalyticsReport(payload)

	v.mu.Lock()
	defer v.mu.Unlock()
	if !ok {
		v.report = vendors.AnalyticsReport{}
		return
	}
	v.report = *report
}

func (v *AnalyticsView) Report() vendors.AnalyticsReport {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.report
}

// VerificationsView mirrors the pending student verification queue.
type VerificationsView struct {
	view
	mu       sync.RWMutex
	requests []vendors.VerificationRequest
}

func NewVerificationsView(ch *channel.Channel) *VerificationsView {
	v := &VerificationsView{view: view{ch: ch}}
	v.refresh = v.Refresh
	v.track(ch.Mux().Subscribe(domain.DomainVerifications, v.apply, v.apply))
	return v
}

func (v *VerificationsView) Refresh() error {
	return v.ch.Request(domain.DomainVerifications)
}

func (v *VerificationsView) apply(payload any, _ time.Time) {
	requests, ok := vendors.BuildVerificationList(payload)

	v.mu.Lock()
	defer v.mu.Unlock()
	if !ok {
		v.requests = nil
		return
	}
	v.requests = requests
}

func (v *VerificationsView) Requests() []vendors.VerificationRequest {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]vendors.VerificationRequest, len(v.requests))
	copy(out, v.requests)
	return out
}

// Pending counts the requests still awaiting a decision.
func (v *VerificationsView) Pending() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	count := 0
	for _, r := range v.requests {
		if r.Status == vendors.VerificationStatusPending {
			count++
		}
	}
	return count
}
