package domain

import "strings"

// Dashboard domains. Each one owns a loaded/updated event pair on the wire;
// the streaming domains additionally emit discrete item events.
const (
	DomainProducts         = "products"
	DomainOrders           = "orders"
	DomainAnalytics        = "analytics"
	DomainDiscounts        = "discounts"
	DomainNotifications    = "notifications"
	DomainVerifications    = "verifications"
	DomainProfile          = "profile"
	DomainOverview         = "overview"
	DomainCouponsAnalytics = "coupons-analytics"

	// DomainCoupons is the streaming side of the coupon pipeline: discrete
	// claim events, distinct from the coupons-analytics aggregate.
	DomainCoupons = "coupons"
)

const (
	ActionLoaded  = "loaded"
	ActionUpdated = "updated"
	ActionRequest = "request"

	EventRoomJoin         = "room:join"
	EventConnectionStatus = "connection:status"
	EventNotificationItem = "notifications:item"
	EventCouponClaimed    = "coupons:claimed"
)

// Broadcast kinds. The inbound event name delivered to the vendor room equals
// the kind; the outbound trigger is prefixed with "broadcast:".
const (
	BroadcastOfferApproved  = "offer-approved"
	BroadcastOfferRejected  = "offer-rejected"
	BroadcastNewRedemption  = "new-redemption"
	BroadcastProductUpdated = "product-updated"
	BroadcastCouponClaimed  = "coupon-claimed"

	broadcastTriggerPrefix = "broadcast:"
)

var domains = []string{
	DomainProducts,
	DomainOrders,
	DomainAnalytics,
	DomainDiscounts,
	DomainNotifications,
	DomainVerifications,
	DomainProfile,
	DomainOverview,
	DomainCouponsAnalytics,
}

var pushOnly = map[string]struct{}{
	DomainProfile:  {},
	DomainOverview: {},
}

var itemEvents = map[string]string{
	DomainNotifications: EventNotificationItem,
	DomainCoupons:       EventCouponClaimed,
}

var broadcastKinds = map[string]struct{}{
	BroadcastOfferApproved:  {},
	BroadcastOfferRejected:  {},
	BroadcastNewRedemption:  {},
	BroadcastProductUpdated: {},
	BroadcastCouponClaimed:  {},
}

// Domains returns the dashboard domains in their canonical order.
func Domains() []string {
	out := make([]string, len(domains))
	copy(out, domains)
	return out
}

// KnownDomain reports whether the name is one of the dashboard domains.
func KnownDomain(domain string) bool {
	for _, d := range domains {
		if d == domain {
			return true
		}
	}
	return false
}

// Requestable reports whether clients may actively ask for a fresh snapshot.
// Profile and overview are push-only.
func Requestable(domain string) bool {
	if !KnownDomain(domain) {
		return false
	}
	_, blocked := pushOnly[domain]
	return !blocked
}

// LoadedEvent returns the snapshot event name for the given domain.
func LoadedEvent(domain string) string {
	return buildEvent(domain, ActionLoaded)
}

// UpdatedEvent returns the full-replacement update event name for the given domain.
func UpdatedEvent(domain string) string {
	return buildEvent(domain, ActionUpdated)
}

// RequestEvent returns the outbound snapshot request event name for the given domain.
func RequestEvent(domain string) string {
	return buildEvent(domain, ActionRequest)
}

// ItemEvent returns the streaming item event name for the given domain, when
// the domain streams discrete items at all.
func ItemEvent(domain string) (string, bool) {
	event, ok := itemEvents[strings.TrimSpace(domain)]
	return event, ok
}

// KnownBroadcastKind reports whether the name is a relayed broadcast kind.
func KnownBroadcastKind(kind string) bool {
	_, ok := broadcastKinds[strings.TrimSpace(kind)]
	return ok
}

// BroadcastKinds returns every relayed broadcast kind.
func BroadcastKinds() []string {
	return []string{
		BroadcastOfferApproved,
		BroadcastOfferRejected,
		BroadcastNewRedemption,
		BroadcastProductUpdated,
		BroadcastCouponClaimed,
	}
}

// BroadcastTriggerEvent returns the outbound trigger event name for a kind.
func BroadcastTriggerEvent(kind string) string {
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return ""
	}
	return broadcastTriggerPrefix + kind
}

// ParseBroadcastTrigger extracts the kind from a "broadcast:{kind}" event name.
func ParseBroadcastTrigger(event string) (string, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(event), broadcastTriggerPrefix)
	if !ok || !KnownBroadcastKind(rest) {
		return "", false
	}
	return rest, true
}

// ParseEvent splits an event name of the form "{domain}:{action}".
func ParseEvent(event string) (domain, action string, ok bool) {
	domain, action, ok = strings.Cut(strings.TrimSpace(event), ":")
	if !ok || domain == "" || action == "" {
		return "", "", false
	}
	return domain, action, true
}

func buildEvent(domain, action string) string {
	cleanDomain := strings.TrimSpace(domain)
	cleanAction := strings.TrimSpace(action)
	if cleanDomain == "" || cleanAction == "" {
		return ""
	}
	return cleanDomain + ":" + cleanAction
}
