package views

import (
	"sync"
	"time"

	"stuDealsWs/internal/modules/dashboard/channel"
	"stuDealsWs/internal/modules/realtime/domain"
	vendors "stuDealsWs/internal/modules/vendors/domain"
	"stuDealsWs/internal/shared/normalization"
)

// defaultFeedCap bounds the locally retained feed; the channel itself keeps
// no history.
const defaultFeedCap = 10

// NotificationsFeed is the client-held notification history: snapshot pushes
// replace it, streamed items and broadcast notices prepend to it, newest
// first, capped.
type NotificationsFeed struct {
	view
	mu    sync.RWMutex
	cap   int
	items []vendors.Notification
}

func NewNotificationsFeed(ch *channel.Channel) *NotificationsFeed {
	return NewNotificationsFeedWithCap(ch, defaultFeedCap)
}

func NewNotificationsFeedWithCap(ch *channel.Channel, feedCap int) *NotificationsFeed {
	if feedCap <= 0 {
		feedCap = defaultFeedCap
	}
	f := &NotificationsFeed{view: view{ch: ch}, cap: feedCap}
	f.refresh = f.Refresh
	f.track(ch.Mux().Subscribe(domain.DomainNotifications, f.applySnapshot, f.applySnapshot))
	if off, err := ch.Mux().SubscribeItem(domain.DomainNotifications, f.applyItem); err == nil {
		f.track(off)
	}
	for _, kind := range domain.BroadcastKinds() {
		kind := kind
		f.track(ch.Mux().SubscribeBroadcast(kind, func(payload any, at time.Time) {
			f.prepend(vendors.NewBroadcastNotification(kind, payload, at))
		}))
	}
	return f
}

func (f *NotificationsFeed) Refresh() error {
	return f.ch.Request(domain.DomainNotifications)
}

func (f *NotificationsFeed) applySnapshot(payload any, at time.Time) {
	rawItems := normalization.AsInterfaceSlice(payload)
	if len(rawItems) == 0 {
		if container := normalization.MapFromPayload(payload); len(container) > 0 {
			rawItems = normalization.AsInterfaceSlice(container["items"])
			if len(rawItems) == 0 {
				rawItems = normalization.AsInterfaceSlice(container["notifications"])
			}
		}
	}

	items := make([]vendors.Notification, 0, len(rawItems))
	for _, raw := range rawItems {
		if rawMap, ok := raw.(map[string]any); ok {
			if n, ok := vendors.NormalizeNotification(rawMap, at); ok {
				items = append(items, n)
			}
		}
	}
	if len(items) > f.cap {
		items = items[:f.cap]
	}

	f.mu.Lock()
	f.items = items
	f.mu.Unlock()
}

func (f *NotificationsFeed) applyItem(payload any, at time.Time) {
	rawMap := normalization.MapFromPayload(payload)
	n, ok := vendors.NormalizeNotification(rawMap, at)
	if !ok {
		return
	}
	f.prepend(n)
}

func (f *NotificationsFeed) prepend(n vendors.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append([]vendors.Notification{n}, f.items...)
	if len(f.items) > f.cap {
		f.items = f.items[:f.cap]
	}
}

// Notifications returns the retained feed, newest first.
func (f *NotificationsFeed) Notifications() []vendors.Notification {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]vendors.Notification, len(f.items))
	copy(out, f.items)
	return out
}

// UnreadCount reports how many retained items are still unread.
func (f *NotificationsFeed) UnreadCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	count := 0
	for _, n := range f.items {
		if !n.Read {
			count++
		}
	}
	return count
}

// MarkRead flags one item as read; it stays in the feed.
func (f *NotificationsFeed) MarkRead(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Read = true
			return true
		}
	}
	return false
}
