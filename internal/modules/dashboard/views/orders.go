package views

import (
	"sync"
	"time"

	"stuDealsWs/internal/modules/dashboard/channel"
	orders "stuDealsWs/internal/modules/orders/domain"
	"stuDealsWs/internal/modules/realtime/domain"
)

// OrdersView mirrors the vendor's order list with replacement semantics.
type OrdersView struct {
	view
	mu        sync.RWMutex
	orders    []orders.OrderSummary
	total     int
	updatedAt time.Time
}

func NewOrdersView(ch *channel.Channel) *OrdersView {
	v := &OrdersView{view: view{ch: ch}}
	v.refresh = v.Refresh
	v.track(ch.Mux().Subscribe(domain.DomainOrders, v.apply, v.apply))
	return v
}

func (v *OrdersView) Refresh() error {
	return v.ch.Request(domain.DomainOrders)
}

func (v *OrdersView) apply(payload any, at time.Time) {
	list, ok := orders.BuildOrderList(payload)

	v.mu.Lock()
	defer v.mu.Unlock()
	if !ok {
		v.orders = nil
		v.total = 0
	} else {
		v.orders = list.Items
		v.total = list.Total
	}
	v.updatedAt = at
}

func (v *OrdersView) Orders() []orders.OrderSummary {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]orders.OrderSummary, len(v.orders))
	copy(out, v.orders)
	return out
}

func (v *OrdersView) Total() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.total
}
