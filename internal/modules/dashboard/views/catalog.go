package views

import (
	"sync"
	"time"

	"stuDealsWs/internal/modules/dashboard/channel"
	offers "stuDealsWs/internal/modules/offers/domain"
	"stuDealsWs/internal/modules/realtime/domain"
)

// ProductsView mirrors the vendor's product list. Every inbound envelope is an
// authoritative full replacement, never a partial patch.
type ProductsView struct {
	view
	mu        sync.RWMutex
	products  []offers.ProductSummary
	total     int
	updatedAt time.Time
}

func NewProductsView(ch *channel.Channel) *ProductsView {
	v := &ProductsView{view: view{ch: ch}}
	v.refresh = v.Refresh
	v.track(ch.Mux().Subscribe(domain.DomainProducts, v.apply, v.apply))
	return v
}

// Refresh asks the gateway for a fresh snapshot.
func (v *ProductsView) Refresh() error {
	return v.ch.Request(domain.DomainProducts)
}

func (v *ProductsView) apply(payload any, at time.Time) {
	list, ok := offers.BuildProductList(payload)

	v.mu.Lock()
	defer v.mu.Unlock()
	if !ok {
		v.products = nil
		v.total = 0
	} else {
		v.products = list.Items
		v.total = list.Total
	}
	v.updatedAt = at
}

// Products returns the current slice of visible products.
func (v *ProductsView) Products() []offers.ProductSummary {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]offers.ProductSummary, len(v.products))
	copy(out, v.products)
	return out
}

func (v *ProductsView) Total() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.total
}

// DiscountsView mirrors the vendor's active offers.
type DiscountsView struct {
	view
	mu        sync.RWMutex
	discounts []offers.Discount
	updatedAt time.Time
}

func NewDiscountsView(ch *channel.Channel) *DiscountsView {
	v := &DiscountsView{view: view{ch: ch}}
	v.refresh = v.Refresh
	v.track(ch.Mux().Subscribe(domain.DomainDiscounts, v.apply, v.apply))
	return v
}

func (v *DiscountsView) Refresh() error {
	return v.ch.Request(domain.DomainDiscounts)
}

func (v *DiscountsView) apply(payload any, at time.Time) {
	discounts, ok := offers.BuildDiscountList(payload)

	v.mu.Lock()
	defer v.mu.Unlock()
	if !ok {
		v.discounts = nil
	} else {
		v.discounts = discounts
	}
	v.updatedAt = at
}

func (v *DiscountsView) Discounts() []offers.Discount {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]offers.Discount, len(v.discounts))
	copy(out, v.discounts)
	return out
}
