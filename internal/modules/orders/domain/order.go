package domain

import (
	"strings"

	"stuDealsWs/internal/shared/normalization"
)

// OrderStatus represents the lifecycle of a student order as exposed by the REST API.
type OrderStatus string

const (
	OrderStatusUnknown   OrderStatus = ""
	OrderStatusPlaced    OrderStatus = "PLACED"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusRedeemed  OrderStatus = "REDEEMED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

var allowedOrderStatuses = map[string]OrderStatus{
	string(OrderStatusPlaced):    OrderStatusPlaced,
	string(OrderStatusConfirmed): OrderStatusConfirmed,
	string(OrderStatusRedeemed):  OrderStatusRedeemed,
	string(OrderStatusCancelled): OrderStatusCancelled,
}

// NormalizeOrderStatus returns the canonical OrderStatus for the given input.
// Unknown statuses are uppercased and returned as-is to avoid data loss.
func NormalizeOrderStatus(value any) OrderStatus {
	s, ok := value.(string)
	if !ok {
		return OrderStatusUnknown
	}
	trimmed := strings.ToUpper(strings.TrimSpace(s))
	if trimmed == "" {
		return OrderStatusUnknown
	}
	if status, ok := allowedOrderStatuses[trimmed]; ok {
		return status
	}
	return OrderStatus(trimmed)
}

// OrderSummary is the order projection pushed to vendor dashboards.
type OrderSummary struct {
	ID          string
	VendorID    string
	StudentID   string
	ProductID   string
	ProductName string
	Status      OrderStatus
	Total       float64
	PlacedAt    string
}

// OrderList aggregates orders with pagination metadata.
type OrderList struct {
	Items []OrderSummary
	Total int
}

// NormalizeOrder constructs an OrderSummary from a loosely typed map.
func NormalizeOrder(raw map[string]any) (OrderSummary, bool) {
	id := normalization.AsString(raw["id"])
	if id == "" {
		return OrderSummary{}, false
	}

	order := OrderSummary{
		ID:          id,
		VendorID:    normalization.AsString(raw["vendorId"]),
		StudentID:   normalization.AsString(raw["studentId"]),
		ProductID:   normalization.AsString(raw["productId"]),
		ProductName: normalization.AsString(raw["productName"]),
		Total:       normalization.AsFloat64(raw["total"]),
		PlacedAt:    normalization.AsString(raw["placedAt"]),
	}

	status := NormalizeOrderStatus(raw["status"])
	if status == OrderStatusUnknown {
		status = NormalizeOrderStatus(raw["state"])
	}
	order.Status = status

	return order, true
}

// BuildOrderList projects payloads into an OrderList.
func BuildOrderList(payload any) (*OrderList, bool) {
	container := normalization.MapFromPayload(payload)

	rawItems := normalization.AsInterfaceSlice(payload)
	if len(rawItems) == 0 && len(container) > 0 {
		rawItems = normalization.AsInterfaceSlice(container["items"])
		if len(rawItems) == 0 {
			rawItems = normalization.AsInterfaceSlice(container["orders"])
		}
	}
	if len(rawItems) == 0 {
		return nil, false
	}

	result := &OrderList{Items: make([]OrderSummary, 0, len(rawItems))}
	for _, item := range rawItems {
		if rawMap, ok := item.(map[string]any); ok {
			if order, ok := NormalizeOrder(rawMap); ok {
				result.Items = append(result.Items, order)
			}
		}
	}
	if len(result.Items) == 0 {
		return nil, false
	}

	if total := normalization.AsInt(container["total"]); total > 0 {
		result.Total = total
	} else {
		result.Total = len(result.Items)
	}

	return result, true
}
