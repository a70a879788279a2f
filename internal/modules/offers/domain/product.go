package domain

import "stuDealsWs/internal/shared/normalization"

// ProductSummary is the product projection pushed to vendor dashboards.
type ProductSummary struct {
	ID          string
	VendorID    string
	Title       string
	Category    string
	Price       float64
	DiscountPct float64
	Active      bool
}

// ProductList contains a collection of products alongside pagination metadata.
type ProductList struct {
	Items []ProductSummary
	Total int
}

// NormalizeProduct attempts to construct a ProductSummary from an arbitrary map payload.
func NormalizeProduct(raw map[string]any) (ProductSummary, bool) {
	id := normalization.AsString(raw["id"])
	if id == "" {
		return ProductSummary{}, false
	}
	product := ProductSummary{
		ID:          id,
		VendorID:    normalization.AsString(raw["vendorId"]),
		Title:       normalization.AsString(raw["title"]),
		Category:    normalization.AsString(raw["category"]),
		Price:       normalization.AsFloat64(raw["price"]),
		DiscountPct: normalization.AsFloat64(raw["discountPct"]),
		Active:      normalization.AsBool(raw["active"]),
	}
	if product.Title == "" {
		product.Title = normalization.AsString(raw["name"])
	}
	return product, true
}

// BuildProductList tries to project the payload into a ProductList structure.
func BuildProductList(payload any) (*ProductList, bool) {
	container := normalization.MapFromPayload(payload)

	rawItems := normalization.AsInterfaceSlice(payload)
	if len(rawItems) == 0 && len(container) > 0 {
		rawItems = normalization.AsInterfaceSlice(container["items"])
		if len(rawItems) == 0 {
			rawItems = normalization.AsInterfaceSlice(container["products"])
		}
	}
	if len(rawItems) == 0 {
		return nil, false
	}

	result := &ProductList{Items: make([]ProductSummary, 0, len(rawItems))}
	for _, item := range rawItems {
		if rawMap, ok := item.(map[string]any); ok {
			if product, ok := NormalizeProduct(rawMap); ok {
				result.Items = append(result.Items, product)
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

// BuildProductDetail attempts to extract a single product from the payload.
func BuildProductDetail(payload any) (*ProductSummary, bool) {
	container := normalization.MapFromPayload(payload)
	if len(container) == 0 {
		return nil, false
	}

	if nested, ok := container["product"].(map[string]any); ok {
		container = nested
	}

	product, ok := NormalizeProduct(container)
	if !ok {
		return nil, false
	}
	return &product, true
}
