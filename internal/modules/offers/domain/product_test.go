package domain

import "testing"

func TestNormalizeProductRequiresID(t *testing.T) {
	t.Parallel()

	if _, ok := NormalizeProduct(map[string]any{"title": "10% off"}); ok {
		t.Fatal("expected product without id to be rejected")
	}
}

func TestNormalizeProductFallsBackToName(t *testing.T) {
	t.Parallel()

	product, ok := NormalizeProduct(map[string]any{"id": "p1", "name": "Burrito combo", "price": 8.5, "active": true})
	if !ok {
		t.Fatal("expected product to normalize")
	}
	if product.Title != "Burrito combo" {
		t.Fatalf("unexpected title: %q", product.Title)
	}
	if product.Price != 8.5 {
		t.Fatalf("unexpected price: %v", product.Price)
	}
	if !product.Active {
		t.Fatal("expected active product")
	}
}

func TestBuildProductListFromEnvelope(t *testing.T) {
	t.Parallel()

	payload := map[string]any{
		"data": map[string]any{
			"items": []any{
				map[string]any{"id": "p1", "title": "10% off"},
				map[string]any{"title": "missing id"},
				map[string]any{"id": "p2", "title": "BOGO"},
			},
			"total": 7,
		},
	}

	list, ok := BuildProductList(payload)
	if !ok {
		t.Fatal("expected list to build")
	}
	if len(list.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(list.Items))
	}
	if list.Total != 7 {
		t.Fatalf("unexpected total: %d", list.Total)
	}
}

func TestBuildProductListFromBareSlice(t *testing.T) {
	t.Parallel()

	payload := []any{
		map[string]any{"id": "p1", "title": "10% off"},
	}

	list, ok := BuildProductList(payload)
	if !ok {
		t.Fatal("expected list to build")
	}
	if list.Total != 1 {
		t.Fatalf("unexpected total: %d", list.Total)
	}
}

func TestBuildProductDetailUnwrapsNested(t *testing.T) {
	t.Parallel()

	payload := map[string]any{
		"product": map[string]any{"id": "p9", "title": "Half price"},
	}

	product, ok := BuildProductDetail(payload)
	if !ok {
		t.Fatal("expected detail to build")
	}
	if product.ID != "p9" {
		t.Fatalf("unexpected id: %s", product.ID)
	}
}
