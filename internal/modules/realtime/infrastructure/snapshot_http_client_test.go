package infrastructure

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stuDealsWs/internal/modules/realtime/application/port"
	"stuDealsWs/internal/modules/realtime/domain"
)

func TestFetchDomainForwardsBearerAndUnwrapsData(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/vendors/vendor-1/products" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("unexpected authorization header: %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":"p1","title":"10% off"}]}`))
	}))
	defer server.Close()

	client := NewVendorSnapshotHTTPClient(server.URL, time.Second, nil)
	payload, err := client.FetchDomain(context.Background(), "tok-1", "vendor-1", domain.DomainProducts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items, ok := payload.([]interface{})
	if !ok || len(items) != 1 {
		t.Fatalf("unexpected payload: %#v", payload)
	}
}

func TestFetchDomainMapsStatusCodes(t *testing.T) {
	t.Parallel()

	status := http.StatusNotFound
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	}))
	defer server.Close()

	client := NewVendorSnapshotHTTPClient(server.URL, time.Second, nil)

	if _, err := client.FetchDomain(context.Background(), "tok", "vendor-1", domain.DomainOrders); !errors.Is(err, port.ErrSnapshotNotFound) {
		t.Fatalf("expected ErrSnapshotNotFound, got %v", err)
	}

	status = http.StatusForbidden
	if _, err := client.FetchDomain(context.Background(), "tok", "vendor-1", domain.DomainOrders); !errors.Is(err, port.ErrSnapshotForbidden) {
		t.Fatalf("expected ErrSnapshotForbidden, got %v", err)
	}

	status = http.StatusBadGateway
	if _, err := client.FetchDomain(context.Background(), "tok", "vendor-1", domain.DomainOrders); err == nil {
		t.Fatal("expected error for 502")
	}
}

func TestFetchDomainRejectsUnknownDomain(t *testing.T) {
	t.Parallel()

	client := NewVendorSnapshotHTTPClient("http://unused", time.Second, nil)
	if _, err := client.FetchDomain(context.Background(), "tok", "vendor-1", "mystery"); !errors.Is(err, port.ErrSnapshotUnsupported) {
		t.Fatalf("expected ErrSnapshotUnsupported, got %v", err)
	}
}

func TestFetchDomainRequiresVendorID(t *testing.T) {
	t.Parallel()

	client := NewVendorSnapshotHTTPClient("http://unused", time.Second, nil)
	if _, err := client.FetchDomain(context.Background(), "tok", "  ", domain.DomainProducts); !errors.Is(err, port.ErrSnapshotNotFound) {
		t.Fatalf("expected ErrSnapshotNotFound, got %v", err)
	}
}

func TestFetchDomainWithoutDataEnvelope(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"totalRevenue":120.5,"redemptions":12}`))
	}))
	defer server.Close()

	client := NewVendorSnapshotHTTPClient(server.URL, time.Second, nil)
	payload, err := client.FetchDomain(context.Background(), "tok", "vendor-1", domain.DomainAnalytics)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc, ok := payload.(map[string]interface{})
	if !ok || doc["redemptions"] != float64(12) {
		t.Fatalf("unexpected payload: %#v", payload)
	}
}
