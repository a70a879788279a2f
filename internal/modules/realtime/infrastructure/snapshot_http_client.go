package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"stuDealsWs/internal/modules/realtime/application/port"
	"stuDealsWs/internal/modules/realtime/domain"
)

// Per-domain REST paths on the marketplace API. The %s slot is the vendor id.
var domainPaths = map[string]string{
	domain.DomainProducts:         "/api/v1/vendors/%s/products",
	domain.DomainOrders:           "/api/v1/vendors/%s/orders",
	domain.DomainAnalytics:        "/api/v1/vendors/%s/analytics",
	domain.DomainDiscounts:        "/api/v1/vendors/%s/discounts",
	domain.DomainNotifications:    "/api/v1/vendors/%s/notifications",
	domain.DomainVerifications:    "/api/v1/vendors/%s/verifications",
	domain.DomainProfile:          "/api/v1/vendors/%s/profile",
	domain.DomainOverview:         "/api/v1/vendors/%s/overview",
	domain.DomainCouponsAnalytics: "/api/v1/vendors/%s/coupons/analytics",
}

// VendorSnapshotHTTPClient implements port.SnapshotFetcher against the REST
// API that owns the marketplace data. The bearer credential is forwarded
// untouched; the channel performs no authentication of its own.
type VendorSnapshotHTTPClient struct {
	baseURL string
	client  *http.Client
}

func NewVendorSnapshotHTTPClient(baseURL string, timeout time.Duration, client *http.Client) *VendorSnapshotHTTPClient {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &VendorSnapshotHTTPClient{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  client,
	}
}

func (c *VendorSnapshotHTTPClient) FetchDomain(ctx context.Context, token, vendorID, domainName string) (interface{}, error) {
	pattern, ok := domainPaths[strings.TrimSpace(domainName)]
	if !ok {
		return nil, port.ErrSnapshotUnsupported
	}
	vendorID = strings.TrimSpace(vendorID)
	if vendorID == "" {
		return nil, port.ErrSnapshotNotFound
	}

	url := c.baseURL + fmt.Sprintf(pattern, vendorID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build snapshot request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if strings.TrimSpace(token) != "" {
		req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(token))
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("snapshot request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, port.ErrSnapshotNotFound
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return nil, port.ErrSnapshotForbidden
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		slog.Warn("snapshot fetch unexpected status",
			slog.String("domain", domainName),
			slog.String("vendorId", vendorID),
			slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("snapshot fetch status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return decodeSnapshotBody(resp.Body)
}

// decodeSnapshotBody unwraps the REST API's {"data": ...} envelope when
// present; otherwise the whole document is the payload.
func decodeSnapshotBody(r io.Reader) (interface{}, error) {
	var raw interface{}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode snapshot body: %w", err)
	}
	if wrapper, ok := raw.(map[string]interface{}); ok {
		if data, exists := wrapper["data"]; exists {
			return data, nil
		}
	}
	return raw, nil
}
