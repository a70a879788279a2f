package domain

import "stuDealsWs/internal/shared/normalization"

// VendorProfile is the account projection shown on the profile view.
type VendorProfile struct {
	ID           string
	BusinessName string
	ContactName  string
	Email        string
	Phone        string
	Address      string
	Verified     bool
}

// NormalizeProfile constructs a VendorProfile from a loosely typed map.
func NormalizeProfile(raw map[string]any) (VendorProfile, bool) {
	id := normalization.AsString(raw["id"])
	if id == "" {
		return VendorProfile{}, false
	}
	return VendorProfile{
		ID:           id,
		BusinessName: normalization.AsString(raw["businessName"]),
		ContactName:  normalization.AsString(raw["contactName"]),
		Email:        normalization.AsString(raw["email"]),
		Phone:        normalization.AsString(raw["phone"]),
		Address:      normalization.AsString(raw["address"]),
		Verified:     normalization.AsBool(raw["verified"]),
	}, true
}

// BuildProfile attempts to extract the vendor profile from the payload.
func BuildProfile(payload any) (*VendorProfile, bool) {
	container := normalization.MapFromPayload(payload)
	if len(container) == 0 {
		return nil, false
	}

	if nested, ok := container["vendor"].(map[string]any); ok {
		container = nested
	}

	profile, ok := NormalizeProfile(container)
	if !ok {
		return nil, false
	}
	return &profile, true
}
