package handlers

import (
	"testing"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }

func TestNormalizeSettingsFillsDefaults(t *testing.T) {
	settings, err := normalizeSettings(settingsRequest{
		RestaurantName: strPtr("Mama Put Kitchen"),
	})
	if err != nil {
		t.Fatalf("normalizeSettings returned error: %v", err)
	}

	if settings.RestaurantName != "Mama Put Kitchen" {
		t.Fatalf("expected overridden name, got %q", settings.RestaurantName)
	}
	if settings.Currency != "NGN" {
		t.Fatalf("expected default currency NGN, got %q", settings.Currency)
	}
	if !settings.EnableNotifications {
		t.Fatal("expected notifications enabled by default")
	}
	if len(settings.DeliveryZones) != 2 {
		t.Fatalf("expected the two seeded zones, got %d", len(settings.DeliveryZones))
	}
}

func TestNormalizeSettingsRejectsBadTaxRate(t *testing.T) {
	for _, rate := range []float64{-1, 101} {
		if _, err := normalizeSettings(settingsRequest{TaxRate: floatPtr(rate)}); err == nil {
			t.Fatalf("expected error for taxRate=%v", rate)
		}
	}

	settings, err := normalizeSettings(settingsRequest{TaxRate: floatPtr(7.5)})
	if err != nil {
		t.Fatalf("normalizeSettings returned error: %v", err)
	}
	if settings.TaxRate != 7.5 {
		t.Fatalf("expected taxRate 7.5, got %v", settings.TaxRate)
	}
}

func TestNormalizeSettingsExplicitEmptyZones(t *testing.T) {
	zones := []deliveryZoneRequest{}
	settings, err := normalizeSettings(settingsRequest{DeliveryZones: &zones})
	if err != nil {
		t.Fatalf("normalizeSettings returned error: %v", err)
	}
	if len(settings.DeliveryZones) != 0 {
		t.Fatalf("expected explicitly cleared zones, got %d", len(settings.DeliveryZones))
	}
}

func TestNormalizeZonesDedupesLandmarks(t *testing.T) {
	zones, err := normalizeZones([]deliveryZoneRequest{
		{Name: "Zone 8", Landmarks: []string{"Zone 8", " Zone 8 ", "", "Phase II"}, Fee: 500},
	})
	if err != nil {
		t.Fatalf("normalizeZones returned error: %v", err)
	}
	if len(zones) != 1 {
		t.Fatalf("expected one zone, got %d", len(zones))
	}
	if len(zones[0].Landmarks) != 2 {
		t.Fatalf("expected deduped landmarks [Zone 8, Phase II], got %v", zones[0].Landmarks)
	}
}

func TestNormalizeZonesDropsEmptyEntries(t *testing.T) {
	zones, err := normalizeZones([]deliveryZoneRequest{
		{Name: "", Landmarks: []string{"X"}, Fee: 100},
		{Name: "No Landmarks", Landmarks: []string{" ", ""}, Fee: 100},
		{Name: "Kept", Landmarks: []string{"Y"}, Fee: 100},
	})
	if err != nil {
		t.Fatalf("normalizeZones returned error: %v", err)
	}
	if len(zones) != 1 || zones[0].Name != "Kept" {
		t.Fatalf("expected only the valid zone to survive, got %+v", zones)
	}
}

func TestNormalizeZonesRejectsNegativeFee(t *testing.T) {
	_, err := normalizeZones([]deliveryZoneRequest{
		{Name: "Bad", Landmarks: []string{"X"}, Fee: -100},
	})
	if err == nil {
		t.Fatal("expected error for negative fee")
	}
}

func TestNormalizeSettingsBooleanOverrides(t *testing.T) {
	settings, err := normalizeSettings(settingsRequest{
		EnableNotifications: boolPtr(false),
		EnableEmailAlerts:   boolPtr(true),
	})
	if err != nil {
		t.Fatalf("normalizeSettings returned error: %v", err)
	}
	if settings.EnableNotifications {
		t.Fatal("expected notifications disabled")
	}
	if !settings.EnableEmailAlerts {
		t.Fatal("expected email alerts enabled")
	}
}
