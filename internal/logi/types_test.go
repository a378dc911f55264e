package logi_test

import (
	"errors"
	"testing"
	"time"

	"sislog/internal/logi"
)

func TestLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"awaiting_pickup", "Awaiting Pickup"},
		{"truck", "Truck"},
		{"logistics_assistant", "Logistics Assistant"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := logi.Label(tt.in); got != tt.want {
			t.Errorf("Label(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if logi.StatusDeliveryFailed.String() != "Delivery Failed" {
		t.Errorf("StatusDeliveryFailed.String() = %q", logi.StatusDeliveryFailed.String())
	}
}

func TestParseEnum(t *testing.T) {
	got, err := logi.ParseEnum("Awaiting Pickup", logi.DeliveryStatuses)
	if err != nil {
		t.Fatalf("ParseEnum() error = %v", err)
	}
	if got != logi.StatusAwaitingPickup {
		t.Errorf("ParseEnum() = %q, want awaiting_pickup", got)
	}

	if _, err := logi.ParseEnum(" TRUCK ", logi.VehicleCategories); err != nil {
		t.Errorf("ParseEnum(TRUCK) error = %v", err)
	}
	if _, err := logi.ParseEnum("boat", logi.VehicleCategories); !errors.Is(err, logi.ErrInvalidInput) {
		t.Errorf("ParseEnum(boat) error = %v, want ErrInvalidInput", err)
	}
}

func TestDeliveryStatus_Loadable(t *testing.T) {
	for _, s := range logi.DeliveryStatuses {
		want := s == logi.StatusProcessing || s == logi.StatusAwaitingPickup
		if s.Loadable() != want {
			t.Errorf("%s.Loadable() = %v, want %v", s, s.Loadable(), want)
		}
	}
}

func TestParseKg(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"100", "100", false},
		{" 12,5 ", "12.5", false},
		{"0.001", "0.001", false},
		{"0", "", true},
		{"-3", "", true},
		{"heavy", "", true},
	}
	for _, tt := range tests {
		got, err := logi.ParseKg(tt.in)
		if tt.wantErr {
			if !errors.Is(err, logi.ErrInvalidInput) {
				t.Errorf("ParseKg(%q) error = %v, want ErrInvalidInput", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseKg(%q) error = %v", tt.in, err)
			continue
		}
		if !got.Equal(kg(tt.want)) {
			t.Errorf("ParseKg(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestFormatKg(t *testing.T) {
	tests := map[string]string{
		"10":     "10.0",
		"10.5":   "10.5",
		"0.25":   "0.25",
		"99.999": "99.999",
	}
	for in, want := range tests {
		if got := logi.FormatKg(kg(in)); got != want {
			t.Errorf("FormatKg(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatPlate(t *testing.T) {
	if got := logi.FormatPlate(" abc-1d23 "); got != "ABC1D23" {
		t.Errorf("FormatPlate() = %q, want ABC1D23", got)
	}
}

func TestParseLoadTime(t *testing.T) {
	got, err := logi.ParseLoadTime("2024-03-01 08:00")
	if err != nil {
		t.Fatalf("ParseLoadTime() error = %v", err)
	}
	if !got.Equal(time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)) {
		t.Errorf("ParseLoadTime() = %v", got)
	}
	if logi.FormatLoadTime(got) != "2024-03-01 08:00" {
		t.Errorf("FormatLoadTime() = %q", logi.FormatLoadTime(got))
	}

	for _, bad := range []string{"2024-03-01", "01/03/2024 08:00", "2024-03-01 8h"} {
		if _, err := logi.ParseLoadTime(bad); !errors.Is(err, logi.ErrInvalidInput) {
			t.Errorf("ParseLoadTime(%q) error = %v, want ErrInvalidInput", bad, err)
		}
	}
}

func TestParseDate(t *testing.T) {
	got, err := logi.ParseDate("1990-05-01")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if got.Year() != 1990 || got.Month() != time.May || got.Day() != 1 {
		t.Errorf("ParseDate() = %v", got)
	}
	if _, err := logi.ParseDate("1990-13-01"); !errors.Is(err, logi.ErrInvalidInput) {
		t.Errorf("ParseDate(bad month) error = %v, want ErrInvalidInput", err)
	}
}

func TestNormalizeLoadTime(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	in := time.Date(2024, 3, 1, 8, 15, 42, 999, loc)

	got := logi.NormalizeLoadTime(in)
	want := time.Date(2024, 3, 1, 8, 15, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("NormalizeLoadTime() = %v, want %v", got, want)
	}
}
