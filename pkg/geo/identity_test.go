package geo

import "testing"

func TestIdentity(t *testing.T) {
	cases := []struct {
		name     string
		lat, lon float64
		expected string
	}{
		{"singapore junction", 1.5, 103.8, "1.5_103.8"},
		{"negative coordinates", -33.86, 151.21, "-33.86_151.21"},
		{"whole degrees", 52, 13, "52_13"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Identity(tc.lat, tc.lon); got != tc.expected {
				t.Fatalf("Identity(%v, %v) = %q; want %q", tc.lat, tc.lon, got, tc.expected)
			}
		})
	}
}

func TestParseIdentity(t *testing.T) {
	cases := []struct {
		name     string
		key      string
		lat, lon float64
		wantErr  bool
	}{
		{"well-formed", "1.5_103.8", 1.5, 103.8, false},
		{"negative", "-33.86_151.21", -33.86, 151.21, false},
		{"surrounding spaces", " 1.5_103.8 ", 1.5, 103.8, false},
		{"empty", "", 0, 0, true},
		{"single component", "1.5", 0, 0, true},
		{"three components", "1.5_103.8_7", 0, 0, true},
		{"non-numeric latitude", "north_103.8", 0, 0, true},
		{"non-numeric longitude", "1.5_east", 0, 0, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lat, lon, err := ParseIdentity(tc.key)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseIdentity(%q) = (%v, %v), want error", tc.key, lat, lon)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseIdentity(%q) returned error: %v", tc.key, err)
			}
			if lat != tc.lat || lon != tc.lon {
				t.Fatalf("ParseIdentity(%q) = (%v, %v); want (%v, %v)", tc.key, lat, lon, tc.lat, tc.lon)
			}
		})
	}
}

func TestIdentityRoundTrip(t *testing.T) {
	keys := []string{"1.5_103.8", "-33.86_151.21", "0_0"}
	for _, key := range keys {
		lat, lon, err := ParseIdentity(key)
		if err != nil {
			t.Fatalf("ParseIdentity(%q) returned error: %v", key, err)
		}
		if got := Identity(lat, lon); got != key {
			t.Fatalf("round trip of %q produced %q", key, got)
		}
	}
}
