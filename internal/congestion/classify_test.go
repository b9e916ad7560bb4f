package congestion

import (
	"testing"

	"github.com/Ecocity-The-Try-People/ecocity-traffic-prediction/internal/models"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name       string
		count      int
		level      models.CongestionLevel
		suggestion string
	}{
		{"zero vehicles", 0, models.CongestionLow, "Continue on your current lane"},
		{"just below medium", 9, models.CongestionLow, "Continue on your current lane"},
		{"medium lower bound", 10, models.CongestionMedium, "Will be congested soon, try to switch lane or route"},
		{"just below high", 24, models.CongestionMedium, "Will be congested soon, try to switch lane or route"},
		{"high lower bound", 25, models.CongestionHigh, "Please reroute, road is congested"},
		{"well above high", 120, models.CongestionHigh, "Please reroute, road is congested"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			level, suggestion := Classify(tc.count)
			if level != tc.level {
				t.Fatalf("Classify(%d) level = %q; want %q", tc.count, level, tc.level)
			}
			if suggestion != tc.suggestion {
				t.Fatalf("Classify(%d) suggestion = %q; want %q", tc.count, suggestion, tc.suggestion)
			}
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		level, _ := Classify(17)
		if level != models.CongestionMedium {
			t.Fatalf("run %d: Classify(17) = %q; want Medium", i, level)
		}
	}
}
