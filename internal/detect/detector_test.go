package detect

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCountVehicles(t *testing.T) {
	cases := []struct {
		name       string
		detections []Detection
		expected   int
	}{
		{"empty", nil, 0},
		{
			"mixed labels",
			[]Detection{
				{Label: "car", Confidence: 0.91},
				{Label: "person", Confidence: 0.88},
				{Label: "truck", Confidence: 0.76},
				{Label: "traffic light", Confidence: 0.95},
				{Label: "bus", Confidence: 0.64},
				{Label: "motorcycle", Confidence: 0.59},
			},
			4,
		},
		{
			"duplicate labels count as a multiset",
			[]Detection{
				{Label: "car"}, {Label: "car"}, {Label: "car"},
			},
			3,
		},
		{
			"no vehicles",
			[]Detection{{Label: "dog"}, {Label: "bicycle"}},
			0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CountVehicles(tc.detections); got != tc.expected {
				t.Fatalf("CountVehicles = %d; want %d", got, tc.expected)
			}
		})
	}
}

func TestClientDetect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"detections":[{"label":"car","confidence":0.92},{"label":"person","confidence":0.8}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	dets, err := client.Detect(context.Background(), []byte("jpeg-bytes"))
	if err != nil {
		t.Fatalf("Detect returned error: %v", err)
	}
	if len(dets) != 2 {
		t.Fatalf("got %d detections, want 2", len(dets))
	}
	if dets[0].Label != "car" {
		t.Errorf("first label = %q, want car", dets[0].Label)
	}
}

func TestClientDetect_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-success status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "model loading", http.StatusServiceUnavailable)
			},
		},
		{
			name: "error payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"error":"unsupported image format"}`))
			},
		},
		{
			name: "malformed payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("not json"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := NewClient(srv.URL, time.Second)
			if _, err := client.Detect(context.Background(), []byte("img")); err == nil {
				t.Fatal("Detect returned nil error, want failure")
			}
		})
	}
}
