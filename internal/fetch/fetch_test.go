package fetch

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPFetcher(t *testing.T) {
	payload := []byte{0xFF, 0xD8, 0xFF, 0xE0} // jpeg magic
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(time.Second)
	data, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if !bytes.Equal(data, payload) {
		t.Fatalf("Fetch = %v; want %v", data, payload)
	}
}

func TestHTTPFetcher_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(time.Second)
	if _, err := f.Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("Fetch returned nil error for 404 response")
	}
}

type stubFetcher struct {
	data []byte
	url  string
}

func (s *stubFetcher) Fetch(_ context.Context, rawURL string) ([]byte, error) {
	s.url = rawURL
	return s.data, nil
}

func TestMuxDispatch(t *testing.T) {
	httpStub := &stubFetcher{data: []byte("via-http")}
	objectStub := &stubFetcher{data: []byte("via-s3")}
	mux := &Mux{HTTP: httpStub, Object: objectStub}

	cases := []struct {
		name     string
		url      string
		expected []byte
		wantErr  bool
	}{
		{"http url", "http://cams.example.com/1.jpg", []byte("via-http"), false},
		{"https url", "https://cams.example.com/1.jpg", []byte("via-http"), false},
		{"s3 url", "s3://traffic-cams/junction-12.jpg", []byte("via-s3"), false},
		{"unsupported scheme", "ftp://cams.example.com/1.jpg", nil, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := mux.Fetch(context.Background(), tc.url)
			if tc.wantErr {
				if err == nil {
					t.Fatal("Fetch returned nil error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Fetch returned error: %v", err)
			}
			if !bytes.Equal(data, tc.expected) {
				t.Fatalf("Fetch = %q; want %q", data, tc.expected)
			}
		})
	}
}

func TestMux_S3WithoutObjectStore(t *testing.T) {
	mux := &Mux{HTTP: &stubFetcher{}}
	if _, err := mux.Fetch(context.Background(), "s3://bucket/key.jpg"); err == nil {
		t.Fatal("Fetch returned nil error without object storage configured")
	}
}

func TestSplitS3URL(t *testing.T) {
	cases := []struct {
		name    string
		url     string
		bucket  string
		key     string
		wantErr bool
	}{
		{"simple", "s3://traffic-cams/a.jpg", "traffic-cams", "a.jpg", false},
		{"nested key", "s3://traffic-cams/2026/09/01/a.jpg", "traffic-cams", "2026/09/01/a.jpg", false},
		{"missing key", "s3://traffic-cams", "", "", true},
		{"missing bucket", "s3:///a.jpg", "", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bucket, key, err := splitS3URL(tc.url)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("splitS3URL(%q) = (%q, %q), want error", tc.url, bucket, key)
				}
				return
			}
			if err != nil {
				t.Fatalf("splitS3URL(%q) returned error: %v", tc.url, err)
			}
			if bucket != tc.bucket || key != tc.key {
				t.Fatalf("splitS3URL(%q) = (%q, %q); want (%q, %q)", tc.url, bucket, key, tc.bucket, tc.key)
			}
		})
	}
}
