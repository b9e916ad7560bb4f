package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://ecocity@localhost:5432/ecocity")
	t.Setenv("DETECTOR_URL", "http://localhost:9090/detect")
	t.Setenv("KAFKA_BROKERS", "kafka1:9092, kafka2:9092")
	t.Setenv("KAFKA_TOPIC_MEASUREMENTS", "traffic.measurements")
	t.Setenv("SWEEP_INTERVAL", "5m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Database.DSN != "postgres://ecocity@localhost:5432/ecocity" {
		t.Errorf("DSN = %q", cfg.Database.DSN)
	}
	if got := cfg.Kafka.Brokers; len(got) != 2 || got[0] != "kafka1:9092" || got[1] != "kafka2:9092" {
		t.Errorf("Brokers = %v", got)
	}
	if !cfg.Kafka.Enabled() {
		t.Error("Kafka.Enabled() = false with brokers and topic set")
	}
	if cfg.Sweep.Interval != 5*time.Minute {
		t.Errorf("Interval = %v, want 5m", cfg.Sweep.Interval)
	}
	if cfg.Geocode.Timeout != 5*time.Second {
		t.Errorf("Geocode.Timeout = %v, want default 5s", cfg.Geocode.Timeout)
	}
}

func TestLoad_MissingMandatory(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("DETECTOR_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load returned nil error without DB_DSN")
	}

	t.Setenv("DB_DSN", "postgres://localhost/ecocity")
	if _, err := Load(); err == nil {
		t.Fatal("Load returned nil error without DETECTOR_URL")
	}
}

func TestKafkaEnabled(t *testing.T) {
	cases := []struct {
		name    string
		kafka   Kafka
		enabled bool
	}{
		{"both set", Kafka{Brokers: []string{"b:9092"}, Topic: "t"}, true},
		{"no brokers", Kafka{Topic: "t"}, false},
		{"no topic", Kafka{Brokers: []string{"b:9092"}}, false},
		{"neither", Kafka{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.kafka.Enabled(); got != tc.enabled {
				t.Fatalf("Enabled() = %v, want %v", got, tc.enabled)
			}
		})
	}
}
