package storage_test

import (
	"errors"
	"testing"

	"github.com/kitelabs/kite/pkg/storage"
)

func TestConfigFinalizeDefaults(t *testing.T) {
	cfg := storage.Config{ConnectionString: "UseDevelopmentStorage=true"}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.ContainerName != "cheques" {
		t.Errorf("ContainerName = %q, want cheques", cfg.ContainerName)
	}
	if cfg.MaxListSize != 50 {
		t.Errorf("MaxListSize = %d, want 50", cfg.MaxListSize)
	}
}

func TestConfigFinalizeValidation(t *testing.T) {
	cfg := storage.Config{}
	if err := cfg.Finalize(nil); err == nil {
		t.Error("Finalize() error = nil, want connection_string error")
	}
}

func TestConfigFinalizeCapsListSize(t *testing.T) {
	cfg := storage.Config{
		ConnectionString: "UseDevelopmentStorage=true",
		MaxListSize:      100000,
	}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if cfg.MaxListSize != storage.MaxListCap {
		t.Errorf("MaxListSize = %d, want cap %d", cfg.MaxListSize, storage.MaxListCap)
	}
}

func TestConfigMerge(t *testing.T) {
	cfg := storage.Config{
		ContainerName:    "cheques",
		ConnectionString: "base",
		MaxListSize:      50,
	}

	cfg.Merge(&storage.Config{ContainerName: "archive"})

	if cfg.ContainerName != "archive" {
		t.Errorf("ContainerName = %q, want archive", cfg.ContainerName)
	}
	if cfg.ConnectionString != "base" {
		t.Errorf("ConnectionString = %q, want base", cfg.ConnectionString)
	}
	if cfg.MaxListSize != 50 {
		t.Errorf("MaxListSize = %d, want 50", cfg.MaxListSize)
	}
}

func TestParseMaxResults(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		limit   int32
		want    int32
		wantErr bool
	}{
		{"empty uses limit", "", 50, 50, false},
		{"within limit", "25", 50, 25, false},
		{"clamped to limit", "200", 50, 50, false},
		{"zero invalid", "0", 50, 0, true},
		{"negative invalid", "-5", 50, 0, true},
		{"not a number", "abc", 50, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := storage.ParseMaxResults(tt.raw, tt.limit)
			if tt.wantErr {
				if !errors.Is(err, storage.ErrInvalidMaxResults) {
					t.Fatalf("ParseMaxResults(%q) error = %v, want ErrInvalidMaxResults", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMaxResults(%q) error = %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("ParseMaxResults(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}
