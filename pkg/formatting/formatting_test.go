package formatting_test

import (
	"errors"
	"testing"

	"github.com/kitelabs/kite/pkg/formatting"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name      string
		n         int64
		precision int
		want      string
	}{
		{"zero", 0, 2, "0 B"},
		{"bytes", 512, 0, "512 B"},
		{"kilobytes", 2048, 1, "2.0 KB"},
		{"megabytes", 20 * 1024 * 1024, 0, "20 MB"},
		{"gigabytes", 3 * 1024 * 1024 * 1024, 2, "3.00 GB"},
		{"negative precision clamped", 1024, -5, "1 KB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatting.FormatBytes(tt.n, tt.precision); got != tt.want {
				t.Errorf("FormatBytes(%d, %d) = %q, want %q", tt.n, tt.precision, got, tt.want)
			}
		})
	}
}

func TestParseBytes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"bare number", "1024", 1024, false},
		{"bytes unit", "512B", 512, false},
		{"megabytes", "20MB", 20 * 1024 * 1024, false},
		{"with space", "5 GB", 5 * 1024 * 1024 * 1024, false},
		{"lowercase unit", "2kb", 2048, false},
		{"decimal value", "1.5KB", 1536, false},
		{"empty string", "", 0, true},
		{"unknown unit", "10XB", 0, true},
		{"not a number", "abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatting.ParseBytes(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseBytes(%q) error = nil, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseBytes(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseBytes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	type payload struct {
		Readable bool     `json:"readable"`
		Issues   []string `json:"issues"`
	}

	t.Run("direct JSON", func(t *testing.T) {
		got, err := formatting.Parse[payload](`{"readable": true, "issues": ["glare"]}`)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if !got.Readable || len(got.Issues) != 1 || got.Issues[0] != "glare" {
			t.Errorf("Parse() = %+v", got)
		}
	})

	t.Run("fenced JSON", func(t *testing.T) {
		content := "Here is the result:\n```json\n{\"readable\": false, \"issues\": []}\n```"
		got, err := formatting.Parse[payload](content)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if got.Readable {
			t.Errorf("Parse() readable = true, want false")
		}
	})

	t.Run("fence without language tag", func(t *testing.T) {
		content := "```\n{\"readable\": true}\n```"
		got, err := formatting.Parse[payload](content)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if !got.Readable {
			t.Errorf("Parse() readable = false, want true")
		}
	})

	t.Run("unparseable content", func(t *testing.T) {
		_, err := formatting.Parse[payload]("the cheque looks fine to me")
		if !errors.Is(err, formatting.ErrParseFailed) {
			t.Errorf("Parse() error = %v, want ErrParseFailed", err)
		}
	})
}
