package config

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"CHESS_ADDR", "CHESS_ALLOW_ORIGINS", "CHESS_WS_READ_BUFFER", "CHESS_WS_WRITE_BUFFER", "CHESS_LOG_REQUESTS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Config{
		Addr:          ":3000",
		AllowOrigins:  []string{"http://localhost:5173"},
		WSReadBuffer:  1024,
		WSWriteBuffer: 1024,
		LogRequests:   true,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load(nil) mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEnvAndFlags(t *testing.T) {
	t.Setenv("CHESS_ADDR", ":9000")
	t.Setenv("CHESS_ALLOW_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("CHESS_WS_READ_BUFFER", "2048")
	t.Setenv("CHESS_LOG_REQUESTS", "off")

	cfg, err := Load([]string{"-addr", ":9100", "-ws-write-buffer", "4096"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Config{
		Addr:          ":9100",
		AllowOrigins:  []string{"https://a.example", "https://b.example"},
		WSReadBuffer:  2048,
		WSWriteBuffer: 4096,
		LogRequests:   false,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.AllowOriginsHeader(); got != "https://a.example, https://b.example" {
		t.Errorf("AllowOriginsHeader() = %q", got)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"-nope"}},
		{"zero buffer", []string{"-ws-read-buffer", "0"}},
		{"blank addr", []string{"-addr", " "}},
		{"no origins", []string{"-allow-origins", " , "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(tt.args); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Load(%v) error = %v; want ErrInvalidConfig", tt.args, err)
			}
		})
	}
}
