package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bingwall.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestReadConfigFile(t *testing.T) {
	path := writeConfig(t, `
out: /srv/wallpapers
days: 7
workers: 2
timeout: 45s
keep_alive_timeout: 2m
user_agent: randomize
headers:
  Accept-Language: de-DE
s3_mirror: s3://bucket/bing
debug: true
`)
	fc, err := ReadConfigFile(path)
	if err != nil {
		t.Fatalf("ReadConfigFile: %v", err)
	}
	if fc.Out != "/srv/wallpapers" {
		t.Errorf("expected out '/srv/wallpapers', got %q", fc.Out)
	}
	if fc.Days != 7 || fc.Workers != 2 {
		t.Errorf("expected days 7 workers 2, got %d %d", fc.Days, fc.Workers)
	}
	if d, _ := fc.TimeoutDuration(); d != 45*time.Second {
		t.Errorf("expected timeout 45s, got %v", d)
	}
	if d, _ := fc.KeepAliveDuration(); d != 2*time.Minute {
		t.Errorf("expected keep-alive 2m, got %v", d)
	}
	if fc.Headers["Accept-Language"] != "de-DE" {
		t.Errorf("expected header Accept-Language 'de-DE', got %v", fc.Headers)
	}
	if fc.S3Mirror != "s3://bucket/bing" || !fc.Debug {
		t.Errorf("unexpected s3_mirror/debug: %q %v", fc.S3Mirror, fc.Debug)
	}
}

func TestReadConfigFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "days: [1, 2"},
		{"negative days", "days: -3"},
		{"negative workers", "workers: -1"},
		{"bad timeout", "timeout: soon"},
		{"bad keep alive", "keep_alive_timeout: 5 minutes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadConfigFile(writeConfig(t, tt.content)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}

	if _, err := ReadConfigFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}
