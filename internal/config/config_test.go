package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zapcore"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := &Config{
		Depth:     4,
		Workers:   runtime.NumCPU(),
		FrontSize: 1 << 16,
		LogLevel:  "info",
		Color:     true,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"yaml", "chessrules.yaml", "depth: 6\nworkers: 2\nin_memory: true\nlog_level: debug\ncolor: false\n"},
		{"json", "chessrules.json", `{"depth": 6, "workers": 2, "in_memory": true, "log_level": "debug", "color": false}`},
		{"toml", "chessrules.toml", "depth = 6\nworkers = 2\nin_memory = true\nlog_level = \"debug\"\ncolor = false\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.Depth != 6 || cfg.Workers != 2 || !cfg.InMemory || cfg.Color {
				t.Errorf("unexpected config %+v", cfg)
			}
			if level, _ := cfg.Level(); level != zapcore.DebugLevel {
				t.Errorf("Level = %v, want debug", level)
			}
		})
	}
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("CHESSRULES_DEPTH", "3")
	t.Setenv("CHESSRULES_NO_STORE", "true")

	cfg, err := Load(writeFile(t, "chessrules.yaml", "depth: 6\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Depth != 3 {
		t.Errorf("Depth = %d, want the environment's 3", cfg.Depth)
	}
	if !cfg.NoStore {
		t.Error("NoStore not taken from the environment")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file accepted")
	}

	tests := []struct {
		name    string
		content string
	}{
		{"depth", "depth: 0\n"},
		{"workers", "workers: -1\n"},
		{"front size", "front_size: -5\n"},
		{"log level", "log_level: loud\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "chessrules.yaml", tt.content))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
