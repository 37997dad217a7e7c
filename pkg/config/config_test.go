package config

import (
	"os"
	"path/filepath"
	"testing"

	flowerrors "github.com/flowgrid/flowgrid/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flowgrid.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
style = "ascii"
direction = "LR"

[layout]
layer_gap = 6

[cache]
backend = "redis"
redis_url = "redis://localhost:6379/0"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Style != "ascii" {
		t.Errorf("Style = %q, want ascii", cfg.Style)
	}
	if cfg.Layout.LayerGap != 6 {
		t.Errorf("LayerGap = %d, want 6", cfg.Layout.LayerGap)
	}
	// Unset fields keep their defaults.
	if cfg.Layout.NodeGap != Default().Layout.NodeGap {
		t.Errorf("NodeGap = %d, want default %d", cfg.Layout.NodeGap, Default().Layout.NodeGap)
	}
	if cfg.Cache.Backend != "redis" {
		t.Errorf("Cache.Backend = %q, want redis", cfg.Cache.Backend)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if !flowerrors.Is(err, flowerrors.ErrCodeFileNotFound) {
		t.Errorf("error code = %q, want FILE_NOT_FOUND", flowerrors.GetCode(err))
	}
}

func TestLoad_InvalidStyle(t *testing.T) {
	path := writeConfig(t, `style = "neon"`)

	_, err := Load(path)
	if !flowerrors.Is(err, flowerrors.ErrCodeInvalidStyle) {
		t.Errorf("error code = %q, want INVALID_STYLE", flowerrors.GetCode(err))
	}
}

func TestLoad_MalformedTOML(t *testing.T) {
	path := writeConfig(t, `style = [broken`)

	_, err := Load(path)
	if !flowerrors.Is(err, flowerrors.ErrCodeInvalidConfig) {
		t.Errorf("error code = %q, want INVALID_CONFIG", flowerrors.GetCode(err))
	}
}

func TestValidate_UnknownBackend(t *testing.T) {
	cfg := Default()
	cfg.Cache.Backend = "memcache"

	if err := cfg.Validate(); !flowerrors.Is(err, flowerrors.ErrCodeInvalidConfig) {
		t.Errorf("error code = %q, want INVALID_CONFIG", flowerrors.GetCode(err))
	}
}

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}
