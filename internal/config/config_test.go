package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Upload.MaxFileMB != 50 {
		t.Errorf("MaxFileMB = %d, want 50", cfg.Upload.MaxFileMB)
	}
	if cfg.Upload.TTL != 30*time.Minute {
		t.Errorf("TTL = %s, want 30m", cfg.Upload.TTL)
	}
	if cfg.Pipeline.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Pipeline.Workers)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("UPLOAD_MAX_MB", "5")
	t.Setenv("UPLOAD_TTL", "90s")
	t.Setenv("PIPELINE_WORKERS", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "9999" {
		t.Errorf("Port = %q, want 9999", cfg.Server.Port)
	}
	if cfg.Upload.MaxFileMB != 5 {
		t.Errorf("MaxFileMB = %d, want 5", cfg.Upload.MaxFileMB)
	}
	if cfg.Upload.TTL != 90*time.Second {
		t.Errorf("TTL = %s, want 90s", cfg.Upload.TTL)
	}
	if cfg.Pipeline.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Pipeline.Workers)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("UPLOAD_MAX_MB", "0")

	if _, err := Load(); err == nil {
		t.Error("expected validation error for zero size cap")
	}
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("PIPELINE_WORKERS", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Pipeline.Workers != 4 {
		t.Errorf("Workers = %d, want default 4 on unparseable value", cfg.Pipeline.Workers)
	}
}
