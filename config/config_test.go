package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"SERVER_NAME", "PREFERRED_URL_SCHEME", "LEGACY_BASE_URL", "LEGACY_AFS_PATH", "LABS_AFS_HTTP_SERVICE"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ServerName != "inspirehep.net" {
		t.Errorf("ServerName: got %q", cfg.ServerName)
	}
	if cfg.PreferredURLScheme != "http" {
		t.Errorf("PreferredURLScheme: got %q", cfg.PreferredURLScheme)
	}
	if cfg.LegacyAFSPath != "/afs/cern.ch/project/inspire/PROD" {
		t.Errorf("LegacyAFSPath: got %q", cfg.LegacyAFSPath)
	}
	if cfg.BaseURL() != "http://inspirehep.net" {
		t.Errorf("BaseURL: got %q", cfg.BaseURL())
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SERVER_NAME", "labs.inspirehep.net")
	t.Setenv("PREFERRED_URL_SCHEME", "https")
	t.Setenv("LABS_AFS_HTTP_SERVICE", "http://afs.example.org/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.BaseURL() != "https://labs.inspirehep.net" {
		t.Errorf("BaseURL: got %q", cfg.BaseURL())
	}
	if cfg.LabsAFSHTTPService != "http://afs.example.org/" {
		t.Errorf("LabsAFSHTTPService: got %q", cfg.LabsAFSHTTPService)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := "server_name: inspirebeta.net\npreferred_url_scheme: https\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.ServerName != "inspirebeta.net" {
		t.Errorf("ServerName: got %q", cfg.ServerName)
	}
	if cfg.LegacyAFSPath != "/afs/cern.ch/project/inspire/PROD" {
		t.Errorf("default not kept: %q", cfg.LegacyAFSPath)
	}
}

func TestValidateRejectsScheme(t *testing.T) {
	cfg := Default()
	cfg.PreferredURLScheme = "ftp"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for ftp scheme")
	}

	cfg = Default()
	cfg.LabsAFSHTTPService = "not a url"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for malformed service url")
	}
}

func TestSetSwapsCurrent(t *testing.T) {
	cfg := Default()
	cfg.ServerName = "example.org"
	prev := Set(cfg)
	defer Set(prev)

	if Current().ServerName != "example.org" {
		t.Errorf("Current: got %q", Current().ServerName)
	}
}
