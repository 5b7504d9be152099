package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBootstrapWithDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MARQUEE_API_BASE_URL", "")

	env, err := Bootstrap(Options{
		ConfigPath: filepath.Join(dir, "missing.toml"),
		CredsPath:  filepath.Join(dir, "credential"),
	})
	if err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}

	if env.Client == nil || env.Store == nil || env.Dispatcher == nil {
		t.Fatal("component chain incomplete")
	}
	if env.Config.APIBaseURL == "" {
		t.Fatal("no default API base URL")
	}

	snap := env.Store.Snapshot()
	if snap.Session.Authenticated {
		t.Fatal("fresh environment should not be authenticated")
	}
}

func TestBootstrapSeedsSessionFromCredential(t *testing.T) {
	dir := t.TempDir()
	credPath := filepath.Join(dir, "credential")
	token := "abc.eyJlbWFpbCI6InVAdi5jb20ifQ.sig"
	if err := os.WriteFile(credPath, []byte(token+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	env, err := Bootstrap(Options{
		ConfigPath: filepath.Join(dir, "missing.toml"),
		CredsPath:  credPath,
	})
	if err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}

	snap := env.Store.Snapshot()
	if !snap.Session.Authenticated {
		t.Fatal("stored credential should authenticate the session")
	}
	if snap.Session.Profile == nil || snap.Session.Profile.Email != "u@v.com" {
		t.Fatalf("profile not derived: %+v", snap.Session.Profile)
	}
}

func TestBootstrapBaseURLOverride(t *testing.T) {
	dir := t.TempDir()

	env, err := Bootstrap(Options{
		ConfigPath: filepath.Join(dir, "missing.toml"),
		CredsPath:  filepath.Join(dir, "credential"),
		APIBaseURL: "http://api.example.com:9000",
	})
	if err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}
	if env.Config.APIBaseURL != "http://api.example.com:9000" {
		t.Fatalf("override ignored, got %q", env.Config.APIBaseURL)
	}
}
