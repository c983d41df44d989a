package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadPrefersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("  from-file\n"), 0o600); err != nil {
		t.Fatalf("write key: %v", err)
	}

	got, err := Load(Source{Name: "api key", File: path, Value: "inline"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "from-file" {
		t.Fatalf("expected file value, got %q", got)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("  \n"), 0o600); err != nil {
		t.Fatalf("write key: %v", err)
	}

	_, err := Load(Source{Name: "api key", File: path, Value: "inline"})
	if err == nil || !strings.Contains(err.Error(), "is empty") {
		t.Fatalf("expected empty file error, got %v", err)
	}
}

func TestLoadInlineThenEnv(t *testing.T) {
	t.Setenv("RESUME_ATS_TEST_KEY", " from-env ")

	got, err := Load(Source{Value: " inline ", Env: "RESUME_ATS_TEST_KEY"})
	if err != nil || got != "inline" {
		t.Fatalf("expected inline value, got %q (%v)", got, err)
	}

	got, err = Load(Source{Env: "RESUME_ATS_TEST_KEY"})
	if err != nil || got != "from-env" {
		t.Fatalf("expected env value, got %q (%v)", got, err)
	}
}

func TestLoadNotConfigured(t *testing.T) {
	t.Setenv("RESUME_ATS_TEST_KEY", "")

	_, err := Load(Source{Name: "gemini api key", Env: "RESUME_ATS_TEST_KEY"})
	if err == nil || !strings.Contains(err.Error(), "RESUME_ATS_TEST_KEY") {
		t.Fatalf("expected error naming the variable, got %v", err)
	}

	if _, err := Load(Source{}); err == nil {
		t.Fatal("expected error for empty source")
	}
}
