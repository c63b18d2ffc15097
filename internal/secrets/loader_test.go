package secrets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromValue(t *testing.T) {
	got, err := Load(Source{Name: "gemini api key", Value: "  abc123  "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "abc123" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
}

func TestLoadFilePrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secret")
	if err := os.WriteFile(path, []byte("from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := Load(Source{Name: "client secret", Value: "inline", File: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "from-file" {
		t.Fatalf("expected file value to win, got %q", got)
	}
}

func TestLoadFallsBackToEnv(t *testing.T) {
	t.Setenv("EJF_TEST_SECRET", "from-env")

	got, err := Load(Source{Name: "client id", Env: "EJF_TEST_SECRET"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "from-env" {
		t.Fatalf("expected env value, got %q", got)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(Source{Name: "missing"}); err == nil {
		t.Fatal("expected error for unconfigured secret")
	}

	empty := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(empty, []byte("   "), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(Source{Name: "blank", File: empty}); err == nil {
		t.Fatal("expected error for empty secret file")
	}

	if _, err := Load(Source{Name: "bad path", File: filepath.Join(t.TempDir(), "nope")}); err == nil {
		t.Fatal("expected error for unreadable file")
	}
}
