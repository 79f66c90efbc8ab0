package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/viacerta/boleto-cnab-go/internal/config"
)

func writeDotEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDotEnv(t *testing.T) {
	path := writeDotEnv(t, `
# service settings
DOTENV_TEST_PLAIN=plain
DOTENV_TEST_QUOTED="with spaces"
DOTENV_TEST_SPACED = padded

not-a-pair
`)
	t.Setenv("DOTENV_TEST_PLAIN", "")
	t.Setenv("DOTENV_TEST_QUOTED", "")
	t.Setenv("DOTENV_TEST_SPACED", "")

	if err := config.LoadDotEnv(path); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv("DOTENV_TEST_PLAIN"); got != "plain" {
		t.Errorf("DOTENV_TEST_PLAIN = %q", got)
	}
	if got := os.Getenv("DOTENV_TEST_QUOTED"); got != "with spaces" {
		t.Errorf("DOTENV_TEST_QUOTED = %q", got)
	}
	if got := os.Getenv("DOTENV_TEST_SPACED"); got != "padded" {
		t.Errorf("DOTENV_TEST_SPACED = %q", got)
	}
}

func TestLoadDotEnvKeepsExistingEnv(t *testing.T) {
	path := writeDotEnv(t, "DOTENV_TEST_EXISTING=from-file\n")
	t.Setenv("DOTENV_TEST_EXISTING", "from-env")

	if err := config.LoadDotEnv(path); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv("DOTENV_TEST_EXISTING"); got != "from-env" {
		t.Errorf("DOTENV_TEST_EXISTING = %q, want env value kept", got)
	}
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	if err := config.LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
