// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseFlags_EnvVars(t *testing.T) {
	// Set env vars
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "file:test.db")
	t.Setenv("ADMIN_KEY_SALT", "test-salt")
	t.Setenv("SIGNER_KEY_SALT", "test-signer")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != StoreSQLite {
		t.Errorf("expected default store sqlite, got %q", cfg.DatabaseType)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-admin-salt", "s1", "-signer-salt", "s2"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
}

func TestParseFlags_MissingValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing database url", []string{"-admin-salt", "a", "-signer-salt", "s"}},
		{"missing redis addr", []string{"-t", "redis", "-admin-salt", "a", "-signer-salt", "s"}},
		{"missing admin salt", []string{"-d", "file:x.db", "-signer-salt", "s"}},
		{"missing signer salt", []string{"-d", "file:x.db", "-admin-salt", "a"}},
		{"unknown store", []string{"-t", "etcd", "-admin-salt", "a", "-signer-salt", "s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			for _, key := range []string{"DATABASE_URL", "DATABASE_TYPE", "REDIS_ADDR", "ADMIN_KEY_SALT", "SIGNER_KEY_SALT"} {
				t.Setenv(key, "")
			}
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestParseFlags_MemoryNeedsNoURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cfg, err := ParseFlags([]string{"-t", "memory", "-admin-salt", "a", "-signer-salt", "s", "-program", "prog"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ProgramID != "prog" {
		t.Errorf("expected program id prog, got %q", cfg.ProgramID)
	}
}

func TestParseFlags_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	contents := "DATABASE_TYPE=redis\nREDIS_ADDR=localhost:6379\nADMIN_KEY_SALT=from-file\nSIGNER_KEY_SALT=from-file\n"
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}

	// godotenv never overrides variables that are already set
	t.Setenv("ADMIN_KEY_SALT", "from-env")
	for _, key := range []string{"DATABASE_TYPE", "REDIS_ADDR", "SIGNER_KEY_SALT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := ParseFlags([]string{"-env", path})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.DatabaseType != StoreRedis {
		t.Errorf("expected store redis from env file, got %q", cfg.DatabaseType)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("expected redis addr from env file, got %q", cfg.RedisAddr)
	}
	if cfg.AdminKeySalt != "from-env" {
		t.Errorf("environment should win over env file, got %q", cfg.AdminKeySalt)
	}
	if cfg.SignerKeySalt != "from-file" {
		t.Errorf("expected signer salt from env file, got %q", cfg.SignerKeySalt)
	}
}

func TestParseFlags_MissingEnvFile(t *testing.T) {
	_, err := ParseFlags([]string{"-env", filepath.Join(t.TempDir(), "absent.env"), "-t", "memory", "-admin-salt", "a", "-signer-salt", "s"})
	if err == nil {
		t.Error("expected an error for an explicit env file that does not exist")
	}
}
