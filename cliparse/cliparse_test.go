// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "DATABASE_URL", "DATABASE_TYPE", "ADMIN_KEY_SALT", "CONFIG_FILE",
		"RENDER_REDACTION_MARKER", "RENDER_BADGE_PATH", "RENDER_SLIDER_MIN",
		"RENDER_SLIDER_MAX", "RENDER_SLIDER_DEFAULT", "VOTE_RATE", "VOTE_BURST", "TRUST_PROXY",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestParseFlags_EnvVars(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("ADMIN_KEY_SALT", "test-salt")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("expected postgres, got %s", cfg.DatabaseType)
	}
	if cfg.Render.RedactionMarker != "Sensitive Project" {
		t.Errorf("expected default redaction marker, got %q", cfg.Render.RedactionMarker)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "9000")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-admin-salt", "s1"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default database type sqlite, got %s", cfg.DatabaseType)
	}
}

func TestParseFlags_ConfigFile(t *testing.T) {
	clearConfigEnv(t)

	path := filepath.Join(t.TempDir(), "judge.yaml")
	data := []byte(`
port: 4000
database_url: file:from-yaml.db
render:
  redaction_marker: "[hidden]"
  slider_min: 0
  slider_max: 5
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("ADMIN_KEY_SALT", "salt")
	t.Setenv("PORT", "4001")

	cfg, err := ParseFlags([]string{"-c", path})
	if err != nil {
		t.Fatal(err)
	}

	// env beats the file
	if cfg.Port != 4001 {
		t.Errorf("expected env port 4001, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "file:from-yaml.db" {
		t.Errorf("expected database URL from file, got %s", cfg.DatabaseURL)
	}
	if cfg.Render.RedactionMarker != "[hidden]" {
		t.Errorf("expected marker from file, got %q", cfg.Render.RedactionMarker)
	}
	if cfg.Render.SliderMin != 0 || cfg.Render.SliderMax != 5 {
		t.Errorf("expected slider 0..5, got %d..%d", cfg.Render.SliderMin, cfg.Render.SliderMax)
	}
	if cfg.Render.BadgePath != "/badges/" {
		t.Errorf("expected default badge path to survive, got %q", cfg.Render.BadgePath)
	}
}

func TestParseFlags_MissingRequired(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"no database url", map[string]string{"ADMIN_KEY_SALT": "s"}, nil},
		{"no salt", map[string]string{"DATABASE_URL": "file:x.db"}, nil},
		{"bad database type", map[string]string{"DATABASE_URL": "file:x.db", "ADMIN_KEY_SALT": "s"}, []string{"-t", "oracle"}},
		{"bad slider range", map[string]string{"DATABASE_URL": "file:x.db", "ADMIN_KEY_SALT": "s", "RENDER_SLIDER_MIN": "5", "RENDER_SLIDER_MAX": "5"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestValidate_VoteRate(t *testing.T) {
	base := DefaultConfig()
	base.DatabaseURL = "file:test.db"

	testCases := []struct {
		name    string
		rate    float64
		burst   int
		wantErr bool
	}{
		{"defaults", base.VoteRate, base.VoteBurst, false},
		{"disabled", 0, 0, false},
		{"negative rate", -1, 5, true},
		{"rate without burst", 2, 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			cfg.VoteRate = tc.rate
			cfg.VoteBurst = tc.burst
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}

	t.Run("from environment", func(t *testing.T) {
		clearConfigEnv(t)
		t.Setenv("VOTE_RATE", "0.5")
		t.Setenv("VOTE_BURST", "2")
		t.Setenv("TRUST_PROXY", "true")

		cfg, err := Load("")
		if err != nil {
			t.Fatal(err)
		}
		if cfg.VoteRate != 0.5 || cfg.VoteBurst != 2 || !cfg.TrustProxy {
			t.Errorf("expected 0.5/2/trusted, got %v/%d/%v", cfg.VoteRate, cfg.VoteBurst, cfg.TrustProxy)
		}
	})
}
