package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var managedKeys = []string{
	"PORT",
	"DB_PATH",
	"TELEGRAM_BOT_TOKEN",
	"API_URL",
	"SUBMIT_TIMEOUT",
	"VALIDATE_EVENT_TYPE",
	configPathEnv,
}

// isolateEnv clears every setting Load reads and moves into an empty working
// directory so a developer .env file cannot leak into the test.
func isolateEnv(t *testing.T) {
	t.Helper()

	for _, key := range managedKeys {
		t.Setenv(key, "")
	}

	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Errorf("restore working directory: %v", err)
		}
	})
}

func writeFile(t *testing.T, dir string, name string, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	isolateEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.Port != DefaultPort {
		t.Fatalf("expected default port %s, got %q", DefaultPort, cfg.Port)
	}
	if cfg.DBPath != DefaultDBPath {
		t.Fatalf("expected default db path %q, got %q", DefaultDBPath, cfg.DBPath)
	}
	if cfg.SubmitTimeout != DefaultSubmitTimeout {
		t.Fatalf("expected default submit timeout %s, got %s", DefaultSubmitTimeout, cfg.SubmitTimeout)
	}
	if cfg.ValidateEventType {
		t.Fatal("expected event type re-validation to be off by default")
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	isolateEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PATH", "/var/lib/tracklog/events.db")
	t.Setenv("TELEGRAM_BOT_TOKEN", " 123:abc ")
	t.Setenv("API_URL", "http://api:8080/events")
	t.Setenv("SUBMIT_TIMEOUT", "3s")
	t.Setenv("VALIDATE_EVENT_TYPE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	want := Config{
		Port:              "9090",
		DBPath:            "/var/lib/tracklog/events.db",
		TelegramBotToken:  "123:abc",
		APIURL:            "http://api:8080/events",
		SubmitTimeout:     3 * time.Second,
		ValidateEventType: true,
	}
	if cfg != want {
		t.Fatalf("Load() = %#v, want %#v", cfg, want)
	}
}

func TestLoadYAMLFileIsOverriddenByEnvironment(t *testing.T) {
	isolateEnv(t)
	path := writeFile(t, t.TempDir(), "tracklog.yaml", `
port: "7000"
db_path: /srv/events.db
api_url: http://from-file/events
submit_timeout: 2s
validate_event_type: "true"
`)
	t.Setenv(configPathEnv, path)
	t.Setenv("API_URL", "http://from-env/events")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.Port != "7000" || cfg.DBPath != "/srv/events.db" {
		t.Fatalf("expected file values for port and db path, got %#v", cfg)
	}
	if cfg.APIURL != "http://from-env/events" {
		t.Fatalf("expected environment to override api_url, got %q", cfg.APIURL)
	}
	if cfg.SubmitTimeout != 2*time.Second || !cfg.ValidateEventType {
		t.Fatalf("expected file timeout and validation flag, got %#v", cfg)
	}
}

func TestLoadReadsDotEnvFile(t *testing.T) {
	isolateEnv(t)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	writeFile(t, wd, ".env", "TELEGRAM_BOT_TOKEN=from-dotenv\nAPI_URL=http://dotenv/events\n")

	// godotenv never overrides variables that are already set, even to "".
	os.Unsetenv("TELEGRAM_BOT_TOKEN")
	os.Unsetenv("API_URL")
	t.Cleanup(func() {
		os.Unsetenv("TELEGRAM_BOT_TOKEN")
		os.Unsetenv("API_URL")
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.TelegramBotToken != "from-dotenv" || cfg.APIURL != "http://dotenv/events" {
		t.Fatalf("expected .env values, got %#v", cfg)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{name: "port zero", key: "PORT", value: "0"},
		{name: "port too high", key: "PORT", value: "70000"},
		{name: "port not a number", key: "PORT", value: "not-a-number"},
		{name: "timeout not a duration", key: "SUBMIT_TIMEOUT", value: "soon"},
		{name: "timeout negative", key: "SUBMIT_TIMEOUT", value: "-1s"},
		{name: "validation flag", key: "VALIDATE_EVENT_TYPE", value: "maybe"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			isolateEnv(t)
			t.Setenv(tc.key, tc.value)

			if _, err := Load(); err == nil {
				t.Fatalf("expected %s=%q to fail", tc.key, tc.value)
			}
		})
	}
}

func TestLoadRejectsMissingConfigFile(t *testing.T) {
	isolateEnv(t)
	t.Setenv(configPathEnv, filepath.Join(t.TempDir(), "absent.yaml"))

	if _, err := Load(); err == nil {
		t.Fatal("expected missing config file to fail")
	}
}

func TestValidateBotRequiresTokenAndAPIURL(t *testing.T) {
	t.Parallel()

	if err := (Config{}).ValidateBot(); err == nil {
		t.Fatal("expected empty bot config to fail")
	}
	if err := (Config{TelegramBotToken: "123:abc"}).ValidateBot(); err == nil {
		t.Fatal("expected missing API_URL to fail")
	}
	if err := (Config{APIURL: "http://api/events"}).ValidateBot(); err == nil {
		t.Fatal("expected missing TELEGRAM_BOT_TOKEN to fail")
	}
	if err := (Config{TelegramBotToken: "123:abc", APIURL: "http://api/events"}).ValidateBot(); err != nil {
		t.Fatalf("expected complete bot config to pass, got %v", err)
	}
}
