package config

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func setEnv(t *testing.T, kv map[string]string) {
	t.Helper()
	for _, k := range []string{"STORE_DRIVER", "MONGO_URL", "DB_NAME", "DB_PATH", "SERVER_PORT", "LOG_LEVEL", "LOG_FORMAT", "CORS_ORIGINS"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	for k, v := range kv {
		t.Setenv(k, v)
	}
}

func TestLoad_MongoDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	setEnv(t, map[string]string{"MONGO_URL": "mongodb://localhost:27017"})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := &Config{
		StoreDriver: DriverMongo,
		MongoURL:    "mongodb://localhost:27017",
		DBName:      "quoridor",
		DBPath:      "quoridor.db",
		ServerPort:  "8080",
		LogLevel:    "info",
		LogFormat:   "json",
		CORSOrigins: []string{"*"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_SQLite(t *testing.T) {
	t.Chdir(t.TempDir())
	setEnv(t, map[string]string{
		"STORE_DRIVER": "sqlite",
		"DB_PATH":      "/tmp/games.db",
		"CORS_ORIGINS": "http://a.test,http://b.test",
		"LOG_LEVEL":    "debug",
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DBPath != "/tmp/games.db" {
		t.Errorf("expected DBPath /tmp/games.db, got %q", cfg.DBPath)
	}
	if diff := cmp.Diff([]string{"http://a.test", "http://b.test"}, cfg.CORSOrigins); diff != "" {
		t.Errorf("origins mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"mongo without url", map[string]string{}},
		{"unknown driver", map[string]string{"STORE_DRIVER": "redis"}},
		{"bad level", map[string]string{"STORE_DRIVER": "sqlite", "LOG_LEVEL": "loud"}},
		{"bad format", map[string]string{"STORE_DRIVER": "sqlite", "LOG_FORMAT": "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			setEnv(t, tt.env)
			if _, err := Load(); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}
