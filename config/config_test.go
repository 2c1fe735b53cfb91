package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")

	yamlContent := `
client:
  base_url: https://api.example.com
  max_concurrency: 8
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	type clientSection struct {
		BaseURL        string `mapstructure:"base_url"`
		MaxConcurrency int    `mapstructure:"max_concurrency"`
	}
	type testConfig struct {
		Client clientSection `mapstructure:"client"`
	}

	var cfg testConfig
	if err := LoadConfig("client", &cfg, WithConfigFile(configPath)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Client.BaseURL != "https://api.example.com" {
		t.Errorf("base_url = %q", cfg.Client.BaseURL)
	}
	if cfg.Client.MaxConcurrency != 8 {
		t.Errorf("max_concurrency = %d, want 8", cfg.Client.MaxConcurrency)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	type testConfig struct {
		BaseURL string `mapstructure:"base_url"`
	}

	var cfg testConfig
	// A missing file is not an error; config can come entirely from env.
	if err := LoadConfig("nonexistent", &cfg, WithConfigFile("/nonexistent/path.yml")); err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	yamlContent := "client:\n  base_url: https://file.example.com\n"
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	t.Setenv("CLIENT_BASE_URL", "https://env.example.com")

	type clientSection struct {
		BaseURL string `mapstructure:"base_url"`
	}
	type testConfig struct {
		Client clientSection `mapstructure:"client"`
	}

	var cfg testConfig
	if err := LoadConfig("client", &cfg, WithConfigFile(configPath)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Client.BaseURL != "https://env.example.com" {
		t.Errorf("env override not applied, base_url = %q", cfg.Client.BaseURL)
	}
}

func TestResolverWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./config/client.yml": true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("client", LoaderConfig{})
	if files.ConfigFile != "./config/client.yml" {
		t.Errorf("resolved %q, want ./config/client.yml", files.ConfigFile)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool  { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	WithFileSystem(&mockFS{})(&lc)
	WithConfigFile("/path/to/config.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)

	if lc.FileSystem == nil {
		t.Error("FileSystem not set")
	}
	if lc.ConfigFile != "/path/to/config.yml" {
		t.Errorf("ConfigFile = %q", lc.ConfigFile)
	}
	if lc.EnvFile != "/path/to/.env" {
		t.Errorf("EnvFile = %q", lc.EnvFile)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	variants := envKeyVariants("CLIENT_BASE_URL")
	want := map[string]bool{
		"client_base_url": false,
		"client.base.url": false,
		"client.base_url": false,
	}
	for _, v := range variants {
		if _, ok := want[v]; ok {
			want[v] = true
		}
	}
	for k, found := range want {
		if !found {
			t.Errorf("variant %q missing from %v", k, variants)
		}
	}
}
