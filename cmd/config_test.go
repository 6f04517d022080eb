package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

// useConfigFile points the command at a temporary YAML file and restores the
// global viper state afterwards.
func useConfigFile(t *testing.T, content string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "career-advisor.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	resetConfig := func() {
		viper.Reset()
		cfgFile = ""
		catalogSection = nil
	}
	resetConfig()
	t.Cleanup(func() {
		resetConfig()
		setupViper()
	})

	cfgFile = path
	initConfig()
}

func TestCatalogKeysWithDots(t *testing.T) {
	useConfigFile(t, `
catalog:
  aliases:
    node.js: javascript
    .net: c#
    golang: go
  courses:
    node.js:
      title: Node.js Fundamentals
store:
  max-entries: 10
`)

	config, err := getConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, err := newCatalog(config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	normalizer := c.Normalizer()
	if normalizer.Aliases() != 3 {
		t.Fatalf("expected configured aliases to replace defaults, got %d", normalizer.Aliases())
	}

	cases := map[string]string{
		"node.js": "javascript",
		".NET":    "c#",
		"golang":  "go",
	}
	for in, want := range cases {
		if got := normalizer.Normalize(in); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}

	course, ok := c.Course("javascript")
	if !ok || course.Title != "Node.js Fundamentals" {
		t.Fatalf("expected course for javascript, got %+v (found=%v)", course, ok)
	}

	if config.Store.MaxEntries != 10 {
		t.Fatalf("expected max entries from file, got %d", config.Store.MaxEntries)
	}
}

func TestConfigWithoutCatalogUsesDefaults(t *testing.T) {
	useConfigFile(t, "server:\n  addr: \":9090\"\n")

	config, err := getConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if config.Catalog != nil {
		t.Fatalf("expected no catalog section, got %v", config.Catalog)
	}
	if config.Server.Addr != ":9090" {
		t.Fatalf("unexpected addr: %q", config.Server.Addr)
	}
	if config.Guidance.Provider != providerStatic || config.Store.Driver != storeMemory {
		t.Fatalf("expected defaults, got %+v %+v", config.Guidance, config.Store)
	}
}

func TestEnvironmentOverridesNestedKeys(t *testing.T) {
	useConfigFile(t, "store:\n  max-entries: 10\n")

	t.Setenv("CAREER_ADVISOR_STORE_MAX_ENTRIES", "25")
	t.Setenv("CAREER_ADVISOR_STORE_DATABASE_URL_FILE", "/run/secrets/db")
	t.Setenv("CAREER_ADVISOR_GUIDANCE_GEMINI_MODEL", "gemini-test")
	t.Setenv("CAREER_ADVISOR_GUIDANCE_GEMINI_MAX_RETRIES", "5")
	t.Setenv("CAREER_ADVISOR_S3_BUCKET", "resumes")
	t.Setenv("CAREER_ADVISOR_S3_ENDPOINT", "http://localhost:9000")

	config, err := getConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if config.Store.MaxEntries != 25 {
		t.Fatalf("expected max entries from env, got %d", config.Store.MaxEntries)
	}
	if config.Store.DatabaseURLFile != "/run/secrets/db" {
		t.Fatalf("unexpected database url file: %q", config.Store.DatabaseURLFile)
	}
	if config.Guidance.Gemini == nil || config.Guidance.Gemini.Model != "gemini-test" || config.Guidance.Gemini.MaxRetries != 5 {
		t.Fatalf("unexpected gemini config: %+v", config.Guidance.Gemini)
	}
	if config.S3.Bucket != "resumes" || config.S3.Endpoint != "http://localhost:9000" {
		t.Fatalf("unexpected s3 config: %+v", config.S3)
	}
}
