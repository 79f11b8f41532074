package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestCheckConfigValidityValid(t *testing.T) {
	v := viper.New()
	applyDefaults(v)
	v.Set("render.mode", "json")
	v.Set("http_addr", "127.0.0.1:9000")

	if err := CheckConfigValidity(v); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestCheckConfigValidityInvalid(t *testing.T) {
	v := viper.New()
	v.Set("render.mode", "fancy")
	v.Set("render.width", -1)
	v.Set("cache.size", -5)
	v.Set("search.limit", 0)
	v.Set("http_addr", "nope")
	v.Set("auth.token", " secret ")

	err := CheckConfigValidity(v)
	if err == nil {
		t.Fatalf("expected error for invalid config")
	}

	msg := err.Error()
	expected := []string{
		"render.mode must be one of",
		"render.width must not be negative",
		"cache.size must not be negative",
		"search.limit must be greater than 0",
		"http_addr must be host:port",
		"auth.token must not have surrounding whitespace",
	}
	for _, want := range expected {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected error to contain %q, got %q", want, msg)
		}
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "[render]\nmode = \"PLAIN\"\nwidth = 100\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFCHAT_RENDER_WIDTH", "42")

	v := viper.New()
	v.SetConfigFile(path)
	if err := Load(context.Background(), v); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := v.GetString("render.mode"); got != "plain" {
		t.Fatalf("render.mode = %q, want plain", got)
	}
	if got := v.GetInt("render.width"); got != 42 {
		t.Fatalf("env should override file, got width %d", got)
	}
	if got := v.GetInt("cache.size"); got != 256 {
		t.Fatalf("default cache.size = %d", got)
	}
}

func TestLoadNormalizesMarkdownAlias(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("CONFCHAT_RENDER_MODE", "MD")
	v := viper.New()
	if err := Load(context.Background(), v); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := v.GetString("render.mode"); got != "markdown" {
		t.Fatalf("render.mode = %q, want markdown", got)
	}
	// Flags override after Load, so the alias must also validate as is.
	v.Set("render.mode", "md")
	if err := CheckConfigValidity(v); err != nil {
		t.Fatalf("md should be valid: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	v := viper.New()
	v.SetConfigFile(filepath.Join(t.TempDir(), "absent.toml"))
	if err := Load(context.Background(), v); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := v.GetString("render.mode"); got != "styled" {
		t.Fatalf("render.mode = %q", got)
	}
}

func TestLoadBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[render\nmode = "), 0o600); err != nil {
		t.Fatal(err)
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := Load(context.Background(), v); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestRenderDefaultTOMLLoads(t *testing.T) {
	out := RenderDefaultTOML()
	for _, want := range []string{"[render]", "mode = \"styled\"", "[cache]", "http_addr = \":8080\""} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}

	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(strings.NewReader(out)); err != nil {
		t.Fatalf("generated TOML does not parse: %v", err)
	}
	if got := v.GetString("chat.greeting"); !strings.HasPrefix(got, "Hello!") {
		t.Fatalf("greeting = %q", got)
	}
}

func TestUpdateTOML(t *testing.T) {
	existing := "http_addr = \":9999\"\n[render]\nmode = \"json\"\nold_flag = true\n"
	got, changed := UpdateTOML(existing)
	if !changed {
		t.Fatalf("expected change")
	}
	if !strings.Contains(got, "# OUTDATED: option removed from config schema\n# old_flag = true") {
		t.Fatalf("unknown key not commented out:\n%s", got)
	}
	if strings.Count(got, "http_addr") != 1 {
		t.Fatalf("existing key duplicated:\n%s", got)
	}
	if !strings.Contains(got, "# Added by config update") || !strings.Contains(got, "[cache]") {
		t.Fatalf("missing defaults not appended:\n%s", got)
	}

	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(strings.NewReader(got)); err != nil {
		t.Fatalf("updated TOML does not parse: %v\n%s", err, got)
	}
	if v.GetString("render.mode") != "json" || v.GetInt("render.width") != 80 {
		t.Fatalf("render section not merged:\n%s", got)
	}
	if v.GetString("http_addr") != ":9999" {
		t.Fatalf("top-level key moved:\n%s", got)
	}

	full := RenderDefaultTOML()
	if _, changed := UpdateTOML(full); changed {
		t.Fatalf("defaults should already be up to date")
	}
}
