package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmylchreest/favicons/internal/colour"
)

func boolPtr(b bool) *bool {
	return &b
}

func strPtr(s string) *string {
	return &s
}

func TestDefaults(t *testing.T) {
	opts := Defaults()

	if opts.TrueColor {
		t.Error("TrueColor should default to false")
	}
	if !opts.Precomposed {
		t.Error("Precomposed should default to true")
	}
	if opts.HTMLPrefix != "" {
		t.Errorf("HTMLPrefix should default to empty, got %q", opts.HTMLPrefix)
	}
	if opts.AppleTouchBackgroundColor != colour.Auto {
		t.Errorf("AppleTouchBackgroundColor = %q, want auto", opts.AppleTouchBackgroundColor)
	}
	if !opts.WindowsTile {
		t.Error("WindowsTile should default to true")
	}
	if opts.Coast {
		t.Error("Coast should default to false")
	}
	if !opts.TileBlackWhite {
		t.Error("TileBlackWhite should default to true")
	}
	if opts.TileColor != colour.Auto {
		t.Errorf("TileColor = %q, want auto", opts.TileColor)
	}
	if opts.HTML != "" {
		t.Errorf("HTML should default to unset, got %q", opts.HTML)
	}
}

func TestResolveLayering(t *testing.T) {
	file := Partial{
		Precomposed: boolPtr(false),
		Coast:       boolPtr(true),
		TileColor:   strPtr("none"),
		HTMLPrefix:  strPtr("/static/"),
	}
	flags := Partial{
		Coast:                     boolPtr(false),
		AppleTouchBackgroundColor: strPtr("#336699"),
	}

	opts, err := Resolve(file, flags)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if opts.Precomposed {
		t.Error("file layer should disable precomposed")
	}
	if opts.Coast {
		t.Error("flag layer should override file layer for coast")
	}
	if opts.TileColor != colour.None {
		t.Errorf("TileColor = %q, want none", opts.TileColor)
	}
	if opts.AppleTouchBackgroundColor != colour.Setting("#336699") {
		t.Errorf("AppleTouchBackgroundColor = %q", opts.AppleTouchBackgroundColor)
	}
	if opts.HTMLPrefix != "/static/" {
		t.Errorf("HTMLPrefix = %q", opts.HTMLPrefix)
	}
	if !opts.WindowsTile {
		t.Error("untouched fields should keep defaults")
	}
}

func TestResolveEmpty(t *testing.T) {
	opts, err := Resolve()
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if opts != Defaults() {
		t.Errorf("Resolve() = %+v, want defaults", opts)
	}
}

func TestResolveInvalidColour(t *testing.T) {
	_, err := Resolve(Partial{TileColor: strPtr("")})
	if err == nil {
		t.Fatal("expected error for empty tile colour")
	}

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %T", err)
	}
	if cfgErr.Field != "tileColor" {
		t.Errorf("Field = %q, want tileColor", cfgErr.Field)
	}
}

func TestNeedHTML(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "index.html")
	if err := os.WriteFile(page, []byte("<html></html>"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		html string
		want bool
	}{
		{name: "unset", html: "", want: false},
		{name: "missing file", html: filepath.Join(dir, "missing.html"), want: false},
		{name: "directory", html: dir, want: false},
		{name: "existing file", html: page, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Defaults()
			opts.HTML = tt.html
			if got := opts.NeedHTML(); got != tt.want {
				t.Errorf("NeedHTML() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "favicons.yaml")
	content := `convert: /opt/im/convert
options:
  precomposed: false
  HTMLPrefix: /img/
  tileColor: "#FFFFFF"
groups:
  - src: [logo.png, "icons/*.png"]
    dest: public
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if f.Convert != "/opt/im/convert" {
		t.Errorf("Convert = %q", f.Convert)
	}
	if len(f.Groups) != 1 || len(f.Groups[0].Sources) != 2 || f.Groups[0].Dest != "public" {
		t.Errorf("Groups = %+v", f.Groups)
	}

	opts, err := Resolve(f.Options)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if opts.Precomposed {
		t.Error("precomposed should be false")
	}
	if opts.HTMLPrefix != "/img/" {
		t.Errorf("HTMLPrefix = %q", opts.HTMLPrefix)
	}
	if opts.TileColor != colour.Setting("#FFFFFF") {
		t.Errorf("TileColor = %q", opts.TileColor)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("not found", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.yaml"))
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) || cfgErr.Type != ErrNotFound {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(path, []byte("groups: [unterminated"), 0o600); err != nil {
			t.Fatal(err)
		}
		_, err := Load(path)
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) || cfgErr.Type != ErrInvalid {
			t.Errorf("expected ErrInvalid, got %v", err)
		}
	})

	t.Run("group without dest", func(t *testing.T) {
		path := filepath.Join(dir, "nodest.yaml")
		if err := os.WriteFile(path, []byte("groups:\n  - src: [a.png]\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		_, err := Load(path)
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) || cfgErr.Field != "groups[0].dest" {
			t.Errorf("expected dest validation error, got %v", err)
		}
	})
}

func TestConvertPath(t *testing.T) {
	t.Setenv(EnvConvert, "")

	if got := ConvertPath("", nil); got != DefaultConvert {
		t.Errorf("ConvertPath() = %q, want %q", got, DefaultConvert)
	}

	f := &File{Convert: "/from/file"}
	if got := ConvertPath("", f); got != "/from/file" {
		t.Errorf("ConvertPath(file) = %q", got)
	}

	t.Setenv(EnvConvert, "/from/env")
	if got := ConvertPath("", f); got != "/from/env" {
		t.Errorf("ConvertPath(env) = %q", got)
	}

	if got := ConvertPath("/from/flag", f); got != "/from/flag" {
		t.Errorf("ConvertPath(flag) = %q", got)
	}
}
