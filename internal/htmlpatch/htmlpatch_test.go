package htmlpatch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmylchreest/favicons/internal/colour"
	"github.com/jmylchreest/favicons/internal/icons"
)

// result builds a generator result holding the given purposes.
func result(precomposed bool, tile colour.Setting, purposes ...icons.Purpose) *icons.Result {
	r := &icons.Result{
		Precomposed: precomposed,
		Colours:     icons.Colours{Touch: colour.None, Tile: tile},
	}
	for _, p := range purposes {
		r.Artifacts = append(r.Artifacts, icons.Artifact{Purpose: p})
	}
	return r
}

func renderTags(tags []Tag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.String()
	}
	return out
}

func TestTagsDefaultOrder(t *testing.T) {
	r := result(true, colour.Setting("#112233"),
		icons.PurposeFaviconICO, icons.PurposeFaviconPNG, icons.PurposeTouch, icons.PurposeTile)

	got := renderTags(Tags("/img/", r))
	want := []string{
		`<link rel="shortcut icon" href="/img/favicon.ico"/>`,
		`<link rel="icon" type="image/png" href="/img/favicon.png"/>`,
		`<link rel="apple-touch-icon" href="/img/apple-touch-icon.png"/>`,
		`<link rel="apple-touch-icon-precomposed" href="/img/apple-touch-icon-precomposed.png"/>`,
		`<link rel="apple-touch-icon-precomposed" sizes="72x72" href="/img/apple-touch-icon-72x72-precomposed.png"/>`,
		`<link rel="apple-touch-icon-precomposed" sizes="114x114" href="/img/apple-touch-icon-114x114-precomposed.png"/>`,
		`<link rel="apple-touch-icon-precomposed" sizes="120x120" href="/img/apple-touch-icon-120x120-precomposed.png"/>`,
		`<link rel="apple-touch-icon-precomposed" sizes="144x144" href="/img/apple-touch-icon-144x144-precomposed.png"/>`,
		`<meta name="msapplication-TileImage" content="/img/windows-tile-144x144.png"/>`,
		`<meta name="msapplication-TileColor" content="#112233"/>`,
	}

	if len(got) != len(want) {
		t.Fatalf("got %d tags, want %d:\n%s", len(got), len(want), strings.Join(got, "\n"))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tag %d = %s\nwant %s", i, got[i], want[i])
		}
	}
}

func TestTagsOptionalVariants(t *testing.T) {
	t.Run("coast after png icon", func(t *testing.T) {
		got := renderTags(Tags("", result(false, colour.None, icons.PurposeCoast)))
		if got[2] != `<link rel="icon" sizes="228x228" href="coast-icon-228x228.png"/>` {
			t.Errorf("tag 2 = %s", got[2])
		}
	})

	t.Run("plain touch icons without precomposed", func(t *testing.T) {
		for _, tag := range renderTags(Tags("", result(false, colour.None))) {
			if strings.Contains(tag, "precomposed") {
				t.Errorf("unexpected precomposed tag %s", tag)
			}
		}
	})

	t.Run("no tile tags without tile", func(t *testing.T) {
		for _, tag := range renderTags(Tags("", result(true, colour.Setting("#000000")))) {
			if strings.Contains(tag, "msapplication") {
				t.Errorf("unexpected tile tag %s", tag)
			}
		}
	})

	t.Run("tile colour none omits TileColor", func(t *testing.T) {
		tags := renderTags(Tags("", result(true, colour.None, icons.PurposeTile)))
		var image, colourTag bool
		for _, tag := range tags {
			image = image || strings.Contains(tag, "msapplication-TileImage")
			colourTag = colourTag || strings.Contains(tag, "msapplication-TileColor")
		}
		if !image {
			t.Error("expected TileImage meta tag")
		}
		if colourTag {
			t.Error("TileColor meta tag must not be emitted for none")
		}
	})
}

func TestStrip(t *testing.T) {
	src := `<!DOCTYPE html><html><head>
<link rel="shortcut icon" href="old.ico">
<link rel="icon" sizes="32x32" href="old.png">
<link rel="ICON" href="kept-case.png">
<link rel="stylesheet" href="site.css">
<link rel="apple-touch-icon" href="old-touch.png">
</head><body><link rel="icon" href="body.png"></body></html>`

	doc, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if n := doc.Strip(); n != 3 {
		t.Errorf("Strip() removed %d links, want 3", n)
	}

	var b strings.Builder
	if err := doc.Render(&b); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	out := b.String()

	for _, gone := range []string{"old.ico", "old.png", "body.png"} {
		if strings.Contains(out, gone) {
			t.Errorf("expected %s to be stripped:\n%s", gone, out)
		}
	}
	for _, kept := range []string{"kept-case.png", "site.css", "old-touch.png", "<!DOCTYPE html>"} {
		if !strings.Contains(out, kept) {
			t.Errorf("expected %s to be kept:\n%s", kept, out)
		}
	}
}

func TestParseFragment(t *testing.T) {
	doc, err := Parse(strings.NewReader("<title>x</title>"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	doc.Append([]Tag{link("rel", "icon", "href", "a.png")})

	var b strings.Builder
	if err := doc.Render(&b); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), `<head><title>x</title><link rel="icon" href="a.png"/></head>`) {
		t.Errorf("unexpected output: %s", b.String())
	}
}

func TestLoadAppendSaveIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.html")
	initial := `<html><head><title>Site</title><link rel="icon" href="legacy.png"></head><body></body></html>`
	if err := os.WriteFile(path, []byte(initial), 0o600); err != nil {
		t.Fatal(err)
	}

	r := result(true, colour.Setting("#FFFFFF"), icons.PurposeFaviconPNG, icons.PurposeTile)

	for run := 0; run < 3; run++ {
		doc, err := Load(path)
		if err != nil {
			t.Fatalf("run %d: Load failed: %v", run, err)
		}
		doc.Append(Tags("", r))
		if err := doc.Save(); err != nil {
			t.Fatalf("run %d: Save failed: %v", run, err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		out := string(data)

		if n := strings.Count(out, `rel="icon"`); n != 1 {
			t.Errorf("run %d: found %d rel=\"icon\" links, want 1:\n%s", run, n, out)
		}
		if n := strings.Count(out, `rel="shortcut icon"`); n != 1 {
			t.Errorf("run %d: found %d shortcut icon links, want 1", run, n)
		}
		if strings.Contains(out, "legacy.png") {
			t.Errorf("run %d: legacy icon should be removed", run)
		}
		if !strings.Contains(out, "<title>Site</title>") {
			t.Errorf("run %d: existing head content lost", run)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.html")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveWithoutPath(t *testing.T) {
	doc, err := Parse(strings.NewReader("<html></html>"))
	if err != nil {
		t.Fatal(err)
	}
	if err := doc.Save(); err == nil {
		t.Error("expected error saving a document without a path")
	}
}
