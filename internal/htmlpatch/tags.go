package htmlpatch

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/jmylchreest/favicons/internal/icons"
)

// Tag is a <link> or <meta> element to append to <head>.
type Tag struct {
	Atom  atom.Atom
	Attrs []html.Attribute
}

// String renders the tag as HTML.
func (t Tag) String() string {
	var b strings.Builder
	_ = html.Render(&b, t.node())
	return b.String()
}

func (t Tag) node() *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: t.Atom,
		Data:     t.Atom.String(),
		Attr:     append([]html.Attribute(nil), t.Attrs...),
	}
}

func link(attrs ...string) Tag {
	return Tag{Atom: atom.Link, Attrs: pairs(attrs)}
}

func meta(name, content string) Tag {
	return Tag{Atom: atom.Meta, Attrs: pairs([]string{"name", name, "content", content})}
}

func pairs(kv []string) []html.Attribute {
	attrs := make([]html.Attribute, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		attrs = append(attrs, html.Attribute{Key: kv[i], Val: kv[i+1]})
	}
	return attrs
}

// Tags returns the tags announcing r's files, in document order. Every
// href and the tile image are prefixed with prefix verbatim.
func Tags(prefix string, r *icons.Result) []Tag {
	suffix := ""
	if r.Precomposed {
		suffix = "-precomposed"
	}
	touchRel := "apple-touch-icon" + suffix

	tags := []Tag{
		link("rel", "shortcut icon", "href", prefix+icons.FaviconICO),
		link("rel", "icon", "type", "image/png", "href", prefix+icons.FaviconPNG),
	}

	if r.Has(icons.PurposeCoast) {
		tags = append(tags, link("rel", "icon", "sizes", "228x228", "href", prefix+icons.CoastIcon))
	}

	tags = append(tags,
		link("rel", "apple-touch-icon", "href", prefix+icons.TouchIcon),
		link("rel", touchRel, "href", prefix+icons.TouchIconName("", suffix)),
	)
	for _, size := range icons.TouchSizes() {
		tags = append(tags, link("rel", touchRel, "sizes", size, "href", prefix+icons.TouchIconName(size, suffix)))
	}

	// In HTML mode the tile background is announced here rather than
	// flattened into the image.
	if r.Has(icons.PurposeTile) {
		tags = append(tags, meta("msapplication-TileImage", prefix+icons.WindowsTile))
		if tile := r.Colours.Tile; !tile.IsNone() {
			tags = append(tags, meta("msapplication-TileColor", tile.String()))
		}
	}

	return tags
}
