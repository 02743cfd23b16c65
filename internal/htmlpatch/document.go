// Package htmlpatch rewrites the icon tags of an HTML document.
package htmlpatch

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// strippedRels are the link relations removed when a document is loaded.
var strippedRels = map[string]bool{
	"shortcut icon": true,
	"icon":          true,
}

// Document is a parsed HTML file. It is loaded once per run, mutated in
// memory and written back with Save.
type Document struct {
	path string
	root *html.Node
	head *html.Node
}

// Load reads and parses the document at path and strips its existing
// favicon links.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path) // #nosec G304 - user-specified HTML target
	if err != nil {
		return nil, fmt.Errorf("failed to read HTML file: %w", err)
	}

	doc, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML file %s: %w", path, err)
	}
	doc.path = path
	doc.Strip()

	return doc, nil
}

// Parse parses an HTML document. Missing <html>/<head> elements are
// synthesized by the parser.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	head := findElement(root, atom.Head)
	if head == nil {
		return nil, fmt.Errorf("document has no <head>")
	}

	return &Document{root: root, head: head}, nil
}

// Path returns the file the document was loaded from.
func (d *Document) Path() string {
	return d.path
}

// Strip removes every <link> whose rel is exactly "shortcut icon" or
// "icon" and returns how many were removed.
func (d *Document) Strip() int {
	var doomed []*html.Node
	walk(d.root, func(n *html.Node) {
		if n.Type != html.ElementNode || n.DataAtom != atom.Link {
			return
		}
		for _, a := range n.Attr {
			if a.Namespace == "" && a.Key == "rel" && strippedRels[a.Val] {
				doomed = append(doomed, n)
				return
			}
		}
	})

	for _, n := range doomed {
		n.Parent.RemoveChild(n)
	}
	return len(doomed)
}

// Append adds tags to the end of <head>.
func (d *Document) Append(tags []Tag) {
	for _, t := range tags {
		d.head.AppendChild(t.node())
	}
}

// Render writes the serialized document to w.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// Save overwrites the file the document was loaded from.
func (d *Document) Save() error {
	if d.path == "" {
		return fmt.Errorf("document was not loaded from a file")
	}

	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return fmt.Errorf("failed to render HTML: %w", err)
	}

	if err := os.WriteFile(d.path, buf.Bytes(), 0o644); err != nil { // #nosec G306 - served web content
		return fmt.Errorf("failed to write HTML file: %w", err)
	}
	return nil
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	var found *html.Node
	walk(n, func(c *html.Node) {
		if found == nil && c.Type == html.ElementNode && c.DataAtom == a {
			found = c
		}
	})
	return found
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}
