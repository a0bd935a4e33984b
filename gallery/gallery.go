// Package gallery writes an HTML index of the generated charts,
// built as a golang.org/x/net/html node tree.
package gallery

import (
	"errors"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNilWriter indicates that a nil writer was provided to Write.
var ErrNilWriter = errors.New("gallery: nil writer")

// FileName is the name of the index page, written next to the charts.
const FileName = "index.html"

const style = `body{font-family:sans-serif;margin:2em;color:#262626}
figure{margin:0 0 3em 0}
img{max-width:100%;border:1px solid #eaeaf2}`

// Entry is one chart of the gallery. PNG and PDF are paths
// relative to the page.
type Entry struct {
	Title    string
	PNG, PDF string
}

func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func text(s string) *html.Node { return &html.Node{Type: html.TextNode, Data: s} }

// withText appends a text child to n and returns n
func withText(n *html.Node, s string) *html.Node {
	n.AppendChild(text(s))
	return n
}

func entryNode(e Entry) *html.Node {
	fig := element(atom.Figure)
	link := element(atom.A, "href", e.PNG)
	link.AppendChild(element(atom.Img, "src", e.PNG, "alt", e.Title))
	fig.AppendChild(link)

	caption := withText(element(atom.Figcaption), e.Title+" ")
	if e.PDF != "" {
		caption.AppendChild(withText(element(atom.A, "href", e.PDF), "(PDF)"))
	}
	fig.AppendChild(caption)
	return fig
}

// Document returns the page as a node tree.
func Document(title string, entries []Entry) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html, "lang", "en")
	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, "charset", "utf-8"))
	head.AppendChild(withText(element(atom.Title), title))
	head.AppendChild(withText(element(atom.Style), style))
	root.AppendChild(head)

	body := element(atom.Body)
	body.AppendChild(withText(element(atom.H1), title))
	for _, e := range entries {
		body.AppendChild(entryNode(e))
	}
	root.AppendChild(body)
	doc.AppendChild(root)
	return doc
}

// Write renders the gallery page listing the entries, in order.
func Write(w io.Writer, title string, entries []Entry) error {
	if w == nil {
		return ErrNilWriter
	}
	return html.Render(w, Document(title, entries))
}
