package render

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// renderPlain lays the document out as readable text blocks: paragraphs and
// headings on their own lines, list items bulleted, quotes prefixed.
func renderPlain(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", err
	}

	doc.Find(strings.Join(removeTags, ", ")).Remove()

	sel := doc.Find("body")
	if sel.Length() == 0 {
		sel = doc.Selection
	}

	w := &blockWalker{}
	for _, n := range sel.Nodes {
		w.walk(n)
	}
	w.flush("")

	return strings.Join(w.blocks, "\n\n"), nil
}

// blockAtoms are elements that start and end a text block.
var blockAtoms = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Section: true, atom.Article: true,
	atom.Header: true, atom.Footer: true, atom.Main: true, atom.Aside: true,
	atom.Ul: true, atom.Ol: true, atom.Dl: true, atom.Dd: true, atom.Dt: true,
	atom.Table: true, atom.Tr: true, atom.Caption: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true,
	atom.H5: true, atom.H6: true,
	atom.Pre: true, atom.Figure: true, atom.Figcaption: true,
}

// blockWalker accumulates inline text and cuts it into blocks at block-level
// element boundaries.
type blockWalker struct {
	blocks []string
	cur    strings.Builder
}

func (w *blockWalker) flush(prefix string) {
	text := normalizeSpace(w.cur.String())
	w.cur.Reset()
	if text != "" {
		w.blocks = append(w.blocks, prefix+text)
	}
}

func (w *blockWalker) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.cur.WriteString(n.Data)
		return
	case html.ElementNode:
		// handled below
	default:
		return
	}

	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Noscript, atom.Iframe, atom.Head:
		return
	case atom.Br:
		w.flush("")
		return
	case atom.Hr:
		w.flush("")
		w.blocks = append(w.blocks, "----")
		return
	case atom.Li:
		w.flush("")
		w.walkChildren(n)
		w.flush("- ")
		return
	case atom.Blockquote:
		w.flush("")
		w.walkChildren(n)
		w.flush("> ")
		return
	}

	isBlock := blockAtoms[n.DataAtom]
	if isBlock {
		w.flush("")
	}
	w.walkChildren(n)
	if isBlock {
		w.flush("")
	}
}

func (w *blockWalker) walkChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}
