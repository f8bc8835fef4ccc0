// Package etree implements XML processing on top of github.com/beevik/etree:
// SVG canonicalization, resource manifests, and UI template extraction.
package etree

import (
	"github.com/beevik/etree"
	"github.com/timarques/eucatalog"
)

// droppedElements carry editor or descriptive data that does not render.
var droppedElements = map[string]bool{
	"metadata": true,
	"title":    true,
	"desc":     true,
}

// droppedNamespaces are editor specific prefixes removed from elements and
// attributes.
var droppedNamespaces = map[string]bool{
	"inkscape": true,
	"sodipodi": true,
}

// Ensure Canonicalizer implements eucatalog.VectorCanonicalizer at compile time.
var _ eucatalog.VectorCanonicalizer = (*Canonicalizer)(nil)

// Canonicalizer normalizes SVG documents: comments, processing
// instructions, whitespace-only text, non-rendering metadata and editor
// namespaces are removed and attributes are sorted.
type Canonicalizer struct{}

// NewCanonicalizer creates a new Canonicalizer.
func NewCanonicalizer() *Canonicalizer {
	return &Canonicalizer{}
}

// Canonicalize parses svg and re-serializes it in canonical form.
// Returns ECONVERSION if svg is not an SVG document.
func (c *Canonicalizer) Canonicalize(svg []byte) ([]byte, error) {
	in := etree.NewDocument()
	if err := in.ReadFromBytes(svg); err != nil {
		return nil, eucatalog.Errorf(eucatalog.ECONVERSION, "invalid SVG: %v", err)
	}
	root := in.Root()
	if root == nil || root.Tag != "svg" {
		return nil, eucatalog.Errorf(eucatalog.ECONVERSION, "document root is not <svg>")
	}

	canonicalize(root)

	out := etree.NewDocument()
	out.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	out.SetRoot(root)

	data, err := out.WriteToBytes()
	if err != nil {
		return nil, eucatalog.Errorf(eucatalog.ECONVERSION, "serialize SVG: %v", err)
	}
	return data, nil
}

func canonicalize(e *etree.Element) {
	for i := len(e.Child) - 1; i >= 0; i-- {
		switch t := e.Child[i].(type) {
		case *etree.Comment, *etree.ProcInst, *etree.Directive:
			e.RemoveChildAt(i)
		case *etree.CharData:
			if t.IsWhitespace() {
				e.RemoveChildAt(i)
			}
		case *etree.Element:
			if droppedElements[t.Tag] || droppedNamespaces[t.Space] {
				e.RemoveChildAt(i)
				continue
			}
			canonicalize(t)
		}
	}

	kept := e.Attr[:0]
	for _, a := range e.Attr {
		if droppedNamespaces[a.Space] || (a.Space == "xmlns" && droppedNamespaces[a.Key]) {
			continue
		}
		kept = append(kept, a)
	}
	e.Attr = kept
	e.SortAttrs()
}
