package render

import (
	"strings"
	"unicode"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// headingTransformer assigns every heading a URL-safe anchor id derived
// from its text and wraps the heading content in a link to that anchor,
// so each heading is independently linkable.
//
// Two headings with the same text produce the same anchor; no
// disambiguation suffix is applied.
type headingTransformer struct{}

func (t *headingTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	src := reader.Source()
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		id := AnchorID(string(nodeText(h, src)))
		h.SetAttributeString("id", []byte(id))

		link := ast.NewLink()
		link.Destination = []byte("#" + id)
		for c := h.FirstChild(); c != nil; {
			next := c.NextSibling()
			link.AppendChild(link, c)
			c = next
		}
		h.AppendChild(h, link)

		return ast.WalkSkipChildren, nil
	})
}

// AnchorID derives the anchor identifier for a heading text: lowercase,
// whitespace becomes a hyphen, everything else non-alphanumeric is
// stripped.
func AnchorID(s string) string {
	var out []rune
	lastDash := false

	for _, r := range strings.TrimSpace(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			out = append(out, unicode.ToLower(r))
			lastDash = false
		case unicode.IsSpace(r) || r == '-':
			if !lastDash && len(out) > 0 {
				out = append(out, '-')
				lastDash = true
			}
		}
	}
	for len(out) > 0 && out[len(out)-1] == '-' {
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return "section"
	}
	return string(out)
}
