// Package render compiles a post body into a renderable document:
// HTML with anchor-linked headings and statically highlighted code
// blocks, plus the extracted heading outline.
package render

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	domainerr "github.com/verluna/site/internal/domain/errors"
)

type Compiler struct {
	md goldmark.Markdown
}

func NewCompiler() *Compiler {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Linkify,
			extension.Strikethrough,
			extension.Table,
		),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(
				util.Prioritized(&headingTransformer{}, 100),
			),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
			renderer.WithNodeRenderers(
				util.Prioritized(&codeBlockRenderer{}, 200),
			),
		),
	)
	return &Compiler{md: md}
}

type Heading struct {
	Level int    `json:"level"`
	ID    string `json:"id"`
	Text  string `json:"text"`
}

type Document struct {
	HTML     []byte
	Headings []Heading
}

// Compile transforms a raw post body into a Document. Any parse or
// render failure comes back as a CompileError; the caller must treat
// that as a hard failure for this post rather than emitting partial
// output.
func (c *Compiler) Compile(slug string, src []byte) (Document, error) {
	reader := text.NewReader(src)
	doc := c.md.Parser().Parse(reader)

	var heads []Heading
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		var idStr string
		if id, ok := h.AttributeString("id"); ok {
			switch v := id.(type) {
			case string:
				idStr = v
			case []byte:
				idStr = string(v)
			}
		}
		heads = append(heads, Heading{
			Level: h.Level,
			ID:    idStr,
			Text:  string(nodeText(h, src)),
		})
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return Document{}, domainerr.CompileError{Slug: slug, Err: err}
	}

	var buf bytes.Buffer
	if err := c.md.Renderer().Render(&buf, src, doc); err != nil {
		return Document{}, domainerr.CompileError{Slug: slug, Err: err}
	}
	return Document{
		HTML:     buf.Bytes(),
		Headings: heads,
	}, nil
}

// nodeText collects the plain text of all descendant text nodes.
func nodeText(n ast.Node, src []byte) []byte {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Segment.Value(src))
		} else {
			buf.Write(nodeText(c, src))
		}
	}
	return buf.Bytes()
}
