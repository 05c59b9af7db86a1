package render

import (
	"bytes"
	"errors"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

const codeStyle = "github-dark"

// e.g. ```go filename="cmd/server/main.go"
var reFilename = regexp.MustCompile(`filename="([^"]*)"`)

var errNoLexer = errors.New("no lexer for language")

// codeBlockRenderer replaces the default fenced-code output with a
// wrapper carrying language and optional filename metadata plus static
// chroma token classes. Code is only ever displayed, never executed.
type codeBlockRenderer struct{}

func (r *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCode)
}

func (r *codeBlockRenderer) renderFencedCode(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)

	lang, filename := parseCodeInfo(n, source)

	var code strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		code.Write(line.Value(source))
	}

	_, _ = w.WriteString(`<div class="code-block"`)
	if lang != "" {
		_, _ = w.WriteString(` data-language="`)
		_, _ = w.Write(util.EscapeHTML([]byte(lang)))
		_, _ = w.WriteString(`"`)
	}
	_, _ = w.WriteString(">")
	if filename != "" {
		_, _ = w.WriteString(`<span class="code-filename">`)
		_, _ = w.Write(util.EscapeHTML([]byte(filename)))
		_, _ = w.WriteString(`</span>`)
	}

	if highlighted, err := highlight(lang, code.String()); err == nil {
		_, _ = w.Write(highlighted)
	} else {
		writePlainCode(w, lang, code.String())
	}

	_, _ = w.WriteString("</div>\n")
	return ast.WalkContinue, nil
}

// parseCodeInfo splits the fence info line into language and filename.
// A malformed filename attribute degrades to "no filename"; it never
// aborts compilation.
func parseCodeInfo(n *ast.FencedCodeBlock, source []byte) (lang, filename string) {
	lang = string(n.Language(source))

	if n.Info == nil {
		return lang, ""
	}
	info := string(n.Info.Segment.Value(source))
	if m := reFilename.FindStringSubmatch(info); m != nil {
		filename = strings.TrimSpace(m[1])
	}
	return lang, filename
}

func highlight(lang, code string) ([]byte, error) {
	if lang == "" {
		return nil, errNoLexer
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		return nil, errNoLexer
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return nil, err
	}

	style := styles.Get(codeStyle)
	if style == nil {
		style = styles.Fallback
	}

	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.Format(&buf, style, it); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writePlainCode(w util.BufWriter, lang, code string) {
	_, _ = w.WriteString("<pre><code")
	if lang != "" {
		_, _ = w.WriteString(` class="language-`)
		_, _ = w.Write(util.EscapeHTML([]byte(lang)))
		_, _ = w.WriteString(`"`)
	}
	_, _ = w.WriteString(">")
	_, _ = w.Write(util.EscapeHTML([]byte(code)))
	_, _ = w.WriteString("</code></pre>")
}
