package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnchorID(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello, World!", "hello-world"},
		{"Getting Started", "getting-started"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Already-hyphenated title", "already-hyphenated-title"},
		{"Multiple   spaces", "multiple-spaces"},
		{"What's new in v2?", "whats-new-in-v2"},
		{"100% automated", "100-automated"},
		{"???", "section"},
		{"", "section"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, AnchorID(tc.in), "input %q", tc.in)
	}
}

func TestCompile_HeadingAnchors(t *testing.T) {
	src := []byte("# Getting Started\n\nIntro text.\n\n## Install the CLI\n\nMore text.\n")

	doc, err := NewCompiler().Compile("post", src)
	require.NoError(t, err)

	html := string(doc.HTML)
	assert.Contains(t, html, `<h1 id="getting-started">`)
	assert.Contains(t, html, `<a href="#getting-started">Getting Started</a>`)
	assert.Contains(t, html, `<h2 id="install-the-cli">`)
	assert.Contains(t, html, `<a href="#install-the-cli">Install the CLI</a>`)

	require.Len(t, doc.Headings, 2)
	assert.Equal(t, Heading{Level: 1, ID: "getting-started", Text: "Getting Started"}, doc.Headings[0])
	assert.Equal(t, Heading{Level: 2, ID: "install-the-cli", Text: "Install the CLI"}, doc.Headings[1])
}

func TestCompile_DuplicateHeadingsShareAnchor(t *testing.T) {
	src := []byte("## Setup\n\ntext\n\n## Setup\n\nmore\n")

	doc, err := NewCompiler().Compile("post", src)
	require.NoError(t, err)

	require.Len(t, doc.Headings, 2)
	assert.Equal(t, doc.Headings[0].ID, doc.Headings[1].ID)
	assert.Equal(t, 2, strings.Count(string(doc.HTML), `id="setup"`))
}

func TestCompile_CodeBlockWithFilename(t *testing.T) {
	src := []byte("```go filename=\"cmd/server/main.go\"\npackage main\n```\n")

	doc, err := NewCompiler().Compile("post", src)
	require.NoError(t, err)

	html := string(doc.HTML)
	assert.Contains(t, html, `<div class="code-block" data-language="go">`)
	assert.Contains(t, html, `<span class="code-filename">cmd/server/main.go</span>`)
	// chroma emits token-class spans when a lexer is available
	assert.Contains(t, html, `class="chroma"`)
}

func TestCompile_CodeBlockWithoutFilename(t *testing.T) {
	src := []byte("```go\npackage main\n```\n")

	doc, err := NewCompiler().Compile("post", src)
	require.NoError(t, err)

	html := string(doc.HTML)
	assert.Contains(t, html, `data-language="go"`)
	assert.NotContains(t, html, "code-filename")
}

func TestCompile_MalformedFilenameDegrades(t *testing.T) {
	src := []byte("```go filename=broken.go\npackage main\n```\n")

	doc, err := NewCompiler().Compile("post", src)
	require.NoError(t, err)

	// the attribute is unquoted so it is ignored, the block still renders
	assert.NotContains(t, string(doc.HTML), "code-filename")
	assert.Contains(t, string(doc.HTML), `data-language="go"`)
}

func TestCompile_UnknownLanguageFallsBackToPlain(t *testing.T) {
	src := []byte("```madeuplang\nsome code\n```\n")

	doc, err := NewCompiler().Compile("post", src)
	require.NoError(t, err)

	html := string(doc.HTML)
	assert.Contains(t, html, `<code class="language-madeuplang">`)
	assert.Contains(t, html, "some code")
}

func TestCompile_BareFenceFallsBackToPlain(t *testing.T) {
	src := []byte("```\n<script>alert(1)</script>\n```\n")

	doc, err := NewCompiler().Compile("post", src)
	require.NoError(t, err)

	html := string(doc.HTML)
	assert.Contains(t, html, "<pre><code>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.NotContains(t, html, "<script>")
}

func TestCompile_GFMTables(t *testing.T) {
	src := []byte("| Tool | Use |\n| --- | --- |\n| Clay | enrichment |\n")

	doc, err := NewCompiler().Compile("post", src)
	require.NoError(t, err)
	assert.Contains(t, string(doc.HTML), "<table>")
}

func TestCompile_EmptyBody(t *testing.T) {
	doc, err := NewCompiler().Compile("post", nil)
	require.NoError(t, err)
	assert.Empty(t, doc.Headings)
}
