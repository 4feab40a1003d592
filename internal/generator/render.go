package generator

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// Renderer converts markdown bodies into full HTML pages. Stateless, safe to
// share across builds.
type Renderer struct {
	engine goldmark.Markdown
}

// NewRenderer builds a goldmark engine with GFM extensions, auto heading ids,
// and raw HTML passthrough (content is trusted, it ships with the repo).
func NewRenderer() *Renderer {
	return &Renderer{
		engine: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(goldmarkhtml.WithUnsafe()),
		),
	}
}

// RenderBody converts a markdown body into an HTML fragment.
func (r *Renderer) RenderBody(markdown []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.engine.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("generator: render markdown: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPage wraps a rendered body in the minimal document shell used by the
// static export.
func (r *Renderer) RenderPage(title string, markdown []byte) ([]byte, error) {
	body, err := r.RenderBody(markdown)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("<!doctype html>\n<html lang=\"en\">\n<head>\n")
	buf.WriteString("<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&buf, "<title>%s</title>\n", html.EscapeString(title))
	buf.WriteString("</head>\n<body>\n<article>\n")
	buf.Write(body)
	buf.WriteString("</article>\n</body>\n</html>\n")
	return buf.Bytes(), nil
}

// RenderListing produces the HTML page for a listing route (e.g. a category)
// from pre-built item links.
func (r *Renderer) RenderListing(title string, items []ListingItem) []byte {
	var buf bytes.Buffer
	buf.WriteString("<!doctype html>\n<html lang=\"en\">\n<head>\n")
	buf.WriteString("<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&buf, "<title>%s</title>\n", html.EscapeString(title))
	buf.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&buf, "<h1>%s</h1>\n<ul>\n", html.EscapeString(title))
	for _, item := range items {
		fmt.Fprintf(&buf, "<li><a href=\"%s\">%s</a></li>\n",
			html.EscapeString(item.Href), html.EscapeString(item.Title))
	}
	buf.WriteString("</ul>\n</body>\n</html>\n")
	return buf.Bytes()
}

// ListingItem is one linked entry on a listing page.
type ListingItem struct {
	Title string
	Href  string
}
