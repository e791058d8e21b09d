package publish

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var markdownRenderer = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		emoji.Emoji,
	),
	goldmark.WithRendererOptions(
		// Raw HTML stays escaped: no html.WithUnsafe().
		html.WithHardWraps(),
	),
)

func renderMarkdownHTML(src string) template.HTML {
	src = strings.TrimSpace(src)
	if src == "" {
		return template.HTML("")
	}
	var b bytes.Buffer
	if err := markdownRenderer.Convert([]byte(src), &b); err != nil {
		return template.HTML("<pre>" + template.HTMLEscapeString(src) + "</pre>")
	}
	// goldmark output is trusted only because raw HTML is disabled above.
	return template.HTML(b.String())
}

var pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="vi">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body{font-family:system-ui,sans-serif;max-width:52rem;margin:2rem auto;padding:0 1rem;color:#1f2937}
h2{border-bottom:1px solid #e5e7eb;padding-bottom:.25rem}
li{margin:.1rem 0}
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// RenderHTML wraps the rendered markdown in a standalone page.
func RenderHTML(title, md string) ([]byte, error) {
	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, struct {
		Title string
		Body  template.HTML
	}{Title: title, Body: renderMarkdownHTML(md)})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
