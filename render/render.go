// ABOUTME: Renders block collections to HTML for the public pages, dispatching exhaustively on block type.
// ABOUTME: Markdown bodies go through goldmark; unknown block types fall back to an escaped props dump.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/matthewharwood/engmanager.xyz-sub002/block"
)

var headerTmpl = template.Must(template.New("header").Parse(`<header class="header-block">
  <div class="container">
    <h1>{{.Headline}}</h1>
    <a class="button" href="{{.Button.Href}}" aria-label="{{.Button.AriaLabel}}">{{.Button.Text}}</a>
  </div>
</header>`))

var heroTmpl = template.Must(template.New("hero").Parse(`<section class="hero-block">
  <div class="container">
    <h2>{{.Headline}}</h2>
    <p>{{.Subheadline}}</p>
  </div>
</section>`))

var markdownTmpl = template.Must(template.New("markdown").Parse(`<section class="markdown-block">
  <div class="container">{{.Body}}</div>
</section>`))

var unknownTmpl = template.Must(template.New("unknown").Parse(`<section class="unknown-block" data-type="{{.Type}}">
  <pre>{{.Props}}</pre>
</section>`))

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
</head>
<body>
{{.Body}}
</body>
</html>`))

// Renderer turns block collections into page HTML.
type Renderer struct {
	md goldmark.Markdown
}

// New creates a Renderer with a default goldmark instance.
func New() *Renderer {
	return &Renderer{md: goldmark.New()}
}

// Block renders a single block to an HTML fragment.
func (r *Renderer) Block(b block.Block) (template.HTML, error) {
	var buf bytes.Buffer
	switch b.Type {
	case block.TypeHeader:
		props, ok := b.Props.(*block.HeaderProps)
		if !ok {
			return "", fmt.Errorf("Header block with %T props", b.Props)
		}
		if err := headerTmpl.Execute(&buf, props); err != nil {
			return "", fmt.Errorf("render Header: %w", err)
		}

	case block.TypeHero:
		props, ok := b.Props.(*block.HeroProps)
		if !ok {
			return "", fmt.Errorf("Hero block with %T props", b.Props)
		}
		if err := heroTmpl.Execute(&buf, props); err != nil {
			return "", fmt.Errorf("render Hero: %w", err)
		}

	case block.TypeMarkdown:
		props, ok := b.Props.(*block.MarkdownProps)
		if !ok {
			return "", fmt.Errorf("Markdown block with %T props", b.Props)
		}
		var body bytes.Buffer
		if err := r.md.Convert([]byte(props.Body), &body); err != nil {
			return "", fmt.Errorf("convert markdown: %w", err)
		}
		data := struct{ Body template.HTML }{Body: template.HTML(body.String())}
		if err := markdownTmpl.Execute(&buf, data); err != nil {
			return "", fmt.Errorf("render Markdown: %w", err)
		}

	default:
		props, err := json.MarshalIndent(b.Props, "", "  ")
		if err != nil {
			props = []byte(fmt.Sprintf("%v", b.Props))
		}
		data := struct {
			Type  block.Type
			Props string
		}{Type: b.Type, Props: string(props)}
		if err := unknownTmpl.Execute(&buf, data); err != nil {
			return "", fmt.Errorf("render unknown block: %w", err)
		}
	}
	return template.HTML(buf.String()), nil
}

// Collection renders every block in order, joined into one fragment.
func (r *Renderer) Collection(c block.Collection) (template.HTML, error) {
	var parts []string
	for i, b := range c.Blocks {
		fragment, err := r.Block(b)
		if err != nil {
			return "", fmt.Errorf("block %d: %w", i, err)
		}
		parts = append(parts, string(fragment))
	}
	return template.HTML(strings.Join(parts, "\n")), nil
}

// Page renders a full HTML document for a collection.
func (r *Renderer) Page(title string, c block.Collection) (string, error) {
	body, err := r.Collection(c)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	data := struct {
		Title string
		Body  template.HTML
	}{Title: title, Body: body}
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render page: %w", err)
	}
	return buf.String(), nil
}
