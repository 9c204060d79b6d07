package html

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"warehouse/frontend/shared/nav"
)

// Layout wraps body in the page shell with the top navigation and the CSRF
// form script.
func Layout(title string, top nav.TopNavData, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		head := `<!doctype html><html lang="en"><head><meta charset="utf-8">` +
			`<meta name="viewport" content="width=device-width, initial-scale=1">` +
			`<title>` + templ.EscapeString(title) + `</title>` +
			`<link rel="stylesheet" href="/assets/app.css"></head><body>` +
			renderTopNav(top) + `<main class="app-container">`
		if _, err := io.WriteString(w, head); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main>`+CSRFFormScript()+`</body></html>`)
		return err
	})
}

func renderTopNav(top nav.TopNavData) string {
	out := `<nav class="top-nav"><span class="brand">` + templ.EscapeString(top.Brand) + `</span><ul>`
	for _, link := range top.Links {
		class := ""
		if link.Active {
			class = ` class="active"`
		}
		out += `<li><a href="` + templ.EscapeString(link.Href) + `"` + class + `>` + templ.EscapeString(link.Label) + `</a></li>`
	}
	return out + `</ul></nav>`
}
