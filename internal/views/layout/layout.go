package layout

import (
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/a-h/templ"
)

//go:embed templates/*.html
var templateFS embed.FS

var layoutTemplate = template.Must(template.New("layout.html").Funcs(template.FuncMap{
	"alertClass":      func(category string) string { return AlertByCategory(category).Class },
	"alertStylesheet": alertStylesheet,
}).ParseFS(templateFS, "templates/layout.html"))

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string
	Message  string
}

// Page carries the data every full page needs.
type Page struct {
	Title    string
	Username string
	Flashes  []Flash
}

// LoggedIn reports whether the navigation should show the member links.
func (p Page) LoggedIn() bool {
	return p.Username != ""
}

type layoutData struct {
	Page
	Content template.HTML
}

// Layout wraps content in the application shell.
func Layout(page Page, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var body template.HTML
		if content != nil {
			rendered, err := templ.ToGoHTML(ctx, content)
			if err != nil {
				return err
			}
			body = rendered
		}
		if page.Title == "" {
			page.Title = "Recipe Box"
		}
		return layoutTemplate.Execute(w, layoutData{Page: page, Content: body})
	})
}
