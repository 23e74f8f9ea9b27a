package handlers

import (
	"net/http"

	"github.com/a-h/templ"

	applog "recipebox/internal/log"
	"recipebox/internal/views/layout"
)

func renderPage(w http.ResponseWriter, r *http.Request, title string, content templ.Component) {
	page := layout.Page{
		Title:    title,
		Username: CurrentIdentity(r).Username,
		Flashes:  popFlashes(r),
	}
	renderComponent(w, r, layout.Layout(page, content))
}

func renderComponent(w http.ResponseWriter, r *http.Request, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render component", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
