package handlers

import (
	"net/http"

	applog "recipebox/internal/log"
	"recipebox/internal/views/pages"
)

// Search renders the search form and the recipes matching a query. A GET
// without a query parameter shows the empty form.
func Search(w http.ResponseWriter, r *http.Request) {
	if !servicesReady(w, r) {
		return
	}

	var query string
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		values, present := r.URL.Query()["query"]
		if !present {
			renderPage(w, r, "Search", pages.Search(""))
			return
		}
		if len(values) > 0 {
			query = values[0]
		}
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			badForm(w, r, err)
			return
		}
		query = r.PostFormValue("query")
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	recipes, err := recipeService.Search(r.Context(), query)
	if err != nil {
		serviceFailure(w, r, err, "", "/search")
		return
	}
	applog.Debug(r.Context(), "search completed", "query", query, "results", len(recipes))
	renderPage(w, r, "Search results", pages.SearchResults(query, recipes))
}
