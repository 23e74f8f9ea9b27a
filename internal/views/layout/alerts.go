package layout

import (
	"fmt"
	"html/template"
	"sort"
	"strings"
)

// AlertStyle describes how a flash category is presented.
type AlertStyle struct {
	Category string
	Class    string
	Color    string
}

const defaultAlertCategory = "info"

var alertRegistry = map[string]AlertStyle{
	"success": {Category: "success", Class: "alert alert-success", Color: "#e3f4e1"},
	"danger":  {Category: "danger", Class: "alert alert-danger", Color: "#f9e0e0"},
	"warning": {Category: "warning", Class: "alert alert-warning", Color: "#fdf1d6"},
	"info":    {Category: "info", Class: "alert alert-info", Color: "#e1ecf7"},
}

// AlertByCategory returns the style for category, falling back to info.
func AlertByCategory(category string) AlertStyle {
	if style, ok := alertRegistry[category]; ok {
		return style
	}
	return alertRegistry[defaultAlertCategory]
}

// AlertCategories lists the known categories in alphabetical order.
func AlertCategories() []string {
	categories := make([]string, 0, len(alertRegistry))
	for category := range alertRegistry {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

// alertStylesheet emits one background rule per registered category.
func alertStylesheet() template.CSS {
	var b strings.Builder
	for _, category := range AlertCategories() {
		fmt.Fprintf(&b, ".alert-%s { background: %s; }\n", category, alertRegistry[category].Color)
	}
	return template.CSS(b.String())
}
