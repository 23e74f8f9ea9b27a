package pages

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultDash returns a dash when the provided value is empty or whitespace.
func DefaultDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

// formatDate renders timestamps in a friendly day month year format.
func formatDate(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.UTC().Format("02 Jan 2006")
}

// excerpt shortens text to at most limit runes on a single line.
func excerpt(text string, limit int) string {
	flat := strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(flat) <= limit {
		return flat
	}
	runes := []rune(flat)
	return strings.TrimSpace(string(runes[:limit])) + "..."
}

func favoriteLabel(count int64) string {
	if count == 1 {
		return "1 favorite"
	}
	return fmt.Sprintf("%d favorites", count)
}
