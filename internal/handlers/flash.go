package handlers

import (
	"encoding/gob"
	"net/http"

	"recipebox/internal/views/layout"
)

const sessionFlashKey = "flash"

const (
	flashSuccess = "success"
	flashDanger  = "danger"
	flashInfo    = "info"
)

func init() {
	gob.Register([]layout.Flash{})
}

// addFlash queues a message for the next rendered page.
func addFlash(r *http.Request, category, message string) {
	if sessionManager == nil {
		return
	}
	flashes, _ := sessionManager.Get(r.Context(), sessionFlashKey).([]layout.Flash)
	flashes = append(flashes, layout.Flash{Category: category, Message: message})
	sessionManager.Put(r.Context(), sessionFlashKey, flashes)
}

// popFlashes returns and clears the queued messages.
func popFlashes(r *http.Request) []layout.Flash {
	if sessionManager == nil {
		return nil
	}
	flashes, _ := sessionManager.Pop(r.Context(), sessionFlashKey).([]layout.Flash)
	return flashes
}
