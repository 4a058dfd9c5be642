package handlers

import (
	"github.com/ojas8taori/trash-taste-ai/internal/services"
	"github.com/ojas8taori/trash-taste-ai/internal/storage"
)

// Handler carries the injected dependencies for every route. The store
// is an interface so the Postgres-backed and in-memory variants are
// interchangeable; handlers never know which one is active.
type Handler struct {
	Store    storage.Store
	Analyzer services.WasteAnalyzer
	Uploader *services.Uploader
}

func New(store storage.Store, analyzer services.WasteAnalyzer, uploader *services.Uploader) *Handler {
	return &Handler{
		Store:    store,
		Analyzer: analyzer,
		Uploader: uploader,
	}
}
