package handlers

import (
	"log/slog"
	"net/http"

	"planet-designer/internal/preset"
	"planet-designer/internal/shared/errors"
	"planet-designer/internal/shared/response"
)

type PresetHandler struct {
	catalog *preset.Catalog
}

func NewPresetHandler(catalog *preset.Catalog) *PresetHandler {
	return &PresetHandler{catalog: catalog}
}

func (h *PresetHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "list_presets")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	response.Success(w, http.StatusOK, h.catalog.List())
}

func (h *PresetHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_preset")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	name := r.PathValue("name")
	entry, ok := h.catalog.Find(name)
	if !ok {
		response.Error(w, r, logger, errors.NotFoundf("preset %s not found", name))
		return
	}

	response.Success(w, http.StatusOK, entry)
}
