package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"planet-designer/internal/planet"
	"planet-designer/internal/shared/cookies"
	"planet-designer/internal/shared/errors"
	"planet-designer/internal/shared/response"
)

const maxBodyBytes = 1 << 20

type PlanetHandler struct {
	service *planet.Service
	cookies cookies.Settings
}

func NewPlanetHandler(service *planet.Service, cookieSettings cookies.Settings) *PlanetHandler {
	return &PlanetHandler{service: service, cookies: cookieSettings}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.WrapValidation("invalid JSON body", err)
	}
	return nil
}

func designID(r *http.Request) (uuid.UUID, error) {
	idStr := r.PathValue("id")
	if idStr == "" {
		return uuid.Nil, errors.Validation("design ID is required")
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, errors.WrapValidation("invalid design ID format", err)
	}
	return id, nil
}

func (h *PlanetHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "evaluate_planet")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var req planet.EvaluateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	report, err := h.service.Evaluate(ctx, req)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, report)
}

func (h *PlanetHandler) Validate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "validate_planet")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var req planet.EvaluateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, h.service.Validate(ctx, req))
}

func (h *PlanetHandler) CreateDesign(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "create_design")

	var req planet.DesignRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	created, err := h.service.CreateDesign(ctx, req)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	cookies.SetEditToken(w, h.cookies, created.Design.ID.String(), created.EditToken, h.service.EditTokenExpiration())
	response.Success(w, http.StatusCreated, created)
}

func (h *PlanetHandler) ListDesigns(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "list_designs")

	designs, err := h.service.ListDesigns(r.Context())
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, designs)
}

func (h *PlanetHandler) GetDesign(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_design")

	id, err := designID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	design, err := h.service.GetDesign(r.Context(), id)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, design)
}

func (h *PlanetHandler) GetDesignReport(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_design_report")

	id, err := designID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	report, err := h.service.GetDesignReport(r.Context(), id)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, report)
}

func (h *PlanetHandler) UpdateDesign(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "update_design")

	id, err := designID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	var req planet.DesignRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	design, err := h.service.UpdateDesign(r.Context(), id, req)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, design)
}

func (h *PlanetHandler) DeleteDesign(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "delete_design")

	id, err := designID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if err := h.service.DeleteDesign(r.Context(), id); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	cookies.ClearEditToken(w, h.cookies, id.String())
	response.Success(w, http.StatusNoContent, nil)
}
