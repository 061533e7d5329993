package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/boloukiamir-bit/industrial-competence-platform-sub002/internal/domain"
)

func (h *Handler) GetStations(w http.ResponseWriter, r *http.Request) {
	req := struct {
		Line string `validate:"required"`
	}{
		Line: r.URL.Query().Get("line"),
	}

	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	activeOnly := r.URL.Query().Get("all") == ""

	stations, err := h.repository.GetStations(r.Context(), h.orgID(r), req.Line, activeOnly)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "stations", stations)
}

func (h *Handler) GetStationRequirements(w http.ResponseWriter, r *http.Request) {
	stationID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid station ID")
		return
	}

	requirements, err := h.repository.GetStationRoleRequirements(r.Context(), h.orgID(r), []int64{stationID})
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "station requirements", requirements)
}

func (h *Handler) CreateStationRequirement(w http.ResponseWriter, r *http.Request) {
	stationID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid station ID")
		return
	}

	var req struct {
		SkillID       int64 `json:"skillID" validate:"required"`
		RequiredLevel int   `json:"requiredLevel" validate:"gte=0,lte=5"`
		IsMandatory   bool  `json:"isMandatory"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	requirement := &domain.StationRoleRequirement{
		StationID:     stationID,
		SkillID:       req.SkillID,
		RequiredLevel: req.RequiredLevel,
		IsMandatory:   req.IsMandatory,
	}

	if err := h.repository.CreateStationRoleRequirement(r.Context(), requirement); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "requirement created", requirement)
}
