package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetAllEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.repository.GetAllEmployees(r.Context(), h.orgID(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "employees", employees)
}

// GetEmployeeCompetences joins the org's competence catalog with one
// employee's levels, effective on the requested date (today by default).
func (h *Handler) GetEmployeeCompetences(w http.ResponseWriter, r *http.Request) {
	employeeID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid employee ID")
		return
	}

	orgID := h.orgID(r)

	competences, err := h.repository.GetAllCompetences(r.Context(), orgID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	competenceIDs := make([]int64, 0, len(competences))
	for _, competence := range competences {
		competenceIDs = append(competenceIDs, competence.ID)
	}

	levels, err := h.repository.GetEmployeeCompetenceLevels(r.Context(), orgID, employeeID, competenceIDs, r.URL.Query().Get("date"))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	type employeeCompetence struct {
		CompetenceID int64  `json:"competenceID"`
		Name         string `json:"name"`
		Code         string `json:"code"`
		Level        int    `json:"level"`
	}

	result := make([]employeeCompetence, 0, len(competences))
	for _, competence := range competences {
		result = append(result, employeeCompetence{
			CompetenceID: competence.ID,
			Name:         competence.Name,
			Code:         competence.Code,
			Level:        levels[competence.ID],
		})
	}

	h.successResponse(w, r, "employee competences", result)
}

func (h *Handler) GetAllCompetences(w http.ResponseWriter, r *http.Request) {
	competences, err := h.repository.GetAllCompetences(r.Context(), h.orgID(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "competences", competences)
}
