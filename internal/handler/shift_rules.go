package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/boloukiamir-bit/industrial-competence-platform-sub002/internal/domain"
)

func (h *Handler) GetAllShiftRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.repository.GetAllShiftRules(r.Context(), h.orgID(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift rules", rules)
}

func (h *Handler) UpsertShiftRule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ShiftStart       string `json:"shiftStart" validate:"required,datetime=15:04"`
		ShiftEnd         string `json:"shiftEnd" validate:"required,datetime=15:04"`
		BreakMinutes     int    `json:"breakMinutes" validate:"gte=0"`
		PaidBreakMinutes int    `json:"paidBreakMinutes" validate:"gte=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	rule := &domain.ShiftRule{
		OrgID:            h.orgID(r),
		ShiftType:        chi.URLParam(r, "shiftType"),
		ShiftStart:       req.ShiftStart,
		ShiftEnd:         req.ShiftEnd,
		BreakMinutes:     req.BreakMinutes,
		PaidBreakMinutes: req.PaidBreakMinutes,
	}

	if err := h.repository.UpsertShiftRule(r.Context(), rule); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift rule saved", rule)
}
