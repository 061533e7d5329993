package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/boloukiamir-bit/industrial-competence-platform-sub002/internal/domain"
)

// GetLineGaps runs the gap engine for one line, date and shift and returns
// the per-machine report. Machines classified NO-GO additionally trigger an
// alert mail; a failed enqueue never fails the request.
func (h *Handler) GetLineGaps(w http.ResponseWriter, r *http.Request) {
	req := struct {
		Line      string `validate:"required"`
		Date      string `validate:"required,datetime=2006-01-02"`
		ShiftType string `validate:"required"`
	}{
		Line:      chi.URLParam(r, "line"),
		Date:      r.URL.Query().Get("date"),
		ShiftType: r.URL.Query().Get("shift"),
	}

	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	report, err := h.gapService.LineGaps(r.Context(), h.orgID(r), req.Line, req.Date, req.ShiftType)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if noGo := noGoMachines(report); len(noGo) > 0 {
		alert := domain.MailMessage{
			Type: "gap_alert",
			To:   h.config.InitialAdmin.Email,
			Data: domain.GapAlertMailData{
				Line:      req.Line,
				Date:      req.Date,
				ShiftType: req.ShiftType,
				Machines:  noGo,
			},
		}
		if err := h.publishMail(alert); err != nil {
			slog.Error("failed to enqueue gap alert", "line", req.Line, "error", err)
		}
	}

	h.successResponse(w, r, "line gap report", report)
}

func (h *Handler) GetLineOverview(w http.ResponseWriter, r *http.Request) {
	req := struct {
		Date      string `validate:"required,datetime=2006-01-02"`
		ShiftType string `validate:"required"`
	}{
		Date:      r.URL.Query().Get("date"),
		ShiftType: r.URL.Query().Get("shift"),
	}

	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	overview, err := h.gapService.LineOverview(r.Context(), h.orgID(r), req.Date, req.ShiftType)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	line := chi.URLParam(r, "line")
	for _, l := range overview.Lines {
		if l.Line == line {
			h.successResponse(w, r, "line overview", l)
			return
		}
	}

	h.successResponse(w, r, "line overview", domain.LineMachines{Line: line, Machines: []domain.MachineDemand{}})
}

func noGoMachines(report *domain.LineGapReport) []string {
	machines := make([]string, 0)
	for _, row := range report.MachineRows {
		if row.CompetenceStatus == domain.CompetenceStatusNoGo {
			machines = append(machines, row.StationOrMachine)
		}
	}
	return machines
}
