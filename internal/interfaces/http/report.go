package http

import (
	"net/http"

	"pftracker/internal/domain/report"
)

type ReportHandler struct {
	reports *report.Service
}

func NewReportHandler(reports *report.Service) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	rng, err := parseRange(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	summary, err := h.reports.Summary(r.Context(), userID, rng)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSummaryResponse(summary))
}

// HandleByCategory accepts an optional ?type= to restrict the breakdown.
func (h *ReportHandler) HandleByCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	rng, err := parseRange(q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	typ, err := queryType(q)
	if err != nil {
		writeError(w, r, err)
		return
	}

	byCategory, err := h.reports.ByCategory(r.Context(), userID, rng, typ)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toByCategoryResponse(byCategory))
}

func (h *ReportHandler) HandleMonthly(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	rng, err := parseRange(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	monthly, err := h.reports.Monthly(r.Context(), userID, rng)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toMonthlyResponse(monthly))
}
