package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/NailSitePro/salon-platform/internal/httperr"
	"github.com/NailSitePro/salon-platform/internal/httpresp"
	"github.com/NailSitePro/salon-platform/internal/tracking"
)

// ======================================================
// HANDLER
// ======================================================

type ReportHandler struct {
	reports *tracking.Reports
}

func NewReportHandler(r *tracking.Reports) *ReportHandler {
	return &ReportHandler{reports: r}
}

// parseRange reads ?start=YYYY-MM-DD&end=YYYY-MM-DD, defaulting to the
// last 30 days. The end date is inclusive.
func parseRange(c *gin.Context) (start, end time.Time, ok bool) {
	now := time.Now().UTC()
	start = now.AddDate(0, 0, -30)
	end = now

	const layout = "2006-01-02"

	if v := c.Query("start"); v != "" {
		t, err := time.Parse(layout, v)
		if err != nil {
			httperr.BadRequest(c, "invalid_argument", "'start' must be a YYYY-MM-DD date.")
			return start, end, false
		}
		start = t
	}
	if v := c.Query("end"); v != "" {
		t, err := time.Parse(layout, v)
		if err != nil {
			httperr.BadRequest(c, "invalid_argument", "'end' must be a YYYY-MM-DD date.")
			return start, end, false
		}
		end = t
	}

	if start.After(end) {
		httperr.BadRequest(c, "invalid_argument", "'start' must not be after 'end'.")
		return start, end, false
	}
	return start, end, true
}

// ======================================================
// REPORTS (admin)
// ======================================================

func (h *ReportHandler) Overview(c *gin.Context) {
	start, end, ok := parseRange(c)
	if !ok {
		return
	}

	ov, err := h.reports.BuildOverview(c.Request.Context(), start, end)
	if err != nil {
		httperr.Internal(c, "failed_to_build_report", "Could not build the visit report.")
		return
	}

	httpresp.OK(c, ov)
}

func (h *ReportHandler) VisitsByDay(c *gin.Context) {
	start, end, ok := parseRange(c)
	if !ok {
		return
	}

	days, err := h.reports.VisitsByDay(c.Request.Context(), start, end)
	if err != nil {
		httperr.Internal(c, "failed_to_build_report", "Could not build the visit report.")
		return
	}

	httpresp.List(c, days, int64(len(days)))
}

func (h *ReportHandler) PopularPages(c *gin.Context) {
	start, end, ok := parseRange(c)
	if !ok {
		return
	}

	pages, err := h.reports.PopularPages(c.Request.Context(), start, end, 10)
	if err != nil {
		httperr.Internal(c, "failed_to_build_report", "Could not build the visit report.")
		return
	}

	httpresp.List(c, pages, int64(len(pages)))
}
