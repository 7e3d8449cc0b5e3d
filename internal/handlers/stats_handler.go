package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/NailSitePro/salon-platform/internal/httperr"
	"github.com/NailSitePro/salon-platform/internal/httpresp"
	"github.com/NailSitePro/salon-platform/internal/stats"
)

type StatsHandler struct {
	stats *stats.Maintainer
}

func NewStatsHandler(m *stats.Maintainer) *StatsHandler {
	return &StatsHandler{stats: m}
}

// Get returns the singleton counter row the dashboard reads.
func (h *StatsHandler) Get(c *gin.Context) {
	s, err := h.stats.Get(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_get_stats", "Could not load platform stats.")
		return
	}

	httpresp.OK(c, s)
}
