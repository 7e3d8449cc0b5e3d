package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/NailSitePro/salon-platform/internal/cache"
	"github.com/NailSitePro/salon-platform/internal/models"
	"github.com/NailSitePro/salon-platform/internal/tracking"
)

const visitCookie = "visitor_session"

// TrackVisits records page views through the async recorder. A uuid
// session cookie identifies the visitor; redis suppresses repeat hits on
// the same session+path inside the dedup window.
func TrackVisits(rec *tracking.Recorder, ch *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(visitCookie)
		if err != nil || sessionID == "" {
			sessionID = uuid.NewString()
			c.SetCookie(visitCookie, sessionID, 60*60*24*365, "/", "", false, true)
		}

		c.Next()

		if c.Request.Method != "GET" || c.Writer.Status() >= 400 {
			return
		}
		if ch.SeenVisit(c.Request.Context(), sessionID, c.Request.URL.Path) {
			return
		}

		var userID *uint
		if v, ok := c.Get(ContextUserID); ok {
			if id, ok := v.(uint); ok {
				userID = &id
			}
		}

		rec.Record(models.Visit{
			Path:      c.Request.URL.Path,
			IPAddress: c.ClientIP(),
			SessionID: sessionID,
			UserID:    userID,
			UserAgent: c.Request.UserAgent(),
			Referer:   c.Request.Referer(),
		})
	}
}
