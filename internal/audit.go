package internal

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// auditActor names the caller for the audit trail. Several privileged
// routes carry no guard, so a missing identity gets a sentinel rather
// than a blank actor column.
func auditActor(c *gin.Context) string {
	if email := callerEmail(c); email != "" {
		return email
	}
	return "anonymous"
}

// GET /logs — admin-gated view of recent privileged mutations.
func RecentLogs(s *Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := s.Audit.Recent(c.Request.Context(), 200)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "store error"})
			return
		}
		c.JSON(http.StatusOK, entries)
	}
}
