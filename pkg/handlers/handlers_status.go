package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetStatus returns the current state of the operator session: which date
// is loaded, the shift buckets and their sizes, and how long the log is.
func (h *Handler) GetStatus(c *gin.Context) {
	sess := h.session(c)

	shifts := make([]gin.H, 0, len(sess.Buckets))
	totalRows := 0
	for _, b := range sess.Buckets {
		shifts = append(shifts, gin.H{
			"label": b.Label,
			"rows":  b.Table.Len(),
		})
		totalRows += b.Table.Len()
	}

	status := gin.H{
		"session_id":      sess.ID,
		"activity_loaded": sess.Activity != nil,
		"date_selected":   sess.HasDate,
		"shifts":          shifts,
		"log_entries":     len(sess.Log),
		"totals": gin.H{
			"shifts": len(sess.Buckets),
			"rows":   totalRows,
		},
	}
	if sess.HasDate {
		status["date"] = sess.Date.Format("2006-01-02")
	}

	c.JSON(http.StatusOK, status)
}
