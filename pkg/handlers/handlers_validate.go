package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rockmnakaito-hue/StatsBotCompi/pkg/database"
)

// ValidateState reports whether every input the reconciliation pass needs
// is in place, and what is missing if not.
func (h *Handler) ValidateState(c *gin.Context) {
	var missing []string

	schedule, err := database.LoadTable(h.DB, database.ScheduleTable)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load cached schedule"})
		return
	}
	if schedule.IsEmpty() {
		missing = append(missing, "schedule")
	}

	mapping, err := database.LoadTable(h.DB, database.NameMapTable)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load cached name mapping"})
		return
	}

	sess := h.session(c)
	if sess.Activity == nil {
		missing = append(missing, "activity")
	}

	if len(missing) > 0 {
		c.JSON(http.StatusOK, gin.H{
			"valid":   false,
			"missing": missing,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"stats": gin.H{
			"schedule_rows": schedule.Len(),
			"mapping_rows":  mapping.Len(),
			"activity_rows": sess.Activity.Len(),
		},
	})
}
