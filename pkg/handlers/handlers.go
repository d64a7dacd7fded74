package handlers

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rockmnakaito-hue/StatsBotCompi/pkg/database"
	"github.com/rockmnakaito-hue/StatsBotCompi/pkg/export"
	"github.com/rockmnakaito-hue/StatsBotCompi/pkg/reconcile"
	"github.com/rockmnakaito-hue/StatsBotCompi/pkg/session"
	"gorm.io/gorm"
)

//go:embed static/*
var staticEmbed embed.FS

// SessionHeader identifies the operator session. The middleware issues a
// fresh id when the client sends none and always echoes it back.
const SessionHeader = "X-Session-ID"

// Handler contains dependencies for the route handlers
type Handler struct {
	DB       *gorm.DB
	Sessions *session.Store
}

// SessionMiddleware resolves the operator session for the request.
func (h *Handler) SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(SessionHeader, id)
		c.Set("session", h.Sessions.Get(id))
		c.Next()
	}
}

func (h *Handler) session(c *gin.Context) *session.Session {
	return c.MustGet("session").(*session.Session)
}

// Stats runs the full reconciliation pass for the requested date and
// returns a per-shift summary plus the matching log. Re-posting the date
// already loaded leaves manual reassignments untouched.
func (h *Handler) Stats(c *gin.Context) {
	var req struct {
		Date string `json:"date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	sess := h.session(c)
	if sess.Activity == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "activity table is required, upload it first"})
		return
	}

	schedule, err := database.LoadTable(h.DB, database.ScheduleTable)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load cached schedule"})
		return
	}
	if schedule.IsEmpty() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no schedule uploaded"})
		return
	}
	mapping, err := database.LoadTable(h.DB, database.NameMapTable)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load cached name mapping"})
		return
	}

	if err := sess.SelectDate(date, schedule, mapping); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shifts := make([]gin.H, 0, len(sess.Buckets))
	for _, b := range sess.Buckets {
		shifts = append(shifts, gin.H{
			"label": b.Label,
			"rows":  b.Table.Len(),
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"date":   req.Date,
		"shifts": shifts,
		"log":    sess.Log,
	})
}

// Orphans returns the unassigned-activity candidates above the threshold.
func (h *Handler) Orphans(c *gin.Context) {
	threshold, ok := parseThreshold(c)
	if !ok {
		return
	}

	sess := h.session(c)
	candidates, err := sess.Orphans(threshold)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"threshold":  threshold,
		"count":      candidates.Len(),
		"columns":    candidates.Columns,
		"candidates": candidates.Rows,
	})
}

// Reassign folds the selected candidate keys into the target shift.
func (h *Handler) Reassign(c *gin.Context) {
	var req struct {
		Keys        []string `json:"keys"`
		TargetShift string   `json:"target_shift"`
		Threshold   *float64 `json:"threshold"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Keys) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "keys is required"})
		return
	}
	if reconcile.Normalize(req.TargetShift) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target_shift is required"})
		return
	}

	threshold := float64(reconcile.DefaultThresholdMinutes)
	if req.Threshold != nil {
		threshold = *req.Threshold
		if threshold < reconcile.MinThresholdMinutes || threshold > reconcile.MaxThresholdMinutes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "threshold must be between 1 and 1440"})
			return
		}
	}

	sess := h.session(c)
	appended, err := sess.Reassign(req.Keys, req.TargetShift, threshold)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"log": appended})
}

// Logs returns the full ordered log for the current date session.
func (h *Handler) Logs(c *gin.Context) {
	sess := h.session(c)
	log := sess.Log
	if log == nil {
		log = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"log": log})
}

// Export streams the current shift buckets as an XLSX workbook.
func (h *Handler) Export(c *gin.Context) {
	sess := h.session(c)
	if sess.Activity == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "activity table is required, upload it first"})
		return
	}

	workbook, err := export.Workbook(sess.Buckets, sess.Activity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build workbook"})
		return
	}

	filename := "stats_por_turno.xlsx"
	if sess.HasDate {
		filename = fmt.Sprintf("stats_por_turno_%s.xlsx", sess.Date.Format("2006-01-02"))
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if _, err := workbook.WriteTo(c.Writer); err != nil {
		// Headers are already out; nothing sensible left to send.
		_ = c.Error(err)
	}
}

func parseThreshold(c *gin.Context) (float64, bool) {
	raw := c.Query("threshold")
	if raw == "" {
		return reconcile.DefaultThresholdMinutes, true
	}
	threshold, err := strconv.ParseFloat(raw, 64)
	if err != nil || threshold < reconcile.MinThresholdMinutes || threshold > reconcile.MaxThresholdMinutes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "threshold must be between 1 and 1440"})
		return 0, false
	}
	return threshold, true
}

// OperatorInterface serves the operator web page from embedded files
func (h *Handler) OperatorInterface(c *gin.Context) {
	data, err := staticEmbed.ReadFile("static/index.html")
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "static/index.html not found in embedded FS"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", data)
}

// GetStaticFS returns the embedded filesystem for static assets
func (h *Handler) GetStaticFS() http.FileSystem {
	sub, err := fs.Sub(staticEmbed, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
