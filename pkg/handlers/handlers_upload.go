package handlers

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rockmnakaito-hue/StatsBotCompi/pkg/database"
	"github.com/rockmnakaito-hue/StatsBotCompi/pkg/models"
	"github.com/rockmnakaito-hue/StatsBotCompi/pkg/reconcile"
	"github.com/rockmnakaito-hue/StatsBotCompi/pkg/table"
)

// UploadSchedule ingests the weekly schedule CSV and caches it. The Date
// column is coerced at upload time: rows whose date does not parse are
// reported but kept — the partitioner drops them per date selection.
func (h *Handler) UploadSchedule(c *gin.Context) {
	t, ok := h.readUpload(c)
	if !ok {
		return
	}
	if err := table.RequireColumns(t, reconcile.ColDate, reconcile.ColShiftTitle, reconcile.ColUsers); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	invalidDates := 0
	for _, row := range t.Rows {
		if _, ok := table.ParseDate(row[reconcile.ColDate]); !ok {
			invalidDates++
		}
	}

	if err := database.SaveTable(h.DB, database.ScheduleTable, t); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not cache schedule"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       "horario semanal actualizado",
		"rows":          t.Len(),
		"invalid_dates": invalidDates,
	})
}

// UploadMappings ingests the operator-maintained name translation table
// (XLSX in practice, CSV accepted) and caches it.
func (h *Handler) UploadMappings(c *gin.Context) {
	t, ok := h.readUpload(c)
	if !ok {
		return
	}
	err := table.RequireColumns(t,
		reconcile.ColNombre, reconcile.ColApellido,
		reconcile.ColNombreLive, reconcile.ColApellidoLive)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if err := database.SaveTable(h.DB, database.NameMapTable, t); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not cache name mapping"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "traducción de nombres actualizada",
		"rows":    t.Len(),
		"mapped":  reconcile.BuildTranslationTable(t).Len(),
	})
}

// UploadActivity ingests the activity stats export into the session. It is
// not cached across sessions; a new upload resets the date-scoped state.
func (h *Handler) UploadActivity(c *gin.Context) {
	t, ok := h.readUpload(c)
	if !ok {
		return
	}
	if err := table.RequireColumns(t, reconcile.ColFirstName, reconcile.ColLastName); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	sess := h.session(c)
	sess.SetActivity(t)
	c.JSON(http.StatusOK, gin.H{
		"message": "stats de LiveAgent cargados",
		"rows":    t.Len(),
		"columns": t.Columns,
	})
}

// Dates lists the distinct calendar dates present in the cached schedule,
// in first-appearance order, for the operator's date picker.
func (h *Handler) Dates(c *gin.Context) {
	schedule, err := database.LoadTable(h.DB, database.ScheduleTable)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load cached schedule"})
		return
	}
	if schedule.IsEmpty() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no schedule uploaded"})
		return
	}

	dates := []string{}
	for _, d := range reconcile.Dates(schedule) {
		dates = append(dates, d.Format("2006-01-02"))
	}
	c.JSON(http.StatusOK, gin.H{"dates": dates})
}

func (h *Handler) readUpload(c *gin.Context) (*models.Table, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return nil, false
	}

	var file multipart.File
	file, err = fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open uploaded file"})
		return nil, false
	}
	defer file.Close()

	t, err := table.ReadUpload(file, fileHeader.Filename)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return t, true
}
