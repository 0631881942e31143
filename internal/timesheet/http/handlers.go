package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	staffing "github.com/stafflow-io/staffing-backend/internal/staffing/domain"
	"github.com/stafflow-io/staffing-backend/internal/timesheet/domain"
	"github.com/stafflow-io/staffing-backend/internal/timesheet/service"
)

// Handler exposes timesheet entries over REST.
type Handler struct {
	timesheets *service.TimesheetService
}

func New(timesheets *service.TimesheetService) *Handler {
	return &Handler{timesheets: timesheets}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.PATCH("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}

type createEntryReq struct {
	ConsultantID string  `json:"consultant_id"`
	TaskID       string  `json:"task_id"`
	WorkDate     string  `json:"work_date"`
	Hours        float64 `json:"hours"`
	Note         string  `json:"note"`
}

func (h *Handler) create(c *gin.Context) {
	var req createEntryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	out, err := h.timesheets.Create(c.Request.Context(), &domain.CreateEntryRequest{
		ConsultantID: req.ConsultantID,
		TaskID:       req.TaskID,
		WorkDate:     req.WorkDate,
		Hours:        req.Hours,
		Note:         req.Note,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "entry": out})
}

func (h *Handler) get(c *gin.Context) {
	out, err := h.timesheets.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "entry": out})
}

func (h *Handler) list(c *gin.Context) {
	consultantID := c.Query("consultant_id")
	if consultantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "consultant_id is required"})
		return
	}

	items, err := h.timesheets.ListByConsultant(c.Request.Context(), consultantID, c.Query("from"), c.Query("to"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "entries": items})
}

type updateEntryReq struct {
	WorkDate *string  `json:"work_date"`
	Hours    *float64 `json:"hours"`
	Note     *string  `json:"note"`
}

func (h *Handler) update(c *gin.Context) {
	var req updateEntryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	out, err := h.timesheets.Update(c.Request.Context(), c.Param("id"), &domain.UpdateEntryRequest{
		WorkDate: req.WorkDate,
		Hours:    req.Hours,
		Note:     req.Note,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "entry": out})
}

func (h *Handler) delete(c *gin.Context) {
	out, err := h.timesheets.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "entry": out})
}

func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, staffing.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, staffing.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, staffing.ErrInvalid):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"ok": false, "error": err.Error()})
}
