package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stafflow-io/staffing-backend/internal/staffing/domain"
	"github.com/stafflow-io/staffing-backend/internal/staffing/service"
)

// AssignmentHandler exposes the assignment use case over REST.
type AssignmentHandler struct {
	assignments *service.AssignmentService
}

func NewAssignmentHandler(assignments *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments}
}

// Register attaches assignment routes to the given router group.
func (h *AssignmentHandler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.PATCH("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}

type createAssignmentReq struct {
	ConsultantID string `json:"consultant_id"`
	TeamID       string `json:"team_id"`
	RoleID       string `json:"role_id"`
	Dedication   int    `json:"dedication"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
}

func (h *AssignmentHandler) create(c *gin.Context) {
	var req createAssignmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	out, err := h.assignments.Create(c.Request.Context(), &domain.CreateAssignmentRequest{
		ConsultantID: req.ConsultantID,
		TeamID:       req.TeamID,
		RoleID:       req.RoleID,
		Dedication:   req.Dedication,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "assignment": out})
}

func (h *AssignmentHandler) get(c *gin.Context) {
	out, err := h.assignments.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "assignment": out})
}

func (h *AssignmentHandler) list(c *gin.Context) {
	teamID := c.Query("team_id")
	consultantID := c.Query("consultant_id")

	var (
		items []domain.Assignment
		err   error
	)
	switch {
	case teamID != "":
		items, err = h.assignments.ListByTeam(c.Request.Context(), teamID)
	case consultantID != "":
		items, err = h.assignments.ListByConsultant(c.Request.Context(), consultantID)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "team_id or consultant_id is required"})
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "assignments": items})
}

type updateAssignmentReq struct {
	RoleID     *string `json:"role_id"`
	Dedication *int    `json:"dedication"`
	StartDate  *string `json:"start_date"`
	EndDate    *string `json:"end_date"`
}

func (h *AssignmentHandler) update(c *gin.Context) {
	var req updateAssignmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	out, err := h.assignments.Update(c.Request.Context(), c.Param("id"), &domain.UpdateAssignmentRequest{
		RoleID:     req.RoleID,
		Dedication: req.Dedication,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "assignment": out})
}

func (h *AssignmentHandler) delete(c *gin.Context) {
	out, err := h.assignments.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "assignment": out})
}
