package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stafflow-io/staffing-backend/internal/staffing/domain"
	"github.com/stafflow-io/staffing-backend/internal/staffing/service"
)

type ProjectHandler struct {
	projects *service.ProjectService
	tasks    *service.TaskService
}

func NewProjectHandler(projects *service.ProjectService, tasks *service.TaskService) *ProjectHandler {
	return &ProjectHandler{projects: projects, tasks: tasks}
}

func (h *ProjectHandler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.PATCH("/:id", h.update)
	rg.DELETE("/:id", h.delete)
	rg.POST("/:id/tasks", h.createTask)
	rg.GET("/:id/tasks", h.listTasks)
}

// RegisterTasks attaches the task routes that are not project-scoped.
func (h *ProjectHandler) RegisterTasks(rg *gin.RouterGroup) {
	rg.GET("/:id", h.getTask)
	rg.PATCH("/:id", h.updateTask)
	rg.DELETE("/:id", h.deleteTask)
}

type projectReq struct {
	ClientID string `json:"client_id"`
	Name     string `json:"name"`
}

func (h *ProjectHandler) create(c *gin.Context) {
	var req projectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	out, err := h.projects.Create(c.Request.Context(), &domain.CreateProjectRequest{ClientID: req.ClientID, Name: req.Name})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": out})
}

func (h *ProjectHandler) get(c *gin.Context) {
	out, err := h.projects.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": out})
}

func (h *ProjectHandler) list(c *gin.Context) {
	items, err := h.projects.List(c.Request.Context(), c.Query("client_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

type updateProjectReq struct {
	Name *string `json:"name"`
}

func (h *ProjectHandler) update(c *gin.Context) {
	var req updateProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	out, err := h.projects.Update(c.Request.Context(), c.Param("id"), &domain.UpdateProjectRequest{Name: req.Name})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": out})
}

func (h *ProjectHandler) delete(c *gin.Context) {
	out, err := h.projects.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": out})
}

type taskReq struct {
	Name string `json:"name"`
}

func (h *ProjectHandler) createTask(c *gin.Context) {
	var req taskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	out, err := h.tasks.Create(c.Request.Context(), &domain.CreateTaskRequest{ProjectID: c.Param("id"), Name: req.Name})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "task": out})
}

func (h *ProjectHandler) listTasks(c *gin.Context) {
	items, err := h.tasks.ListByProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "tasks": items})
}

func (h *ProjectHandler) getTask(c *gin.Context) {
	out, err := h.tasks.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "task": out})
}

type updateTaskReq struct {
	Name *string `json:"name"`
}

func (h *ProjectHandler) updateTask(c *gin.Context) {
	var req updateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	out, err := h.tasks.Update(c.Request.Context(), c.Param("id"), &domain.UpdateTaskRequest{Name: req.Name})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "task": out})
}

func (h *ProjectHandler) deleteTask(c *gin.Context) {
	out, err := h.tasks.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "task": out})
}
