package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stafflow-io/staffing-backend/internal/staffing/domain"
	"github.com/stafflow-io/staffing-backend/internal/staffing/service"
)

type ClientHandler struct {
	clients *service.ClientService
}

func NewClientHandler(clients *service.ClientService) *ClientHandler {
	return &ClientHandler{clients: clients}
}

func (h *ClientHandler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.PATCH("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}

type clientReq struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *ClientHandler) create(c *gin.Context) {
	var req clientReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	out, err := h.clients.Create(c.Request.Context(), &domain.CreateClientRequest{Name: req.Name, Email: req.Email})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "client": out})
}

func (h *ClientHandler) get(c *gin.Context) {
	out, err := h.clients.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "client": out})
}

func (h *ClientHandler) list(c *gin.Context) {
	items, err := h.clients.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "clients": items})
}

type updateClientReq struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func (h *ClientHandler) update(c *gin.Context) {
	var req updateClientReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	out, err := h.clients.Update(c.Request.Context(), c.Param("id"), &domain.UpdateClientRequest{Name: req.Name, Email: req.Email})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "client": out})
}

func (h *ClientHandler) delete(c *gin.Context) {
	out, err := h.clients.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "client": out})
}
