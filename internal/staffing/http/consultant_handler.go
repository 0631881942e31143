package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stafflow-io/staffing-backend/internal/staffing/domain"
	"github.com/stafflow-io/staffing-backend/internal/staffing/service"
)

type ConsultantHandler struct {
	consultants *service.ConsultantService
}

func NewConsultantHandler(consultants *service.ConsultantService) *ConsultantHandler {
	return &ConsultantHandler{consultants: consultants}
}

func (h *ConsultantHandler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.PATCH("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}

type createConsultantReq struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

func (h *ConsultantHandler) create(c *gin.Context) {
	var req createConsultantReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	out, err := h.consultants.Create(c.Request.Context(), &domain.CreateConsultantRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "consultant": out})
}

func (h *ConsultantHandler) get(c *gin.Context) {
	out, err := h.consultants.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "consultant": out})
}

func (h *ConsultantHandler) list(c *gin.Context) {
	items, err := h.consultants.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "consultants": items})
}

type updateConsultantReq struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
}

func (h *ConsultantHandler) update(c *gin.Context) {
	var req updateConsultantReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	out, err := h.consultants.Update(c.Request.Context(), c.Param("id"), &domain.UpdateConsultantRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "consultant": out})
}

func (h *ConsultantHandler) delete(c *gin.Context) {
	out, err := h.consultants.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "consultant": out})
}
