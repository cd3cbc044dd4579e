package dailyreports

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"equipment-backend/internal/platform/apierr"
	"equipment-backend/internal/platform/auth"
	"equipment-backend/internal/platform/validation"
)

type Handler struct{ svc *Service }

// Any signed-in worker files a report; reading and editing is for admins.
func RegisterRoutes(r *gin.RouterGroup, svc *Service, g auth.Guards) {
	h := &Handler{svc: svc}
	_, authed, admin := g.Groups(r.Group("/dailyreports"))

	admin.GET("", h.List)
	admin.GET("/:id", h.Get)
	authed.POST("", h.Create)
	admin.PUT("/:id", h.Update)
	admin.DELETE("/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	res, err := h.svc.List(c.Request.Context())
	if err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := validation.PathID(c)
	if !ok {
		return
	}
	res, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Create(c *gin.Context) {
	var req DailyReportRequest
	if !validation.BindJSON(c, &req) {
		return
	}
	res, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := validation.PathID(c)
	if !ok {
		return
	}
	var req DailyReportRequest
	if !validation.BindJSON(c, &req) {
		return
	}
	res, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := validation.PathID(c)
	if !ok {
		return
	}
	res, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
