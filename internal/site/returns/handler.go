package returns

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"equipment-backend/internal/platform/apierr"
	"equipment-backend/internal/platform/validation"
)

type Handler struct{ svc *Service }

// Returns need no token.
func RegisterRoutes(r *gin.RouterGroup, svc *Service) {
	h := &Handler{svc: svc}
	g := r.Group("/returns")

	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
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
	var req ReturnRequest
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
