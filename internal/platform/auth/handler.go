package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"equipment-backend/internal/platform/apierr"
	"equipment-backend/internal/platform/validation"
)

type Handler struct{ svc *Service }

// RegisterRoutes mounts POST /auth and the /users resource under r.
func RegisterRoutes(r *gin.RouterGroup, svc *Service, g Guards) {
	h := &Handler{svc: svc}

	r.POST("/auth", h.Login)

	users := r.Group("/users")
	_, authed, admin := g.Groups(users)
	authed.GET("/me", h.Me)
	admin.GET("", h.List)
	admin.GET("/:id", h.Get)
	admin.POST("", h.Create)
	admin.PUT("/:id", h.Update)
	admin.DELETE("/:id", h.Delete)
}

// POST /auth
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !validation.BindJSON(c, &req) {
		return
	}
	token, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		apierr.Write(c, err)
		return
	}
	c.Header(TokenHeader, token)
	c.JSON(http.StatusOK, LoginResponse{Token: token})
}

// GET /users/me
func (h *Handler) Me(c *gin.Context) {
	id, _ := CurrentIdentity(c)
	res, err := h.svc.Me(c.Request.Context(), id.ID)
	if err != nil {
		apierr.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
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
	var req CreateUserRequest
	if !validation.BindJSON(c, &req) {
		return
	}
	res, token, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		apierr.Write(c, err)
		return
	}
	c.Header(TokenHeader, token)
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := validation.PathID(c)
	if !ok {
		return
	}
	var req UpdateUserRequest
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
