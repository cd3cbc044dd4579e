package salaryreports

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"equipment-backend/internal/labor/exports"
	"equipment-backend/internal/platform/apierr"
	"equipment-backend/internal/platform/auth"
	"equipment-backend/internal/platform/validation"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r *gin.RouterGroup, svc *Service, g auth.Guards) {
	h := &Handler{svc: svc}
	_, authed, admin := g.Groups(r.Group("/salaryreports"))

	admin.GET("", h.List)
	admin.GET("/:id", h.Get)
	admin.GET("/:id/export", h.Export)
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

// GET /salaryreports/:id/export?charset=utf-8|windows-1252|iso-8859-1|shift_jis
func (h *Handler) Export(c *gin.Context) {
	id, ok := validation.PathID(c)
	if !ok {
		return
	}
	cs, err := exports.LookupCharset(c.Query("charset"))
	if err != nil {
		apierr.Write(c, err)
		return
	}
	// バッファしてから返す（途中で失敗しても JSON エラーを返せるように）
	var buf bytes.Buffer
	if err := h.svc.Export(c.Request.Context(), id, &buf, cs); err != nil {
		apierr.Write(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="salary-report-%s.csv"`, id))
	c.Data(http.StatusOK, cs.ContentType(), buf.Bytes())
}

func (h *Handler) Create(c *gin.Context) {
	var req SalaryReportRequest
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
	var req SalaryReportRequest
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
