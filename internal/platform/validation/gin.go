package validation

import (
	"github.com/gin-gonic/gin"

	"equipment-backend/internal/platform/apierr"
)

// BindJSON decodes the request body into req and validates it. On failure it
// writes the error response and returns false.
func BindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		apierr.Write(c, apierr.ErrInvalid("invalid json"))
		return false
	}
	if err := Struct(req); err != nil {
		apierr.Write(c, err)
		return false
	}
	return true
}

// PathID returns the :id parameter, or writes 400 and returns false when it is
// not a well-formed identifier.
func PathID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if err := ID(id); err != nil {
		apierr.Write(c, err)
		return "", false
	}
	return id, true
}
