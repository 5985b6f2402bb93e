package v1

import (
	"github.com/centavo-app/backend/internal/httputil"
	"github.com/gin-gonic/gin"
)

// requestHost is the base URL for link generation.
func requestHost(c *gin.Context) string {
	return httputil.RequestHost(c)
}
