package router

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/centavo-app/backend/internal/controllers/v1"
)

// SessionMiddleware resolves the acting user from the X-User-ID
// header. Requests without the header stay anonymous: reads answer
// with empty data and writes are rejected by the controllers.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := c.GetHeader("X-User-ID"); userID != "" {
			c.Set(v1.SessionUserKey, userID)
		}
	}
}
