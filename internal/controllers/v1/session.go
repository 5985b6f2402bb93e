package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionUserKey is the gin context key the session middleware stores
// the authenticated user ID under.
const SessionUserKey = "centavo-user-id"

// currentUser returns the authenticated user ID, if any. Identity is
// managed outside of this backend, the router middleware only extracts
// the ID from the request.
func currentUser(c *gin.Context) (string, bool) {
	userID := c.GetString(SessionUserKey)
	return userID, userID != ""
}

// requireUser returns the authenticated user ID or answers the request
// with 401. Reads degrade to empty results without a session, writes
// are rejected before any storage call is issued.
func requireUser(c *gin.Context) (string, bool) {
	userID, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httpError{
			Error: errNoSession.Error(),
		})
	}

	return userID, ok
}
