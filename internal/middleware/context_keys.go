package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/kvyts/library_lending_app/internal/core/domain"
)

// requesterCtxKey is the key used to store the authenticated requester in the
// request context. Using a custom type prevents collisions.
const requesterCtxKey = contextKey("requester")

// GetRequesterFromContext retrieves the authenticated requester from the Gin
// context. It returns the requester and a boolean indicating if it was found.
func GetRequesterFromContext(c *gin.Context) (domain.Requester, bool) {
	return GetRequesterFromCtx(c.Request.Context())
}

// GetRequesterFromCtx is the standard-context variant of GetRequesterFromContext.
func GetRequesterFromCtx(ctx context.Context) (domain.Requester, bool) {
	requester, ok := ctx.Value(requesterCtxKey).(domain.Requester)
	return requester, ok
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	requester, ok := GetRequesterFromContext(c)
	if !ok {
		return "", false
	}
	return requester.UserID, true
}
