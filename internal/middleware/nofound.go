// Package middleware holds the gin middleware chain of the public
// router.
package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/notehub/note-hub-service/pkg/app"
	"github.com/notehub/note-hub-service/pkg/code"
)

// NoFound answers unmatched routes with the unified envelope.
func NoFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		response := app.NewResponse(c)
		response.ToResponse(code.ErrorNotFound)
		c.Abort()
	}
}
