package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/notehub/note-hub-service/pkg/app"
)

// AppInfo exposes the service identity to handlers.
func AppInfo(name, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("app_name", name)
		c.Set("app_version", version)
		c.Set("access_host", app.GetAccessHost(c))

		c.Next()
	}
}
