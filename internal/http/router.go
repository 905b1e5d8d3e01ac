package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/Shaxzodbek16/clot/internal/http/handlers"
	"github.com/Shaxzodbek16/clot/internal/http/middleware"
)

func BuildRouter(ah *handlers.AuthHandlers, uh *handlers.UserHandlers, jwtmw *middleware.AuthMW, cb *middleware.CasbinMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Single dispatch surface over the closed action set. Actions that need
	// authentication (logout, logout_all) validate the bearer token inside
	// the handler.
	r.POST("/auth/:action", ah.Dispatch)

	users := r.Group("/users").Use(jwtmw.WithJWT(), cb.Enforce())
	users.GET("", uh.List)
	users.GET("/:slug", uh.Get)
	users.PUT("/:slug", uh.Update)
	users.PATCH("/:slug", uh.Update)
	users.DELETE("/:slug", uh.Delete)

	return r
}
