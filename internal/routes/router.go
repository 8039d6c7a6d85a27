package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/DiChris2901/Dr-Group-sub015/internal/handlers"
	"github.com/DiChris2901/Dr-Group-sub015/internal/middleware"
)

// SetupRouter builds the full route tree: public auth routes plus the
// authenticated API group.
func SetupRouter() *gin.Engine {
	r := gin.Default()

	// Public routes.
	r.POST("/login", handlers.LoginHandler)
	r.POST("/register", handlers.RegisterHandler)

	// Everything else requires a valid token.
	authorized := r.Group("/")
	authorized.Use(middleware.AuthMiddleware())
	{
		authorized.GET("/logout", handlers.LogoutHandler)
		RegisterAPIRoutes(authorized)
	}

	return r
}
