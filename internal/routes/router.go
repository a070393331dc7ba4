// igp-generator/internal/routes/router.go
package routes

import (
	"github.com/SinSayWu/igp-generator-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes собирает полный роутер: публичная аутентификация и
// защищенное API под общим AuthMiddleware.
func SetupRoutes(r *gin.Engine) {
	RegisterAuthRoutes(r)

	authRequired := r.Group("/")
	authRequired.Use(middleware.AuthMiddleware())
	RegisterAPIRoutes(authRequired)
}
