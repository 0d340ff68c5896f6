package route

import (
	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/connector-agent/internal/adapter/api/controller"
)

// SetupAuthRoutes configura as rotas para autenticação
func SetupAuthRoutes(router *gin.RouterGroup, authController *controller.AuthController) {
	authRouter := router.Group("/auth")
	{
		// Não requer autenticação: o próprio token, mesmo expirado, é a credencial
		authRouter.POST("/refresh", authController.RefreshToken)
	}
}
