package route

import (
	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/connector-agent/internal/adapter/api/controller"
	"github.com/hugohenrick/connector-agent/pkg/auth"
	"github.com/hugohenrick/connector-agent/pkg/tenant"
)

// SetupAgentRoutes configura as rotas do agente. Com jwt nil as rotas
// ficam abertas e a sessão vem do sessionId ou do cabeçalho X-Session-ID.
func SetupAgentRoutes(router *gin.RouterGroup, agentController *controller.AgentController, jwt *auth.JWTService) {
	agentGroup := router.Group("/agent")
	if jwt != nil {
		agentGroup.Use(auth.JWTAuthMiddleware(jwt)) // Primeiro autenticação JWT
	}
	agentGroup.Use(tenant.SessionMiddleware()) // Depois chave de sessão
	{
		agentGroup.POST("/query", agentController.Query)
		agentGroup.GET("/history", agentController.GetHistory)
		agentGroup.DELETE("/history", agentController.DeleteHistory)
	}
}

// SetupConnectorRoutes configura a validação de credenciais dos conectores
func SetupConnectorRoutes(router *gin.RouterGroup, connectorController *controller.ConnectorController) {
	connectorGroup := router.Group("/connectors")
	{
		connectorGroup.POST("/shopify/verify", connectorController.VerifyShopify)
		connectorGroup.POST("/telegram/verify", connectorController.VerifyTelegram)
	}
}
