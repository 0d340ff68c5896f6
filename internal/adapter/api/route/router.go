package route

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/hugohenrick/connector-agent/internal/adapter/api/controller"
	"github.com/hugohenrick/connector-agent/internal/adapter/api/dto"
	"github.com/hugohenrick/connector-agent/pkg/auth"
	"github.com/hugohenrick/connector-agent/pkg/tenant"
)

// BasePath é o prefixo das rotas da API
const BasePath = "/api/v1"

// Version é informada pelo health check
const Version = "1.0.0"

// Handlers reúne os controllers expostos pela API. Auth nil desativa /auth.
type Handlers struct {
	Agent     *controller.AgentController
	Connector *controller.ConnectorController
	Auth      *controller.AuthController
}

// Options configura os middlewares globais
type Options struct {
	AllowedOrigins []string
	// JWT nil deixa as rotas do agente sem autenticação
	JWT *auth.JWTService
	// Gatherer nil desativa /metrics
	Gatherer prometheus.Gatherer
	// Swagger habilita /swagger/*any
	Swagger bool
}

// NewRouter monta o gin.Engine com todas as rotas da aplicação
func NewRouter(h Handlers, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(cors.New(corsConfig(opts.AllowedOrigins)))

	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, dto.NewErrorResponse(http.StatusMethodNotAllowed, "Método não permitido", c.Request.Method+" "+c.Request.URL.Path))
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Rota não encontrada", c.Request.URL.Path))
	})

	if opts.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}
	if opts.Swagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := router.Group(BasePath)

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": Version,
		})
	})

	SetupAgentRoutes(api, h.Agent, opts.JWT)
	SetupConnectorRoutes(api, h.Connector)
	if h.Auth != nil {
		SetupAuthRoutes(api, h.Auth)
	}

	return router
}

// corsConfig libera todas as origens quando a lista é vazia ou contém "*"
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", tenant.SessionHeader},
		ExposeHeaders: []string{controller.OperationIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
