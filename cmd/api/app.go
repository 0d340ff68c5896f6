package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/hugohenrick/connector-agent/internal/adapter/api/controller"
	"github.com/hugohenrick/connector-agent/internal/adapter/api/route"
	"github.com/hugohenrick/connector-agent/internal/adapter/repository"
	"github.com/hugohenrick/connector-agent/internal/config"
	"github.com/hugohenrick/connector-agent/internal/infrastructure/database"
	"github.com/hugohenrick/connector-agent/pkg/agent"
	"github.com/hugohenrick/connector-agent/pkg/agent/intent"
	"github.com/hugohenrick/connector-agent/pkg/agent/resolver"
	agentrouter "github.com/hugohenrick/connector-agent/pkg/agent/router"
	"github.com/hugohenrick/connector-agent/pkg/agent/session"
	"github.com/hugohenrick/connector-agent/pkg/auth"
	"github.com/hugohenrick/connector-agent/pkg/connector"
	"github.com/hugohenrick/connector-agent/pkg/connectors/google"
	"github.com/hugohenrick/connector-agent/pkg/connectors/llm"
	"github.com/hugohenrick/connector-agent/pkg/connectors/microsoft"
	"github.com/hugohenrick/connector-agent/pkg/connectors/shopify"
	"github.com/hugohenrick/connector-agent/pkg/connectors/telegram"
	"github.com/hugohenrick/connector-agent/pkg/history"
	"github.com/hugohenrick/connector-agent/pkg/logger"
	"github.com/hugohenrick/connector-agent/pkg/metrics"
)

// memoryHistoryLimit limita o histórico por sessão sem banco
const memoryHistoryLimit = 200

// App representa a aplicação e suas dependências
type App struct {
	config *config.Config
	logger logger.Logger
	router *gin.Engine
	db     *pgxpool.Pool
}

// NewApp cria uma nova instância do aplicativo
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logger.NewLogger(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.MustNew(reg)

	app := &App{config: cfg, logger: log}

	// Histórico: Postgres quando configurado, memória caso contrário
	repo, err := app.historyRepository(ctx)
	if err != nil {
		return nil, err
	}

	// Conectores
	conn, shop, tg := newConnectors(cfg, log)

	// Pipeline do agente
	parser := intent.NewParser(newNLU(cfg.LLM, log), log,
		intent.WithTimeout(cfg.LLM.Timeout),
		intent.WithObserver(func(s intent.Source) { m.ObserveIntentSource(string(s)) }),
	)
	r := agentrouter.New(conn, log,
		agentrouter.WithLocation(cfg.Location),
		agentrouter.WithResolverCache(resolver.NewCache(cfg.ResolverCacheSize, cfg.ResolverCacheTTL)),
	)
	engine := agent.NewEngine(parser, r, session.NewRegistry(cfg.Location), log,
		agent.WithHistory(repo),
		agent.WithMetrics(m),
	)

	handlers := route.Handlers{
		Agent:     controller.NewAgentController(engine, log),
		Connector: controller.NewConnectorController(shop, tg, log),
	}
	opts := route.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Gatherer:       reg,
		Swagger:        true,
	}

	// Autenticação opcional de operadores
	if cfg.JWTSecretKey != "" {
		jwtService, err := auth.NewJWTService(cfg.JWTSecretKey, time.Duration(cfg.JWTExpirationHours)*time.Hour)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("erro ao configurar JWT: %w", err)
		}
		handlers.Auth = controller.NewAuthController(jwtService)
		opts.JWT = jwtService
	} else {
		log.Warn("JWT_SECRET_KEY não configurada; rotas do agente sem autenticação")
	}

	app.router = route.NewRouter(handlers, opts)
	return app, nil
}

// historyRepository conecta ao banco e aplica as migrações pendentes
func (a *App) historyRepository(ctx context.Context) (history.Repository, error) {
	if a.config.DatabaseURL == "" {
		a.logger.Info("Banco de dados não configurado; histórico em memória")
		return history.NewMemoryRepository(memoryHistoryLimit), nil
	}

	version, err := database.RunMigrations(a.config.DatabaseURL, a.config.MigrationsPath)
	if err != nil {
		return nil, err
	}
	a.logger.Info("Migrações aplicadas", "version", version)

	db, err := database.NewPostgresDB(ctx, a.config.DatabaseURL, database.DefaultPoolConfig())
	if err != nil {
		return nil, err
	}
	a.db = db
	return repository.NewInteractionRepository(db), nil
}

// newConnectors cria os adaptadores REST. Google usa o token do servidor;
// os demais recebem as credenciais em cada requisição.
func newConnectors(cfg *config.Config, log logger.Logger) (connector.Set, *shopify.Client, *telegram.Client) {
	httpClient := &http.Client{Timeout: cfg.HTTPClientTimeout}

	var tokens google.TokenSource = google.StaticToken(cfg.GoogleAccessToken)
	if cfg.GoogleTokenFile != "" {
		tokens = google.NewFileTokenSource(cfg.GoogleTokenFile)
	}

	shop := shopify.New(log, cfg.HTTPClientTimeout)
	tg := telegram.New("", log, cfg.HTTPClientTimeout)

	set := connector.Set{
		Shopify:  shop,
		Telegram: tg,
	}
	google.New(tokens, log, google.WithHTTPClient(httpClient)).Bind(&set)
	microsoft.New(log, microsoft.WithHTTPClient(httpClient), microsoft.WithLocation(cfg.Location)).Bind(&set)

	return set, shop, tg
}

// newNLU escolhe o provedor de LLM. Sem chave o parser usa só o fallback.
func newNLU(cfg config.LLMConfig, log logger.Logger) connector.NLU {
	switch cfg.Provider {
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			log.Warn("ANTHROPIC_API_KEY não configurada; usando parser por palavras-chave")
			return nil
		}
		return llm.NewAnthropic(cfg.AnthropicAPIKey, cfg.AnthropicModel, "", log, cfg.Timeout)
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			log.Warn("OPENAI_API_KEY não configurada; usando parser por palavras-chave")
			return nil
		}
		return llm.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel, "", log, cfg.Timeout)
	case "none", "":
		return nil
	default:
		log.Warn("LLM_PROVIDER desconhecido; usando parser por palavras-chave", "provider", cfg.Provider)
		return nil
	}
}

// Start inicia o servidor e bloqueia até SIGINT ou SIGTERM
func (a *App) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              ":" + a.config.Port,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Servidor iniciado", "port", a.config.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("erro ao iniciar servidor: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("Encerrando servidor")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("erro ao encerrar servidor: %w", err)
	}
	return nil
}

// GetRouter retorna o router da aplicação
func (a *App) GetRouter() *gin.Engine {
	return a.router
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}
