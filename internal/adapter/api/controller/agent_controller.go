package controller

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/connector-agent/internal/adapter/api/dto"
	"github.com/hugohenrick/connector-agent/pkg/agent"
	"github.com/hugohenrick/connector-agent/pkg/agent/intent"
	"github.com/hugohenrick/connector-agent/pkg/auth"
	"github.com/hugohenrick/connector-agent/pkg/history"
	"github.com/hugohenrick/connector-agent/pkg/logger"
	"github.com/hugohenrick/connector-agent/pkg/tenant"
)

// OperationIDHeader devolve ao cliente o ID da operação
const OperationIDHeader = "X-Operation-ID"

// Agent é o subconjunto do agent.Engine usado pelo controller
type Agent interface {
	HandleQuery(ctx context.Context, q agent.Query) (intent.ActionResponse, string)
	History(ctx context.Context, key string, limit, offset int) ([]history.Interaction, int, error)
	ClearHistory(ctx context.Context, key string) error
}

// AgentController atende as consultas em texto livre
type AgentController struct {
	agent  Agent
	logger logger.Logger
}

// NewAgentController cria uma nova instância de AgentController
func NewAgentController(a Agent, log logger.Logger) *AgentController {
	return &AgentController{
		agent:  a,
		logger: log,
	}
}

// Query godoc
// @Summary Interpreta e executa uma consulta
// @Description Converte o texto em uma ação, executa no conector correspondente e devolve {action, message, data}
// @Tags agent
// @Accept json
// @Produce json
// @Param query body dto.QueryRequest true "Consulta e credenciais"
// @Success 200 {object} intent.ActionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /agent/query [post]
func (c *AgentController) Query(ctx *gin.Context) {
	var req dto.QueryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", "query is required"))
		return
	}

	resp, operationID := c.agent.HandleQuery(ctx.Request.Context(), agent.Query{
		Text:        req.Query,
		SessionKey:  tenant.SessionKey(ctx, req.SessionID),
		Credentials: req.Credentials(),
	})

	if op, ok := auth.GetCurrentOperator(ctx); ok {
		c.logger.Debug("Consulta de operador autenticado",
			"operation_id", operationID,
			"user_id", op.UserID,
			"tenant_id", op.TenantID,
			"role", op.Role,
		)
	}

	ctx.Header(OperationIDHeader, operationID)
	ctx.JSON(http.StatusOK, resp)
}

// GetHistory godoc
// @Summary Histórico da sessão
// @Description Lista as consultas atendidas na sessão, mais recentes primeiro
// @Tags agent
// @Produce json
// @Param page query int false "Página"
// @Param pageSize query int false "Itens por página"
// @Param sessionId query string false "ID da sessão quando não há autenticação"
// @Success 200 {object} dto.HistoryResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /agent/history [get]
func (c *AgentController) GetHistory(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("pageSize", "20"))
	pagination := dto.GetPagination(page, pageSize)

	key := tenant.SessionKey(ctx, ctx.Query("sessionId"))
	items, total, err := c.agent.History(ctx.Request.Context(), key, pagination.PageSize, pagination.Offset())
	if err != nil {
		c.logger.Error("Erro ao listar histórico", "session", key, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar histórico", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewHistoryResponse(items, total, pagination))
}

// DeleteHistory godoc
// @Summary Apaga o histórico da sessão
// @Tags agent
// @Produce json
// @Param sessionId query string false "ID da sessão quando não há autenticação"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /agent/history [delete]
func (c *AgentController) DeleteHistory(ctx *gin.Context) {
	key := tenant.SessionKey(ctx, ctx.Query("sessionId"))
	if err := c.agent.ClearHistory(ctx.Request.Context(), key); err != nil {
		if errors.Is(err, history.ErrNoHistory) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Histórico não encontrado", err.Error()))
			return
		}
		c.logger.Error("Erro ao apagar histórico", "session", key, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao apagar histórico", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Chat history deleted successfully", nil))
}
