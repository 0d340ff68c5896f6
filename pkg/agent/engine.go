// Package agent conecta o parser de intenções, o contexto de sessão e o router
// em uma única operação: texto livre entra, envelope {action, message, data} sai.
package agent

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hugohenrick/connector-agent/pkg/agent/intent"
	"github.com/hugohenrick/connector-agent/pkg/agent/router"
	"github.com/hugohenrick/connector-agent/pkg/agent/session"
	"github.com/hugohenrick/connector-agent/pkg/connector"
	"github.com/hugohenrick/connector-agent/pkg/history"
	"github.com/hugohenrick/connector-agent/pkg/logger"
	"github.com/hugohenrick/connector-agent/pkg/metrics"
)

// outcomePanic rotula nas métricas as requisições interrompidas por panic
const outcomePanic = "panic"

// Query é uma consulta do usuário com as credenciais da requisição
type Query struct {
	Text        string
	SessionKey  string
	Credentials connector.Credentials
}

// Engine atende consultas de ponta a ponta
type Engine struct {
	parser   *intent.Parser
	router   *router.Router
	sessions *session.Registry
	history  history.Repository
	metrics  *metrics.Metrics
	logger   logger.Logger
}

// Option configura o Engine
type Option func(*Engine)

// WithHistory registra cada interação no repositório informado
func WithHistory(repo history.Repository) Option {
	return func(e *Engine) { e.history = repo }
}

// WithMetrics habilita as métricas de requisição
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// NewEngine cria o Engine
func NewEngine(parser *intent.Parser, r *router.Router, sessions *session.Registry, log logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		parser:   parser,
		router:   r,
		sessions: sessions,
		logger:   log,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// HandleQuery interpreta o texto, executa a ação e devolve o envelope junto com
// o ID da operação. Nunca falha: erros viram mensagens.
func (e *Engine) HandleQuery(ctx context.Context, q Query) (intent.ActionResponse, string) {
	started := time.Now()
	operationID := uuid.NewString()

	resp, outcome := e.handle(ctx, q, operationID)
	if strings.TrimSpace(resp.Message) == "" {
		resp.Message = intent.CapabilitySummary
	}

	e.metrics.ObserveRequest(string(resp.Action), outcome, time.Since(started))
	e.record(ctx, q, operationID, resp)

	e.logger.Info("Consulta atendida",
		"operation_id", operationID,
		"session", q.SessionKey,
		"action", resp.Action,
		"outcome", outcome,
		"elapsed", time.Since(started))

	return resp, operationID
}

// handle é a única fronteira de recover do pipeline
func (e *Engine) handle(ctx context.Context, q Query, operationID string) (resp intent.ActionResponse, outcome string) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Panic ao atender consulta",
				"operation_id", operationID,
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()))
			resp = intent.Reply(intent.ActionHelp, intent.CapabilitySummary)
			outcome = outcomePanic
		}
	}()

	in := e.parser.Parse(ctx, q.Text)
	e.logger.Debug("Intenção detectada", "operation_id", operationID, "action", in.Action, "uses_context", in.UsesContext)

	res, out := e.router.Dispatch(ctx, &router.Request{
		Intent:      in,
		Query:       q.Text,
		Credentials: q.Credentials,
		Session:     e.sessions.Get(q.SessionKey),
	})
	return res, string(out)
}

// record grava a interação. Falhas são registradas e nunca chegam ao usuário.
func (e *Engine) record(ctx context.Context, q Query, operationID string, resp intent.ActionResponse) {
	if e.history == nil {
		return
	}

	err := e.history.Save(ctx, &history.Interaction{
		SessionKey:  sessionKey(q.SessionKey),
		OperationID: operationID,
		Query:       q.Text,
		Action:      string(resp.Action),
		Message:     resp.Message,
	})
	if err != nil {
		e.metrics.IncHistoryError()
		e.logger.Error("Erro ao gravar histórico", "operation_id", operationID, "error", err)
	}
}

// History lista as interações da sessão, mais recentes primeiro, e o total
func (e *Engine) History(ctx context.Context, key string, limit, offset int) ([]history.Interaction, int, error) {
	if e.history == nil {
		return nil, 0, nil
	}
	key = sessionKey(key)

	items, err := e.history.List(ctx, key, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao listar histórico: %w", err)
	}
	total, err := e.history.Count(ctx, key)
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao contar histórico: %w", err)
	}
	return items, total, nil
}

// ClearHistory apaga o histórico da sessão
func (e *Engine) ClearHistory(ctx context.Context, key string) error {
	if e.history == nil {
		return history.ErrNoHistory
	}
	return e.history.Delete(ctx, sessionKey(key))
}

func sessionKey(key string) string {
	if strings.TrimSpace(key) == "" {
		return session.DefaultKey
	}
	return key
}
