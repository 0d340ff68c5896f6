// Package router envia cada intenção ao handler da sua ação e traduz erros
// de conectores em mensagens para o usuário.
package router

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hugohenrick/connector-agent/pkg/agent/intent"
	"github.com/hugohenrick/connector-agent/pkg/agent/resolver"
	"github.com/hugohenrick/connector-agent/pkg/agent/session"
	"github.com/hugohenrick/connector-agent/pkg/connector"
	"github.com/hugohenrick/connector-agent/pkg/logger"
)

// Outcome classifica o resultado de um despacho
type Outcome string

const (
	OutcomeOK            Outcome = "ok"
	OutcomeAuthRequired  Outcome = "auth_required"
	OutcomeNotConfigured Outcome = "not_configured"
	OutcomeFailure       Outcome = "collaborator_failure"
	OutcomeUnrouted      Outcome = "unrouted"
)

// Request é tudo que um handler precisa para atender uma intenção
type Request struct {
	Intent      intent.Intent
	Query       string
	Credentials connector.Credentials
	Session     *session.Context
}

// HandlerFunc atende uma ação. Erros viram mensagens no Dispatch.
type HandlerFunc func(ctx context.Context, req *Request) (intent.ActionResponse, error)

type provider string

const (
	providerGoogle    provider = "Google"
	providerMicrosoft provider = "Microsoft"
	providerShopify   provider = "Shopify"
	providerTelegram  provider = "Telegram"
)

func (p provider) signIn() string {
	switch p {
	case providerMicrosoft:
		return "❌ Please sign in with Microsoft first."
	case providerShopify:
		return "❌ Shopify is not connected. Please connect your store first."
	case providerTelegram:
		return "❌ Please provide a Telegram Bot Token."
	default:
		return "❌ Please connect your Google account first."
	}
}

func (p provider) notConfigured() string {
	return fmt.Sprintf("⚠️ %s is not configured on this server.", p)
}

type route struct {
	handle   HandlerFunc
	provider provider
	failure  string
}

// Router mantém a tabela de despacho
type Router struct {
	routes  map[intent.Action]route
	conn    connector.Set
	cache   *resolver.Cache
	docs    *resolver.Resolver
	courses *resolver.Resolver
	loc     *time.Location
	now     func() time.Time
	logger  logger.Logger
}

// Option configura o Router
type Option func(*Router)

// WithLocation define o fuso usado para datas e horários de reuniões
func WithLocation(loc *time.Location) Option {
	return func(r *Router) {
		if loc != nil {
			r.loc = loc
		}
	}
}

// WithClock substitui o relógio (testes)
func WithClock(now func() time.Time) Option {
	return func(r *Router) { r.now = now }
}

// WithResolverCache compartilha um cache de resoluções entre requisições
func WithResolverCache(c *resolver.Cache) Option {
	return func(r *Router) { r.cache = c }
}

// New cria o Router com todas as rotas registradas
func New(conn connector.Set, log logger.Logger, opts ...Option) *Router {
	r := &Router{
		conn:   conn,
		loc:    time.Local,
		now:    time.Now,
		logger: log,
	}
	for _, opt := range opts {
		opt(r)
	}

	var docLister, courseLister resolver.Lister
	if conn.Drive != nil {
		docLister = resolver.ListerFunc(func(ctx context.Context, name, typeHint string) ([]connector.FileRef, error) {
			return conn.Drive.FindFiles(ctx, name, typeHint)
		})
	}
	if conn.Classroom != nil {
		courseLister = resolver.ListerFunc(func(ctx context.Context, name, _ string) ([]connector.FileRef, error) {
			return conn.Classroom.FindCourses(ctx, name)
		})
	}
	r.docs = resolver.New(docLister, resolver.WithCache(r.cache), resolver.WithScope("google-drive"))
	r.courses = resolver.New(courseLister, resolver.WithCache(r.cache), resolver.WithScope("google-classroom"))

	r.routes = r.buildRoutes()
	return r
}

func (r *Router) buildRoutes() map[intent.Action]route {
	return map[intent.Action]route{
		intent.ActionFetchEmails:        {withParams(r, r.fetchEmails), providerGoogle, "❌ Failed to fetch emails."},
		intent.ActionSendEmail:          {withParams(r, r.sendEmail), providerGoogle, "❌ Failed to send the email."},
		intent.ActionFetchOutlookEmails: {withParams(r, r.fetchOutlookEmails), providerMicrosoft, "❌ Failed to fetch Outlook emails."},
		intent.ActionSendOutlookEmail:   {withParams(r, r.sendOutlookEmail), providerMicrosoft, "❌ Failed to send the Outlook email."},

		intent.ActionFetchFiles:         {withParams(r, r.fetchFiles), providerGoogle, "⚠️ Failed to fetch files. Please connect your Google account."},
		intent.ActionFetchOneDriveFiles: {withParams(r, r.fetchOneDriveFiles), providerMicrosoft, "❌ Failed to fetch OneDrive files."},

		intent.ActionCreateDoc:  {withParams(r, r.createDoc), providerGoogle, "❌ Failed to create the document."},
		intent.ActionReadDoc:    {withParams(r, r.readDoc), providerGoogle, "❌ Failed to read the document."},
		intent.ActionAppendDoc:  {withParams(r, r.appendDoc), providerGoogle, "❌ Failed to update the document."},
		intent.ActionReplaceDoc: {withParams(r, r.replaceDoc), providerGoogle, "❌ Failed to replace text in the document."},
		intent.ActionClearDoc:   {withParams(r, r.clearDoc), providerGoogle, "❌ Failed to clear the document."},

		intent.ActionCreateSheet: {withParams(r, r.createSheet), providerGoogle, "❌ Failed to create the Google Sheet."},
		intent.ActionReadSheet:   {withParams(r, r.readSheet), providerGoogle, "❌ Failed to read the spreadsheet."},
		intent.ActionUpdateSheet: {withParams(r, r.updateSheet), providerGoogle, "❌ Failed to update the spreadsheet."},

		intent.ActionCreateWordDoc:    {withParams(r, r.createWordDoc), providerMicrosoft, "❌ Failed to create the Word document."},
		intent.ActionReadWordDoc:      {withParams(r, r.readWordDoc), providerMicrosoft, "❌ Failed to open the Word document."},
		intent.ActionCreateExcelSheet: {withParams(r, r.createExcelSheet), providerMicrosoft, "❌ Failed to create the Excel workbook."},
		intent.ActionReadExcelSheet:   {withParams(r, r.readExcelSheet), providerMicrosoft, "❌ Failed to read the Excel workbook."},
		intent.ActionUpdateExcelSheet: {withParams(r, r.updateExcelSheet), providerMicrosoft, "❌ Failed to update the Excel workbook."},

		intent.ActionCreateMeet:         {withParams(r, r.createMeet), providerGoogle, "❌ Failed to create the Google Meet."},
		intent.ActionUpdateMeet:         {withParams(r, r.updateMeet), providerGoogle, "❌ Failed to reschedule the meeting."},
		intent.ActionDeleteMeet:         {withParams(r, r.deleteMeet), providerGoogle, "❌ Failed to delete the meeting."},
		intent.ActionFetchCalendar:      {withParams(r, r.fetchCalendar), providerGoogle, "❌ Failed to fetch calendar events."},
		intent.ActionCreateOutlookEvent: {withParams(r, r.createOutlookEvent), providerMicrosoft, "❌ Failed to create the Outlook event."},

		intent.ActionFetchNotes: {withParams(r, r.fetchNotes), providerGoogle, "❌ Failed to fetch notes."},
		intent.ActionCreateNote: {withParams(r, r.createNote), providerGoogle, "❌ Failed to create note."},

		intent.ActionFetchCourses:     {withParams(r, r.fetchCourses), providerGoogle, "❌ Failed to fetch classrooms."},
		intent.ActionFetchAssignments: {withParams(r, r.fetchAssignments), providerGoogle, "❌ Failed to fetch assignments."},
		intent.ActionFetchStudents:    {withParams(r, r.fetchStudents), providerGoogle, "❌ Failed to fetch students."},
		intent.ActionCreateCourse:     {withParams(r, r.createCourse), providerGoogle, "❌ Failed to create classroom."},

		intent.ActionFetchOrders: {withParams(r, r.fetchOrders), providerShopify, "❌ Failed to fetch Shopify orders. Please check your credentials."},

		intent.ActionFetchTeamsMessages: {withParams(r, r.fetchTeamsMessages), providerMicrosoft, "❌ Failed to fetch Teams messages."},
		intent.ActionFetchTeamsChannels: {withParams(r, r.fetchTeamsChannels), providerMicrosoft, "❌ Failed to fetch Teams channels."},

		intent.ActionFetchTelegramUpdates: {withParams(r, r.fetchTelegramUpdates), providerTelegram, "❌ Failed to fetch Telegram messages."},
		intent.ActionSendTelegramMessage:  {withParams(r, r.sendTelegramMessage), providerTelegram, "❌ Failed to send the Telegram message."},
		intent.ActionManageTelegramGroup:  {withParams(r, r.manageTelegramGroup), providerTelegram, "❌ Failed to manage the Telegram group."},
	}
}

// Handles informa se existe rota para a ação
func (r *Router) Handles(a intent.Action) bool {
	_, ok := r.routes[a]
	return ok
}

// Dispatch executa o handler da ação. Nunca devolve mensagem vazia.
func (r *Router) Dispatch(ctx context.Context, req *Request) (intent.ActionResponse, Outcome) {
	action := req.Intent.Action
	if req.Session == nil {
		req.Session = session.NewContext(r.loc)
	}

	rt, ok := r.routes[action]
	if !ok {
		msg := req.Intent.NaturalResponse
		if strings.TrimSpace(msg) == "" {
			msg = intent.CapabilitySummary
		}
		return intent.Reply(action, msg), OutcomeUnrouted
	}

	resp, err := rt.handle(ctx, req)
	switch {
	case err == nil:
		resp.Action = action
		return resp, OutcomeOK
	case errors.Is(err, connector.ErrNotAuthenticated):
		r.logger.Info("Credencial ausente ou expirada", "action", action, "provider", rt.provider, "error", err)
		return intent.Reply(action, rt.provider.signIn()), OutcomeAuthRequired
	case errors.Is(err, connector.ErrNotConfigured):
		r.logger.Warn("Conector não configurado", "action", action, "provider", rt.provider)
		return intent.Reply(action, rt.provider.notConfigured()), OutcomeNotConfigured
	default:
		r.logger.Error("Falha no conector", "action", action, "provider", rt.provider, "error", err)
		return intent.Reply(action, rt.failure), OutcomeFailure
	}
}

// withParams decodifica os parâmetros no registro tipado do handler
func withParams[T any](r *Router, fn func(context.Context, *Request, T) (intent.ActionResponse, error)) HandlerFunc {
	return func(ctx context.Context, req *Request) (intent.ActionResponse, error) {
		p, err := intent.Decode[T](req.Intent.Params)
		if err != nil {
			r.logger.Warn("Parâmetros inválidos", "action", req.Intent.Action, "error", err)
			return intent.Reply(req.Intent.Action, "I couldn't understand the details of that request. Could you rephrase it?"), nil
		}
		return fn(ctx, req, p)
	}
}

// microsoftToken exige um token do Graph válido
func (r *Router) microsoftToken(req *Request) (string, error) {
	token := req.Credentials.MicrosoftToken(r.now())
	if token == "" {
		return "", connector.ErrNotAuthenticated
	}
	return token, nil
}

func (r *Router) telegramToken(req *Request) (string, error) {
	token := strings.TrimSpace(req.Credentials.TelegramToken)
	if token == "" {
		return "", connector.ErrNotAuthenticated
	}
	return token, nil
}

// oneDrive cria um resolver ligado ao token do usuário
func (r *Router) oneDrive(token string) *resolver.Resolver {
	var lister resolver.Lister
	if r.conn.OneDrive != nil {
		lister = resolver.ListerFunc(func(ctx context.Context, name, _ string) ([]connector.FileRef, error) {
			return r.conn.OneDrive.FindFiles(ctx, token, name)
		})
	}
	return resolver.New(lister, resolver.WithCache(r.cache), resolver.WithScope(resolver.Scope("onedrive", token)))
}

func (r *Router) today() time.Time {
	return r.now().In(r.loc)
}

func displayTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format("3:04 pm")
}

func isEmpty(ref resolver.NameReference) bool {
	return strings.TrimSpace(ref.DisplayName) == "" && strings.TrimSpace(ref.ExplicitID) == ""
}
