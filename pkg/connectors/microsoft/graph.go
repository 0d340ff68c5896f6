// Package microsoft implementa os conectores do Microsoft Graph. Cada chamada
// usa o token de acesso enviado pelo cliente na requisição.
package microsoft

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/hugohenrick/connector-agent/pkg/connector"
	"github.com/hugohenrick/connector-agent/pkg/connectors/rest"
	"github.com/hugohenrick/connector-agent/pkg/logger"
)

// DefaultBaseURL é a raiz do Graph v1.0
const DefaultBaseURL = "https://graph.microsoft.com/v1.0"

// Graph implementa Outlook, OneDrive, Office e Teams sobre um único cliente
type Graph struct {
	api    *rest.Client
	logger logger.Logger
	// fuso usado ao criar eventos
	loc *time.Location
}

// Option configura o Graph
type Option func(*graphOptions)

type graphOptions struct {
	baseURL    string
	httpClient *http.Client
	loc        *time.Location
}

// WithBaseURL substitui a URL do Graph (testes)
func WithBaseURL(u string) Option {
	return func(o *graphOptions) { o.baseURL = u }
}

// WithHTTPClient define o http.Client
func WithHTTPClient(c *http.Client) Option {
	return func(o *graphOptions) { o.httpClient = c }
}

// WithLocation define o fuso dos eventos criados
func WithLocation(loc *time.Location) Option {
	return func(o *graphOptions) {
		if loc != nil {
			o.loc = loc
		}
	}
}

// New cria o cliente do Graph
func New(log logger.Logger, opts ...Option) *Graph {
	o := graphOptions{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		loc:        time.UTC,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Graph{
		api:    rest.New("microsoft-graph", o.baseURL, log, rest.WithHTTPClient(o.httpClient)),
		logger: log,
		loc:    o.loc,
	}
}

// Bind preenche os conectores Microsoft de um connector.Set
func (g *Graph) Bind(set *connector.Set) {
	set.Outlook = g
	set.OneDrive = g
	set.Office = g
	set.Teams = g
}

func (g *Graph) do(ctx context.Context, token string, r rest.Request, out any) error {
	r.Auth = rest.Bearer(token)
	return g.api.Do(ctx, r, out)
}

// collection é o envelope de listagens do Graph
type collection[T any] struct {
	Value []T `json:"value"`
}

func list[T any](ctx context.Context, g *Graph, token string, r rest.Request) ([]T, error) {
	var out collection[T]
	if err := g.do(ctx, token, r, &out); err != nil {
		return nil, err
	}
	return out.Value, nil
}

var htmlTag = regexp.MustCompile(`<[^>]*>`)

// stripHTML remove tags e entidades comuns e limita o texto a 200 caracteres
func stripHTML(html string) string {
	text := htmlTag.ReplaceAllString(html, "")
	text = strings.NewReplacer("&nbsp;", " ", "&amp;", "&", "&lt;", "<", "&gt;", ">").Replace(text)
	text = strings.TrimSpace(text)
	if r := []rune(text); len(r) > 200 {
		text = string(r[:200])
	}
	return text
}

func withExtension(name, ext string) string {
	if strings.HasSuffix(strings.ToLower(name), ext) {
		return name
	}
	return name + ext
}

func wrap(action string, err error) error {
	return fmt.Errorf("erro ao %s: %w", action, err)
}
