// Package rest é o cliente JSON compartilhado pelos adaptadores de fornecedores.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hugohenrick/connector-agent/pkg/connector"
	"github.com/hugohenrick/connector-agent/pkg/logger"
)

// maxErrorBody limita o corpo de erro guardado em StatusError
const maxErrorBody = 512

// StatusError é uma resposta fora da faixa 2xx.
// 401 e 403 desembrulham para connector.ErrNotAuthenticated.
type StatusError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API error: %d %s", e.Service, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden {
		return connector.ErrNotAuthenticated
	}
	return nil
}

// Authorizer adiciona credenciais à requisição
type Authorizer func(ctx context.Context, req *http.Request) error

// Bearer autoriza com um token fixo
func Bearer(token string) Authorizer {
	return func(_ context.Context, req *http.Request) error {
		if strings.TrimSpace(token) == "" {
			return connector.ErrNotAuthenticated
		}
		req.Header.Set("Authorization", "Bearer "+token)
		return nil
	}
}

// Request descreve uma chamada. Body é serializado em JSON; RawBody é enviado como está.
type Request struct {
	Method      string
	Path        string
	Query       url.Values
	Body        any
	RawBody     []byte
	ContentType string
	Header      http.Header
	Auth        Authorizer
	// LogPath substitui Path nos logs quando o caminho carrega segredos
	LogPath string
}

// Client executa chamadas JSON contra uma URL base
type Client struct {
	service string
	baseURL string
	http    *http.Client
	auth    Authorizer
	logger  logger.Logger
}

// Option configura o Client
type Option func(*Client)

// WithHTTPClient substitui o http.Client
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithTimeout define o timeout do http.Client padrão
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = &http.Client{Timeout: d}
		}
	}
}

// WithAuth define o Authorizer padrão das requisições
func WithAuth(a Authorizer) Option {
	return func(c *Client) { c.auth = a }
}

// New cria o Client. service nomeia o fornecedor em logs e erros.
func New(service, baseURL string, log logger.Logger, opts ...Option) *Client {
	c := &Client{
		service: service,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do executa a requisição e decodifica a resposta JSON em out (quando não nil)
func (c *Client) Do(ctx context.Context, r Request, out any) error {
	body, err := c.Raw(ctx, r)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("erro ao decodificar resposta de %s: %w", c.service, err)
	}
	return nil
}

// Raw executa a requisição e devolve o corpo sem decodificar
func (c *Client) Raw(ctx context.Context, r Request) ([]byte, error) {
	target := c.baseURL + r.Path
	if strings.HasPrefix(r.Path, "http://") || strings.HasPrefix(r.Path, "https://") {
		target = r.Path
	}
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	var payload io.Reader
	contentType := r.ContentType
	switch {
	case r.RawBody != nil:
		payload = bytes.NewReader(r.RawBody)
	case r.Body != nil:
		data, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("erro ao serializar requisição para %s: %w", c.service, err)
		}
		payload = bytes.NewReader(data)
		if contentType == "" {
			contentType = "application/json"
		}
	}

	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	req, err := http.NewRequestWithContext(ctx, method, target, payload)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar requisição para %s: %w", c.service, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, values := range r.Header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}

	auth := r.Auth
	if auth == nil {
		auth = c.auth
	}
	if auth != nil {
		if err := auth(ctx, req); err != nil {
			return nil, err
		}
	}

	logPath := r.Path
	if r.LogPath != "" {
		logPath = r.LogPath
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		var uerr *url.Error
		if r.LogPath != "" && errors.As(err, &uerr) {
			uerr.URL = logPath
		}
		return nil, fmt.Errorf("erro na chamada a %s: %w", c.service, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta de %s: %w", c.service, err)
	}

	c.logger.Debug("Chamada externa",
		"service", c.service,
		"method", method,
		"path", logPath,
		"status", resp.StatusCode,
		"elapsed", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text := strings.TrimSpace(string(data))
		if len(text) > maxErrorBody {
			text = text[:maxErrorBody]
		}
		c.logger.Warn("API externa retornou erro", "service", c.service, "path", logPath, "status", resp.StatusCode, "body", text)
		return nil, &StatusError{Service: c.service, StatusCode: resp.StatusCode, Body: text}
	}
	return data, nil
}
