// Package llm implementa o connector.NLU sobre a API de mensagens da
// Anthropic e sobre chat completions da OpenAI. A resposta é texto não
// confiável; quem valida é o intent.Parser.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hugohenrick/connector-agent/pkg/connectors/rest"
	"github.com/hugohenrick/connector-agent/pkg/logger"
)

const (
	anthropicBaseURL = "https://api.anthropic.com/v1"
	anthropicVersion = "2023-06-01"
	defaultMaxTokens = 1000
)

// ErrEmptyCompletion indica uma resposta sem texto
var ErrEmptyCompletion = errors.New("empty completion")

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Anthropic é o cliente da API de mensagens
type Anthropic struct {
	api       *rest.Client
	apiKey    string
	model     string
	maxTokens int
	logger    logger.Logger
}

// NewAnthropic cria o cliente. baseURL vazio usa a API pública.
func NewAnthropic(apiKey, model, baseURL string, log logger.Logger, timeout time.Duration) *Anthropic {
	if baseURL == "" {
		baseURL = anthropicBaseURL
	}
	return &Anthropic{
		api:       rest.New("anthropic", baseURL, log, rest.WithTimeout(timeout)),
		apiKey:    apiKey,
		model:     model,
		maxTokens: defaultMaxTokens,
		logger:    log,
	}
}

type messageRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Messages    []message `json:"messages"`
	System      string    `json:"system,omitempty"`
	Temperature float64   `json:"temperature"`
}

type messageResponse struct {
	Model   string `json:"model"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// Complete envia o prompt de sistema e o texto do usuário e devolve o texto gerado
func (a *Anthropic) Complete(ctx context.Context, systemPrompt, userText string) (string, error) {
	reqBody := messageRequest{
		Model:     a.model,
		MaxTokens: a.maxTokens,
		Messages:  []message{{Role: "user", Content: userText}},
		System:    systemPrompt,
	}

	var resp messageResponse
	err := a.api.Do(ctx, rest.Request{
		Method: http.MethodPost,
		Path:   "/messages",
		Body:   reqBody,
		Auth: func(_ context.Context, req *http.Request) error {
			req.Header.Set("X-API-Key", a.apiKey)
			req.Header.Set("anthropic-version", anthropicVersion)
			return nil
		},
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("erro na chamada à Anthropic: %w", err)
	}

	var b strings.Builder
	for _, content := range resp.Content {
		if content.Type == "text" {
			b.WriteString(content.Text)
		}
	}
	if b.Len() == 0 {
		return "", ErrEmptyCompletion
	}

	a.logger.Debug("Resposta gerada",
		"model", resp.Model,
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens,
		"stop_reason", resp.StopReason)
	return b.String(), nil
}
