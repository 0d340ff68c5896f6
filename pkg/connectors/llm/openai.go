package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hugohenrick/connector-agent/pkg/connectors/rest"
	"github.com/hugohenrick/connector-agent/pkg/logger"
)

const openAIBaseURL = "https://api.openai.com/v1"

// OpenAI é o cliente de chat completions
type OpenAI struct {
	api    *rest.Client
	apiKey string
	model  string
	logger logger.Logger
}

// NewOpenAI cria o cliente. baseURL vazio usa a API pública.
func NewOpenAI(apiKey, model, baseURL string, log logger.Logger, timeout time.Duration) *OpenAI {
	if baseURL == "" {
		baseURL = openAIBaseURL
	}
	return &OpenAI{
		api:    rest.New("openai", baseURL, log, rest.WithTimeout(timeout)),
		apiKey: apiKey,
		model:  model,
		logger: log,
	}
}

type chatRequest struct {
	Model          string    `json:"model"`
	Messages       []message `json:"messages"`
	Temperature    float64   `json:"temperature"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message      message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// Complete pede uma resposta JSON com temperatura zero
func (o *OpenAI) Complete(ctx context.Context, systemPrompt, userText string) (string, error) {
	reqBody := chatRequest{
		Model: o.model,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userText},
		},
	}
	reqBody.ResponseFormat.Type = "json_object"

	var resp chatResponse
	err := o.api.Do(ctx, rest.Request{
		Method: http.MethodPost,
		Path:   "/chat/completions",
		Body:   reqBody,
		Auth:   rest.Bearer(o.apiKey),
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("erro na chamada à OpenAI: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyCompletion
	}

	o.logger.Debug("Resposta gerada",
		"model", resp.Model,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
		"finish_reason", resp.Choices[0].FinishReason)
	return resp.Choices[0].Message.Content, nil
}
