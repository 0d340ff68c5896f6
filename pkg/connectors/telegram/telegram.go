// Package telegram implementa o conector da Bot API do Telegram.
// O token do bot chega a cada requisição e nunca aparece nos logs.
package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hugohenrick/connector-agent/pkg/connector"
	"github.com/hugohenrick/connector-agent/pkg/connectors/rest"
	"github.com/hugohenrick/connector-agent/pkg/logger"
)

// DefaultBaseURL é a raiz da Bot API
const DefaultBaseURL = "https://api.telegram.org"

// APIError é uma resposta com ok=false
type APIError struct {
	Method      string
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Telegram API error on %s: %s", e.Method, e.Description)
}

type envelope struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description"`
	Result      json.RawMessage `json:"result"`
}

// Client chama a Bot API
type Client struct {
	api *rest.Client
}

// New cria o Client. baseURL vazio usa DefaultBaseURL.
func New(baseURL string, log logger.Logger, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{api: rest.New("telegram", baseURL, log, rest.WithTimeout(timeout))}
}

// call executa um método da Bot API e decodifica result em out
func (c *Client) call(ctx context.Context, token, method string, body any, out any) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return connector.ErrNotAuthenticated
	}
	if body == nil {
		body = map[string]any{}
	}

	raw, err := c.api.Raw(ctx, rest.Request{
		Method:  http.MethodPost,
		Path:    "/bot" + token + "/" + method,
		LogPath: "/bot***/" + method,
		Body:    body,
	})
	var env envelope
	if err != nil {
		var se *rest.StatusError
		if errors.As(err, &se) && json.Unmarshal([]byte(se.Body), &env) == nil && env.Description != "" {
			return fmt.Errorf("%w: %w", &APIError{Method: method, Description: env.Description}, err)
		}
		return err
	}

	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("erro ao decodificar resposta do Telegram: %w", err)
	}
	if !env.OK {
		return &APIError{Method: method, Description: env.Description}
	}
	if out != nil && len(env.Result) > 0 {
		if err := json.Unmarshal(env.Result, out); err != nil {
			return fmt.Errorf("erro ao decodificar resultado de %s: %w", method, err)
		}
	}
	return nil
}

// chatTarget envia ids numéricos como número e @usernames como texto
func chatTarget(chatID string) any {
	chatID = strings.TrimSpace(chatID)
	if id, err := strconv.ParseInt(chatID, 10, 64); err == nil {
		return id
	}
	return chatID
}

type user struct {
	ID        int64  `json:"id"`
	IsBot     bool   `json:"is_bot"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

func (u *user) display() string {
	if u == nil {
		return ""
	}
	if u.Username != "" {
		return "@" + u.Username
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

type message struct {
	MessageID int64  `json:"message_id"`
	Date      int64  `json:"date"`
	Text      string `json:"text"`
	From      *user  `json:"from"`
	Chat      struct {
		ID    int64  `json:"id"`
		Title string `json:"title"`
	} `json:"chat"`
}

func (m message) toMessage() connector.TelegramMessage {
	return connector.TelegramMessage{
		MessageID: m.MessageID,
		ChatID:    m.Chat.ID,
		ChatTitle: m.Chat.Title,
		From:      m.From.display(),
		Text:      m.Text,
		Date:      m.Date,
	}
}

// GetMe identifica o bot; serve para validar o token
func (c *Client) GetMe(ctx context.Context, token string) (connector.TelegramBot, error) {
	var u user
	if err := c.call(ctx, token, "getMe", nil, &u); err != nil {
		return connector.TelegramBot{}, fmt.Errorf("erro ao validar bot do Telegram: %w", err)
	}
	return connector.TelegramBot{ID: u.ID, Username: u.Username, Name: u.FirstName}, nil
}

// GetRecentMessages lê as atualizações pendentes e devolve só as mensagens
// de texto, mais recentes primeiro
func (c *Client) GetRecentMessages(ctx context.Context, token string, limit int) ([]connector.TelegramMessage, error) {
	var updates []struct {
		UpdateID int64    `json:"update_id"`
		Message  *message `json:"message"`
	}
	body := map[string]any{"limit": limit, "allowed_updates": []string{"message"}}
	if err := c.call(ctx, token, "getUpdates", body, &updates); err != nil {
		return nil, fmt.Errorf("erro ao buscar mensagens do Telegram: %w", err)
	}

	messages := make([]connector.TelegramMessage, 0, len(updates))
	for i := len(updates) - 1; i >= 0; i-- {
		m := updates[i].Message
		if m == nil || m.Text == "" {
			continue
		}
		messages = append(messages, m.toMessage())
	}
	return messages, nil
}

// SendMessage envia texto com parse_mode Markdown
func (c *Client) SendMessage(ctx context.Context, token, chatID, text string) (connector.TelegramMessage, error) {
	var sent message
	body := map[string]any{"chat_id": chatTarget(chatID), "text": text, "parse_mode": "Markdown"}
	if err := c.call(ctx, token, "sendMessage", body, &sent); err != nil {
		return connector.TelegramMessage{}, fmt.Errorf("erro ao enviar mensagem no Telegram: %w", err)
	}
	return sent.toMessage(), nil
}

// RemoveMember bane o usuário do grupo; o bot precisa ser administrador
func (c *Client) RemoveMember(ctx context.Context, token, chatID string, userID int64) error {
	body := map[string]any{"chat_id": chatTarget(chatID), "user_id": userID}
	if err := c.call(ctx, token, "banChatMember", body, nil); err != nil {
		return fmt.Errorf("erro ao remover membro no Telegram: %w", err)
	}
	return nil
}

// PinMessage fixa a mensagem no grupo
func (c *Client) PinMessage(ctx context.Context, token, chatID string, messageID int64) error {
	body := map[string]any{"chat_id": chatTarget(chatID), "message_id": messageID}
	if err := c.call(ctx, token, "pinChatMessage", body, nil); err != nil {
		return fmt.Errorf("erro ao fixar mensagem no Telegram: %w", err)
	}
	return nil
}

// RenameChat altera o título do grupo
func (c *Client) RenameChat(ctx context.Context, token, chatID, title string) error {
	body := map[string]any{"chat_id": chatTarget(chatID), "title": title}
	if err := c.call(ctx, token, "setChatTitle", body, nil); err != nil {
		return fmt.Errorf("erro ao renomear grupo no Telegram: %w", err)
	}
	return nil
}
