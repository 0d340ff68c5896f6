package google

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hugohenrick/connector-agent/pkg/connector"
	"github.com/hugohenrick/connector-agent/pkg/connectors/rest"
)

// ErrInvalidRecipient indica um destinatário com quebra de linha, que abriria cabeçalhos extras
var ErrInvalidRecipient = errors.New("destinatário inválido")

// Gmail implementa connector.Gmail
type Gmail struct {
	api *rest.Client
}

type gmailList struct {
	Messages []struct {
		ID       string `json:"id"`
		ThreadID string `json:"threadId"`
	} `json:"messages"`
}

type gmailMessage struct {
	ID       string `json:"id"`
	ThreadID string `json:"threadId"`
	Snippet  string `json:"snippet"`
	Payload  struct {
		Headers []struct {
			Name  string `json:"name"`
			Value string `json:"value"`
		} `json:"headers"`
	} `json:"payload"`
}

func (m gmailMessage) header(name string) string {
	for _, h := range m.Payload.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// SearchQuery monta a consulta do Gmail; Date (YYYY-MM-DD) vira um intervalo after/before
func SearchQuery(q connector.EmailQuery) (string, error) {
	parts := make([]string, 0, 3)
	if s := strings.TrimSpace(q.Search); s != "" {
		parts = append(parts, s)
	}
	if d := strings.TrimSpace(q.Date); d != "" {
		day, err := time.Parse("2006-01-02", d)
		if err != nil {
			return "", fmt.Errorf("data inválida %q: %w", d, err)
		}
		parts = append(parts,
			"after:"+day.Format("2006/01/02"),
			"before:"+day.AddDate(0, 0, 1).Format("2006/01/02"))
	}
	return strings.Join(parts, " "), nil
}

// ListEmails lista mensagens e busca os cabeçalhos de cada uma
func (g *Gmail) ListEmails(ctx context.Context, q connector.EmailQuery) ([]connector.Email, error) {
	search, err := SearchQuery(q)
	if err != nil {
		return nil, err
	}

	params := url.Values{"maxResults": {strconv.Itoa(q.Limit)}}
	if search != "" {
		params.Set("q", search)
	}

	var list gmailList
	if err := g.api.Do(ctx, rest.Request{Path: "/users/me/messages", Query: params}, &list); err != nil {
		return nil, fmt.Errorf("erro ao listar mensagens: %w", err)
	}

	emails := make([]connector.Email, 0, len(list.Messages))
	for _, ref := range list.Messages {
		var msg gmailMessage
		err := g.api.Do(ctx, rest.Request{
			Path: "/users/me/messages/" + url.PathEscape(ref.ID),
			Query: url.Values{
				"format":          {"metadata"},
				"metadataHeaders": {"Subject", "From", "Date"},
			},
		}, &msg)
		if err != nil {
			return nil, fmt.Errorf("erro ao buscar mensagem %s: %w", ref.ID, err)
		}
		emails = append(emails, connector.Email{
			ID:       msg.ID,
			ThreadID: msg.ThreadID,
			Subject:  msg.header("Subject"),
			From:     msg.header("From"),
			Date:     msg.header("Date"),
			Snippet:  msg.Snippet,
		})
	}
	return emails, nil
}

// SendEmail envia uma mensagem em texto puro
func (g *Gmail) SendEmail(ctx context.Context, msg connector.OutgoingEmail) error {
	mimeMsg, err := buildMIME(msg)
	if err != nil {
		return err
	}
	raw := base64.RawURLEncoding.EncodeToString([]byte(mimeMsg))
	err = g.api.Do(ctx, rest.Request{
		Method: http.MethodPost,
		Path:   "/users/me/messages/send",
		Body:   map[string]string{"raw": raw},
	}, nil)
	if err != nil {
		return fmt.Errorf("erro ao enviar e-mail: %w", err)
	}
	return nil
}

func buildMIME(msg connector.OutgoingEmail) (string, error) {
	if strings.TrimSpace(msg.To) == "" || strings.ContainsAny(msg.To, "\r\n") {
		return "", fmt.Errorf("%w: %q", ErrInvalidRecipient, msg.To)
	}
	var b strings.Builder
	b.WriteString("To: " + msg.To + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", msg.Subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	return b.String(), nil
}
