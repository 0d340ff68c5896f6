package microsoft

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hugohenrick/connector-agent/pkg/connector"
	"github.com/hugohenrick/connector-agent/pkg/connectors/rest"
)

type graphMessage struct {
	ID               string `json:"id"`
	ConversationID   string `json:"conversationId"`
	Subject          string `json:"subject"`
	BodyPreview      string `json:"bodyPreview"`
	ReceivedDateTime string `json:"receivedDateTime"`
	From             struct {
		EmailAddress struct {
			Name    string `json:"name"`
			Address string `json:"address"`
		} `json:"emailAddress"`
	} `json:"from"`
}

// ListEmails lista as mensagens mais recentes da caixa de entrada
func (g *Graph) ListEmails(ctx context.Context, token string, limit int, search string) ([]connector.Email, error) {
	q := url.Values{
		"$top":    {strconv.Itoa(limit)},
		"$select": {"id,conversationId,subject,bodyPreview,receivedDateTime,from"},
	}
	header := http.Header{}
	if s := strings.TrimSpace(search); s != "" {
		// $search não aceita $orderby
		q.Set("$search", `"`+strings.ReplaceAll(s, `"`, "")+`"`)
		header.Set("ConsistencyLevel", "eventual")
	} else {
		q.Set("$orderby", "receivedDateTime desc")
	}

	msgs, err := list[graphMessage](ctx, g, token, rest.Request{Path: "/me/messages", Query: q, Header: header})
	if err != nil {
		return nil, wrap("listar e-mails do Outlook", err)
	}

	emails := make([]connector.Email, 0, len(msgs))
	for _, m := range msgs {
		from := m.From.EmailAddress.Address
		if m.From.EmailAddress.Name != "" {
			from = m.From.EmailAddress.Name + " <" + m.From.EmailAddress.Address + ">"
		}
		emails = append(emails, connector.Email{
			ID:       m.ID,
			ThreadID: m.ConversationID,
			Subject:  m.Subject,
			From:     from,
			Snippet:  m.BodyPreview,
			Date:     m.ReceivedDateTime,
		})
	}
	return emails, nil
}

// SendEmail envia uma mensagem em texto puro e a salva nos itens enviados
func (g *Graph) SendEmail(ctx context.Context, token string, msg connector.OutgoingEmail) error {
	body := map[string]any{
		"message": map[string]any{
			"subject": msg.Subject,
			"body":    map[string]string{"contentType": "Text", "content": msg.Body},
			"toRecipients": toRecipients(msg.To),
		},
		"saveToSentItems": true,
	}
	if err := g.do(ctx, token, rest.Request{Method: http.MethodPost, Path: "/me/sendMail", Body: body}, nil); err != nil {
		return wrap("enviar e-mail pelo Outlook", err)
	}
	return nil
}

// toRecipients aceita uma lista de endereços separados por vírgula
func toRecipients(to string) []map[string]any {
	out := []map[string]any{}
	for _, addr := range strings.Split(to, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, map[string]any{"emailAddress": map[string]string{"address": addr}})
		}
	}
	return out
}

type graphDateTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

// CreateEvent cria um evento online no calendário padrão
func (g *Graph) CreateEvent(ctx context.Context, token string, in connector.EventInput) (connector.Event, error) {
	const layout = "2006-01-02T15:04:05"
	body := map[string]any{
		"subject":         in.Subject,
		"body":            map[string]string{"contentType": "Text", "content": in.Description},
		"start":           graphDateTime{DateTime: in.Start.In(g.loc).Format(layout), TimeZone: g.loc.String()},
		"end":             graphDateTime{DateTime: in.End.In(g.loc).Format(layout), TimeZone: g.loc.String()},
		"isOnlineMeeting": true,
	}

	var created struct {
		ID            string `json:"id"`
		Subject       string `json:"subject"`
		WebLink       string `json:"webLink"`
		OnlineMeeting *struct {
			JoinURL string `json:"joinUrl"`
		} `json:"onlineMeeting"`
	}
	if err := g.do(ctx, token, rest.Request{Method: http.MethodPost, Path: "/me/events", Body: body}, &created); err != nil {
		return connector.Event{}, wrap("criar evento no Outlook", err)
	}

	link := created.WebLink
	if created.OnlineMeeting != nil && created.OnlineMeeting.JoinURL != "" {
		link = created.OnlineMeeting.JoinURL
	}
	return connector.Event{
		ExternalID:  created.ID,
		Link:        link,
		Start:       in.Start,
		End:         in.End,
		Summary:     created.Subject,
		Description: in.Description,
	}, nil
}
