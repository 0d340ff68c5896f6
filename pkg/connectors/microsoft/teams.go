package microsoft

import (
	"context"
	"net/url"
	"strconv"

	"github.com/hugohenrick/connector-agent/pkg/connector"
	"github.com/hugohenrick/connector-agent/pkg/connectors/rest"
)

type team struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

type channel struct {
	ID             string `json:"id"`
	DisplayName    string `json:"displayName"`
	Description    string `json:"description"`
	MembershipType string `json:"membershipType"`
	WebURL         string `json:"webUrl"`
}

type channelMessage struct {
	ID              string `json:"id"`
	Subject         string `json:"subject"`
	CreatedDateTime string `json:"createdDateTime"`
	WebURL          string `json:"webUrl"`
	Body            struct {
		Content string `json:"content"`
	} `json:"body"`
	From *struct {
		User *struct {
			DisplayName       string `json:"displayName"`
			UserPrincipalName string `json:"userPrincipalName"`
		} `json:"user"`
	} `json:"from"`
}

func (m channelMessage) toMessage() connector.TeamsMessage {
	msg := connector.TeamsMessage{
		ID:              m.ID,
		Subject:         m.Subject,
		Body:            "No content",
		FromName:        "Unknown",
		CreatedDateTime: m.CreatedDateTime,
		WebURL:          m.WebURL,
	}
	if m.Body.Content != "" {
		msg.Body = stripHTML(m.Body.Content)
	}
	if m.From != nil && m.From.User != nil {
		if m.From.User.DisplayName != "" {
			msg.FromName = m.From.User.DisplayName
		}
		msg.FromEmail = m.From.User.UserPrincipalName
	}
	return msg
}

func (g *Graph) joinedTeams(ctx context.Context, token string, top int) ([]team, error) {
	q := url.Values{}
	if top > 0 {
		q.Set("$top", strconv.Itoa(top))
	}
	return list[team](ctx, g, token, rest.Request{Path: "/me/joinedTeams", Query: q})
}

func (g *Graph) channels(ctx context.Context, token, teamID string) ([]channel, error) {
	return list[channel](ctx, g, token, rest.Request{Path: "/teams/" + url.PathEscape(teamID) + "/channels"})
}

// ListMessages lê as mensagens recentes dos dois primeiros canais das duas
// primeiras equipes. Falhas em uma equipe ou canal são registradas e ignoradas.
func (g *Graph) ListMessages(ctx context.Context, token string, limit int) ([]connector.TeamsMessage, error) {
	teams, err := g.joinedTeams(ctx, token, 5)
	if err != nil {
		return nil, wrap("listar equipes", err)
	}

	messages := make([]connector.TeamsMessage, 0, limit)
	for _, t := range firstN(teams, 2) {
		chans, err := g.channels(ctx, token, t.ID)
		if err != nil {
			g.logger.Warn("Erro ao listar canais", "team", t.ID, "error", err)
			continue
		}

		for _, c := range firstN(chans, 2) {
			msgs, err := list[channelMessage](ctx, g, token, rest.Request{
				Path:  "/teams/" + url.PathEscape(t.ID) + "/channels/" + url.PathEscape(c.ID) + "/messages",
				Query: url.Values{"$top": {"5"}},
			})
			if err != nil {
				g.logger.Warn("Erro ao listar mensagens do canal", "team", t.ID, "channel", c.ID, "error", err)
				continue
			}
			for _, m := range msgs {
				if len(messages) >= limit {
					return messages, nil
				}
				messages = append(messages, m.toMessage())
			}
		}
	}
	return messages, nil
}

// ListChannels lista os canais de todas as equipes do usuário
func (g *Graph) ListChannels(ctx context.Context, token string, limit int) ([]connector.TeamsChannel, error) {
	teams, err := g.joinedTeams(ctx, token, 0)
	if err != nil {
		return nil, wrap("listar equipes", err)
	}

	out := make([]connector.TeamsChannel, 0, limit)
	for _, t := range teams {
		chans, err := g.channels(ctx, token, t.ID)
		if err != nil {
			g.logger.Warn("Erro ao listar canais", "team", t.ID, "error", err)
			continue
		}
		for _, c := range chans {
			if len(out) >= limit {
				return out, nil
			}
			membership := c.MembershipType
			if membership == "" {
				membership = "standard"
			}
			out = append(out, connector.TeamsChannel{
				ID:             c.ID,
				DisplayName:    c.DisplayName,
				Description:    c.Description,
				MembershipType: membership,
				WebURL:         c.WebURL,
			})
		}
	}
	return out, nil
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
