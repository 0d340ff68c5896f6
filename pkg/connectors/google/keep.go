package google

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hugohenrick/connector-agent/pkg/connector"
	"github.com/hugohenrick/connector-agent/pkg/connectors/rest"
)

// Keep implementa connector.Keep
type Keep struct {
	api *rest.Client
}

type keepNote struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Body  struct {
		Text struct {
			Text string `json:"text"`
		} `json:"text"`
	} `json:"body"`
}

func (n keepNote) toNote() connector.Note {
	return connector.Note{ID: n.Name, Title: n.Title, Body: n.Body.Text.Text}
}

// ListNotes lista as notas mais recentes
func (k *Keep) ListNotes(ctx context.Context, limit int) ([]connector.Note, error) {
	var out struct {
		Notes []keepNote `json:"notes"`
	}
	err := k.api.Do(ctx, rest.Request{
		Path:  "/notes",
		Query: url.Values{"pageSize": {strconv.Itoa(limit)}},
	}, &out)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar notas: %w", err)
	}

	notes := make([]connector.Note, 0, len(out.Notes))
	for _, n := range out.Notes {
		notes = append(notes, n.toNote())
	}
	return notes, nil
}

// CreateNote cria uma nota de texto
func (k *Keep) CreateNote(ctx context.Context, title, body string) (connector.Note, error) {
	var created keepNote
	err := k.api.Do(ctx, rest.Request{
		Method: http.MethodPost,
		Path:   "/notes",
		Body: map[string]any{
			"title": title,
			"body":  map[string]any{"text": map[string]string{"text": body}},
		},
	}, &created)
	if err != nil {
		return connector.Note{}, fmt.Errorf("erro ao criar nota: %w", err)
	}
	return created.toNote(), nil
}
