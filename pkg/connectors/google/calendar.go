package google

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/hugohenrick/connector-agent/pkg/connector"
	"github.com/hugohenrick/connector-agent/pkg/connectors/rest"
)

// Calendar implementa connector.Calendar na agenda principal, com links do Meet
type Calendar struct {
	api *rest.Client
	now func() time.Time
}

type eventTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
}

func (t eventTime) parse() time.Time {
	if t.DateTime != "" {
		if ts, err := time.Parse(time.RFC3339, t.DateTime); err == nil {
			return ts
		}
	}
	if t.Date != "" {
		if ts, err := time.Parse("2006-01-02", t.Date); err == nil {
			return ts
		}
	}
	return time.Time{}
}

type calendarEvent struct {
	ID             string    `json:"id"`
	Summary        string    `json:"summary"`
	Description    string    `json:"description"`
	HangoutLink    string    `json:"hangoutLink"`
	HTMLLink       string    `json:"htmlLink"`
	Start          eventTime `json:"start"`
	End            eventTime `json:"end"`
	ConferenceData *struct {
		EntryPoints []struct {
			EntryPointType string `json:"entryPointType"`
			URI            string `json:"uri"`
		} `json:"entryPoints"`
	} `json:"conferenceData"`
}

func (e calendarEvent) toEvent() connector.Event {
	link := e.HangoutLink
	if link == "" && e.ConferenceData != nil {
		for _, ep := range e.ConferenceData.EntryPoints {
			if ep.EntryPointType == "video" {
				link = ep.URI
				break
			}
		}
	}
	return connector.Event{
		ExternalID:  e.ID,
		Link:        link,
		Start:       e.Start.parse(),
		End:         e.End.parse(),
		Summary:     e.Summary,
		Description: e.Description,
	}
}

// CreateEvent cria o evento com uma conferência do Google Meet
func (c *Calendar) CreateEvent(ctx context.Context, in connector.EventInput) (connector.Event, error) {
	body := map[string]any{
		"summary":     in.Subject,
		"description": in.Description,
		"start":       eventTime{DateTime: in.Start.Format(time.RFC3339)},
		"end":         eventTime{DateTime: in.End.Format(time.RFC3339)},
		"conferenceData": map[string]any{
			"createRequest": map[string]any{
				"requestId":             uuid.NewString(),
				"conferenceSolutionKey": map[string]string{"type": "hangoutsMeet"},
			},
		},
	}

	var created calendarEvent
	err := c.api.Do(ctx, rest.Request{
		Method: http.MethodPost,
		Path:   "/calendars/primary/events",
		Query:  url.Values{"conferenceDataVersion": {"1"}},
		Body:   body,
	}, &created)
	if err != nil {
		return connector.Event{}, fmt.Errorf("erro ao criar evento: %w", err)
	}
	return created.toEvent(), nil
}

// UpdateEvent altera início e fim do evento
func (c *Calendar) UpdateEvent(ctx context.Context, externalID string, start, end time.Time) error {
	err := c.api.Do(ctx, rest.Request{
		Method: http.MethodPatch,
		Path:   "/calendars/primary/events/" + url.PathEscape(externalID),
		Body: map[string]any{
			"start": eventTime{DateTime: start.Format(time.RFC3339)},
			"end":   eventTime{DateTime: end.Format(time.RFC3339)},
		},
	}, nil)
	if err != nil {
		return fmt.Errorf("erro ao atualizar evento %s: %w", externalID, err)
	}
	return nil
}

// DeleteEvent exclui o evento
func (c *Calendar) DeleteEvent(ctx context.Context, externalID string) error {
	err := c.api.Do(ctx, rest.Request{
		Method: http.MethodDelete,
		Path:   "/calendars/primary/events/" + url.PathEscape(externalID),
	}, nil)
	if err != nil {
		return fmt.Errorf("erro ao excluir evento %s: %w", externalID, err)
	}
	return nil
}

// ListEvents lista os próximos eventos em ordem de início
func (c *Calendar) ListEvents(ctx context.Context, limit int) ([]connector.Event, error) {
	var out struct {
		Items []calendarEvent `json:"items"`
	}
	err := c.api.Do(ctx, rest.Request{
		Path: "/calendars/primary/events",
		Query: url.Values{
			"maxResults":   {strconv.Itoa(limit)},
			"timeMin":      {c.now().UTC().Format(time.RFC3339)},
			"singleEvents": {"true"},
			"orderBy":      {"startTime"},
		},
	}, &out)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar eventos: %w", err)
	}

	events := make([]connector.Event, 0, len(out.Items))
	for _, item := range out.Items {
		events = append(events, item.toEvent())
	}
	return events, nil
}
