// Package google implementa os conectores do Google Workspace sobre as APIs REST.
package google

import (
	"net/http"
	"time"

	"github.com/hugohenrick/connector-agent/pkg/connector"
	"github.com/hugohenrick/connector-agent/pkg/connectors/rest"
	"github.com/hugohenrick/connector-agent/pkg/logger"
)

// Endpoints são as URLs base de cada API
type Endpoints struct {
	Gmail     string
	Drive     string
	Docs      string
	Sheets    string
	Calendar  string
	Keep      string
	Classroom string
}

// DefaultEndpoints aponta para as APIs públicas do Google
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Gmail:     "https://gmail.googleapis.com/gmail/v1",
		Drive:     "https://www.googleapis.com/drive/v3",
		Docs:      "https://docs.googleapis.com/v1",
		Sheets:    "https://sheets.googleapis.com/v4",
		Calendar:  "https://www.googleapis.com/calendar/v3",
		Keep:      "https://keep.googleapis.com/v1",
		Classroom: "https://classroom.googleapis.com/v1",
	}
}

// SameHost aponta todas as APIs para uma única URL (testes)
func SameHost(base string) Endpoints {
	return Endpoints{Gmail: base, Drive: base, Docs: base, Sheets: base, Calendar: base, Keep: base, Classroom: base}
}

type options struct {
	endpoints  Endpoints
	httpClient *http.Client
	now        func() time.Time
}

// Option configura os serviços
type Option func(*options)

// WithEndpoints substitui as URLs base
func WithEndpoints(e Endpoints) Option {
	return func(o *options) { o.endpoints = e }
}

// WithHTTPClient define o http.Client compartilhado
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithClock substitui o relógio usado em consultas por data
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// Services agrupa os conectores Google autenticados pelo mesmo TokenSource
type Services struct {
	Gmail     *Gmail
	Drive     *Drive
	Docs      *Docs
	Sheets    *Sheets
	Calendar  *Calendar
	Keep      *Keep
	Classroom *Classroom
}

// New cria todos os conectores Google
func New(tokens TokenSource, log logger.Logger, opts ...Option) *Services {
	o := options{
		endpoints:  DefaultEndpoints(),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	client := func(service, base string) *rest.Client {
		return rest.New(service, base, log, rest.WithHTTPClient(o.httpClient), rest.WithAuth(authorizer(tokens)))
	}

	return &Services{
		Gmail:     &Gmail{api: client("gmail", o.endpoints.Gmail)},
		Drive:     &Drive{api: client("drive", o.endpoints.Drive)},
		Docs:      &Docs{api: client("docs", o.endpoints.Docs)},
		Sheets:    &Sheets{api: client("sheets", o.endpoints.Sheets)},
		Calendar:  &Calendar{api: client("calendar", o.endpoints.Calendar), now: o.now},
		Keep:      &Keep{api: client("keep", o.endpoints.Keep)},
		Classroom: &Classroom{api: client("classroom", o.endpoints.Classroom)},
	}
}

// Bind preenche os conectores Google de um connector.Set
func (s *Services) Bind(set *connector.Set) {
	set.Gmail = s.Gmail
	set.Drive = s.Drive
	set.Docs = s.Docs
	set.Sheets = s.Sheets
	set.Calendar = s.Calendar
	set.Keep = s.Keep
	set.Classroom = s.Classroom
}
