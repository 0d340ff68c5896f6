package intent

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hugohenrick/connector-agent/pkg/connector"
	"github.com/hugohenrick/connector-agent/pkg/logger"
)

// Source indica qual caminho produziu a intenção
type Source string

const (
	SourceNLU      Source = "nlu"
	SourceFallback Source = "fallback"
)

// Observer recebe a origem de cada intenção (métricas)
type Observer func(Source)

// Parser converte texto livre em Intent
type Parser struct {
	nlu      connector.NLU
	timeout  time.Duration
	logger   logger.Logger
	observer Observer
}

// ParserOption configura o Parser
type ParserOption func(*Parser)

// WithTimeout limita a chamada ao NLU
func WithTimeout(d time.Duration) ParserOption {
	return func(p *Parser) { p.timeout = d }
}

// WithObserver registra um observador de origem
func WithObserver(o Observer) ParserOption {
	return func(p *Parser) { p.observer = o }
}

// NewParser cria um Parser. nlu pode ser nil: nesse caso só o fallback é usado.
func NewParser(nlu connector.NLU, log logger.Logger, opts ...ParserOption) *Parser {
	p := &Parser{
		nlu:     nlu,
		timeout: 15 * time.Second,
		logger:  log,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse nunca falha: qualquer problema no NLU leva ao parser determinístico
func (p *Parser) Parse(ctx context.Context, text string) Intent {
	in, err := p.parseWithNLU(ctx, text)
	if err == nil {
		p.observe(SourceNLU)
		return in
	}

	p.logger.Warn("NLU indisponível, usando fallback", "error", err)
	p.observe(SourceFallback)
	return FallbackParse(text)
}

func (p *Parser) parseWithNLU(ctx context.Context, text string) (in Intent, err error) {
	if p.nlu == nil {
		return Intent{}, connector.ErrNotConfigured
	}

	defer func() {
		if r := recover(); r != nil {
			err = errors.New("NLU client panicked")
		}
	}()

	callCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	raw, err := p.nlu.Complete(callCtx, SystemPrompt, text)
	if err != nil {
		return Intent{}, err
	}
	if strings.TrimSpace(raw) == "" {
		return Intent{}, ErrEmptyResponse
	}

	p.logger.Debug("Resposta do NLU", "raw", raw)
	return DecodeNLUResponse(raw)
}

func (p *Parser) observe(s Source) {
	if p.observer != nil {
		p.observer(s)
	}
}
