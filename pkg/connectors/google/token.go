package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/hugohenrick/connector-agent/pkg/connector"
	"github.com/hugohenrick/connector-agent/pkg/connectors/rest"
)

// TokenSource fornece o access token OAuth da conta Google do servidor.
// A renovação do token é feita fora do serviço.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken é um token fixo (GOOGLE_ACCESS_TOKEN)
type StaticToken string

// Token devolve o token ou ErrNotAuthenticated quando vazio
func (s StaticToken) Token(context.Context) (string, error) {
	if strings.TrimSpace(string(s)) == "" {
		return "", connector.ErrNotAuthenticated
	}
	return string(s), nil
}

// storedToken é o formato do token.json gravado pelo fluxo OAuth
type storedToken struct {
	AccessToken string `json:"access_token"`
	// ExpiryDate em milissegundos (googleapis)
	ExpiryDate int64 `json:"expiry_date"`
	// Expiry em RFC3339 (golang.org/x/oauth2)
	Expiry string `json:"expiry"`
}

// FileTokenSource lê o token de um arquivo JSON a cada chamada, para acompanhar
// renovações feitas por outro processo.
type FileTokenSource struct {
	path string
	now  func() time.Time
}

// NewFileTokenSource cria um FileTokenSource
func NewFileTokenSource(path string) *FileTokenSource {
	return &FileTokenSource{path: path, now: time.Now}
}

// Token lê o arquivo. Ausente, ilegível ou expirado conta como não autenticado.
func (f *FileTokenSource) Token(context.Context) (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", fmt.Errorf("erro ao ler token do Google: %w", connector.ErrNotAuthenticated)
	}

	var tok storedToken
	if err := json.Unmarshal(data, &tok); err != nil {
		return "", fmt.Errorf("token do Google inválido: %w", connector.ErrNotAuthenticated)
	}
	if strings.TrimSpace(tok.AccessToken) == "" {
		return "", connector.ErrNotAuthenticated
	}

	if expiry := tok.expiresAt(); !expiry.IsZero() && expiry.Before(f.now()) {
		return "", fmt.Errorf("token do Google expirado em %s: %w", expiry.Format(time.RFC3339), connector.ErrNotAuthenticated)
	}
	return tok.AccessToken, nil
}

func (t storedToken) expiresAt() time.Time {
	if t.ExpiryDate > 0 {
		return time.UnixMilli(t.ExpiryDate)
	}
	if t.Expiry != "" {
		if ts, err := time.Parse(time.RFC3339, t.Expiry); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// authorizer adapta um TokenSource ao cliente REST
func authorizer(ts TokenSource) rest.Authorizer {
	return func(ctx context.Context, req *http.Request) error {
		if ts == nil {
			return connector.ErrNotAuthenticated
		}
		token, err := ts.Token(ctx)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
		return nil
	}
}
