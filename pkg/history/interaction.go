// Package history registra cada consulta atendida pelo agente.
package history

import (
	"context"
	"errors"
	"time"
)

// ErrNoHistory indica que a sessão não tem interações registradas
var ErrNoHistory = errors.New("no interactions recorded for session")

// Interaction representa uma consulta e a resposta devolvida
type Interaction struct {
	ID          string    `json:"id"`
	SessionKey  string    `json:"sessionKey"`
	OperationID string    `json:"operationId"`
	Query       string    `json:"query"`
	Action      string    `json:"action"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Repository define as operações do histórico de interações
type Repository interface {
	// Save grava uma nova interação; ID vazio recebe um uuid
	Save(ctx context.Context, in *Interaction) error

	// List devolve as interações da sessão, mais recentes primeiro
	List(ctx context.Context, sessionKey string, limit, offset int) ([]Interaction, error)

	// Delete apaga todo o histórico da sessão
	Delete(ctx context.Context, sessionKey string) error

	// Count conta as interações da sessão
	Count(ctx context.Context, sessionKey string) (int, error)
}
