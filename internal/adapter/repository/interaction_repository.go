package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hugohenrick/connector-agent/pkg/history"
)

// DB é o subconjunto de *pgxpool.Pool usado pelo repositório
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// InteractionRepository grava o histórico de interações no PostgreSQL
type InteractionRepository struct {
	db DB
}

func NewInteractionRepository(db DB) history.Repository {
	return &InteractionRepository{
		db: db,
	}
}

func (r *InteractionRepository) Save(ctx context.Context, in *history.Interaction) error {
	if in.SessionKey == "" {
		return fmt.Errorf("session_key não informado")
	}

	// Se o ID estiver vazio, gerar um novo
	if in.ID == "" {
		in.ID = uuid.New().String()
	}
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now()
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO interactions (id, session_key, operation_id, query, action, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		in.ID,
		in.SessionKey,
		in.OperationID,
		in.Query,
		in.Action,
		in.Message,
		in.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("erro ao salvar interação: %w", err)
	}

	return nil
}

func (r *InteractionRepository) List(ctx context.Context, sessionKey string, limit, offset int) ([]history.Interaction, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, operation_id, query, action, message, created_at
		FROM interactions
		WHERE session_key = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, sessionKey, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar histórico: %w", err)
	}
	defer rows.Close()

	interactions := []history.Interaction{}
	for rows.Next() {
		var in history.Interaction
		var operationID *string
		if err := rows.Scan(&in.ID, &operationID, &in.Query, &in.Action, &in.Message, &in.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler interação: %w", err)
		}
		if operationID != nil {
			in.OperationID = *operationID
		}
		in.SessionKey = sessionKey
		interactions = append(interactions, in)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler linhas: %w", err)
	}

	return interactions, nil
}

func (r *InteractionRepository) Delete(ctx context.Context, sessionKey string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM interactions WHERE session_key = $1`, sessionKey)
	if err != nil {
		return fmt.Errorf("erro ao deletar histórico: %w", err)
	}

	if result.RowsAffected() == 0 {
		return history.ErrNoHistory
	}

	return nil
}

func (r *InteractionRepository) Count(ctx context.Context, sessionKey string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM interactions WHERE session_key = $1`, sessionKey).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar interações: %w", err)
	}

	return count, nil
}
