// Package tenant guarda no contexto o escopo de quem chama a API: o tenant do
// operador autenticado e a chave de sessão derivada dele.
package tenant

import (
	"context"
)

type contextKey string

const (
	tenantIDKey   contextKey = "tenant_id"
	sessionKeyKey contextKey = "session_key"
)

// SetTenantIDContext define o tenant ID no contexto
func SetTenantIDContext(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, tenantIDKey, tenantID)
}

// GetTenantIDFromContext obtém o tenant ID do contexto
func GetTenantIDFromContext(ctx context.Context) string {
	if tenantID, ok := ctx.Value(tenantIDKey).(string); ok {
		return tenantID
	}
	return ""
}

// SetSessionKeyContext define a chave de sessão no contexto
func SetSessionKeyContext(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, sessionKeyKey, key)
}

// GetSessionKeyFromContext obtém a chave de sessão do contexto
func GetSessionKeyFromContext(ctx context.Context) string {
	if key, ok := ctx.Value(sessionKeyKey).(string); ok {
		return key
	}
	return ""
}
