package tenant

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// SessionHeader é o cabeçalho opcional com o ID de sessão do cliente
const SessionHeader = "X-Session-ID"

// SessionMiddleware calcula a chave de sessão da requisição. Com operador
// autenticado a chave é tenant:usuário; sem autenticação vale o cabeçalho
// X-Session-ID, e a ausência dele deixa a chave vazia (sessão padrão).
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(SessionHeader))
		if userID := c.GetString("user_id"); userID != "" {
			key = c.GetString("tenant_id") + ":" + userID
		}

		if key != "" {
			c.Set(string(sessionKeyKey), key)
			c.Request = c.Request.WithContext(SetSessionKeyContext(c.Request.Context(), key))
		}
		c.Next()
	}
}

// SessionKey obtém a chave da requisição. O operador autenticado tem
// prioridade sobre o sessionId do corpo, que tem prioridade sobre o cabeçalho.
func SessionKey(c *gin.Context, bodySessionID string) string {
	if c.GetString("user_id") != "" {
		return c.GetString(string(sessionKeyKey))
	}
	if id := strings.TrimSpace(bodySessionID); id != "" {
		return id
	}
	return c.GetString(string(sessionKeyKey))
}
