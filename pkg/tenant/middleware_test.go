package tenant

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func sessionFor(t *testing.T, authenticated bool, header, body string) (string, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var key, ctxKey string
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if authenticated {
			c.Set("user_id", "u1")
			c.Set("tenant_id", "t1")
		}
	})
	r.Use(SessionMiddleware())
	r.GET("/", func(c *gin.Context) {
		key = SessionKey(c, body)
		ctxKey = GetSessionKeyFromContext(c.Request.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(SessionHeader, header)
	}
	r.ServeHTTP(httptest.NewRecorder(), req)
	return key, ctxKey
}

func TestSessionKeyPriority(t *testing.T) {
	tests := []struct {
		name          string
		authenticated bool
		header        string
		body          string
		want          string
	}{
		{name: "operador autenticado", authenticated: true, header: "h", body: "b", want: "t1:u1"},
		{name: "corpo antes do cabeçalho", header: "h", body: "b", want: "b"},
		{name: "cabeçalho", header: " h ", want: "h"},
		{name: "sessão padrão", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := sessionFor(t, tt.authenticated, tt.header, tt.body)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSessionMiddlewareSetsContext(t *testing.T) {
	_, ctxKey := sessionFor(t, true, "", "")
	assert.Equal(t, "t1:u1", ctxKey)

	_, ctxKey = sessionFor(t, false, "abc", "")
	assert.Equal(t, "abc", ctxKey)
}
