package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/connector-agent/pkg/tenant"
)

func TestJWTAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := newService(t)

	r := gin.New()
	r.GET("/me", JWTAuthMiddleware(svc), func(c *gin.Context) {
		op, ok := GetCurrentOperator(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{
			"user":   op.UserID,
			"tenant": tenant.GetTenantIDFromContext(c.Request.Context()),
		})
	})

	call := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusUnauthorized, call("").Code)
	assert.Equal(t, http.StatusUnauthorized, call("Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, call("Bearer abc").Code)

	token, err := svc.GenerateToken(Operator{UserID: "u1", TenantID: "t1"})
	require.NoError(t, err)
	w := call("Bearer " + token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"u1","tenant":"t1"}`, w.Body.String())
}

func TestGetCurrentOperatorWithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := GetCurrentOperator(c)
	assert.False(t, ok)
}
