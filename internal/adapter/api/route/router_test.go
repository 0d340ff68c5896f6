package route

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/connector-agent/internal/adapter/api/controller"
	"github.com/hugohenrick/connector-agent/internal/adapter/api/dto"
	"github.com/hugohenrick/connector-agent/pkg/agent"
	"github.com/hugohenrick/connector-agent/pkg/agent/intent"
	agentrouter "github.com/hugohenrick/connector-agent/pkg/agent/router"
	"github.com/hugohenrick/connector-agent/pkg/agent/session"
	"github.com/hugohenrick/connector-agent/pkg/auth"
	"github.com/hugohenrick/connector-agent/pkg/connector"
	"github.com/hugohenrick/connector-agent/pkg/connectors/shopify"
	"github.com/hugohenrick/connector-agent/pkg/connectors/telegram"
	"github.com/hugohenrick/connector-agent/pkg/history"
	"github.com/hugohenrick/connector-agent/pkg/logger"
	"github.com/hugohenrick/connector-agent/pkg/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router *gin.Engine
	jwt    *auth.JWTService
}

// newTestEnv monta a API com o parser determinístico e conectores apontando
// para vendor, que simula Shopify e Telegram
func newTestEnv(t *testing.T, vendor http.Handler, withJWT bool) testEnv {
	t.Helper()
	log := logger.NewNop()

	srv := httptest.NewServer(vendor)
	t.Cleanup(srv.Close)

	shop := shopify.New(log, 5*time.Second, shopify.WithEndpoint(srv.URL))
	tg := telegram.New(srv.URL, log, 5*time.Second)

	reg := prometheus.NewRegistry()
	m := metrics.MustNew(reg)

	engine := agent.NewEngine(
		intent.NewParser(nil, log),
		agentrouter.New(connector.Set{Shopify: shop, Telegram: tg}, log, agentrouter.WithLocation(time.UTC)),
		session.NewRegistry(time.UTC),
		log,
		agent.WithHistory(history.NewMemoryRepository(50)),
		agent.WithMetrics(m),
	)

	env := testEnv{}
	h := Handlers{
		Agent:     controller.NewAgentController(engine, log),
		Connector: controller.NewConnectorController(shop, tg, log),
	}
	opts := Options{Gatherer: reg}
	if withJWT {
		svc, err := auth.NewJWTService("test-secret", time.Hour)
		require.NoError(t, err)
		env.jwt = svc
		h.Auth = controller.NewAuthController(svc)
		opts.JWT = svc
	}
	env.router = NewRouter(h, opts)
	return env
}

func (e testEnv) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, http.NewServeMux(), false)

	w := env.do(http.MethodGet, "/api/v1/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestQueryValidation(t *testing.T) {
	env := newTestEnv(t, http.NewServeMux(), false)

	t.Run("missing query", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/v1/agent/query", `{"sessionId":"s1"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decode[dto.ErrorResponse](t, w)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("blank query", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/v1/agent/query", `{"query":"   "}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid json", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/v1/agent/query", `{"query":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("wrong method", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/v1/agent/query", "")
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		resp := decode[dto.ErrorResponse](t, w)
		assert.Equal(t, http.StatusMethodNotAllowed, resp.Code)
	})

	t.Run("unknown route", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/v1/nothing", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestQueryTelegramWithoutToken(t *testing.T) {
	env := newTestEnv(t, http.NewServeMux(), false)

	w := env.do(http.MethodPost, "/api/v1/agent/query", `{"query":"show my telegram messages"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(controller.OperationIDHeader))

	resp := decode[intent.ActionResponse](t, w)
	assert.Equal(t, intent.ActionFetchTelegramUpdates, resp.Action)
	assert.Equal(t, "❌ Please provide a Telegram Bot Token.", resp.Message)
}

func TestQueryTelegramWithToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /botT0K/getUpdates", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":[
			{"update_id":1,"message":{"message_id":10,"date":1700000000,"text":"hello","chat":{"id":-100,"title":"Team"},"from":{"id":7,"first_name":"Ana"}}}
		]}`))
	})
	env := newTestEnv(t, mux, false)

	w := env.do(http.MethodPost, "/api/v1/agent/query", `{"query":"show my telegram messages","telegramToken":"T0K"}`)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[map[string]any](t, w)
	assert.Equal(t, string(intent.ActionFetchTelegramUpdates), resp["action"])
	assert.NotNil(t, resp["data"])
}

func TestQueryShopifyOrdersOnlyCallsShopifyDomains(t *testing.T) {
	var hits int
	mux := http.NewServeMux()
	mux.HandleFunc("GET /orders.json", func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte(`{"orders":[{"id":1,"order_number":1001,"total_price":"9.90"}]}`))
	})
	env := newTestEnv(t, mux, false)

	w := env.do(http.MethodPost, "/api/v1/agent/query",
		`{"query":"show my shopify orders","shopifyConfig":{"storeUrl":"127.0.0.1:1","accessToken":"shpat_secret"}}`)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[map[string]any](t, w)
	assert.Equal(t, string(intent.ActionFetchOrders), resp["action"])
	assert.Equal(t, "❌ Shopify is not connected. Please connect your store first.", resp["message"])
	assert.Zero(t, hits)

	w = env.do(http.MethodPost, "/api/v1/agent/query",
		`{"query":"show my shopify orders","shopifyConfig":{"storeUrl":"demo.myshopify.com","accessToken":"shpat_secret"}}`)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decode[map[string]any](t, w)
	assert.Equal(t, "✅ Found 1 Shopify orders.", resp["message"])
	assert.Equal(t, 1, hits)
}

func TestHistoryIsScopedBySession(t *testing.T) {
	env := newTestEnv(t, http.NewServeMux(), false)

	env.do(http.MethodPost, "/api/v1/agent/query", `{"query":"help","sessionId":"alpha"}`)
	env.do(http.MethodPost, "/api/v1/agent/query", `{"query":"what can you do"}`, "X-Session-ID", "alpha")
	env.do(http.MethodPost, "/api/v1/agent/query", `{"query":"help","sessionId":"beta"}`)

	w := env.do(http.MethodGet, "/api/v1/agent/history?sessionId=alpha&pageSize=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[dto.HistoryResponse](t, w)
	assert.Equal(t, 2, page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "what can you do", page.Items[0].Query)

	w = env.do(http.MethodDelete, "/api/v1/agent/history", "", "X-Session-ID", "alpha")
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodDelete, "/api/v1/agent/history?sessionId=alpha", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodGet, "/api/v1/agent/history?sessionId=beta", "")
	page = decode[dto.HistoryResponse](t, w)
	assert.Equal(t, 1, page.TotalCount)
}

func TestAgentRoutesRequireJWT(t *testing.T) {
	env := newTestEnv(t, http.NewServeMux(), true)

	w := env.do(http.MethodPost, "/api/v1/agent/query", `{"query":"help"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := env.jwt.GenerateToken(auth.Operator{UserID: "u1", TenantID: "t1"})
	require.NoError(t, err)
	bearer := "Bearer " + token

	// o sessionId do corpo não escapa da sessão do operador
	w = env.do(http.MethodPost, "/api/v1/agent/query", `{"query":"help","sessionId":"other"}`, "Authorization", bearer)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/api/v1/agent/history", "", "Authorization", bearer)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[dto.HistoryResponse](t, w)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "t1:u1", page.Items[0].SessionKey)

	w = env.do(http.MethodPost, "/api/v1/auth/refresh", `{"token":"`+token+`"}`)
	require.Equal(t, http.StatusOK, w.Code)
	refreshed := decode[dto.RefreshTokenResponse](t, w)
	assert.NotEmpty(t, refreshed.AccessToken)

	w = env.do(http.MethodPost, "/api/v1/auth/refresh", `{"token":"garbage"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVerifyShopify(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /shop.json", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Shopify-Access-Token") != "shpat_good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"shop":{"name":"Demo","domain":"demo.myshopify.com"}}`))
	})
	env := newTestEnv(t, mux, false)

	t.Run("connected", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/v1/connectors/shopify/verify", `{"storeUrl":"demo.myshopify.com","accessToken":"shpat_good"}`)
		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[dto.ShopifyVerifyResponse](t, w)
		assert.True(t, resp.Success)
		assert.Equal(t, "Demo", resp.Shop.Name)
	})

	t.Run("malformed token", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/v1/connectors/shopify/verify", `{"storeUrl":"demo.myshopify.com","accessToken":"abc"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejected token", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/v1/connectors/shopify/verify", `{"storeUrl":"demo.myshopify.com","accessToken":"shpat_bad"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decode[dto.ErrorResponse](t, w)
		assert.Contains(t, resp.Details, "Unauthorized")
	})

	t.Run("missing fields", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/v1/connectors/shopify/verify", `{"storeUrl":"demo.myshopify.com"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestVerifyTelegram(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /botT0K/getMe", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true,"result":{"id":42,"username":"demo_bot","first_name":"Demo"}}`))
	})
	env := newTestEnv(t, mux, false)

	w := env.do(http.MethodPost, "/api/v1/connectors/telegram/verify", `{"token":"T0K"}`)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[dto.TelegramVerifyResponse](t, w)
	assert.Equal(t, "demo_bot", resp.Bot.Username)

	w = env.do(http.MethodPost, "/api/v1/connectors/telegram/verify", `{"token":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t, http.NewServeMux(), false)
	env.do(http.MethodPost, "/api/v1/agent/query", `{"query":"help"}`)

	w := env.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "connector_agent_requests_total")
}

func TestCORSConfig(t *testing.T) {
	assert.True(t, corsConfig(nil).AllowAllOrigins)
	assert.True(t, corsConfig([]string{"*"}).AllowAllOrigins)

	cfg := corsConfig([]string{"http://localhost:3000"})
	assert.False(t, cfg.AllowAllOrigins)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowOrigins)
}
