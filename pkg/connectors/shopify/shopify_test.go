package shopify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/connector-agent/pkg/connector"
	"github.com/hugohenrick/connector-agent/pkg/logger"
)

var creds = connector.ShopifyConfig{StoreURL: "demo.myshopify.com", AccessToken: "shpat_abc"}

func newClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Shopify-Access-Token") != "shpat_abc" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return New(logger.NewNop(), 5*time.Second, WithEndpoint(srv.URL+"/admin/api/"+APIVersion))
}

func TestValidateConfig(t *testing.T) {
	assert.NoError(t, ValidateConfig(creds))
	assert.NoError(t, ValidateConfig(connector.ShopifyConfig{StoreURL: "https://Demo.myshopify.com/", AccessToken: "shpat_x"}))
	assert.ErrorIs(t, ValidateConfig(connector.ShopifyConfig{StoreURL: "demo.myshopify.com"}), ErrMissingCredentials)
	assert.ErrorIs(t, ValidateConfig(connector.ShopifyConfig{StoreURL: "demo.com", AccessToken: "shpat_x"}), ErrInvalidStoreURL)
	assert.ErrorIs(t, ValidateConfig(connector.ShopifyConfig{StoreURL: "demo.myshopify.com", AccessToken: "tok"}), ErrInvalidToken)
}

func TestDefaultEndpoint(t *testing.T) {
	c := New(logger.NewNop(), time.Second)
	assert.Equal(t, "https://demo.myshopify.com/admin/api/2024-01", c.endpoint("https://demo.myshopify.com/"))
}

func TestListOrders(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/api/2024-01/orders.json", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "any", q.Get("status"))
		assert.Equal(t, "250", q.Get("limit"))
		assert.Equal(t, "2025-03-09T00:00:00Z", q.Get("created_at_min"))
		_ = json.NewEncoder(w).Encode(map[string]any{"orders": []map[string]any{
			{"id": 1, "order_number": 1001, "total_price": "10.00", "customer": map[string]string{"first_name": "Ana", "last_name": "Lima", "email": "ana@x.com"}},
			{"id": 2, "order_number": 1002, "email": "guest@x.com", "fulfillment_status": nil},
		}})
	})

	orders, err := c.ListOrders(context.Background(), creds, connector.OrderQuery{Limit: 500, CreatedAtMin: "2025-03-09T00:00:00Z"})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "Ana Lima", orders[0].CustomerName)
	assert.Equal(t, "ana@x.com", orders[0].CustomerEmail)
	assert.Equal(t, "Guest", orders[1].CustomerName)
	assert.Equal(t, "guest@x.com", orders[1].CustomerEmail)
}

func TestShopAndBadToken(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"shop": map[string]string{"name": "Demo", "domain": "demo.com"}})
	})

	shop, err := c.Shop(context.Background(), creds)
	require.NoError(t, err)
	assert.Equal(t, "Demo", shop.Name)

	_, err = c.Shop(context.Background(), connector.ShopifyConfig{StoreURL: "demo.myshopify.com", AccessToken: "shpat_wrong"})
	assert.ErrorIs(t, err, connector.ErrNotAuthenticated)

	_, err = c.ListOrders(context.Background(), connector.ShopifyConfig{}, connector.OrderQuery{})
	assert.ErrorIs(t, err, connector.ErrNotAuthenticated)
}

func TestRequestsOnlyGoToShopifyDomains(t *testing.T) {
	var hits int
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
		_ = json.NewEncoder(w).Encode(map[string]any{"orders": []any{}})
	})

	for _, cfg := range []connector.ShopifyConfig{
		{StoreURL: "127.0.0.1:1", AccessToken: "shpat_abc"},
		{StoreURL: "https://evil.test/x.myshopify.com", AccessToken: "shpat_abc"},
		{StoreURL: "demo.myshopify.com", AccessToken: "abc"},
	} {
		_, err := c.ListOrders(context.Background(), cfg, connector.OrderQuery{})
		assert.ErrorIs(t, err, connector.ErrNotAuthenticated, cfg.StoreURL)
	}
	_, err := c.ListOrders(context.Background(), connector.ShopifyConfig{StoreURL: "127.0.0.1:1", AccessToken: "shpat_abc"}, connector.OrderQuery{})
	assert.ErrorIs(t, err, ErrInvalidStoreURL)
	assert.Zero(t, hits)
}
