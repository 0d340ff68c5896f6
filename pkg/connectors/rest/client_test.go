package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/connector-agent/pkg/connector"
	"github.com/hugohenrick/connector-agent/pkg/logger"
)

func TestDoSendsJSONAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/items", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "x", in["name"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"42"}`))
	}))
	defer srv.Close()

	c := New("test", srv.URL+"/", logger.NewNop(), WithAuth(Bearer("tok")))
	var out struct {
		ID string `json:"id"`
	}
	err := c.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/v1/items",
		Query:  url.Values{"limit": {"3"}},
		Body:   map[string]string{"name": "x"},
	}, &out)

	require.NoError(t, err)
	assert.Equal(t, "42", out.ID)
}

func TestStatusErrors(t *testing.T) {
	status := http.StatusUnauthorized
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"error":"nope"}`))
	}))
	defer srv.Close()

	c := New("test", srv.URL, logger.NewNop())

	err := c.Do(context.Background(), Request{Path: "/"}, nil)
	assert.ErrorIs(t, err, connector.ErrNotAuthenticated)

	status = http.StatusInternalServerError
	err = c.Do(context.Background(), Request{Path: "/"}, nil)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.NotErrorIs(t, err, connector.ErrNotAuthenticated)
}

func TestEmptyBearerIsNotAuthenticated(t *testing.T) {
	c := New("test", "http://127.0.0.1:1", logger.NewNop())

	err := c.Do(context.Background(), Request{Path: "/", Auth: Bearer("")}, nil)

	assert.ErrorIs(t, err, connector.ErrNotAuthenticated)
}
