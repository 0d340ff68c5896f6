package telegram

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

func newClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return New(srv.URL, logger.NewNop(), 5*time.Second)
}

func reply(w http.ResponseWriter, result any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "result": result})
}

func TestChatTarget(t *testing.T) {
	assert.Equal(t, int64(-100123), chatTarget(" -100123 "))
	assert.Equal(t, "@mygroup", chatTarget("@mygroup"))
}

func TestEmptyTokenNeverCallsAPI(t *testing.T) {
	c := newClient(t, http.NewServeMux())
	_, err := c.GetMe(context.Background(), " ")
	assert.ErrorIs(t, err, connector.ErrNotAuthenticated)
}

func TestGetMe(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /botT0K/getMe", func(w http.ResponseWriter, r *http.Request) {
		reply(w, map[string]any{"id": 7, "is_bot": true, "first_name": "Helper", "username": "helper_bot"})
	})
	mux.HandleFunc("POST /botBAD/getMe", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":401,"description":"Unauthorized"}`))
	})
	c := newClient(t, mux)

	bot, err := c.GetMe(context.Background(), "T0K")
	require.NoError(t, err)
	assert.Equal(t, connector.TelegramBot{ID: 7, Username: "helper_bot", Name: "Helper"}, bot)

	_, err = c.GetMe(context.Background(), "BAD")
	assert.ErrorIs(t, err, connector.ErrNotAuthenticated)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Unauthorized", apiErr.Description)
	assert.NotContains(t, err.Error(), "BAD")
}

func TestGetRecentMessagesNewestFirst(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /botT0K/getUpdates", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Limit          int      `json:"limit"`
			AllowedUpdates []string `json:"allowed_updates"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 3, body.Limit)
		assert.Equal(t, []string{"message"}, body.AllowedUpdates)
		reply(w, []map[string]any{
			{"update_id": 1, "message": map[string]any{"message_id": 10, "text": "first", "chat": map[string]any{"id": -5, "title": "Ops"}, "from": map[string]any{"first_name": "Ana"}}},
			{"update_id": 2, "message": map[string]any{"message_id": 11, "chat": map[string]any{"id": -5}}},
			{"update_id": 3},
			{"update_id": 4, "message": map[string]any{"message_id": 12, "text": "second", "chat": map[string]any{"id": -5}, "from": map[string]any{"username": "bob"}}},
		})
	})
	c := newClient(t, mux)

	msgs, err := c.GetRecentMessages(context.Background(), "T0K", 3)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "second", msgs[0].Text)
	assert.Equal(t, "@bob", msgs[0].From)
	assert.Equal(t, "first", msgs[1].Text)
	assert.Equal(t, "Ana", msgs[1].From)
	assert.Equal(t, "Ops", msgs[1].ChatTitle)
}

func TestSendAndManage(t *testing.T) {
	var calls []string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /botT0K/{method}", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		method := r.PathValue("method")
		calls = append(calls, method)
		switch method {
		case "sendMessage":
			assert.Equal(t, float64(42), body["chat_id"])
			assert.Equal(t, "Markdown", body["parse_mode"])
			reply(w, map[string]any{"message_id": 99, "text": body["text"], "chat": map[string]any{"id": 42}})
		case "banChatMember":
			assert.Equal(t, "@group", body["chat_id"])
			assert.Equal(t, float64(5), body["user_id"])
			reply(w, true)
		case "pinChatMessage":
			assert.Equal(t, float64(99), body["message_id"])
			reply(w, true)
		case "setChatTitle":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"ok":false,"description":"Bad Request: not enough rights"}`))
		}
	})
	c := newClient(t, mux)
	ctx := context.Background()

	sent, err := c.SendMessage(ctx, "T0K", "42", "*hi*")
	require.NoError(t, err)
	assert.Equal(t, int64(99), sent.MessageID)
	assert.Equal(t, "*hi*", sent.Text)

	require.NoError(t, c.RemoveMember(ctx, "T0K", "@group", 5))
	require.NoError(t, c.PinMessage(ctx, "T0K", "42", 99))

	err = c.RenameChat(ctx, "T0K", "42", "New")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not enough rights")
	assert.NotErrorIs(t, err, connector.ErrNotAuthenticated)

	assert.Equal(t, []string{"sendMessage", "banChatMember", "pinChatMessage", "setChatTitle"}, calls)
}

func TestOkFalseWith200(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /botT0K/getMe", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":false,"description":"flood"}`))
	})
	c := newClient(t, mux)

	_, err := c.GetMe(context.Background(), "T0K")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "flood", apiErr.Description)
}
