package google

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/connector-agent/pkg/connector"
	"github.com/hugohenrick/connector-agent/pkg/logger"
)

func newServices(t *testing.T, mux *http.ServeMux) *Services {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer g-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	now := func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }
	return New(StaticToken("g-token"), logger.NewNop(), WithEndpoints(SameHost(srv.URL)), WithClock(now))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestStaticTokenEmpty(t *testing.T) {
	_, err := StaticToken(" ").Token(context.Background())
	assert.ErrorIs(t, err, connector.ErrNotAuthenticated)
}

func TestFileTokenSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token.json")
	src := NewFileTokenSource(path)
	src.now = func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }

	_, err := src.Token(context.Background())
	assert.ErrorIs(t, err, connector.ErrNotAuthenticated, "missing file")

	valid := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC).UnixMilli()
	require.NoError(t, os.WriteFile(path, []byte(`{"access_token":"abc","expiry_date":`+strconv.FormatInt(valid, 10)+`}`), 0o600))
	tok, err := src.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	require.NoError(t, os.WriteFile(path, []byte(`{"access_token":"abc","expiry":"2025-03-10T08:00:00Z"}`), 0o600))
	_, err = src.Token(context.Background())
	assert.ErrorIs(t, err, connector.ErrNotAuthenticated, "expired")
}

func TestSearchQuery(t *testing.T) {
	q, err := SearchQuery(connector.EmailQuery{Search: "from:ana", Date: "2025-03-09"})
	require.NoError(t, err)
	assert.Equal(t, "from:ana after:2025/03/09 before:2025/03/10", q)

	_, err = SearchQuery(connector.EmailQuery{Date: "yesterday"})
	assert.Error(t, err)
}

func TestGmailListAndSend(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/me/messages", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("maxResults"))
		assert.Equal(t, "invoice", r.URL.Query().Get("q"))
		writeJSON(w, map[string]any{"messages": []map[string]string{{"id": "m1", "threadId": "t1"}}})
	})
	mux.HandleFunc("/users/me/messages/m1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "metadata", r.URL.Query().Get("format"))
		writeJSON(w, map[string]any{
			"id": "m1", "threadId": "t1", "snippet": "Your invoice",
			"payload": map[string]any{"headers": []map[string]string{
				{"name": "Subject", "value": "Invoice #1"},
				{"name": "From", "value": "billing@example.com"},
			}},
		})
	})
	var raw string
	mux.HandleFunc("/users/me/messages/send", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		raw = body["raw"]
		writeJSON(w, map[string]string{"id": "sent"})
	})

	g := newServices(t, mux).Gmail
	emails, err := g.ListEmails(context.Background(), connector.EmailQuery{Limit: 5, Search: "invoice"})
	require.NoError(t, err)
	require.Len(t, emails, 1)
	assert.Equal(t, connector.Email{ID: "m1", ThreadID: "t1", Subject: "Invoice #1", From: "billing@example.com", Snippet: "Your invoice"}, emails[0])

	require.NoError(t, g.SendEmail(context.Background(), connector.OutgoingEmail{To: "ana@example.com", Subject: "Hi", Body: "Hello"}))
	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	require.NoError(t, err)
	assert.Contains(t, string(decoded), "To: ana@example.com\r\n")
	assert.True(t, strings.HasSuffix(string(decoded), "\r\n\r\nHello"))
}

func TestBuildMIMERejectsLineBreaksInRecipient(t *testing.T) {
	_, err := buildMIME(connector.OutgoingEmail{To: "ana@example.com\r\nBcc: attacker@evil.test", Subject: "Hi"})
	assert.ErrorIs(t, err, ErrInvalidRecipient)

	_, err = buildMIME(connector.OutgoingEmail{To: "ana@example.com\nBcc: attacker@evil.test"})
	assert.ErrorIs(t, err, ErrInvalidRecipient)

	msg, err := buildMIME(connector.OutgoingEmail{To: "ana@example.com", Subject: "Olá\r\nBcc: x@y.z", Body: "oi"})
	require.NoError(t, err)
	headers, _, _ := strings.Cut(msg, "\r\n\r\n")
	lines := strings.Split(headers, "\r\n")
	assert.Equal(t, "To: ana@example.com", lines[0])
	assert.NotContains(t, headers, "\r\nBcc:")
	assert.Len(t, lines, 4)
}

func TestDriveFindFiles(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/files", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "name contains 'Bob\\'s plan' and trashed = false and mimeType = 'application/vnd.google-apps.document'", r.URL.Query().Get("q"))
		writeJSON(w, map[string]any{"files": []map[string]string{{"id": "d1", "name": "Bob's plan"}}})
	})

	refs, err := newServices(t, mux).Drive.FindFiles(context.Background(), "Bob's plan", "application/vnd.google-apps.document")
	require.NoError(t, err)
	assert.Equal(t, []connector.FileRef{{ID: "d1", Name: "Bob's plan"}}, refs)
}

func TestDocsReadAndClear(t *testing.T) {
	doc := map[string]any{
		"documentId": "d1",
		"title":      "Notes",
		"body": map[string]any{"content": []map[string]any{
			{"endIndex": 1},
			{"endIndex": 13, "paragraph": map[string]any{"elements": []map[string]any{
				{"textRun": map[string]string{"content": "Hello world\n"}},
			}}},
		}},
	}
	var requests []map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/documents/d1", func(w http.ResponseWriter, r *http.Request) { writeJSON(w, doc) })
	mux.HandleFunc("/documents/d1:batchUpdate", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Requests []map[string]any `json:"requests"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		requests = append(requests, body.Requests...)
		writeJSON(w, map[string]any{})
	})

	docs := newServices(t, mux).Docs
	content, err := docs.ReadDoc(context.Background(), "d1")
	require.NoError(t, err)
	assert.Equal(t, connector.DocContent{DocumentID: "d1", Title: "Notes", Content: "Hello world\n"}, content)

	require.NoError(t, docs.ClearDoc(context.Background(), "d1"))
	require.NoError(t, docs.ReplaceText(context.Background(), "d1", "draft", ""))
	require.Len(t, requests, 2)
	assert.Equal(t, map[string]any{"range": map[string]any{"startIndex": 1.0, "endIndex": 12.0}}, requests[0]["deleteContentRange"])
	assert.Equal(t, "", requests[1]["replaceAllText"].(map[string]any)["replaceText"])
}

func TestSheetsReadRange(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/spreadsheets/s1/values/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/spreadsheets/s1/values/Sheet1!A1:E10", r.URL.Path)
		writeJSON(w, map[string]any{"values": [][]any{{"name", 3.5, true}, {nil}}})
	})

	rows, err := newServices(t, mux).Sheets.ReadRange(context.Background(), "s1", "Sheet1!A1:E10")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"name", "3.5", "true"}, {""}}, rows)
}

func TestCalendarCreateEventRequestsMeet(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/calendars/primary/events", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("conferenceDataVersion"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		create := body["conferenceData"].(map[string]any)["createRequest"].(map[string]any)
		assert.NotEmpty(t, create["requestId"])
		assert.Equal(t, "2025-03-10T17:00:00Z", body["start"].(map[string]any)["dateTime"])

		writeJSON(w, map[string]any{
			"id": "ev1", "summary": "Sync", "hangoutLink": "https://meet.google.com/abc",
			"start": map[string]string{"dateTime": "2025-03-10T17:00:00Z"},
			"end":   map[string]string{"dateTime": "2025-03-10T17:30:00Z"},
		})
	})

	start := time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC)
	ev, err := newServices(t, mux).Calendar.CreateEvent(context.Background(), connector.EventInput{Subject: "Sync", Start: start, End: start.Add(30 * time.Minute)})
	require.NoError(t, err)
	assert.Equal(t, "ev1", ev.ExternalID)
	assert.Equal(t, "https://meet.google.com/abc", ev.Link)
	assert.True(t, ev.Start.Equal(start))
}

func TestClassroomFindCoursesPrefersExactName(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/courses", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"courses": []map[string]string{
			{"id": "1", "name": "Math Advanced"},
			{"id": "2", "name": "Math"},
			{"id": "3", "name": "History"},
		}})
	})

	refs, err := newServices(t, mux).Classroom.FindCourses(context.Background(), "math")
	require.NoError(t, err)
	assert.Equal(t, []connector.FileRef{{ID: "2", Name: "Math"}, {ID: "1", Name: "Math Advanced"}}, refs)
}

func TestUnauthorizedMapsToNotAuthenticated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	s := New(StaticToken("stale"), logger.NewNop(), WithEndpoints(SameHost(srv.URL)))
	_, err := s.Keep.ListNotes(context.Background(), 5)
	assert.ErrorIs(t, err, connector.ErrNotAuthenticated)

	s = New(nil, logger.NewNop(), WithEndpoints(SameHost(srv.URL)))
	_, err = s.Drive.ListFiles(context.Background(), 5)
	assert.ErrorIs(t, err, connector.ErrNotAuthenticated)
}
