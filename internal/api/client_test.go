package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obmenapp/obmen-client/internal/config"
	"github.com/obmenapp/obmen-client/internal/models"
)

// testServer запоминает последний запрос и отвечает заранее заданным кодом
type testServer struct {
	mu         sync.Mutex
	lastMethod string
	lastPath   string
	lastAuth   string

	status int
	body   string

	srv *httptest.Server
}

func newTestServer(t *testing.T, status int, body string) *testServer {
	t.Helper()
	ts := &testServer{status: status, body: body}
	ts.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.mu.Lock()
		ts.lastMethod = r.Method
		ts.lastPath = r.URL.Path
		ts.lastAuth = r.Header.Get("Authorization")
		ts.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(ts.status)
		_, _ = w.Write([]byte(ts.body))
	}))
	t.Cleanup(ts.srv.Close)
	return ts
}

func (ts *testServer) client() *Client {
	return NewClient(&config.Config{
		APIBaseURL:  ts.srv.URL,
		HTTPTimeout: 5 * time.Second,
	})
}

func (ts *testServer) last() (method, path, auth string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.lastMethod, ts.lastPath, ts.lastAuth
}

func TestUnreadCountDecodesResponse(t *testing.T) {
	ts := newTestServer(t, http.StatusOK, `{"count": 7}`)

	count, err := ts.client().UnreadCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, count)

	method, path, _ := ts.last()
	assert.Equal(t, http.MethodGet, method)
	assert.Equal(t, "/notifications/unread-count", path)
}

func TestTransitionExchangeMethodAndPath(t *testing.T) {
	id := uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")
	body, err := json.Marshal(models.ExchangeRequest{ID: id, Status: models.StatusAccepted})
	require.NoError(t, err)

	ts := newTestServer(t, http.StatusOK, string(body))

	ex, err := ts.client().TransitionExchange(context.Background(), id, models.ActionAccept)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, ex.Status)

	method, path, _ := ts.last()
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/exchanges/aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee/accept", path)
}

func TestSetTokenAddsBearerHeader(t *testing.T) {
	ts := newTestServer(t, http.StatusOK, `[]`)

	c := ts.client()
	c.SetToken("abc.def.ghi")

	_, err := c.Notifications(context.Background())
	require.NoError(t, err)

	_, _, auth := ts.last()
	assert.Equal(t, "Bearer abc.def.ghi", auth)
}

func TestLoginStoresToken(t *testing.T) {
	ts := newTestServer(t, http.StatusOK, `{"token": "new-token"}`)

	c := ts.client()
	token, err := c.Login(context.Background(), "user@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "new-token", token)
	assert.Equal(t, "new-token", c.Token())
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"bad request", http.StatusBadRequest, ErrValidation},
		{"unprocessable", http.StatusUnprocessableEntity, ErrValidation},
		{"unauthorized", http.StatusUnauthorized, ErrForbidden},
		{"forbidden", http.StatusForbidden, ErrForbidden},
		{"not found", http.StatusNotFound, ErrNotFound},
		{"conflict", http.StatusConflict, ErrConflict},
		{"server error", http.StatusInternalServerError, ErrNetwork},
		{"bad gateway", http.StatusBadGateway, ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, tt.status, `{"error": "что-то пошло не так"}`)

			_, err := ts.client().UnreadCount(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, "что-то пошло не так", apiErr.Message)
		})
	}
}

func TestErrorWithEmptyBody(t *testing.T) {
	ts := newTestServer(t, http.StatusConflict, ``)

	_, err := ts.client().UnreadCount(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "409")
}

func TestUnreachableServiceIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // Адрес валиден, но сервис уже недоступен

	c := NewClient(&config.Config{
		APIBaseURL:  srv.URL,
		HTTPTimeout: time.Second,
	})

	_, err := c.UnreadCount(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestMarkAllNotificationsRead(t *testing.T) {
	ts := newTestServer(t, http.StatusNoContent, ``)

	err := ts.client().MarkAllNotificationsRead(context.Background())
	require.NoError(t, err)

	method, path, _ := ts.last()
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/notifications/read-all", path)
}

func TestImageNormalizationSurvivesTransport(t *testing.T) {
	// Сервис иногда отдаёт images строкой вместо массива
	ts := newTestServer(t, http.StatusOK,
		`[{"id": "11111111-2222-3333-4444-555555555555", "title": "Дрель", "images": "a.jpg,b.jpg"}]`)

	items, err := ts.client().Items(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, []string(items[0].Images))
}
