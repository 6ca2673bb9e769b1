package line

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ulandresort/ulandbot/internal/catalog"
)

type recordedRequest struct {
	method   string
	path     string
	auth     string
	retryKey string
	body     map[string]any
}

func newTestClient(t *testing.T, status int, respBody string) (*Client, *[]recordedRequest) {
	t.Helper()
	var reqs []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{
			method:   r.Method,
			path:     r.URL.Path,
			auth:     r.Header.Get("Authorization"),
			retryKey: r.Header.Get("X-Line-Retry-Key"),
		}
		if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
			_ = json.Unmarshal(raw, &rec.body)
		}
		reqs = append(reqs, rec)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(respBody))
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient("test-token", 5*time.Second, messaging_api.WithEndpoint(srv.URL))
	require.NoError(t, err)
	return c, &reqs
}

func TestClientReply(t *testing.T) {
	c, reqs := newTestClient(t, http.StatusOK, `{"sentMessages":[]}`)

	err := c.Reply(context.Background(), "rt-1", []catalog.Message{
		catalog.Text{Body: "first"},
		catalog.Text{Body: "second"},
	})
	require.NoError(t, err)
	require.Len(t, *reqs, 1)

	req := (*reqs)[0]
	assert.Equal(t, http.MethodPost, req.method)
	assert.Equal(t, "/v2/bot/message/reply", req.path)
	assert.Equal(t, "Bearer test-token", req.auth)
	assert.Equal(t, "rt-1", req.body["replyToken"])

	msgs, ok := req.body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "first", msgs[0].(map[string]any)["text"])
	assert.Equal(t, "second", msgs[1].(map[string]any)["text"])
}

func TestClientPushSetsRetryKey(t *testing.T) {
	c, reqs := newTestClient(t, http.StatusOK, `{"sentMessages":[]}`)

	err := c.Push(context.Background(), "U1", []catalog.Message{catalog.Image{FullURL: "https://x/a.jpg", PreviewURL: "https://x/a.jpg"}})
	require.NoError(t, err)
	require.Len(t, *reqs, 1)

	req := (*reqs)[0]
	assert.Equal(t, "/v2/bot/message/push", req.path)
	assert.Equal(t, "U1", req.body["to"])
	_, err = uuid.Parse(req.retryKey)
	assert.NoError(t, err, "retry key %q", req.retryKey)
}

func TestClientDisplayName(t *testing.T) {
	c, reqs := newTestClient(t, http.StatusOK, `{"userId":"U1","displayName":"Somchai"}`)

	name, err := c.DisplayName(context.Background(), "U1")
	require.NoError(t, err)
	assert.Equal(t, "Somchai", name)
	assert.Equal(t, "/v2/bot/profile/U1", (*reqs)[0].path)
	assert.Equal(t, http.MethodGet, (*reqs)[0].method)
}

func TestClientSurfacesAPIErrors(t *testing.T) {
	c, _ := newTestClient(t, http.StatusBadRequest, `{"message":"Invalid reply token"}`)

	err := c.Reply(context.Background(), "expired", []catalog.Message{catalog.Text{Body: "x"}})
	assert.ErrorContains(t, err, "reply message")

	err = c.Push(context.Background(), "U1", []catalog.Message{catalog.Text{Body: "x"}})
	assert.ErrorContains(t, err, "push message")

	_, err = c.DisplayName(context.Background(), "U1")
	assert.ErrorContains(t, err, "get profile")
}

func TestClientHonorsCanceledContext(t *testing.T) {
	c, reqs := newTestClient(t, http.StatusOK, `{}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Reply(ctx, "rt", []catalog.Message{catalog.Text{Body: "x"}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, *reqs)
}
