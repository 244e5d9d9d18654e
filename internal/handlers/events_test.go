package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventsFeed(t *testing.T) {
	ts := httptest.NewServer(newAPI())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/users/events"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	defer resp.Body.Close()

	// The handshake completes before the server registers the
	// subscription; give it a moment so the create below is observed.
	time.Sleep(50 * time.Millisecond)

	// Trigger a create through the HTTP API and expect the notification
	// on the feed.
	httpResp, err := http.Post(ts.URL+"/users", "application/json", strings.NewReader(aliceBody))
	require.NoError(t, err)
	httpResp.Body.Close()
	require.Equal(t, http.StatusCreated, httpResp.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var evt struct {
		Event string `json:"event"`
		User  struct {
			ID    int    `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
		Timestamp string `json:"timestamp"`
	}
	require.NoError(t, conn.ReadJSON(&evt))

	assert.Equal(t, "user.created", evt.Event)
	assert.Equal(t, "alice@example.com", evt.User.Email)
	assert.NotEmpty(t, evt.Timestamp)
}
