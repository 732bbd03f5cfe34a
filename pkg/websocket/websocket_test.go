package websocketPkg

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoServer announces a session and answers every frame with a message reply
// that echoes the text.
func echoServer(t *testing.T) *httptest.Server {
	upgrader := websocket.Upgrader{}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		sessionID := r.URL.Query().Get("session_id")
		if sessionID == "" {
			sessionID = "sess-1"
		}
		if sessionID == "expired" {
			_ = conn.WriteJSON(Reply{Type: "error", Error: "session not found"})
			return
		}
		_ = conn.WriteJSON(Reply{Type: "session", SessionID: sessionID})

		for {
			var msg Message
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			if msg.Command == "history" {
				_ = conn.WriteJSON(Reply{Type: "history", SessionID: sessionID, History: &HistoryReply{SessionID: sessionID, Count: 0}})
				continue
			}
			_ = conn.WriteJSON(Reply{Type: "message", SessionID: sessionID, Message: &MessageReply{
				SessionID: sessionID,
				Response:  "echo: " + msg.Text,
				Language:  msg.Language,
			}})
		}
	}))
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestChatClient_RoundTrip(t *testing.T) {
	srv := echoServer(t)
	defer srv.Close()

	client := NewChatClient(wsURL(srv), WithLogger(quietLogger()), WithTimeouts(2*time.Second, time.Second))
	defer client.Close()

	sessionID, err := client.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sess-1", sessionID)
	assert.True(t, client.IsConnected())

	reply, err := client.Send("hello", "hi")
	require.NoError(t, err)
	require.NotNil(t, reply.Message)
	assert.Equal(t, "echo: hello", reply.Message.Response)
	assert.Equal(t, "hi", reply.Message.Language)

	reply, err = client.Command("history")
	require.NoError(t, err)
	assert.Equal(t, "history", reply.Type)
	require.NotNil(t, reply.History)
}

func TestChatClient_ReconnectResumesSession(t *testing.T) {
	srv := echoServer(t)
	defer srv.Close()

	client := NewChatClient(wsURL(srv), WithLogger(quietLogger()))
	defer client.Close()

	first, err := client.Connect(context.Background())
	require.NoError(t, err)
	require.NoError(t, client.Close())
	assert.False(t, client.IsConnected())

	second, err := client.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestChatClient_NotConnected(t *testing.T) {
	client := NewChatClient("ws://127.0.0.1:1/ws", WithLogger(quietLogger()))

	_, err := client.Send("hello", "")
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.NoError(t, client.Close())
}

func TestChatClient_RejectedSession(t *testing.T) {
	srv := echoServer(t)
	defer srv.Close()

	client := NewChatClient(wsURL(srv)+"?session_id=expired", WithLogger(quietLogger()))
	_, err := client.Connect(context.Background())
	assert.ErrorContains(t, err, "session not found")
	assert.False(t, client.IsConnected())
}
