package websocketPkg

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var ErrNotConnected = errors.New("chat websocket not connected")

type Message struct {
	Command  string `json:"command,omitempty"`
	Text     string `json:"text,omitempty"`
	Language string `json:"language,omitempty"`
}

type Turn struct {
	UserInput   string `json:"user_input"`
	BotResponse string `json:"bot_response"`
	Intent      string `json:"intent"`
	Timestamp   string `json:"timestamp"`
}

type MessageReply struct {
	SessionID          string            `json:"session_id"`
	Response           string            `json:"response"`
	Intent             string            `json:"intent"`
	Confidence         float64           `json:"confidence"`
	Entities           map[string]string `json:"entities"`
	Language           string            `json:"language"`
	LanguageConfidence float64           `json:"language_confidence"`
	LanguageDetected   bool              `json:"language_detected"`
}

type HistoryReply struct {
	SessionID string `json:"session_id"`
	Turns     []Turn `json:"turns"`
	Count     int    `json:"count"`
}

type Reply struct {
	Type      string        `json:"type"`
	SessionID string        `json:"session_id,omitempty"`
	Message   *MessageReply `json:"message,omitempty"`
	History   *HistoryReply `json:"history,omitempty"`
	Error     string        `json:"error,omitempty"`
	Code      string        `json:"code,omitempty"`
}

// IChatClient talks to the server's chat socket. Calls are serialized; each
// Send or Command waits for exactly one reply frame.
type IChatClient interface {
	Connect(ctx context.Context) (string, error)
	Send(text, language string) (*Reply, error)
	Command(command string) (*Reply, error)
	SessionID() string
	IsConnected() bool
	Close() error
}

type chatClient struct {
	serverURL    string
	log          *logrus.Logger
	conn         *websocket.Conn
	sessionID    string
	mu           sync.Mutex
	done         chan struct{}
	pingInterval time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
}

type Option func(*chatClient)

func WithLogger(log *logrus.Logger) Option {
	return func(c *chatClient) {
		c.log = log
	}
}

func WithTimeouts(read, write time.Duration) Option {
	return func(c *chatClient) {
		c.readTimeout = read
		c.writeTimeout = write
	}
}

func NewChatClient(serverURL string, opts ...Option) IChatClient {
	client := &chatClient{
		serverURL:    serverURL,
		log:          logrus.StandardLogger(),
		pingInterval: 30 * time.Second,
		readTimeout:  15 * time.Second,
		writeTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Connect dials the server, resuming the previous session when one is known,
// and returns the session id announced by the server.
func (c *chatClient) Connect(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		c.closeLocked()
	}

	target, err := url.Parse(c.serverURL)
	if err != nil {
		return "", fmt.Errorf("invalid server URL %q: %w", c.serverURL, err)
	}
	if c.sessionID != "" {
		q := target.Query()
		q.Set("session_id", c.sessionID)
		target.RawQuery = q.Encode()
	}

	c.log.Debugf("Connecting to chat server at %s", target.String())

	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	conn, _, err := dialer.DialContext(ctx, target.String(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to connect to %s: %w", target.String(), err)
	}

	conn.SetPingHandler(func(appData string) error {
		err := conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(c.writeTimeout))
		if err != nil {
			c.log.Debugf("Error sending pong: %v", err)
		}
		return nil
	})

	c.conn = conn
	reply, err := c.readLocked()
	if err != nil {
		c.closeLocked()
		return "", err
	}
	if reply.Type == "error" {
		c.closeLocked()
		return "", fmt.Errorf("server rejected session: %s", reply.Error)
	}

	c.sessionID = reply.SessionID
	c.done = make(chan struct{})
	go c.keepAlive(conn, c.done)

	return c.sessionID, nil
}

func (c *chatClient) Send(text, language string) (*Reply, error) {
	return c.roundTrip(Message{Text: text, Language: language})
}

func (c *chatClient) Command(command string) (*Reply, error) {
	return c.roundTrip(Message{Command: command})
}

func (c *chatClient) roundTrip(msg Message) (*Reply, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil, ErrNotConnected
	}

	if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
		return nil, err
	}
	if err := c.conn.WriteJSON(msg); err != nil {
		c.closeLocked()
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	reply, err := c.readLocked()
	if err != nil {
		c.closeLocked()
		return nil, err
	}
	return reply, nil
}

func (c *chatClient) readLocked() (*Reply, error) {
	if err := c.conn.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
		return nil, err
	}

	var reply Reply
	if err := c.conn.ReadJSON(&reply); err != nil {
		return nil, fmt.Errorf("failed to read reply: %w", err)
	}
	return &reply, nil
}

func (c *chatClient) keepAlive(conn *websocket.Conn, done chan struct{}) {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(c.writeTimeout)); err != nil {
				c.log.Debugf("Ping failed, marking chat connection as dead: %v", err)
				c.mu.Lock()
				if c.conn == conn {
					c.closeLocked()
				}
				c.mu.Unlock()
				return
			}
		}
	}
}

func (c *chatClient) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

func (c *chatClient) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

func (c *chatClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}

	_ = c.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(c.writeTimeout),
	)
	c.closeLocked()
	return nil
}

func (c *chatClient) closeLocked() {
	if c.done != nil {
		close(c.done)
		c.done = nil
	}
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}
