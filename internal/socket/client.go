// Package socket maintains the persistent notification connection to the
// media server. One Client owns one logical connection: frames come in,
// typed events go out on a bounded stream, keep-alives are answered on the
// wire, and any failure ends in a scheduled reconnect until Disconnect is
// called.
package socket

import (
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// State is the connection lifecycle state
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateError
)

// String returns the state label used in log output
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

const (
	handshakeTimeout      = 10 * time.Second
	initialReconnectDelay = 1 * time.Second
	maxReconnectDelay     = 32 * time.Second
	eventBufferSize       = 64
)

// Client is the auto-reconnecting streaming protocol client
type Client struct {
	dialer *websocket.Dialer
	logger *slog.Logger

	// Shared mutable state: the conn handle, the backoff counter, the
	// stopped flag and the pending timer all live under one mutex.
	mu             sync.Mutex
	conn           *websocket.Conn
	state          State
	lastErr        string
	stopped        bool
	wsURL          string
	reconnectDelay time.Duration
	reconnectTimer *time.Timer

	// Backoff bounds; fixed except in tests
	initialDelay time.Duration
	maxDelay     time.Duration

	events chan Event
}

// NewClient creates a disconnected streaming client
func NewClient(logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		dialer: &websocket.Dialer{
			HandshakeTimeout:  handshakeTimeout,
			EnableCompression: true,
		},
		logger:       logger,
		state:        StateDisconnected,
		initialDelay: initialReconnectDelay,
		maxDelay:     maxReconnectDelay,
		events:       make(chan Event, eventBufferSize),
	}
}

// BuildSocketURL derives the websocket endpoint from the server base URL:
// {ws|wss}://{host}/socket?api_key={token}&deviceId={deviceId}
func BuildSocketURL(serverURL, accessToken, deviceID string) (string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return "", fmt.Errorf("invalid server url: %w", err)
	}

	switch u.Scheme {
	case "https", "wss":
		u.Scheme = "wss"
	case "http", "ws":
		u.Scheme = "ws"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	u.Path = "/socket"
	query := url.Values{}
	query.Set("api_key", accessToken)
	query.Set("deviceId", deviceID)
	u.RawQuery = query.Encode()

	return u.String(), nil
}

// Connect opens the connection. A failed dial schedules a reconnect and
// returns the error; the client keeps retrying in the background either
// way. Calling Connect supersedes any pending reconnect.
func (c *Client) Connect(serverURL, accessToken, deviceID string) error {
	wsURL, err := BuildSocketURL(serverURL, accessToken, deviceID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.stopped = false
	c.wsURL = wsURL
	c.reconnectDelay = c.initialDelay
	c.cancelReconnectLocked()
	c.closeConnLocked()
	c.state = StateConnecting
	c.mu.Unlock()

	return c.dial()
}

// dial attempts one connection against the stored URL
func (c *Client) dial() error {
	c.mu.Lock()
	wsURL := c.wsURL
	c.mu.Unlock()

	c.logger.Info("connecting", "url", wsURL)

	conn, resp, err := c.dialer.Dial(wsURL, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		c.mu.Lock()
		c.state = StateError
		c.lastErr = err.Error()
		c.scheduleReconnectLocked()
		c.mu.Unlock()
		c.logger.Warn("dial failed", "error", err)
		return fmt.Errorf("websocket dial failed: %w", err)
	}

	c.mu.Lock()
	if c.stopped {
		// Disconnect raced the dial; drop the fresh connection
		c.mu.Unlock()
		conn.Close()
		return nil
	}
	c.conn = conn
	c.state = StateConnected
	c.reconnectDelay = c.initialDelay
	c.mu.Unlock()

	c.logger.Info("connected")
	go c.readLoop(conn)
	return nil
}

// readLoop consumes frames until the connection dies
func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.handleClosed(conn, err)
			return
		}
		c.handleFrame(conn, data)
	}
}

// handleFrame parses one inbound frame. Keep-alives are answered
// immediately on the same connection and never published; unrecognized or
// malformed frames are dropped.
func (c *Client) handleFrame(conn *websocket.Conn, data []byte) {
	ev := Parse(data)
	if ev == nil {
		c.logger.Debug("dropped unrecognized frame", "bytes", len(data))
		return
	}

	if _, ok := ev.(KeepAlive); ok {
		c.mu.Lock()
		err := conn.WriteJSON(Message{MessageType: "KeepAlive"})
		c.mu.Unlock()
		if err != nil {
			c.logger.Warn("keep-alive reply failed", "error", err)
		}
		return
	}

	select {
	case c.events <- ev:
	default:
		c.logger.Warn("event buffer full, dropping event", "type", ev.eventType())
	}
}

// handleClosed runs when a read fails. Deliberate disconnects stop here;
// everything else schedules a reconnect.
func (c *Client) handleClosed(conn *websocket.Conn, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != conn {
		// A newer connection already took over; this loop is stale
		return
	}
	c.conn = nil
	conn.Close()

	if c.stopped {
		c.state = StateDisconnected
		return
	}

	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		c.state = StateDisconnected
	} else {
		c.state = StateError
		c.lastErr = err.Error()
	}

	c.logger.Warn("connection lost", "error", err)
	c.scheduleReconnectLocked()
}

// scheduleReconnectLocked arms the backoff timer. Caller holds mu.
// The delay doubles per consecutive failure up to the cap and resets on
// any successful connection.
func (c *Client) scheduleReconnectLocked() {
	if c.stopped {
		return
	}

	delay := c.reconnectDelay
	c.reconnectDelay *= 2
	if c.reconnectDelay > c.maxDelay {
		c.reconnectDelay = c.maxDelay
	}

	c.logger.Info("reconnect scheduled", "delay", delay)
	c.reconnectTimer = time.AfterFunc(delay, c.retry)
}

// retry is the timer callback for a scheduled reconnect
func (c *Client) retry() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.state = StateConnecting
	c.mu.Unlock()

	// dial schedules the next attempt itself on failure
	c.dial() //nolint:errcheck
}

// cancelReconnectLocked stops any pending retry. Caller holds mu.
func (c *Client) cancelReconnectLocked() {
	if c.reconnectTimer != nil {
		c.reconnectTimer.Stop()
		c.reconnectTimer = nil
	}
}

// closeConnLocked closes the socket if open. Caller holds mu.
func (c *Client) closeConnLocked() {
	if c.conn == nil {
		return
	}
	c.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	) //nolint:errcheck
	c.conn.Close()
	c.conn = nil
}

// Disconnect deliberately closes the connection and suppresses any pending
// or future reconnect until the next Connect call
func (c *Client) Disconnect() {
	c.mu.Lock()
	c.stopped = true
	c.cancelReconnectLocked()
	c.closeConnLocked()
	c.state = StateDisconnected
	c.reconnectDelay = c.initialDelay
	c.mu.Unlock()

	c.logger.Info("disconnected")
}

// Events returns the stream of published events. Events arrive in frame
// order; when the buffer is full the newest event is dropped rather than
// blocking the read loop.
func (c *Client) Events() <-chan Event {
	return c.events
}

// State returns the current connection state
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastError returns the message of the most recent failure, if any
func (c *Client) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// IsConnected reports whether the socket is currently open
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StateConnected
}
