package bridge

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Client connects to the host's websocket endpoint, delivers inbound frames
// and sends outbound intents. Frames are delivered from the Run goroutine in
// arrival order.
type Client struct {
	URL string

	// MaxReconnectAttempts: -1 retries forever, 0 never reconnects.
	MaxReconnectAttempts int
	ReconnectDelay       time.Duration

	Logger *log.Logger
	Dialer *websocket.Dialer

	mu   sync.Mutex
	conn *websocket.Conn
}

func NewClient(url string) *Client {
	return &Client{
		URL:                  url,
		MaxReconnectAttempts: 5,
		ReconnectDelay:       3 * time.Second,
		Logger:               log.New(os.Stdout, "", log.LstdFlags),
		Dialer:               websocket.DefaultDialer,
	}
}

// Connected reports whether a host connection is currently open.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// Emit implements Emitter.
func (c *Client) Emit(event string, args ...any) error {
	f, err := NewFrame(event, args...)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return ErrNotConnected
	}
	if err := c.conn.WriteJSON(f); err != nil {
		return fmt.Errorf("write %s: %w", event, err)
	}
	return nil
}

// Run keeps a connection open until ctx is done or reconnect attempts run out.
func (c *Client) Run(ctx context.Context, deliver func(Frame)) error {
	failures := 0
	maxAttempts := c.MaxReconnectAttempts

	for {
		connected, err := c.runOnce(ctx, deliver)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if connected {
			failures = 0
		}

		c.Logger.Printf("bridge: connection error: %v", err)

		if maxAttempts == 0 {
			c.Logger.Printf("bridge: not reconnecting")
			return err
		}

		failures++
		if maxAttempts > 0 && failures > maxAttempts {
			c.Logger.Printf("bridge: max reconnect attempts (%d) reached, giving up", maxAttempts)
			return err
		}
		if maxAttempts == -1 {
			c.Logger.Printf("bridge: reconnecting in %s... (attempt %d)", c.ReconnectDelay, failures)
		} else {
			c.Logger.Printf("bridge: reconnecting in %s... (attempt %d/%d)", c.ReconnectDelay, failures, maxAttempts)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.ReconnectDelay):
		}
	}
}

func (c *Client) runOnce(ctx context.Context, deliver func(Frame)) (connected bool, err error) {
	dialer := c.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}
	conn, _, err := dialer.DialContext(ctx, c.URL, nil)
	if err != nil {
		return false, fmt.Errorf("dial %s: %w", c.URL, err)
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
	c.Logger.Printf("bridge: connected to %s", c.URL)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	defer func() {
		c.mu.Lock()
		c.conn = nil
		c.mu.Unlock()
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) {
				return true, fmt.Errorf("host closed connection: %w", err)
			}
			return true, fmt.Errorf("read: %w", err)
		}
		frame, err := DecodeFrame(data)
		if err != nil {
			c.Logger.Printf("bridge: discarding malformed frame: %v", err)
			continue
		}
		deliver(frame)
	}
}
