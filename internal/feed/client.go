// Package feed provides the live alert feed client for ForestWatch
package feed

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// MessageType represents the type of feed message
type MessageType string

const (
	AlertNew      MessageType = "alert:new"
	AlertSnapshot MessageType = "alert:snapshot"
)

// Message represents a feed message from the monitoring backend. Data
// carries one alert feature (alert:new) or a feature list (alert:snapshot)
// in the same shape as the alerts document.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ClientState represents the connection state
type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
)

// Client maintains the WebSocket connection to the alert feed
type Client struct {
	host           string
	port           int
	reconnectDelay time.Duration
	state          ClientState
	mu             sync.RWMutex
	stopCh         chan struct{}
	msgCh          chan Message
}

// NewClient creates a new feed client
func NewClient(host string, port int, reconnectDelay int) *Client {
	return &Client{
		host:           host,
		port:           port,
		reconnectDelay: time.Duration(reconnectDelay) * time.Second,
		state:          StateDisconnected,
		stopCh:         make(chan struct{}),
		msgCh:          make(chan Message, 100),
	}
}

// State returns the current connection state
func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// IsConnected returns true if the client is connected
func (c *Client) IsConnected() bool {
	return c.State() == StateConnected
}

// Messages returns the channel for feed messages
func (c *Client) Messages() <-chan Message {
	return c.msgCh
}

// Start begins the feed connection goroutine
func (c *Client) Start() {
	go c.runConnection()
}

// Stop closes the connection
func (c *Client) Stop() {
	close(c.stopCh)
}

func (c *Client) setState(state ClientState) {
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()
}

func (c *Client) runConnection() {
	url := fmt.Sprintf("ws://%s:%d/ws/alerts/?topics=alerts", c.host, c.port)

	for {
		select {
		case <-c.stopCh:
			return
		default:
		}

		c.setState(StateConnecting)

		dialer := websocket.Dialer{
			HandshakeTimeout: 10 * time.Second,
		}

		conn, _, err := dialer.Dial(url, nil)
		if err != nil {
			c.setState(StateDisconnected)
			select {
			case <-c.stopCh:
				return
			case <-time.After(c.reconnectDelay):
				continue
			}
		}

		// Subscribe to the alerts topic
		subscribeMsg := map[string]interface{}{
			"action": "subscribe",
			"topics": []string{"alerts"},
		}
		if err := conn.WriteJSON(subscribeMsg); err != nil {
			conn.Close()
			continue
		}

		c.setState(StateConnected)

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				conn.Close()
				c.setState(StateDisconnected)
				break
			}

			var msg Message
			if err := json.Unmarshal(data, &msg); err != nil {
				continue
			}

			select {
			case c.msgCh <- msg:
			default:
				// Channel full, skip message
			}
		}

		select {
		case <-c.stopCh:
			return
		case <-time.After(c.reconnectDelay):
		}
	}
}
