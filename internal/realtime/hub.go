// Package realtime streams the progress of a single layout generation
// request over a WebSocket connection. Unlike a chat-room hub there is
// no fan-out: each client owns exactly one in-flight request and sees
// only its own progress and result messages.
package realtime

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/xwordgen/engine/pkg/layout"
	"github.com/xwordgen/engine/pkg/layout/worker"
)

// MessageType identifies the kind of payload riding a Message.
type MessageType string

const (
	// Server to client.
	MsgProgress MessageType = "progress"
	MsgResult   MessageType = "result"
	MsgError    MessageType = "error"
)

// Message is the envelope written to the WebSocket connection.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ProgressPayload mirrors worker.Progress for the wire.
type ProgressPayload struct {
	Message string `json:"message"`
}

// ResultPayload carries the terminal layout, on success.
type ResultPayload struct {
	Layout *layout.Result `json:"layout"`
}

// ErrorPayload carries the terminal error, on failure. Kind lets the
// client distinguish a rejected request from an unplaceable one
// without parsing Message.
type ErrorPayload struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Client is one WebSocket-connected caller with at most one in-flight
// generation request. Send is drained by a single writer goroutine per
// connection; Hub and the worker goroutine only ever push onto it.
type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte

	cancel context.CancelFunc
}

// NewClient wraps an upgraded connection for registration with a Hub.
func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		ID:   uuid.New().String(),
		Conn: conn,
		Send: make(chan []byte, 16),
	}
}

// Hub tracks connected clients for lifecycle and metrics purposes. It
// does not buffer or relay messages between clients; each Client's
// Send channel is written to directly by the goroutine running that
// client's generation.
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
}

// NewHub creates an empty hub. Call Run in its own goroutine before
// registering clients.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run processes register/unregister events until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client.ID] = client
			h.mutex.Unlock()
			log.Printf("realtime: client registered: %s", client.ID)
		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.Send)
			}
			h.mutex.Unlock()
			log.Printf("realtime: client unregistered: %s", client.ID)
		}
	}
}

// Register admits a client to the hub's tracking map.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client and closes its Send channel.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// ActiveClients returns the number of currently registered clients.
func (h *Hub) ActiveClients() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// RunGeneration drives req through pkg/layout/worker, forwarding every
// progress message and the terminal result or error onto client.Send.
// It blocks until the worker finishes or ctx is cancelled, so the
// caller should run it in its own goroutine per connection.
func (h *Hub) RunGeneration(ctx context.Context, client *Client, req worker.Request) {
	ctx, cancel := context.WithCancel(ctx)
	client.cancel = cancel
	defer cancel()

	progressCh, resultCh := worker.Run(ctx, req)

	for progressCh != nil || resultCh != nil {
		select {
		case p, ok := <-progressCh:
			if !ok {
				progressCh = nil
				continue
			}
			h.send(client, MsgProgress, ProgressPayload{Message: p.Message})
		case r, ok := <-resultCh:
			if !ok {
				resultCh = nil
				continue
			}
			if r.Err != nil {
				kind, _ := layout.KindOf(r.Err)
				h.send(client, MsgError, ErrorPayload{
					Kind:    string(kind),
					Message: r.Err.Error(),
				})
			} else {
				h.send(client, MsgResult, ResultPayload{Layout: r.Layout})
			}
			return
		case <-ctx.Done():
			return
		}
	}
}

// Cancel aborts client's in-flight generation, if any. The worker stops
// forwarding progress and RunGeneration returns, but a search already
// underway still runs all its attempts to completion on the worker's
// goroutine; its result is never sent to the client.
func (h *Hub) Cancel(client *Client) {
	if client.cancel != nil {
		client.cancel()
	}
}

func (h *Hub) send(client *Client, msgType MessageType, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	msgData, err := json.Marshal(Message{Type: msgType, Payload: data})
	if err != nil {
		return
	}

	select {
	case client.Send <- msgData:
	default:
		// Slow consumer; drop rather than block the generation goroutine.
	}
}
