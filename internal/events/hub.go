package events

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ilkol21/company-crm/internal/authz"
	"github.com/ilkol21/company-crm/internal/domain"
	"github.com/ilkol21/company-crm/internal/middleware"
	"github.com/ilkol21/company-crm/internal/obs"
	"github.com/ilkol21/company-crm/internal/token"
)

const (
	// Inbound message types.
	MsgSendMessage    = "sendMessage"
	MsgAdminBroadcast = "adminBroadcast"

	// Outbound event emitted in response to sendMessage.
	EventReceiveMessage = "receiveMessage"

	sendBufferSize = 256
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = 50 * time.Second
	maxMessageSize = 64 * 1024
)

// Envelope is the wire format for socket messages in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type outbound struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// messageRoles maps inbound message types to the roles allowed to send
// them. The decision uses the rank ordering, so a SuperAdmin clears an
// Admin requirement here even though the HTTP surface would reject it.
// An absent entry means the message type is unknown, not open.
var messageRoles = map[string][]domain.Role{
	MsgSendMessage:    nil,
	MsgAdminBroadcast: {domain.RoleAdmin, domain.RoleSuperAdmin},
}

// Hub tracks connected socket clients and fans events out to all of
// them. It satisfies the dispatcher's Publisher interface so service
// layer emissions reach every connected client.
type Hub struct {
	issuer  *token.Issuer
	policy  authz.Policy
	logger  *zap.Logger
	clients map[*Client]struct{}
	mu      sync.RWMutex
}

// Client is one connected socket with its authenticated identity.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID int64
	role   domain.Role
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

func NewHub(issuer *token.Issuer, logger *zap.Logger) *Hub {
	return &Hub{
		issuer:  issuer,
		policy:  authz.Hierarchy{},
		logger:  logger,
		clients: make(map[*Client]struct{}),
	}
}

// Run blocks until the context is cancelled, then disconnects everyone.
func (h *Hub) Run(ctx context.Context) {
	<-ctx.Done()
	h.closeAll()
}

// Publish broadcasts a named event to every connected client.
func (h *Hub) Publish(event string, payload any) {
	data, err := json.Marshal(outbound{Event: event, Data: payload})
	if err != nil {
		h.logger.Error("marshal broadcast", zap.String("event", event), zap.Error(err))
		return
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		client.trySend(data)
	}
	h.logger.Debug("event broadcast", zap.String("event", event), zap.Int("recipients", len(clients)))
}

// ServeHTTP authenticates the caller with an access token and upgrades
// the connection. The token is checked before the upgrade so a bad
// credential never reaches the socket layer.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, err := middleware.BearerToken(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	claims, err := h.issuer.VerifyAccess(raw)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	userID, err := claims.UserID()
	if err != nil {
		middleware.WriteError(w, &domain.UnauthorizedError{Message: "invalid token subject"})
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		userID: userID,
		role:   claims.Role,
	}
	h.register(client)

	go client.writePump()
	go client.readPump()
}

func (h *Hub) register(client *Client) {
	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.mu.Unlock()
	obs.SetSocketClients(h.ClientCount())
	h.logger.Info("socket client connected",
		zap.Int64("user_id", client.userID),
		zap.String("role", string(client.role)),
		zap.Int("clients", h.ClientCount()),
	)
}

// unregister removes a client. Only the goroutine that actually removes
// it from the map closes the send channel, so a double unregister during
// shutdown cannot panic.
func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	_, existed := h.clients[client]
	delete(h.clients, client)
	h.mu.Unlock()

	if existed {
		close(client.send)
	}
	obs.SetSocketClients(h.ClientCount())
	h.logger.Info("socket client disconnected", zap.Int64("user_id", client.userID))
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		close(client.send)
		client.conn.Close()
		delete(h.clients, client)
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Warn("socket read error", zap.Error(err))
			}
			return
		}
		c.handleMessage(message)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(data []byte) {
	var msg Envelope
	if err := json.Unmarshal(data, &msg); err != nil {
		c.sendError("invalid JSON message")
		return
	}

	required, known := messageRoles[msg.Event]
	if !known {
		c.sendError("unknown message type: " + msg.Event)
		return
	}
	if !c.hub.policy.Allows(required, c.role) {
		c.sendError("insufficient role for " + msg.Event)
		return
	}

	switch msg.Event {
	case MsgSendMessage:
		c.handleSendMessage(msg.Data)
	case MsgAdminBroadcast:
		c.handleAdminBroadcast(msg.Data)
	}
}

// handleSendMessage echoes the payload back to every client.
func (c *Client) handleSendMessage(data json.RawMessage) {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		c.sendError("sendMessage expects a string payload")
		return
	}
	c.hub.Publish(EventReceiveMessage, fmt.Sprintf("Server received: %s", text))
}

type adminBroadcastPayload struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// handleAdminBroadcast relays an arbitrary event to all clients. Role
// gating happened in handleMessage.
func (c *Client) handleAdminBroadcast(data json.RawMessage) {
	var req adminBroadcastPayload
	if err := json.Unmarshal(data, &req); err != nil || req.Event == "" {
		c.sendError("adminBroadcast expects an event name and payload")
		return
	}
	c.hub.logger.Info("admin broadcast",
		zap.Int64("user_id", c.userID),
		zap.String("event", req.Event),
	)
	c.hub.Publish(req.Event, req.Payload)
}

// trySend drops the message when the client buffer is full instead of
// blocking the broadcaster on one slow connection.
func (c *Client) trySend(data []byte) {
	defer func() {
		recover()
	}()

	select {
	case c.send <- data:
	default:
	}
}

func (c *Client) sendError(message string) {
	data, err := json.Marshal(outbound{Event: "error", Data: map[string]string{"message": message}})
	if err != nil {
		return
	}
	c.trySend(data)
}
