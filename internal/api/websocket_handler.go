package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/kingrain94/waapify-relay/internal/api/dto"
	"github.com/kingrain94/waapify-relay/internal/domain"
	"github.com/kingrain94/waapify-relay/internal/utils"
	"github.com/kingrain94/waapify-relay/pkg/logger"
)

const (
	websocketReadBufferSize        = 1024
	websocketWriteBufferSize       = 1024
	websocketSendChannelBufferSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  websocketReadBufferSize,
	WriteBufferSize: websocketWriteBufferSize,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// MessagePubSub carries message record updates between API replicas.
type MessagePubSub interface {
	Publish(ctx context.Context, message *dto.MessageResponse) error
	Subscribe(ctx context.Context, tenantKey string, callback func(*dto.MessageResponse)) error
	Unsubscribe(tenantKey string)
	Close()
}

type Client struct {
	conn      *websocket.Conn
	tenantKey string
	send      chan []byte
}

type WebSocketHandler struct {
	clients       map[*Client]bool
	register      chan *Client
	unregister    chan *Client
	mutex         sync.RWMutex
	logger        *logger.Logger
	pubsub        MessagePubSub
	ctx           context.Context
	cancel        context.CancelFunc
	tenantClients map[string]int // Count of clients per tenant
}

func NewWebSocketHandler(logger *logger.Logger, pubsub MessagePubSub) *WebSocketHandler {
	ctx, cancel := context.WithCancel(context.Background())
	return &WebSocketHandler{
		clients:       make(map[*Client]bool),
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		logger:        logger,
		pubsub:        pubsub,
		ctx:           ctx,
		cancel:        cancel,
		tenantClients: make(map[string]int),
	}
}

// HandleWebSocket Stream the tenant's message record updates
// @Summary Message stream
// @Description WebSocket stream of message records as they are created or change status
// @Tags    messages
// @Success 101
// @Failure 401 {object} dto.Error
// @Router  /messages/stream [get]
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	companyID := c.GetString(string(utils.CompanyIDKey))
	if companyID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Error{Error: "No tenant found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Error{Error: "Failed to upgrade connection"})
		return
	}

	client := &Client{
		conn:      conn,
		tenantKey: domain.TenantKey(companyID, c.GetString(string(utils.LocationIDKey))),
		send:      make(chan []byte, websocketSendChannelBufferSize),
	}
	h.register <- client

	go h.writePump(client)
	go h.readPump(client)
}

func (h *WebSocketHandler) Start() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.tenantClients[client.tenantKey]++

			// First client of a tenant opens its channel subscription
			if h.tenantClients[client.tenantKey] == 1 {
				if err := h.pubsub.Subscribe(h.ctx, client.tenantKey, h.handlePubSubMessage); err != nil {
					h.logger.Errorf("Failed to subscribe to tenant %s: %v", client.tenantKey, err)
				}
			}
			h.mutex.Unlock()

		case client := <-h.unregister:
			h.mutex.Lock()
			h.removeClient(client)
			h.mutex.Unlock()

		case <-h.ctx.Done():
			return
		}
	}
}

func (h *WebSocketHandler) Stop() {
	h.cancel()
	h.pubsub.Close()
}

// removeClient must be called with the mutex held.
func (h *WebSocketHandler) removeClient(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)

	h.tenantClients[client.tenantKey]--
	if h.tenantClients[client.tenantKey] == 0 {
		h.pubsub.Unsubscribe(client.tenantKey)
		delete(h.tenantClients, client.tenantKey)
	}
}

func (h *WebSocketHandler) handlePubSubMessage(message *dto.MessageResponse) {
	payload, err := json.Marshal(message)
	if err != nil {
		h.logger.Errorf("Error marshaling message record: %v", err)
		return
	}

	tenantKey := domain.TenantKey(message.CompanyID, message.LocationID)

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for client := range h.clients {
		if client.tenantKey != tenantKey {
			continue
		}
		select {
		case client.send <- payload:
		default:
			// Slow consumer
			h.removeClient(client)
		}
	}
}

func (h *WebSocketHandler) writePump(client *Client) {
	defer func() {
		client.conn.Close()
	}()

	for message := range client.send {
		w, err := client.conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)

		if err := w.Close(); err != nil {
			return
		}
	}

	client.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

func (h *WebSocketHandler) readPump(client *Client) {
	defer func() {
		h.unregister <- client
		client.conn.Close()
	}()

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warnf("Unexpected close error for client %s: %v", client.tenantKey, err)
			}
			return
		}
	}
}

// BroadcastMessage publishes a record to every replica's subscribers of its
// tenant.
func (h *WebSocketHandler) BroadcastMessage(message *dto.MessageResponse) {
	if err := h.pubsub.Publish(h.ctx, message); err != nil {
		h.logger.Errorf("Failed to publish message record: %v", err)
	}
}
