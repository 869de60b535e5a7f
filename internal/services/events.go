package services

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/fleetworks/transport-backend/internal/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Entity names carried by change events.
const (
	EntityUsers     = "users"
	EntityVehicles  = "vehicles"
	EntityShipments = "shipments"
	EntityTrips     = "trips"
)

// EntityChange tells a connected list view that rows of an entity changed and
// it should refresh. This is the subscription surface between the
// presentation layer and the query component; reads stay pull-based.
type EntityChange struct {
	Entity string `json:"entity"`
	Action string `json:"action"` // created, updated, deleted
	ID     uint   `json:"id"`
}

// Client is one connected websocket session.
type Client struct {
	ID   uint
	Role models.Role
	Conn *websocket.Conn
	Send chan []byte
	Hub  *Hub
}

// Hub maintains the set of active clients and fans entity-change events out
// to them.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			logrus.Debugf("ws: client %d connected", client.ID)

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mutex.Unlock()
			logrus.Debugf("ws: client %d disconnected", client.ID)
		}
	}
}

// PublishChange fans one entity-change event out to the sessions allowed to
// see it: drivers only receive trip events, everyone else receives all.
func (h *Hub) PublishChange(change EntityChange) {
	data, err := json.Marshal(change)
	if err != nil {
		logrus.Errorf("ws: marshal change event: %v", err)
		return
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	for client := range h.clients {
		if client.Role == models.RoleDriver && change.Entity != EntityTrips {
			continue
		}
		select {
		case client.Send <- data:
		default:
			logrus.Warnf("ws: dropping event for client %d (channel full)", client.ID)
		}
	}
}

// HandleWebSocket upgrades the request and attaches the session to the hub.
func HandleWebSocket(hub *Hub, w http.ResponseWriter, r *http.Request, userID uint, role models.Role) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.Errorf("ws: upgrade: %v", err)
		return
	}

	client := &Client{
		ID:   userID,
		Role: role,
		Conn: conn,
		Send: make(chan []byte, 256),
		Hub:  hub,
	}
	client.Hub.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump drains the connection; clients only listen, so inbound payloads
// are discarded and the loop exists to detect closes.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.Debugf("ws: read: %v", err)
			}
			break
		}
	}
}

func (c *Client) writePump() {
	defer c.Conn.Close()
	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logrus.Debugf("ws: write: %v", err)
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}
