// Package notify pushes transient storefront notices (purchase confirmed,
// catalog changed) to connected browsers over WebSocket. Notices are
// fire-and-forget; a slow client gets dropped, never waited on.
package notify

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// The storefront serves same-origin browsers only; tighten this
		// before exposing the hub anywhere else.
		return true
	},
}

const (
	KindCheckoutCompleted = "checkout_completed"
	KindCatalogChanged    = "catalog_changed"
)

type Notice struct {
	Kind string      `json:"kind"`
	Data interface{} `json:"data"`
	At   string      `json:"at"`
}

type subscriber struct {
	conn   *websocket.Conn
	send   chan Notice
	hub    *Hub
	logger *logrus.Logger
}

type Hub struct {
	subscribers map[*subscriber]bool
	broadcast   chan Notice
	register    chan *subscriber
	unregister  chan *subscriber
	mu          sync.RWMutex
	logger      *logrus.Logger
}

func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		subscribers: make(map[*subscriber]bool),
		broadcast:   make(chan Notice, 256),
		register:    make(chan *subscriber),
		unregister:  make(chan *subscriber),
		logger:      logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			h.subscribers[sub] = true
			h.mu.Unlock()
			h.logger.WithField("subscribers", h.SubscriberCount()).Info("Notification subscriber connected")

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.subscribers[sub]; ok {
				delete(h.subscribers, sub)
				close(sub.send)
			}
			h.mu.Unlock()
			h.logger.WithField("subscribers", h.SubscriberCount()).Info("Notification subscriber disconnected")

		case notice := <-h.broadcast:
			h.mu.Lock()
			for sub := range h.subscribers {
				select {
				case sub.send <- notice:
				default:
					delete(h.subscribers, sub)
					close(sub.send)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast queues a notice for every subscriber; it never blocks the
// caller.
func (h *Hub) Broadcast(kind string, data interface{}) {
	notice := Notice{
		Kind: kind,
		Data: data,
		At:   time.Now().Format(time.RFC3339),
	}

	select {
	case h.broadcast <- notice:
	default:
		h.logger.Warn("Notice channel full, dropping notice")
	}
}

func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Error("Failed to upgrade to WebSocket")
		return
	}

	sub := &subscriber{
		conn:   conn,
		send:   make(chan Notice, 64),
		hub:    h,
		logger: h.logger,
	}
	h.register <- sub

	go sub.writePump()
	go sub.readPump()
}

func (s *subscriber) readPump() {
	defer func() {
		s.hub.unregister <- s
		s.conn.Close()
	}()

	s.conn.SetReadLimit(512)
	s.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.WithError(err).Error("WebSocket error")
			}
			break
		}
	}
}

func (s *subscriber) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case notice, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(notice)
			if err != nil {
				s.logger.WithError(err).Error("Failed to marshal notice")
				continue
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
