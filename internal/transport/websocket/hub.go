package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"docslot/internal/domain"
	"docslot/internal/service"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	sendBuffer = 64
)

// Subscriber identifies the profile a connection listens for. Practitioner
// and client ids come from different tables, so the role is part of the key.
type Subscriber struct {
	Role      domain.UserRole
	ProfileID int64
}

func (s Subscriber) String() string {
	return fmt.Sprintf("%s:%d", s.Role, s.ProfileID)
}

// Message is the frame pushed to connected users.
type Message struct {
	Type      domain.BookingEventType `json:"type"`
	Booking   domain.Booking          `json:"booking"`
	Timestamp string                  `json:"timestamp"`
}

type Client struct {
	ID         string
	Subscriber Subscriber
	Conn       *websocket.Conn
	Send       chan []byte
	Hub        *NotificationHub
}

// NotificationHub fans booking events out to the connections of the
// practitioner and the client involved.
type NotificationHub struct {
	clients    map[Subscriber]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	events     chan domain.BookingEvent
	done       chan struct{}
	mutex      sync.RWMutex
	auth       service.AuthService
	profiles   service.ProfileService
	logger     *zap.Logger
}

var upgrader = websocket.Upgrader{
	CheckOrigin:     func(*http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

func NewNotificationHub(auth service.AuthService, profiles service.ProfileService, logger *zap.Logger) *NotificationHub {
	return &NotificationHub{
		clients:    make(map[Subscriber]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan domain.BookingEvent, 256),
		done:       make(chan struct{}),
		auth:       auth,
		profiles:   profiles,
		logger:     logger,
	}
}

// Run serves registrations and deliveries until ctx is cancelled.
func (h *NotificationHub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for _, conns := range h.clients {
				for client := range conns {
					close(client.Send)
				}
			}
			h.clients = make(map[Subscriber]map[*Client]struct{})
			h.mutex.Unlock()
			close(h.done)
			return

		case client := <-h.register:
			h.mutex.Lock()
			conns, ok := h.clients[client.Subscriber]
			if !ok {
				conns = make(map[*Client]struct{})
				h.clients[client.Subscriber] = conns
			}
			conns[client] = struct{}{}
			h.mutex.Unlock()
			h.logger.Info("подключение к уведомлениям",
				zap.String("subscriber", client.Subscriber.String()),
				zap.String("connID", client.ID))

		case client := <-h.unregister:
			h.mutex.Lock()
			if conns, ok := h.clients[client.Subscriber]; ok {
				if _, ok := conns[client]; ok {
					delete(conns, client)
					close(client.Send)
				}
				if len(conns) == 0 {
					delete(h.clients, client.Subscriber)
				}
			}
			h.mutex.Unlock()
			h.logger.Info("отключение от уведомлений",
				zap.String("subscriber", client.Subscriber.String()),
				zap.String("connID", client.ID))

		case event := <-h.events:
			h.dispatch(event)
		}
	}
}

// Deliver queues event for the connected parties of the booking. It never
// blocks the caller: when the queue is full the event is dropped.
func (h *NotificationHub) Deliver(event domain.BookingEvent) {
	select {
	case h.events <- event:
	default:
		h.logger.Warn("очередь уведомлений переполнена, событие отброшено",
			zap.String("type", string(event.Type)),
			zap.Int64("bookingID", event.Booking.ID))
	}
}

func (h *NotificationHub) dispatch(event domain.BookingEvent) {
	data, err := json.Marshal(Message{
		Type:      event.Type,
		Booking:   event.Booking,
		Timestamp: event.OccurredAt.Format(time.RFC3339),
	})
	if err != nil {
		h.logger.Error("ошибка сериализации уведомления", zap.Error(err))
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	targets := []Subscriber{
		{Role: domain.UserRolePractitioner, ProfileID: event.Booking.PractitionerID},
		{Role: domain.UserRoleClient, ProfileID: event.Booking.ClientID},
	}
	for _, target := range targets {
		for client := range h.clients[target] {
			select {
			case client.Send <- data:
			default:
				h.logger.Warn("буфер соединения заполнен, уведомление пропущено",
					zap.String("subscriber", target.String()),
					zap.String("connID", client.ID))
			}
		}
	}
}

// IsConnected reports whether subscriber has at least one open connection.
func (h *NotificationHub) IsConnected(subscriber Subscriber) bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients[subscriber]) > 0
}

// HandleWebSocket upgrades an authenticated request. Browsers cannot set
// headers on websocket handshakes, so the access token comes in the query.
func (h *NotificationHub) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "требуется токен авторизации"})
		return
	}

	userID, role, err := h.auth.ParseToken(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "недействительный токен"})
		return
	}

	subscriber, err := h.resolveSubscriber(c.Request.Context(), userID, role)
	if err != nil {
		h.logger.Warn("профиль для уведомлений не найден",
			zap.Int64("userID", userID), zap.String("role", string(role)), zap.Error(err))
		c.JSON(http.StatusForbidden, gin.H{"error": "профиль не найден"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("ошибка установки websocket соединения", zap.Error(err))
		return
	}

	client := &Client{
		ID:         uuid.New().String(),
		Subscriber: subscriber,
		Conn:       conn,
		Send:       make(chan []byte, sendBuffer),
		Hub:        h,
	}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

func (h *NotificationHub) resolveSubscriber(ctx context.Context, userID int64, role domain.UserRole) (Subscriber, error) {
	switch role {
	case domain.UserRolePractitioner:
		id, err := h.profiles.PractitionerIDByUser(ctx, userID)
		return Subscriber{Role: role, ProfileID: id}, err
	case domain.UserRoleClient:
		id, err := h.profiles.ClientIDByUser(ctx, userID)
		return Subscriber{Role: role, ProfileID: id}, err
	default:
		return Subscriber{}, domain.ErrForbidden
	}
}

// readPump only drains control frames; clients do not send messages.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.Hub.unregister <- c:
		case <-c.Hub.done:
		}
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(512)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("ошибка websocket соединения", zap.String("connID", c.ID), zap.Error(err))
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.Hub.logger.Warn("ошибка отправки уведомления", zap.String("connID", c.ID), zap.Error(err))
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
