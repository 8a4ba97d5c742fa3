package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"docslot/config"
	"docslot/internal/domain"
	"docslot/internal/repository"
	"docslot/internal/service"
)

type hubFixture struct {
	hub    *NotificationHub
	auth   *service.AuthServiceImpl
	server *httptest.Server
}

func newHubFixture(t *testing.T) *hubFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	profiles := repository.NewMemoryProfileRepository()
	profiles.AddPractitioner(domain.Practitioner{ID: 1, UserID: 100})
	profiles.AddClient(domain.Client{ID: 10, UserID: 200})
	profiles.AddClient(domain.Client{ID: 11, UserID: 201})

	auth := service.NewAuthService(config.JWTConfig{SigningKey: "test-key", AccessTokenTTL: time.Hour}, logger)
	hub := NewNotificationHub(auth, service.NewProfileService(profiles, logger), logger)

	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	router := gin.New()
	router.GET("/ws/notifications", hub.HandleWebSocket)
	server := httptest.NewServer(router)

	t.Cleanup(func() {
		server.Close()
		cancel()
	})
	return &hubFixture{hub: hub, auth: auth, server: server}
}

func (f *hubFixture) dial(t *testing.T, userID int64, role domain.UserRole, sub Subscriber) *websocket.Conn {
	t.Helper()
	token, err := f.auth.IssueToken(userID, role)
	if err != nil {
		t.Fatalf("ошибка выпуска токена: %v", err)
	}

	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/ws/notifications?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("ошибка подключения: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	deadline := time.Now().Add(2 * time.Second)
	for !f.hub.IsConnected(sub) {
		if time.Now().After(deadline) {
			t.Fatalf("подписчик %s не зарегистрирован", sub)
		}
		time.Sleep(5 * time.Millisecond)
	}
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("уведомление не получено: %v", err)
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("неверный формат уведомления: %v", err)
	}
	return msg
}

func TestHub_DeliversToBothParties(t *testing.T) {
	f := newHubFixture(t)

	practitioner := f.dial(t, 100, domain.UserRolePractitioner, Subscriber{Role: domain.UserRolePractitioner, ProfileID: 1})
	client := f.dial(t, 200, domain.UserRoleClient, Subscriber{Role: domain.UserRoleClient, ProfileID: 10})
	bystander := f.dial(t, 201, domain.UserRoleClient, Subscriber{Role: domain.UserRoleClient, ProfileID: 11})

	booking := domain.Booking{ID: 5, PractitionerID: 1, ClientID: 10, Date: "2026-02-16", StartTime: "09:00", EndTime: "09:30"}
	f.hub.Deliver(domain.BookingEvent{Type: domain.BookingEventCreated, Booking: booking, OccurredAt: time.Now()})

	for _, conn := range []*websocket.Conn{practitioner, client} {
		msg := readMessage(t, conn)
		if msg.Type != domain.BookingEventCreated || msg.Booking.ID != 5 || msg.Booking.StartTime != "09:00" {
			t.Errorf("неверное уведомление: %+v", msg)
		}
	}

	bystander.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	if _, _, err := bystander.ReadMessage(); err == nil {
		t.Error("посторонний клиент не должен получать уведомление")
	}
}

func TestHub_RequiresValidToken(t *testing.T) {
	f := newHubFixture(t)
	base := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/ws/notifications"

	for name, url := range map[string]string{
		"без токена":     base,
		"неверный токен": base + "?token=garbage",
	} {
		_, resp, err := websocket.DefaultDialer.Dial(url, nil)
		if err == nil {
			t.Errorf("%s: подключение должно быть отклонено", name)
			continue
		}
		if resp == nil || resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s: ожидался 401, получено %v", name, resp)
		}
	}

	unknown, _ := f.auth.IssueToken(999, domain.UserRoleClient)
	_, resp, err := websocket.DefaultDialer.Dial(base+"?token="+unknown, nil)
	if err == nil || resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Errorf("пользователь без профиля: ожидался 403, получено %v", resp)
	}
}

func TestSubscriberString(t *testing.T) {
	sub := Subscriber{Role: domain.UserRolePractitioner, ProfileID: 7}
	if sub.String() != "practitioner:7" {
		t.Errorf("получено %s", sub.String())
	}
}
