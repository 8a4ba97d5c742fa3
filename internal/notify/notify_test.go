package notify

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"docslot/internal/domain"
)

type captureSink struct {
	mu     sync.Mutex
	events []domain.BookingEvent
}

func (s *captureSink) Deliver(event domain.BookingEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *captureSink) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func sampleEvent() domain.BookingEvent {
	return domain.BookingEvent{
		Type: domain.BookingEventCreated,
		Booking: domain.Booking{
			ID: 3, PractitionerID: 1, ClientID: 10, Date: "2026-02-16", StartTime: "09:00", EndTime: "09:30",
		},
		OccurredAt: time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC),
	}
}

func TestLocalNotifier(t *testing.T) {
	sink := &captureSink{}
	NewLocalNotifier(sink, zap.NewNop()).Publish(context.Background(), sampleEvent())

	if sink.len() != 1 || sink.events[0].Booking.ID != 3 {
		t.Errorf("событие не доставлено: %+v", sink.events)
	}
}

func TestRedisNotifier_HandlePayload(t *testing.T) {
	sink := &captureSink{}
	n := NewRedisNotifier(nil, "docslot:booking-events", sink, zap.NewNop())

	payload, err := json.Marshal(sampleEvent())
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	n.handlePayload(string(payload))
	n.handlePayload("{broken")
	n.handlePayload(`{"type":"booking.moved","booking":{"id":4}}`)

	if sink.len() != 1 {
		t.Fatalf("ожидалось 1 событие, получено %d", sink.len())
	}
	got := sink.events[0]
	if got.Type != domain.BookingEventCreated || got.Booking.StartTime != "09:00" || !got.OccurredAt.Equal(sampleEvent().OccurredAt) {
		t.Errorf("неверное событие: %+v", got)
	}
}

func TestRedisNotifier_FallsBackWhenUnreachable(t *testing.T) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	sink := &captureSink{}
	NewRedisNotifier(rdb, "docslot:booking-events", sink, zap.NewNop()).Publish(context.Background(), sampleEvent())

	if sink.len() != 1 {
		t.Errorf("при недоступном Redis событие доставляется локально, получено %d", sink.len())
	}
}
