package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"docslot/config"
	"docslot/internal/domain"
)

const publishTimeout = 3 * time.Second

// NewRedisClient connects and pings the server.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ошибка подключения к Redis: %w", err)
	}

	logger.Info("подключение к Redis установлено", zap.String("addr", cfg.Addr))
	return rdb, nil
}

// RedisNotifier publishes events on a channel shared by all instances and
// feeds events received on it to the local sink. Delivery to this
// instance's connections therefore happens in Listen, not in Publish.
type RedisNotifier struct {
	rdb     *goredis.Client
	channel string
	sink    Sink
	logger  *zap.Logger
}

func NewRedisNotifier(rdb *goredis.Client, channel string, sink Sink, logger *zap.Logger) *RedisNotifier {
	return &RedisNotifier{
		rdb:     rdb,
		channel: channel,
		sink:    sink,
		logger:  logger,
	}
}

// Publish falls back to local delivery when Redis is unreachable, so
// connections on this instance still see the event.
func (n *RedisNotifier) Publish(ctx context.Context, event domain.BookingEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		n.logger.Error("ошибка сериализации события", zap.Error(err))
		return
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := n.rdb.Publish(pubCtx, n.channel, payload).Err(); err != nil {
		n.logger.Warn("ошибка публикации события в Redis, локальная доставка",
			zap.String("channel", n.channel),
			zap.Int64("bookingID", event.Booking.ID),
			zap.Error(err))
		n.sink.Deliver(event)
	}
}

// Listen blocks until ctx is cancelled, relaying channel messages to the sink.
func (n *RedisNotifier) Listen(ctx context.Context) error {
	sub := n.rdb.Subscribe(ctx, n.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("ошибка подписки на канал %s: %w", n.channel, err)
	}
	n.logger.Info("подписка на события записей", zap.String("channel", n.channel))

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			n.handlePayload(msg.Payload)
		}
	}
}

func (n *RedisNotifier) handlePayload(payload string) {
	var event domain.BookingEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		n.logger.Warn("некорректное событие в канале", zap.String("channel", n.channel), zap.Error(err))
		return
	}
	if event.Type != domain.BookingEventCreated && event.Type != domain.BookingEventCancelled {
		n.logger.Warn("неизвестный тип события", zap.String("type", string(event.Type)))
		return
	}
	n.sink.Deliver(event)
}
