package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

const (
	DefaultExchange    = "profile_updates"
	routingKeyPrefix   = "profile."
	exchangeKind       = "topic"
	messageContentType = "application/json"
)

// AMQPConfig describes the broker and exchange profiles are published to.
type AMQPConfig struct {
	URL      string `mapstructure:"-"`
	Exchange string `mapstructure:"exchange"`
}

type channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQP publishes events as JSON to a topic exchange, routed by request id.
type AMQP struct {
	exchange string
	logger   *zap.Logger
	conn     *amqp.Connection
	channel  func() (channel, error)
}

// DialAMQP connects to the broker and declares the exchange.
func DialAMQP(cfg AMQPConfig, logger *zap.Logger) (*AMQP, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("amqp url is required")
	}

	exchange := strings.TrimSpace(cfg.Exchange)
	if exchange == "" {
		exchange = DefaultExchange
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open amqp channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(exchange, exchangeKind, true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("declare exchange %q: %w", exchange, err)
	}

	a := newAMQP(exchange, logger, func() (channel, error) { return conn.Channel() })
	a.conn = conn
	return a, nil
}

func newAMQP(exchange string, logger *zap.Logger, open func() (channel, error)) *AMQP {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AMQP{exchange: exchange, logger: logger, channel: open}
}

func (a *AMQP) Publish(ctx context.Context, event *Event) error {
	if event == nil {
		return errors.New("event is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ch, err := a.channel()
	if err != nil {
		return fmt.Errorf("open amqp channel: %w", err)
	}
	defer ch.Close()

	key := RoutingKey(event.RequestID)
	err = ch.Publish(a.exchange, key, false, false, amqp.Publishing{
		ContentType:  messageContentType,
		DeliveryMode: amqp.Persistent,
		MessageId:    event.RequestID,
		Timestamp:    event.CreatedAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish to %s/%s: %w", a.exchange, key, err)
	}

	a.logger.Debug("published profile", zap.String("exchange", a.exchange), zap.String("routing_key", key))
	return nil
}

func (a *AMQP) Close() error {
	if a.conn == nil {
		return nil
	}
	return a.conn.Close()
}

// RoutingKey returns the routing key of a request's event.
func RoutingKey(requestID string) string {
	return routingKeyPrefix + requestID
}
