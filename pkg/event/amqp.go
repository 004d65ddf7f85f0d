package event

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrPublisherClosed = errors.New("event publisher is closed")

// publishChannel is the part of *amqp.Channel the publisher uses.
type publishChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

type amqpPublisher struct {
	mu       sync.Mutex
	url      string
	exchange string
	dial     func() (io.Closer, publishChannel, error)
	conn     io.Closer
	channel  publishChannel
	closed   bool
}

// NewAMQPPublisher declares a durable topic exchange and publishes each event
// with its type as the routing key. A dropped connection is dialed again on the
// next publish.
func NewAMQPPublisher(url, exchange string) (Publisher, error) {
	p := &amqpPublisher{
		url:      url,
		exchange: exchange,
	}
	p.dial = p.dialBroker

	if err := p.connect(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *amqpPublisher) dialBroker() (io.Closer, publishChannel, error) {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		p.exchange, // name
		"topic",    // type
		true,       // durable
		false,      // auto-deleted
		false,      // internal
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, nil, fmt.Errorf("declare exchange: %w", err)
	}

	return conn, channel, nil
}

// connect dials when there is no open channel. Callers hold p.mu.
func (p *amqpPublisher) connect() error {
	if p.channel != nil && !p.channel.IsClosed() {
		return nil
	}

	p.release()

	conn, channel, err := p.dial()
	if err != nil {
		return err
	}
	p.conn, p.channel = conn, channel
	return nil
}

func (p *amqpPublisher) release() {
	if p.channel != nil {
		p.channel.Close()
		p.channel = nil
	}
	if p.conn != nil {
		p.conn.Close()
		p.conn = nil
	}
}

func (p *amqpPublisher) Publish(ctx context.Context, evt Event) error {
	body, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPublisherClosed
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    evt.OccurredAt,
		MessageId:    evt.ExpenseID,
		Body:         body,
	}

	// a channel that closes under the publish gets one fresh connection
	for attempt := 0; attempt < 2; attempt++ {
		if err = p.connect(); err != nil {
			return fmt.Errorf("publish %s: %w", evt.Type, err)
		}

		err = p.channel.PublishWithContext(
			ctx,
			p.exchange,
			string(evt.Type),
			false, // mandatory
			false, // immediate
			msg,
		)
		if err == nil || !p.channel.IsClosed() {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("publish %s: %w", evt.Type, err)
	}

	return nil
}

func (p *amqpPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true

	var err error
	if p.channel != nil {
		p.channel.Close()
		p.channel = nil
	}
	if p.conn != nil {
		err = p.conn.Close()
		p.conn = nil
	}
	return err
}
