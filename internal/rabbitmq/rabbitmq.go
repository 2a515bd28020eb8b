package rabbitmq

import (
	"context"
	"mealremind/internal/core/domain/logging"
	"sync"
	"sync/atomic"
	"time"

	e "mealremind/internal/core/domain/errors"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RECONNECT_DELAY is the pause between redial attempts after the broker drops us.
const RECONNECT_DELAY = 3 * time.Second

// Connection redials the broker when the underlying connection is lost.
type Connection struct {
	log logging.Logger
	url string

	mu   sync.RWMutex
	conn *amqp.Connection
}

func Dial(url string, log logging.Logger) (*Connection, error) {
	if log == nil {
		return nil, e.NewNilArgumentError("log")
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	c := &Connection{log: log, url: url, conn: conn}
	go c.watch(conn)
	return c, nil
}

func (c *Connection) current() *amqp.Connection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.conn
}

func (c *Connection) watch(conn *amqp.Connection) {
	for {
		reason, ok := <-conn.NotifyClose(make(chan *amqp.Error, 1))
		if !ok {
			c.log.Info(context.Background(), "RabbitMQ connection closed.")
			return
		}
		c.log.Warning(context.Background(), "RabbitMQ connection lost.", logging.Entry("reason", reason.Error()))

		conn = retry(c.log, "RabbitMQ redial", func() (*amqp.Connection, error) {
			return amqp.Dial(c.url)
		})
		c.mu.Lock()
		c.conn = conn
		c.mu.Unlock()
		c.log.Info(context.Background(), "RabbitMQ connection restored.")
	}
}

func (c *Connection) Close() error {
	return c.current().Close()
}

// Channel opens a channel that is reopened whenever the broker closes it.
// Only an explicit Close stops it for good.
func (c *Connection) Channel() (*Channel, error) {
	ch, err := c.current().Channel()
	if err != nil {
		return nil, err
	}

	channel := &Channel{log: c.log, ch: ch}
	go channel.watch(c, ch)
	return channel, nil
}

type Channel struct {
	log    logging.Logger
	closed atomic.Bool

	mu sync.RWMutex
	ch *amqp.Channel
}

func (ch *Channel) current() *amqp.Channel {
	ch.mu.RLock()
	defer ch.mu.RUnlock()
	return ch.ch
}

func (ch *Channel) watch(conn *Connection, raw *amqp.Channel) {
	for {
		reason, ok := <-raw.NotifyClose(make(chan *amqp.Error, 1))
		if !ok || ch.IsClosed() {
			ch.closed.Store(true)
			return
		}
		ch.log.Warning(context.Background(), "RabbitMQ channel lost.", logging.Entry("reason", reason.Error()))

		raw = retry(ch.log, "RabbitMQ channel reopen", func() (*amqp.Channel, error) {
			return conn.current().Channel()
		})
		ch.mu.Lock()
		ch.ch = raw
		ch.mu.Unlock()
		ch.log.Info(context.Background(), "RabbitMQ channel reopened.")
	}
}

// IsClosed reports whether Close was called.
func (ch *Channel) IsClosed() bool {
	return ch.closed.Load()
}

func (ch *Channel) Close() error {
	if !ch.closed.CompareAndSwap(false, true) {
		return amqp.ErrClosed
	}
	return ch.current().Close()
}

// DeclareQueue makes sure a durable queue exists so that publishing before the worker starts loses nothing.
func (ch *Channel) DeclareQueue(name string) error {
	_, err := ch.current().QueueDeclare(name, true, false, false, false, nil)
	return err
}

// Prefetch limits the number of unacknowledged deliveries on the channel.
func (ch *Channel) Prefetch(count int) error {
	return ch.current().Qos(count, 0, false)
}

func (ch *Channel) PublishWithContext(
	ctx context.Context,
	exchange, key string,
	mandatory, immediate bool,
	msg amqp.Publishing,
) error {
	return ch.current().PublishWithContext(ctx, exchange, key, mandatory, immediate, msg)
}

// Consume keeps consuming across channel reopenings. The returned deliveries
// end only after Close.
func (ch *Channel) Consume(
	queue, consumer string,
	autoAck, exclusive, noLocal, noWait bool,
	args amqp.Table,
) (<-chan amqp.Delivery, error) {
	deliveries := make(chan amqp.Delivery)

	go func() {
		defer close(deliveries)
		for !ch.IsClosed() {
			d, err := ch.current().Consume(queue, consumer, autoAck, exclusive, noLocal, noWait, args)
			if err != nil {
				ch.log.Error(context.Background(), "Consume failed.", logging.Entry("err", err), logging.Entry("queue", queue))
				time.Sleep(RECONNECT_DELAY)
				continue
			}
			for msg := range d {
				deliveries <- msg
			}

			// The closed flag is set asynchronously, give it time before checking.
			time.Sleep(RECONNECT_DELAY)
		}
		ch.log.Info(context.Background(), "Channel is closed, stop consuming.", logging.Entry("queue", queue))
	}()

	return deliveries, nil
}

func retry[T any](log logging.Logger, what string, f func() (T, error)) T {
	for {
		time.Sleep(RECONNECT_DELAY)
		v, err := f()
		if err == nil {
			return v
		}
		log.Error(context.Background(), what+" failed.", logging.Entry("err", err))
	}
}
