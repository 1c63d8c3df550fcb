package order

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Channel is the Postgres NOTIFY channel written by the orders trigger.
const Channel = "orders_changed"

// listenConn is the part of a pooled connection the listener needs.
type listenConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	WaitForNotification(ctx context.Context) (*pgconn.Notification, error)
	Release()
}

type poolConn struct {
	*pgxpool.Conn
}

func (c poolConn) WaitForNotification(ctx context.Context) (*pgconn.Notification, error) {
	return c.Conn.Conn().WaitForNotification(ctx)
}

// PGNotifier holds one LISTEN connection and fans the restaurant id payloads
// out to in-process subscribers.
type PGNotifier struct {
	*MemoryNotifier
	acquire func(ctx context.Context) (listenConn, error)
	log     zerolog.Logger
	retry   time.Duration
}

func NewPGNotifier(db *pgxpool.Pool, log zerolog.Logger) *PGNotifier {
	return &PGNotifier{
		MemoryNotifier: NewMemoryNotifier(),
		acquire: func(ctx context.Context) (listenConn, error) {
			conn, err := db.Acquire(ctx)
			if err != nil {
				return nil, err
			}
			return poolConn{conn}, nil
		},
		log:   log.With().Str("component", "order-notifier").Logger(),
		retry: 2 * time.Second,
	}
}

// Run listens until ctx is done, reconnecting after connection errors.
// Notifications sent while disconnected are lost, so every subscriber is
// signalled once after a reconnect.
func (n *PGNotifier) Run(ctx context.Context) {
	reconnect := false
	for {
		err := n.listen(ctx, reconnect)
		if ctx.Err() != nil {
			return
		}

		n.log.Error().Err(err).Dur("retry_in", n.retry).Msg("order listener stopped")
		select {
		case <-ctx.Done():
			return
		case <-time.After(n.retry):
		}
		reconnect = true
	}
}

func (n *PGNotifier) listen(ctx context.Context, reconnect bool) error {
	conn, err := n.acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+Channel); err != nil {
		return err
	}
	n.log.Info().Str("channel", Channel).Bool("reconnect", reconnect).Msg("listening for order changes")

	if reconnect {
		n.NotifyAll()
	}

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}

		restaurantID, err := strconv.ParseInt(notification.Payload, 10, 64)
		if err != nil {
			n.log.Warn().Str("payload", notification.Payload).Msg("ignoring malformed notification")
			continue
		}
		n.Notify(restaurantID)
	}
}
