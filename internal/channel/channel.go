package channel

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"
)

const writeTimeout = 3 * time.Second

var ErrClosed = errors.New("channel closed")

// Handler receives each inbound payload in arrival order.
type Handler func(payload []byte)

// Conn is the narrow send/close surface sessions hold. The read side is
// wired at dial time so a session can never miss early messages.
type Conn interface {
	Send(ctx context.Context, v any) error
	Close()
}

// Dialer opens channels. Sessions depend on this interface so tests can
// substitute an in-memory transport.
type Dialer interface {
	Dial(ctx context.Context, url string, onMessage Handler, onError func(error)) (Conn, error)
	// SendOnce opens a short-lived connection, sends one message and closes.
	// Used for fire-and-forget tournament actions whose effect only ever
	// arrives later on the push channel.
	SendOnce(ctx context.Context, url string, v any) error
}

// Client wraps one persistent websocket. A dropped connection is terminal:
// the error is surfaced once through onError and the client closes; there is
// no reconnection.
type Client struct {
	conn      *websocket.Conn
	log       *zap.Logger
	onMessage Handler
	onError   func(error)

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

type WebsocketDialer struct {
	Log *zap.Logger
}

func (d *WebsocketDialer) Dial(ctx context.Context, url string, onMessage Handler, onError func(error)) (Conn, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithCancel(context.Background())
	c := &Client{
		conn:      conn,
		log:       d.Log.With(zap.String("url", url)),
		onMessage: onMessage,
		onError:   onError,
		ctx:       runCtx,
		cancel:    cancel,
	}
	go c.readLoop()
	return c, nil
}

func (d *WebsocketDialer) SendOnce(ctx context.Context, url string, v any) error {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return err
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(writeCtx, websocket.MessageText, payload)
}

func (c *Client) Send(ctx context.Context, v any) error {
	select {
	case <-c.ctx.Done():
		return ErrClosed
	default:
	}

	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return c.conn.Write(writeCtx, websocket.MessageText, payload)
}

func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.cancel()
		_ = c.conn.Close(websocket.StatusNormalClosure, "bye")
	})
}

func (c *Client) readLoop() {
	for {
		_, data, err := c.conn.Read(c.ctx)
		if err != nil {
			if c.ctx.Err() != nil {
				return // closed locally
			}
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				c.log.Debug("channel closed by peer")
			default:
				c.log.Error("channel read failed", zap.Error(err))
				if c.onError != nil {
					c.onError(err)
				}
			}
			c.Close()
			return
		}
		if c.onMessage != nil {
			c.onMessage(data)
		}
	}
}
