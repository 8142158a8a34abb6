package broadcast

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/atomic"
)

var (
	ErrListenerClosed = errors.New("listener closed")
	ErrQueueFull      = errors.New("listener send queue full")
)

// WsListener adapts a websocket connection to Listener. Frames are queued
// and written by WritePump, the only goroutine writing to the connection.
type WsListener struct {
	id           string
	conn         *websocket.Conn
	send         chan []byte
	done         chan struct{}
	open         atomic.Bool
	closeOnce    sync.Once
	writeTimeout time.Duration
	pingInterval time.Duration
}

func NewWsListener(conn *websocket.Conn, queue int, writeTimeout, pingInterval time.Duration) *WsListener {
	if queue <= 0 {
		queue = 16
	}
	l := &WsListener{
		id:           uuid.NewString(),
		conn:         conn,
		send:         make(chan []byte, queue),
		done:         make(chan struct{}),
		writeTimeout: writeTimeout,
		pingInterval: pingInterval,
	}
	l.open.Store(true)
	return l
}

func (l *WsListener) ID() string { return l.id }

func (l *WsListener) IsOpen() bool { return l.open.Load() }

// Send queues a frame without blocking. A full queue drops the frame.
func (l *WsListener) Send(message []byte) error {
	if !l.open.Load() {
		return ErrListenerClosed
	}
	select {
	case <-l.done:
		return ErrListenerClosed
	case l.send <- message:
		return nil
	default:
		return ErrQueueFull
	}
}

func (l *WsListener) WritePump() {
	var tick <-chan time.Time
	if l.pingInterval > 0 {
		ticker := time.NewTicker(l.pingInterval)
		defer ticker.Stop()
		tick = ticker.C
	}
	defer l.Close()

	for {
		select {
		case <-l.done:
			return
		case msg := <-l.send:
			l.setWriteDeadline()
			if err := l.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-tick:
			l.setWriteDeadline()
			if err := l.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (l *WsListener) setWriteDeadline() {
	if l.writeTimeout > 0 {
		_ = l.conn.SetWriteDeadline(time.Now().Add(l.writeTimeout))
	}
}

func (l *WsListener) Close() {
	l.closeOnce.Do(func() {
		l.open.Store(false)
		close(l.done)
		_ = l.conn.Close()
	})
}
