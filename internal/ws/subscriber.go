package ws

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type streamConn interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (messageType int, p []byte, err error)
	SetWriteDeadline(t time.Time) error
	SetReadDeadline(t time.Time) error
	SetReadLimit(limit int64)
	SetPongHandler(h func(appData string) error)
	Close() error
}

// Subscriber represents one attached stream client.
type Subscriber struct {
	conn         streamConn
	send         chan []byte
	logger       *zap.Logger
	writeTimeout time.Duration
	onClose      func(*Subscriber)
}

// NewSubscriber builds subscriber wrapper.
func NewSubscriber(conn streamConn, writeTimeout time.Duration, logger *zap.Logger, onClose func(*Subscriber)) *Subscriber {
	if writeTimeout <= 0 {
		writeTimeout = 10 * time.Second
	}
	return &Subscriber{
		conn:         conn,
		send:         make(chan []byte, 16),
		logger:       logger,
		writeTimeout: writeTimeout,
		onClose:      onClose,
	}
}

// Start launches read/write pumps.
func (s *Subscriber) Start(ctx context.Context) {
	go s.writePump(ctx)
	s.readPump(ctx)
}

// The stream is push-only; the read pump discards client frames and
// exists to notice disconnects and answer pings.
func (s *Subscriber) readPump(ctx context.Context) {
	defer s.cleanup()
	s.conn.SetReadLimit(512)
	s.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if _, _, err := s.conn.ReadMessage(); err != nil {
			s.logger.Info("stream subscriber closed", zap.Error(err))
			return
		}
	}
}

func (s *Subscriber) writePump(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-s.send:
			if !ok {
				_ = s.write(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.write(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := s.write(websocket.PingMessage, []byte("ping")); err != nil {
				return
			}
		}
	}
}

// Send enqueues a message for writing.
func (s *Subscriber) Send(msg []byte) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("attempted to send on closed channel")
		}
	}()
	select {
	case s.send <- msg:
	default:
		s.logger.Warn("dropping stream message, buffer full")
	}
}

func (s *Subscriber) write(messageType int, data []byte) error {
	s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
	return s.conn.WriteMessage(messageType, data)
}

func (s *Subscriber) cleanup() {
	close(s.send)
	_ = s.conn.Close()
	if s.onClose != nil {
		s.onClose(s)
	}
}
