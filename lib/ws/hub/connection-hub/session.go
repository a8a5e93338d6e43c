package connectionhub

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
	wsmodels "vms-console/models/ws"
)

type clientSession struct {
	conn Conn

	// исходящие сообщения, буферизованы
	sendCh   chan wsmodels.ServerMessage
	stop     func()
	ctx      context.Context
	stopOnce sync.Once
}

func newSession(conn Conn) *clientSession {
	ctx, cancelFn := context.WithCancel(context.Background())
	sess := &clientSession{
		conn:   conn,
		ctx:    ctx,
		sendCh: make(chan wsmodels.ServerMessage, backlogLimit),
	}
	sess.stop = func() {
		sess.stopOnce.Do(cancelFn)
	}
	go sess.startSend(ctx)
	return sess
}

// enqueue false, если сессия остановлена или буфер заполнен
func (s *clientSession) enqueue(msg wsmodels.ServerMessage) bool {
	if s.ctx.Err() != nil {
		return false
	}
	select {
	case s.sendCh <- msg:
		return true
	default:
		return false
	}
}

func (s *clientSession) startSend(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			s.drain()
			s.close()
			return
		case msg := <-s.sendCh:
			if err := s.send(msg); err != nil {
				log.WithError(err).Error("ошибка отправки сообщения")
			}
		}
	}
}

// drain отправляет уже поставленные в очередь сообщения перед закрытием
func (s *clientSession) drain() {
	for {
		select {
		case msg := <-s.sendCh:
			if err := s.send(msg); err != nil {
				log.WithError(err).Error("ошибка отправки сообщения")
				return
			}
		default:
			return
		}
	}
}

func (s *clientSession) send(msg wsmodels.ServerMessage) error {
	if s.conn == nil {
		return nil
	}
	err := s.conn.WriteJSON(msg)
	if err != nil {
		return err
	}
	log.WithField("session_id", msg.ToSessionID).Debugf("отправлен тост: %v", msg.Code)
	return nil
}

func (s *clientSession) close() {
	if s.conn == nil {
		return
	}
	err := s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Millisecond))
	if err != nil {
		log.WithError(err).Debug("ошибка закрытия соединения")
	}
}
