package connectionhub

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"vms-console/models"
	wsmodels "vms-console/models/ws"
)

// backlogLimit сколько тостов храним для сессии без соединения
const backlogLimit = 20

type Conn interface {
	WriteJSON(v interface{}) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
}

type Provider interface {
	AddClient(sessionID string, conn Conn)
	DeleteClient(sessionID string, conn Conn)
	SendMessage(msg wsmodels.ServerMessage)
	SendClose(sessionID string)
	IsConnected(sessionID string) bool
	// Notifier тосты одной сессии
	Notifier(sessionID string) wsmodels.Notify
	Forget(sessionID string)
}

var Instance Provider

func Init() {
	Instance = NewHub()
}

func NewHub() Provider {
	return &impl{
		clients: map[string]*clientSession{},
		backlog: map[string][]wsmodels.ServerMessage{},
	}
}

type impl struct {
	mu      sync.Mutex
	clients map[string]*clientSession //map[sessionID]
	backlog map[string][]wsmodels.ServerMessage
}

func (i *impl) DeleteClient(sessionID string, conn Conn) {
	i.mu.Lock()
	defer i.mu.Unlock()
	sess, ok := i.clients[sessionID]
	if !ok || sess.conn != conn {
		return
	}
	delete(i.clients, sessionID)
	sess.stop()
}

func (i *impl) AddClient(sessionID string, conn Conn) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if oldSess, ok := i.clients[sessionID]; ok {
		oldSess.stop()
	}
	sess := newSession(conn)
	i.clients[sessionID] = sess
	for _, msg := range i.backlog[sessionID] {
		sess.enqueue(msg)
	}
	delete(i.backlog, sessionID)
}

func (i *impl) SendMessage(msg wsmodels.ServerMessage) {
	i.mu.Lock()
	defer i.mu.Unlock()
	sess, ok := i.clients[msg.ToSessionID]
	if ok && sess.enqueue(msg) {
		return
	}
	pending := append(i.backlog[msg.ToSessionID], msg)
	if len(pending) > backlogLimit {
		pending = pending[len(pending)-backlogLimit:]
	}
	i.backlog[msg.ToSessionID] = pending
}

func (i *impl) SendClose(sessionID string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if sess, ok := i.clients[sessionID]; ok {
		sess.stop()
	}
}

func (i *impl) IsConnected(sessionID string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	sess, ok := i.clients[sessionID]
	return ok && sess.conn != nil
}

func (i *impl) Notifier(sessionID string) wsmodels.Notify {
	return func(code models.ToastCode, msg string) {
		log.
			WithField("session_id", sessionID).
			WithField("code", code).
			Debug(msg)
		i.SendMessage(wsmodels.NewToast(sessionID, code, msg))
	}
}

// Forget закрывает соединение и удаляет отложенные тосты сессии
func (i *impl) Forget(sessionID string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if sess, ok := i.clients[sessionID]; ok {
		sess.stop()
		delete(i.clients, sessionID)
	}
	delete(i.backlog, sessionID)
}
