package vmsclient

// SessionContext источник токена для запросов. Передается клиенту при создании
type SessionContext interface {
	SessionID() string
	AccessToken() string
}

type anonymous struct{}

func (anonymous) SessionID() string   { return "" }
func (anonymous) AccessToken() string { return "" }

// Anonymous для вызовов до входа (login, send-otp, verify-otp)
var Anonymous SessionContext = anonymous{}

type staticSession struct {
	id    string
	token string
}

func (s staticSession) SessionID() string   { return s.id }
func (s staticSession) AccessToken() string { return s.token }

func StaticSession(id, token string) SessionContext {
	return staticSession{id: id, token: token}
}
