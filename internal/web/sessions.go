package web

import (
	"html/template"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/hunyport/huny/internal/session"
)

const sessionCookie = "huny_session"

type flash struct {
	Level string
	Text  string
}

// webSession is the per-browser state: one conversation session plus
// page feedback. The mutex serializes requests racing on the same
// cookie, since the underlying conversation session has no locking of
// its own.
type webSession struct {
	mu      sync.Mutex
	conv    *session.Session
	flashes []flash
	askHTML template.HTML
}

func (ws *webSession) flash(level, text string) {
	ws.flashes = append(ws.flashes, flash{Level: level, Text: text})
}

func (ws *webSession) popFlashes() []flash {
	f := ws.flashes
	ws.flashes = nil
	return f
}

func (ws *webSession) popAskHTML() template.HTML {
	h := ws.askHTML
	ws.askHTML = ""
	return h
}

// sessionStore maps session cookie ids onto webSessions. Everything is
// in-memory and per-process: restarting the server forgets all
// conversations, matching cookie-session semantics.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*webSession
	dial     session.Dialer
}

func newSessionStore(dial session.Dialer) *sessionStore {
	return &sessionStore{
		sessions: make(map[string]*webSession),
		dial:     dial,
	}
}

// get returns the webSession for the request's cookie, minting a new
// id and setting the cookie when absent or unknown.
func (st *sessionStore) get(w http.ResponseWriter, r *http.Request) *webSession {
	st.mu.Lock()
	defer st.mu.Unlock()
	if c, err := r.Cookie(sessionCookie); err == nil {
		if ws, ok := st.sessions[c.Value]; ok {
			return ws
		}
	}
	id := uuid.NewString()
	ws := &webSession{conv: session.New(st.dial)}
	st.sessions[id] = ws
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return ws
}
