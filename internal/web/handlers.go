package web

import (
	"html/template"
	"net/http"
	"strings"
)

type renderedExchange struct {
	Query    string
	Response template.HTML
}

type indexData struct {
	DefaultTarget string
	CurrentTarget string
	AskResponse   template.HTML
	Flashes       []flash
	History       []renderedExchange
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ws := s.store.get(w, r)
	ws.mu.Lock()
	data := indexData{
		DefaultTarget: s.conf.DefaultTarget,
		CurrentTarget: ws.conv.Target(),
		AskResponse:   ws.popAskHTML(),
		Flashes:       ws.popFlashes(),
	}
	if data.CurrentTarget == "" {
		data.CurrentTarget = s.conf.DefaultTarget
	}
	for _, ex := range ws.conv.Exchanges() {
		html, err := renderMarkdown(ex.Response)
		if err != nil {
			s.log.Error().Err(err).Msg("failed to render exchange")
			continue
		}
		data.History = append(data.History, renderedExchange{Query: ex.Query, Response: html})
	}
	ws.mu.Unlock()

	if err := s.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		s.log.Error().Err(err).Msg("failed to execute template")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// handleAsk serves the one-shot form: a fresh connection per request,
// independent of the browser's conversation.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	ws := s.store.get(w, r)
	target := strings.TrimSpace(r.FormValue("url"))
	message := strings.TrimSpace(r.FormValue("message"))

	ws.mu.Lock()
	defer ws.mu.Unlock()
	if target == "" {
		ws.flash("warning", "Space URL cannot be empty.")
		redirectIndex(w, r)
		return
	}
	if message == "" {
		ws.flash("warning", "Message cannot be empty.")
		redirectIndex(w, r)
		return
	}

	conn, err := s.store.dial(r.Context(), target)
	if err != nil {
		s.log.Error().Err(err).Str("target", target).Msg("ask connect failed")
		ws.flash("danger", err.Error())
		redirectIndex(w, r)
		return
	}
	response, err := conn.Predict(r.Context(), message)
	if err != nil {
		s.log.Error().Err(err).Str("target", target).Msg("ask predict failed")
		ws.flash("danger", err.Error())
		redirectIndex(w, r)
		return
	}
	html, err := renderMarkdown(response)
	if err != nil {
		s.log.Error().Err(err).Msg("ask render failed")
		ws.flash("danger", "Failed to render the response.")
		redirectIndex(w, r)
		return
	}
	ws.askHTML = html
	redirectIndex(w, r)
}

// handleChat appends one turn to the browser's conversation. A target
// change rebinds the session, which clears the transcript; a failed
// rebind keeps the previous conversation untouched.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	ws := s.store.get(w, r)
	target := strings.TrimSpace(r.FormValue("url"))
	message := strings.TrimSpace(r.FormValue("message"))
	if target == "" {
		target = s.conf.DefaultTarget
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()
	if message == "" {
		ws.flash("warning", "Please enter a message.")
		redirectIndex(w, r)
		return
	}
	if err := ws.conv.Bind(r.Context(), target); err != nil {
		s.log.Error().Err(err).Str("target", target).Msg("chat bind failed")
		ws.flash("danger", err.Error())
		redirectIndex(w, r)
		return
	}
	if _, err := ws.conv.Submit(r.Context(), message); err != nil {
		s.log.Error().Err(err).Str("target", target).Msg("chat submit failed")
		ws.flash("danger", err.Error())
	}
	redirectIndex(w, r)
}

func (s *Server) handleChatClear(w http.ResponseWriter, r *http.Request) {
	ws := s.store.get(w, r)
	ws.mu.Lock()
	ws.conv.Clear()
	ws.flash("info", "Chat history cleared.")
	ws.mu.Unlock()
	redirectIndex(w, r)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func redirectIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
