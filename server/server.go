package server

import (
	"encoding/json"
	"net/http"

	"netdefense/engine"
	"netdefense/game"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// Server is the thin HTTP boundary around the session controller. All
// game logic lives behind engine.Session; handlers only translate JSON.
type Server struct {
	session *engine.Session
	cfg     *game.Config
	hub     *Hub
}

func New(session *engine.Session, cfg *game.Config) *Server {
	s := &Server{
		session: session,
		cfg:     cfg,
		hub:     NewHub(),
	}
	go s.hub.Run()
	return s
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/game").Subrouter()
	api.HandleFunc("/new", s.handleNewGame).Methods(http.MethodPost)
	api.HandleFunc("/attack", s.handleAttack).Methods(http.MethodPost)
	api.HandleFunc("/defend", s.handleDefend).Methods(http.MethodPost)
	api.HandleFunc("/state", s.handleState).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.hub.ServeWS)
	return r
}

type attackRequest struct {
	AttackID int `json:"attackId"`
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	state := s.session.Reset()
	payload := map[string]any{
		"state":    state,
		"attacks":  s.cfg.Catalog.Attacks,
		"defenses": s.cfg.Catalog.Defenses,
		"config":   s.cfg,
	}
	writeJSON(w, http.StatusOK, payload)
	s.hub.BroadcastState(state)
}

func (s *Server) handleAttack(w http.ResponseWriter, r *http.Request) {
	var req attackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	state, err := s.session.ApplyAttack(req.AttackID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"state": state})
	s.hub.BroadcastState(state)
}

func (s *Server) handleDefend(w http.ResponseWriter, r *http.Request) {
	state, report, err := s.session.ApplyDefense()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"state": state, "defense": report})
	s.hub.BroadcastState(state)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"state": s.session.State()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}
