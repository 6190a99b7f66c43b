package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/radieske/bet-settlement-engine/internal/settlement/dto"
	"github.com/radieske/bet-settlement-engine/internal/settlement/engine"
	"github.com/radieske/bet-settlement-engine/internal/settlement/model"
	"github.com/radieske/bet-settlement-engine/internal/settlement/repo"
)

// Operations são as três operações do engine expostas por HTTP
type Operations interface {
	RunNormalCheck(ctx context.Context, scope model.DateScope) (engine.Report, error)
	RunRecalculation(ctx context.Context, scope model.DateScope) (engine.Report, error)
	ResetBets(ctx context.Context, from, to string) (engine.Report, error)
}

type Server struct {
	log   *zap.Logger
	ops   Operations
	store repo.Store
}

func NewServer(log *zap.Logger, ops Operations, store repo.Store) *Server {
	return &Server{log: log, ops: ops, store: store}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/settlement/check", s.check)             // POST
	mux.HandleFunc("/settlement/recalculate", s.recalculate) // POST
	mux.HandleFunc("/settlement/reset", s.reset)             // POST
	mux.HandleFunc("/bets/", s.getBet)                       // GET /bets/{id}
	return mux
}

func (s *Server) check(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeScope(w, r)
	if !ok {
		return
	}
	rep, err := s.ops.RunNormalCheck(r.Context(), req.Scope())
	s.respond(w, "normal check", rep, err)
}

func (s *Server) recalculate(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeScope(w, r)
	if !ok {
		return
	}
	rep, err := s.ops.RunRecalculation(r.Context(), req.Scope())
	s.respond(w, "recalculation", rep, err)
}

func (s *Server) reset(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeScope(w, r)
	if !ok {
		return
	}
	if req.From == "" {
		writeError(w, http.StatusBadRequest, "from required")
		return
	}
	rep, err := s.ops.ResetBets(r.Context(), req.From, req.To)
	s.respond(w, "reset", rep, err)
}

func (s *Server) getBet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	// path: /bets/{id}
	id := strings.Trim(r.URL.Path[len("/bets/"):], "/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "betId required")
		return
	}

	b, err := s.store.GetBet(r.Context(), id)
	if errors.Is(err, repo.ErrBetNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		s.log.Error("get bet failed", zap.String("betId", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, dto.NewBetResponse(b))
}

// decodeScope aceita corpo vazio como escopo sem limites
func decodeScope(w http.ResponseWriter, r *http.Request) (dto.ScopeRequest, bool) {
	var req dto.ScopeRequest
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return req, false
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad json")
		return req, false
	}
	if err := req.Scope().Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return req, false
	}
	return req, true
}

func (s *Server) respond(w http.ResponseWriter, op string, rep engine.Report, err error) {
	switch {
	case errors.Is(err, engine.ErrInvalidScope):
		writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		s.log.Error(op+" failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	default:
		writeJSON(w, http.StatusOK, rep)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, dto.ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
