package engine

import (
	"errors"
	"fmt"
	"sync"

	"netdefense/game"
	"netdefense/searcher"

	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidTurn           = errors.New("invalid turn")
	ErrUnknownMove           = errors.New("unknown move")
	ErrInsufficientResources = errors.New("insufficient resources")
	ErrNoLegalMove           = errors.New("no legal move")
)

// DefenseReport describes the defense the AI actually applied, with the
// realized (rolled) boost and effectiveness.
type DefenseReport struct {
	Name          string  `json:"name"`
	Boost         float64 `json:"boost"`
	Effectiveness float64 `json:"effectiveness"`
	Cost          float64 `json:"cost"`
	Message       string  `json:"message"`
}

// Session owns the single authoritative live state of one contest and
// serializes all mutations. The attacker side moves on external request;
// the defender side is played by the searcher.
type Session struct {
	mu       sync.Mutex
	cfg      *game.Config
	state    *game.GameState
	searcher *searcher.Minimax
	roll     game.Roller
}

func NewSession(cfg *game.Config, roll game.Roller, ai *searcher.Minimax) *Session {
	return &Session{
		cfg:      cfg,
		state:    game.NewGameState(cfg),
		searcher: ai,
		roll:     roll,
	}
}

// State returns a copy of the live state.
func (s *Session) State() *game.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Copy()
}

// ApplyAttack validates and applies one attacker move.
func (s *Session) ApplyAttack(attackID int) (*game.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Over {
		return nil, fmt.Errorf("%w: game is over", ErrInvalidTurn)
	}
	if s.state.Current != game.RoleAttacker {
		return nil, fmt.Errorf("%w: waiting for the defender", ErrInvalidTurn)
	}
	attack, ok := s.cfg.Catalog.Attack(attackID)
	if !ok {
		return nil, fmt.Errorf("%w: attack id %d", ErrUnknownMove, attackID)
	}
	if s.state.Attacker.Resources < attack.Cost {
		return nil, fmt.Errorf("%w: %s costs %.0f, attacker has %.0f",
			ErrInsufficientResources, attack.Name, attack.Cost, s.state.Attacker.Resources)
	}

	s.state = s.state.Play(attack, s.roll())
	log.Info().
		Str("move", attack.Name).
		Float64("damage", s.state.LastEffect).
		Float64("security", s.state.Security).
		Int("turn", s.state.Turn).
		Msg("attack applied")
	s.logGameOver()

	return s.state.Copy(), nil
}

// ApplyDefense asks the searcher for a move and applies it.
func (s *Session) ApplyDefense() (*game.GameState, *DefenseReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Over {
		return nil, nil, fmt.Errorf("%w: game is over", ErrInvalidTurn)
	}
	if s.state.Current != game.RoleDefender {
		return nil, nil, fmt.Errorf("%w: waiting for the attacker", ErrInvalidTurn)
	}

	defense, ok := s.searcher.FindDefense(s.state)
	if !ok || s.state.Defender.Resources < defense.Cost {
		return nil, nil, fmt.Errorf("%w: no affordable defense", ErrNoLegalMove)
	}

	s.state = s.state.Play(defense, s.roll())
	report := &DefenseReport{
		Name:          defense.Name,
		Boost:         s.state.LastEffect,
		Effectiveness: s.state.LastRoll,
		Cost:          defense.Cost,
		Message: fmt.Sprintf("%s raised security by %.1f (cost %.0f)",
			defense.Name, s.state.LastEffect, defense.Cost),
	}
	log.Info().
		Str("move", defense.Name).
		Float64("boost", report.Boost).
		Float64("security", s.state.Security).
		Int("turn", s.state.Turn).
		Msg("defense applied")
	s.logGameOver()

	return s.state.Copy(), report, nil
}

// Reset replaces the live state with a fresh one and clears the
// searcher's repetition memory.
func (s *Session) Reset() *game.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = game.NewGameState(s.cfg)
	s.searcher.ResetHistory()
	log.Info().Msg("new game initialized")
	return s.state.Copy()
}

func (s *Session) logGameOver() {
	if s.state.Over {
		log.Info().
			Str("winner", string(s.state.Winner)).
			Int("turn", s.state.Turn).
			Float64("security", s.state.Security).
			Msg("game over")
	}
}
