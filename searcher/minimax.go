package searcher

import (
	"math"
	"time"

	"netdefense/game"
)

type Option func(m *Minimax)

// Minimax picks the defender's move with a depth-bounded adversarial
// search. It owns a short rolling history of the moves it has chosen
// across calls, used to discourage repeating itself between real turns;
// the history lives for the session and resets with it.
type Minimax struct {
	depth       int
	evaluate    game.Evaluate
	roll        game.Roller
	historySize int   // negative until resolved from an option or the config
	history     []int // chosen defense ids, oldest first
}

// WithDepth overrides the config's search depth.
func WithDepth(depth int) Option {
	return func(m *Minimax) {
		if depth > 0 {
			m.depth = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *Minimax) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

// WithRoller sets the roll source used for look-ahead transitions. A
// seeded roller makes move selection reproducible.
func WithRoller(roll game.Roller) Option {
	return func(m *Minimax) {
		if roll != nil {
			m.roll = roll
		}
	}
}

func WithHistorySize(size int) Option {
	return func(m *Minimax) {
		if size >= 0 {
			m.historySize = size
		}
	}
}

func NewMinimax(options ...Option) *Minimax {
	m := &Minimax{ // Default values
		evaluate:    game.EvaluateDefender,
		roll:        game.NewRoller(uint64(time.Now().UnixNano())),
		historySize: -1,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// FindDefense returns the best affordable defense for the current state,
// or false when none is affordable. On success the chosen move id is
// appended to the rolling history.
func (m *Minimax) FindDefense(state *game.GameState) (game.DefenseMove, bool) {
	cfg := state.Config
	candidates := cfg.Catalog.LegalDefenses(state.Defender.Resources)
	if len(candidates) == 0 {
		return game.DefenseMove{}, false
	}

	depth := m.depth
	if depth <= 0 {
		depth = cfg.SearchDepth
	}
	if m.historySize < 0 {
		m.historySize = cfg.HistorySize
	}

	var best game.DefenseMove
	bestScore := math.Inf(-1)
	found := false
	for _, def := range candidates {
		child := state.Play(def, m.roll())
		score := m.search(child, depth-1, math.Inf(-1), math.Inf(1), false)

		// Root-only shaping: favor counters to the attacker's latest
		// move, disfavor moves this searcher has chosen recently.
		if attack, ok := cfg.Catalog.Attack(state.Attacker.LastMove); ok && def.CountersCategory(attack.Category) {
			score += cfg.CounterBonus * def.Effectiveness
		}
		score -= float64(m.timesChosen(def.ID)) * cfg.RepeatPenalty

		// Strictly greater wins; an exact tie prefers the cheaper move.
		if !found || score > bestScore || (score == bestScore && def.Cost < best.Cost) {
			best = def
			bestScore = score
			found = true
		}
	}

	m.remember(best.ID)
	return best, true
}

// search is plain alternating minimax with alpha-beta cuts. Every
// explored move consumes its own effectiveness roll, so sibling branches
// never replay the same draw. A ply with no affordable move is a leaf.
func (m *Minimax) search(state *game.GameState, depth int, alpha, beta float64, maximizing bool) float64 {
	if depth <= 0 || state.Over {
		return m.evaluate(state)
	}
	cfg := state.Config

	if maximizing {
		moves := cfg.Catalog.LegalDefenses(state.Defender.Resources)
		if len(moves) == 0 {
			return m.evaluate(state)
		}
		best := math.Inf(-1)
		for _, mv := range moves {
			score := m.search(state.Play(mv, m.roll()), depth-1, alpha, beta, false)
			if score > best {
				best = score
			}
			if best > alpha {
				alpha = best
			}
			if beta <= alpha {
				break
			}
		}
		return best
	}

	moves := cfg.Catalog.LegalAttacks(state.Attacker.Resources)
	if len(moves) == 0 {
		return m.evaluate(state)
	}
	best := math.Inf(1)
	for _, mv := range moves {
		score := m.search(state.Play(mv, m.roll()), depth-1, alpha, beta, true)
		if score < best {
			best = score
		}
		if best < beta {
			beta = best
		}
		if beta <= alpha {
			break
		}
	}
	return best
}

func (m *Minimax) remember(id int) {
	if m.historySize <= 0 {
		return
	}
	m.history = append(m.history, id)
	for len(m.history) > m.historySize {
		m.history = m.history[1:]
	}
}

func (m *Minimax) timesChosen(id int) int {
	count := 0
	for _, chosen := range m.history {
		if chosen == id {
			count++
		}
	}
	return count
}

// ResetHistory clears the cross-call repetition memory. The session
// controller calls this on new-game initialization.
func (m *Minimax) ResetHistory() {
	m.history = nil
}
