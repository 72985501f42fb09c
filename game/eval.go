package game

import "math"

// Evaluate scores a state from the defender's perspective; higher is
// better for the defender. Implementations must be pure functions of the
// state and catalogs so scores are comparable across search branches.
type Evaluate func(*GameState) float64

// EvaluateDefender is the reference heuristic: a weighted sum of the
// security level, the resource differential, and the defense posture
// against the attacker's latest move, minus a penalty for degenerate
// single-move defense streaks.
func EvaluateDefender(gs *GameState) float64 {
	cfg := gs.Config

	if gs.Over {
		if gs.Winner == RoleDefender {
			return math.Inf(1)
		}
		return math.Inf(-1)
	}

	score := gs.Security / cfg.MaxSecurity * cfg.SecurityWeight

	diff := (gs.Defender.Resources - gs.Attacker.Resources) / cfg.ResourceDivisor
	score += clamp(diff, -cfg.ResourceWeight, cfg.ResourceWeight)

	score += postureScore(gs)
	score -= repetitionPenalty(gs)

	return score
}

// postureScore rewards a standing defense that counters the category of
// the attacker's most recent move.
func postureScore(gs *GameState) float64 {
	cfg := gs.Config
	if gs.Attacker.LastMove < 0 || gs.Defender.LastMove < 0 {
		return 0
	}
	attack, ok := cfg.Catalog.Attack(gs.Attacker.LastMove)
	if !ok {
		return 0
	}
	defense, ok := cfg.Catalog.Defense(gs.Defender.LastMove)
	if !ok {
		return 0
	}
	if defense.CountersCategory(attack.Category) {
		return cfg.PostureWeight * defense.Effectiveness
	}
	return 0
}

// repetitionPenalty fires when the defender's last RepeatWindow applied
// defenses are all the same move.
func repetitionPenalty(gs *GameState) float64 {
	cfg := gs.Config
	history := gs.Defender.History
	if cfg.RepeatWindow <= 0 || len(history) < cfg.RepeatWindow {
		return 0
	}
	recent := history[len(history)-cfg.RepeatWindow:]
	for _, id := range recent[1:] {
		if id != recent[0] {
			return 0
		}
	}
	return cfg.RepeatPenalty
}
