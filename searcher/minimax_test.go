package searcher

import (
	"testing"

	"netdefense/game"

	"github.com/stretchr/testify/require"
)

func defenderToMove(cfg *game.Config) *game.GameState {
	gs := game.NewGameState(cfg)
	gs.Current = game.RoleDefender
	return gs
}

// flatConfig zeroes every evaluation weight and root shaping term so all
// non-terminal branches score identically.
func flatConfig() *game.Config {
	cfg := game.DefaultConfig()
	cfg.SecurityWeight = 0
	cfg.ResourceWeight = 0
	cfg.PostureWeight = 0
	cfg.RepeatPenalty = 0
	cfg.CounterBonus = 0
	return cfg
}

func TestFindDefense(t *testing.T) {
	t.Run("selection is reproducible under a seeded roller", func(t *testing.T) {
		cfg := game.DefaultConfig()
		state := game.NewGameState(cfg).Play(cfg.Catalog.Attacks[1], 0.5)
		require.Equal(t, game.RoleDefender, state.Current)

		first := NewMinimax(WithRoller(game.NewRoller(42)))
		second := NewMinimax(WithRoller(game.NewRoller(42)))

		move1, ok1 := first.FindDefense(state)
		move2, ok2 := second.FindDefense(state)

		require.True(t, ok1)
		require.True(t, ok2)
		require.Equal(t, move1.ID, move2.ID, "Identical seeds should select the same move")
	})

	t.Run("no affordable defense returns none", func(t *testing.T) {
		cfg := game.DefaultConfig()
		state := defenderToMove(cfg)
		state.Defender.Resources = 5 // cheapest defense costs 10

		_, ok := NewMinimax(WithRoller(game.NewRoller(1))).FindDefense(state)

		require.False(t, ok)
	})

	t.Run("empty catalog returns none", func(t *testing.T) {
		cfg := game.DefaultConfig()
		cfg.Catalog.Defenses = nil
		state := defenderToMove(cfg)

		_, ok := NewMinimax(WithRoller(game.NewRoller(1))).FindDefense(state)

		require.False(t, ok)
	})

	t.Run("exact score tie prefers the cheaper move", func(t *testing.T) {
		cfg := flatConfig()
		cfg.Catalog.Defenses = []game.DefenseMove{
			{ID: 1, Name: "Costly", Cost: 30, Boost: 10, Effectiveness: 1},
			{ID: 2, Name: "Cheap", Cost: 5, Boost: 10, Effectiveness: 1},
		}
		state := defenderToMove(cfg)

		move, ok := NewMinimax(WithRoller(game.NewRoller(1)), WithDepth(2)).FindDefense(state)

		require.True(t, ok)
		require.Equal(t, 2, move.ID, "All branches score equally, so the cheaper move should win")
	})

	t.Run("root counter bonus steers toward the attacker's latest category", func(t *testing.T) {
		cfg := flatConfig()
		cfg.CounterBonus = 10
		cfg.Catalog.Attacks = []game.AttackMove{
			{ID: 7, Name: "Flood", Category: "volumetric", Cost: 10, Damage: 5, Effectiveness: 1},
		}
		cfg.Catalog.Defenses = []game.DefenseMove{
			{ID: 1, Name: "Generic", Cost: 10, Boost: 10, Effectiveness: 1},
			{ID: 2, Name: "Scrubber", Cost: 10, Boost: 10, Effectiveness: 1, Counters: []string{"volumetric"}},
		}
		state := defenderToMove(cfg)
		state.Attacker.LastMove = 7

		move, ok := NewMinimax(WithRoller(game.NewRoller(1)), WithDepth(1)).FindDefense(state)

		require.True(t, ok)
		require.Equal(t, 2, move.ID, "The counter to the last attack should earn the root bonus")
	})

	t.Run("chosen-move history discourages repeating across calls", func(t *testing.T) {
		cfg := flatConfig()
		cfg.RepeatPenalty = 100
		cfg.Catalog.Defenses = []game.DefenseMove{
			{ID: 1, Name: "First", Cost: 10, Boost: 10, Effectiveness: 1},
			{ID: 2, Name: "Second", Cost: 10, Boost: 10, Effectiveness: 1},
		}
		m := NewMinimax(WithRoller(game.NewRoller(1)), WithDepth(1))

		first, ok := m.FindDefense(defenderToMove(cfg))
		require.True(t, ok)
		second, ok := m.FindDefense(defenderToMove(cfg))
		require.True(t, ok)

		require.NotEqual(t, first.ID, second.ID, "The previously chosen move should be penalized at the root")
	})

	t.Run("zero history size in the config disables the repetition memory", func(t *testing.T) {
		cfg := flatConfig()
		cfg.RepeatPenalty = 100
		cfg.HistorySize = 0
		cfg.Catalog.Defenses = []game.DefenseMove{
			{ID: 1, Name: "First", Cost: 10, Boost: 10, Effectiveness: 1},
			{ID: 2, Name: "Second", Cost: 10, Boost: 10, Effectiveness: 1},
		}
		m := NewMinimax(WithRoller(game.NewRoller(1)), WithDepth(1))

		first, ok := m.FindDefense(defenderToMove(cfg))
		require.True(t, ok)
		second, ok := m.FindDefense(defenderToMove(cfg))
		require.True(t, ok)

		require.Equal(t, first.ID, second.ID, "With no memory nothing is penalized, so the same move wins twice")
	})

	t.Run("history size follows the config when not overridden", func(t *testing.T) {
		cfg := flatConfig()
		cfg.RepeatPenalty = 100
		cfg.HistorySize = 1
		cfg.Catalog.Defenses = []game.DefenseMove{
			{ID: 1, Name: "First", Cost: 10, Boost: 10, Effectiveness: 1},
			{ID: 2, Name: "Second", Cost: 10, Boost: 10, Effectiveness: 1},
			{ID: 3, Name: "Third", Cost: 10, Boost: 10, Effectiveness: 1},
		}
		m := NewMinimax(WithRoller(game.NewRoller(1)), WithDepth(1))

		first, ok := m.FindDefense(defenderToMove(cfg))
		require.True(t, ok)
		_, ok = m.FindDefense(defenderToMove(cfg))
		require.True(t, ok)
		third, ok := m.FindDefense(defenderToMove(cfg))
		require.True(t, ok)

		require.Equal(t, first.ID, third.ID, "A one-slot memory forgets the first choice by the third call")
	})

	t.Run("look-ahead avoids the defense that loses next ply", func(t *testing.T) {
		cfg := game.DefaultConfig()
		cfg.Catalog.Attacks = []game.AttackMove{
			{ID: 1, Name: "Heavy Hit", Category: "exploit", Cost: 10, Damage: 15, Effectiveness: 1},
		}
		cfg.Catalog.Defenses = []game.DefenseMove{
			{ID: 1, Name: "Weak Patch", Cost: 10, Boost: 1, Effectiveness: 1},
			{ID: 2, Name: "Strong Patch", Cost: 10, Boost: 50, Effectiveness: 1},
		}
		state := defenderToMove(cfg)
		state.Security = 12 // weak patch leaves the next attack lethal at any roll

		move, ok := NewMinimax(WithRoller(game.NewRoller(9)), WithDepth(2)).FindDefense(state)

		require.True(t, ok)
		require.Equal(t, 2, move.ID, "Search should see the loss behind the weak defense")
	})
}

func TestHistory(t *testing.T) {
	t.Run("rolling history evicts oldest first", func(t *testing.T) {
		m := NewMinimax(WithHistorySize(2))

		m.remember(1)
		m.remember(2)
		m.remember(3)

		require.Equal(t, []int{2, 3}, m.history)
		require.Equal(t, 1, m.timesChosen(2))
		require.Equal(t, 0, m.timesChosen(1))
	})

	t.Run("reset clears the memory", func(t *testing.T) {
		m := NewMinimax(WithHistorySize(2))
		m.remember(1)

		m.ResetHistory()

		require.Empty(t, m.history)
	})
}
