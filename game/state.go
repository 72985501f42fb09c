package game

// ActorState tracks one side's spendable resources and move record.
type ActorState struct {
	Resources float64 `json:"resources"`
	LastMove  int     `json:"lastMove"` // move id, -1 before the first move
	History   []int   `json:"history"`  // applied move ids, append-only
}

func (a ActorState) copy() ActorState {
	history := make([]int, len(a.History))
	copy(history, a.History)
	a.History = history
	return a
}

// GameState is the full state of one contest. It is mutated exclusively
// through Play, which returns a fresh copy; states handed to search are
// therefore never aliased with the live session state.
type GameState struct {
	Turn     int        `json:"turn"`
	Attacker ActorState `json:"attacker"`
	Defender ActorState `json:"defender"`
	Security float64    `json:"securityLevel"`
	Current  Role       `json:"currentPlayer"`
	Over     bool       `json:"gameOver"`
	Winner   Role       `json:"winner,omitempty"`

	// Realized outcome of the most recent transition.
	LastMove   Move    `json:"-"`
	LastEffect float64 `json:"-"` // security delta magnitude before clamping
	LastRoll   float64 `json:"-"` // realized effectiveness multiplier

	Config *Config `json:"-"` // immutable balance reference
}

// NewGameState returns the initial state: attacker to move, turn 0.
func NewGameState(cfg *Config) *GameState {
	return &GameState{
		Attacker: ActorState{Resources: cfg.InitialResources, LastMove: -1},
		Defender: ActorState{Resources: cfg.InitialResources, LastMove: -1},
		Security: cfg.InitialSecurity,
		Current:  RoleAttacker,
		Config:   cfg,
	}
}

func (gs *GameState) Copy() *GameState {
	next := *gs
	next.Attacker = gs.Attacker.copy()
	next.Defender = gs.Defender.copy()
	return &next
}

// Play applies one move and the end-of-turn effects, returning a new
// state. r is a uniform draw in [0,1) that realizes the move's
// effectiveness roll. Legality (turn order, affordability) is the
// caller's responsibility; Play itself never rejects a move.
func (gs *GameState) Play(move Move, r float64) *GameState {
	next := gs.Copy()
	cfg := next.Config

	switch m := move.(type) {
	case AttackMove:
		mult := m.Effectiveness * (0.8 + r*0.4)
		damage := m.Damage * mult
		next.Attacker.Resources -= m.Cost
		next.Security = clamp(next.Security-damage, cfg.MinSecurity, cfg.MaxSecurity)
		next.Attacker.LastMove = m.ID
		next.Attacker.History = append(next.Attacker.History, m.ID)
		next.Current = RoleDefender
		next.LastMove = m
		next.LastEffect = damage
		next.LastRoll = mult
	case DefenseMove:
		mult := m.Effectiveness * (0.9 + r*0.2)
		boost := m.Boost * mult
		next.Defender.Resources -= m.Cost
		next.Security = clamp(next.Security+boost, cfg.MinSecurity, cfg.MaxSecurity)
		next.Defender.LastMove = m.ID
		next.Defender.History = append(next.Defender.History, m.ID)
		next.Current = RoleAttacker
		next.LastMove = m
		next.LastEffect = boost
		next.LastRoll = mult
	default:
		panic("unknown move type")
	}

	next.Turn++
	next.checkTerminal()
	if !next.Over {
		// Regeneration is credited to the side about to act.
		switch next.Current {
		case RoleAttacker:
			next.Attacker.Resources += cfg.AttackerRegen
		case RoleDefender:
			next.Defender.Resources += cfg.DefenderRegen
		}
		next.Security = clamp(next.Security-cfg.DecayPerTurn, cfg.MinSecurity, cfg.MaxSecurity)
		next.checkTerminal()
	}

	return next
}

// checkTerminal assigns a winner on the first matching condition. Over is
// absorbing: once set it survives until a new game is initialized.
func (gs *GameState) checkTerminal() {
	if gs.Over {
		return
	}
	cfg := gs.Config
	switch {
	case gs.Security <= cfg.MinSecurity:
		gs.Over = true
		gs.Winner = RoleAttacker
	case gs.Security >= cfg.MaxSecurity:
		gs.Over = true
		gs.Winner = RoleDefender
	case gs.Attacker.Resources <= 0 && gs.Defender.Resources <= 0:
		gs.Over = true
		if gs.Security >= cfg.Midpoint() {
			gs.Winner = RoleDefender
		} else {
			gs.Winner = RoleAttacker
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
