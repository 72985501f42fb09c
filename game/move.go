package game

// Role identifies one side of the contest.
type Role string

const (
	RoleAttacker Role = "attacker"
	RoleDefender Role = "defender"
	RoleNone     Role = ""
)

// Move is either an AttackMove or a DefenseMove.
type Move interface {
	MoveID() int
	MoveName() string
	MoveCost() float64
}

// AttackMove lowers the security level when applied.
type AttackMove struct {
	ID            int     `json:"id" yaml:"id"`
	Name          string  `json:"name" yaml:"name"`
	Category      string  `json:"category" yaml:"category"`
	Cost          float64 `json:"cost" yaml:"cost"`
	Damage        float64 `json:"damage" yaml:"damage"`
	Effectiveness float64 `json:"effectiveness" yaml:"effectiveness"`
}

func (m AttackMove) MoveID() int       { return m.ID }
func (m AttackMove) MoveName() string  { return m.Name }
func (m AttackMove) MoveCost() float64 { return m.Cost }

// DefenseMove raises the security level when applied. Counters lists the
// attack categories it is effective against.
type DefenseMove struct {
	ID            int      `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Category      string   `json:"category" yaml:"category"`
	Cost          float64  `json:"cost" yaml:"cost"`
	Boost         float64  `json:"boost" yaml:"boost"`
	Effectiveness float64  `json:"effectiveness" yaml:"effectiveness"`
	Counters      []string `json:"counters" yaml:"counters"`
}

func (m DefenseMove) MoveID() int       { return m.ID }
func (m DefenseMove) MoveName() string  { return m.Name }
func (m DefenseMove) MoveCost() float64 { return m.Cost }

func (m DefenseMove) CountersCategory(category string) bool {
	for _, c := range m.Counters {
		if c == category {
			return true
		}
	}
	return false
}

// Catalog holds the immutable move definitions for both sides.
type Catalog struct {
	Attacks  []AttackMove  `json:"attacks" yaml:"attacks"`
	Defenses []DefenseMove `json:"defenses" yaml:"defenses"`
}

func (c *Catalog) Attack(id int) (AttackMove, bool) {
	for _, m := range c.Attacks {
		if m.ID == id {
			return m, true
		}
	}
	return AttackMove{}, false
}

func (c *Catalog) Defense(id int) (DefenseMove, bool) {
	for _, m := range c.Defenses {
		if m.ID == id {
			return m, true
		}
	}
	return DefenseMove{}, false
}

// LegalAttacks returns the attacks affordable with the given resources.
func (c *Catalog) LegalAttacks(resources float64) []AttackMove {
	var moves []AttackMove
	for _, m := range c.Attacks {
		if resources >= m.Cost {
			moves = append(moves, m)
		}
	}
	return moves
}

// LegalDefenses returns the defenses affordable with the given resources.
func (c *Catalog) LegalDefenses(resources float64) []DefenseMove {
	var moves []DefenseMove
	for _, m := range c.Defenses {
		if resources >= m.Cost {
			moves = append(moves, m)
		}
	}
	return moves
}
