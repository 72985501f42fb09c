package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries the game-balance constants and the move catalogs. Values
// are fixed for the lifetime of a session; a YAML file can override the
// compiled-in defaults at startup.
type Config struct {
	MinSecurity      float64 `yaml:"min_security" json:"minSecurity"`
	MaxSecurity      float64 `yaml:"max_security" json:"maxSecurity"`
	InitialSecurity  float64 `yaml:"initial_security" json:"initialSecurity"`
	InitialResources float64 `yaml:"initial_resources" json:"initialResources"`
	AttackerRegen    float64 `yaml:"attacker_regen" json:"attackerRegen"`
	DefenderRegen    float64 `yaml:"defender_regen" json:"defenderRegen"`
	DecayPerTurn     float64 `yaml:"decay_per_turn" json:"decayPerTurn"`

	SearchDepth int `yaml:"search_depth" json:"-"`
	HistorySize int `yaml:"history_size" json:"-"`

	// Evaluation weights: security 60, resource differential 20,
	// defense posture 20 of the total scale.
	SecurityWeight  float64 `yaml:"security_weight" json:"-"`
	ResourceWeight  float64 `yaml:"resource_weight" json:"-"`
	PostureWeight   float64 `yaml:"posture_weight" json:"-"`
	ResourceDivisor float64 `yaml:"resource_divisor" json:"-"`
	RepeatWindow    int     `yaml:"repeat_window" json:"-"`
	RepeatPenalty   float64 `yaml:"repeat_penalty" json:"-"`
	CounterBonus    float64 `yaml:"counter_bonus" json:"-"`

	Catalog Catalog `yaml:"catalog" json:"-"`
}

// Midpoint is the baseline used to break the mutual-exhaustion tie: at or
// above it the defender wins.
func (c *Config) Midpoint() float64 {
	return (c.MinSecurity + c.MaxSecurity) / 2
}

// DefaultConfig returns the reference balance and catalogs.
func DefaultConfig() *Config {
	return &Config{
		MinSecurity:      0,
		MaxSecurity:      100,
		InitialSecurity:  50,
		InitialResources: 100,
		AttackerRegen:    10,
		DefenderRegen:    10,
		DecayPerTurn:     1,

		SearchDepth: 3,
		HistorySize: 5,

		SecurityWeight:  60,
		ResourceWeight:  20,
		PostureWeight:   20,
		ResourceDivisor: 5,
		RepeatWindow:    3,
		RepeatPenalty:   15,
		CounterBonus:    10,

		Catalog: Catalog{
			Attacks: []AttackMove{
				{ID: 1, Name: "Phishing Campaign", Category: "social", Cost: 10, Damage: 8, Effectiveness: 0.9},
				{ID: 2, Name: "DDoS Flood", Category: "volumetric", Cost: 25, Damage: 15, Effectiveness: 0.8},
				{ID: 3, Name: "Malware Dropper", Category: "exploit", Cost: 20, Damage: 12, Effectiveness: 0.85},
				{ID: 4, Name: "Credential Stuffing", Category: "credential", Cost: 15, Damage: 10, Effectiveness: 0.7},
				{ID: 5, Name: "SQL Injection", Category: "injection", Cost: 30, Damage: 20, Effectiveness: 0.75},
			},
			Defenses: []DefenseMove{
				{ID: 1, Name: "Firewall Rules", Category: "perimeter", Cost: 10, Boost: 8, Effectiveness: 0.9, Counters: []string{"volumetric", "credential"}},
				{ID: 2, Name: "Security Patching", Category: "hardening", Cost: 20, Boost: 12, Effectiveness: 0.85, Counters: []string{"exploit", "injection"}},
				{ID: 3, Name: "Intrusion Detection", Category: "detection", Cost: 15, Boost: 10, Effectiveness: 0.8, Counters: []string{"credential", "exploit"}},
				{ID: 4, Name: "Awareness Training", Category: "awareness", Cost: 12, Boost: 9, Effectiveness: 0.75, Counters: []string{"social"}},
				{ID: 5, Name: "Traffic Scrubbing", Category: "mitigation", Cost: 25, Boost: 15, Effectiveness: 0.8, Counters: []string{"volumetric"}},
			},
		},
	}
}

// LoadConfig reads a YAML balance file over the defaults. Fields absent
// from the file keep their default values; catalogs replace wholesale.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.MaxSecurity <= c.MinSecurity {
		return fmt.Errorf("max_security %.1f must exceed min_security %.1f", c.MaxSecurity, c.MinSecurity)
	}
	if c.InitialSecurity < c.MinSecurity || c.InitialSecurity > c.MaxSecurity {
		return fmt.Errorf("initial_security %.1f outside [%.1f, %.1f]", c.InitialSecurity, c.MinSecurity, c.MaxSecurity)
	}
	if c.SearchDepth <= 0 {
		return fmt.Errorf("search_depth must be positive, got %d", c.SearchDepth)
	}
	return nil
}
