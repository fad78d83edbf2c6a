package config

import "github.com/caarlos0/env/v11"

// GameConfig carries phase timing knobs. Deadlines are advisory for clients;
// the engine never enforces them itself.
type GameConfig struct {
	NightMinutes   int `env:"NIGHT_MINUTES" envDefault:"2"`
	DayMinutes     int `env:"DAY_MINUTES" envDefault:"5"`
	VotingMinutes  int `env:"VOTING_MINUTES" envDefault:"2"`
	DayTurnSeconds int `env:"DAY_TURN_SECONDS" envDefault:"60"`
}

func LoadGame() (GameConfig, error) {
	var cfg GameConfig
	err := env.Parse(&cfg)
	return cfg, err
}
