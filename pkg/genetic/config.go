package genetic

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var ErrConfiguration = errors.New("invalid search configuration")

var validate = validator.New()

type Config struct {
	PopulationSize   int     `validate:"gt=1"`
	CrossoverProba   float64 `validate:"gte=0,lte=1"`
	MutationProba    float64 `validate:"gte=0,lte=1"`
	MaxGenerations   int     `validate:"gte=0"`
	HallOfFameSize   int     `validate:"gt=0,ltfield=PopulationSize"`
	TournamentSize   int     `validate:"gt=0,ltefield=PopulationSize"`
	ChromosomeLength int     `validate:"gt=0"`
	Seed             int64
	Workers          int `validate:"gte=0"` // Zero means one worker per CPU
}

func DefaultConfig() Config {
	return Config{
		PopulationSize: 300,
		CrossoverProba: 0.9,
		MutationProba:  0.5,
		MaxGenerations: 200,
		HallOfFameSize: 30,
		TournamentSize: 2,
		Seed:           52,
	}
}

func (cfg Config) Validate() error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return nil
}
