package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
	"github.com/limaJavier/schedalgen/pkg/genetic"
	"github.com/limaJavier/schedalgen/pkg/model"
)

// Every variable is read with this prefix, e.g. SCHEDALGEN_SEARCH_SEED
const Prefix = "SCHEDALGEN_"

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"production"`
	Search      struct {
		PopulationSize int     `env:"POPULATION_SIZE" envDefault:"300"`
		CrossoverProba float64 `env:"CROSSOVER_PROBA" envDefault:"0.9"`
		MutationProba  float64 `env:"MUTATION_PROBA" envDefault:"0.5"`
		MaxGenerations int     `env:"MAX_GENERATIONS" envDefault:"200"`
		HallOfFameSize int     `env:"HALL_OF_FAME_SIZE" envDefault:"30"`
		TournamentSize int     `env:"TOURNAMENT_SIZE" envDefault:"2"`
		Seed           int64   `env:"SEED" envDefault:"52"`
		Workers        int     `env:"WORKERS" envDefault:"0"`
	} `envPrefix:"SEARCH_"`
	Penalty struct {
		Hard uint64 `env:"HARD" envDefault:"10"`
		Soft uint64 `env:"SOFT" envDefault:"5"`
	} `envPrefix:"PENALTY_"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: Prefix}); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// Only the first error keeps the log readable
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) Development() bool {
	return cfg.Environment == "development"
}

// Search parameters for chromosomes of the given length
func (cfg *Config) Genetic(chromosomeLength int) genetic.Config {
	return genetic.Config{
		PopulationSize:   cfg.Search.PopulationSize,
		CrossoverProba:   cfg.Search.CrossoverProba,
		MutationProba:    cfg.Search.MutationProba,
		MaxGenerations:   cfg.Search.MaxGenerations,
		HallOfFameSize:   cfg.Search.HallOfFameSize,
		TournamentSize:   cfg.Search.TournamentSize,
		ChromosomeLength: chromosomeLength,
		Seed:             cfg.Search.Seed,
		Workers:          cfg.Search.Workers,
	}
}

func (cfg *Config) Penalties() model.Penalties {
	return model.Penalties{
		Hard: cfg.Penalty.Hard,
		Soft: cfg.Penalty.Soft,
	}
}
