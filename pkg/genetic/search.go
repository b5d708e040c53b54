package genetic

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// FitnessFunc scores a bit vector, lower is better. It is called concurrently and must not mutate bits
type FitnessFunc func(bits []uint8) (float64, error)

// Search is a generational genetic algorithm whose hall of fame is reinjected unchanged into every generation
type Search struct {
	cfg       Config
	operators Operators
	fitness   FitnessFunc
	logger    *zap.Logger
}

type Result struct {
	RunID      string
	HallOfFame []*Chromosome // Best first
	Population []*Chromosome // Last generation
	Logbook    Logbook
}

// Best individual ever found
func (result Result) Best() *Chromosome {
	return result.HallOfFame[0]
}

func New(cfg Config, operators Operators, fitness FitnessFunc, logger *zap.Logger) (*Search, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	} else if operators.Selector == nil || operators.Crossover == nil || operators.Mutator == nil {
		return nil, fmt.Errorf("%w: selector, crossover and mutator must all be set", ErrConfiguration)
	} else if fitness == nil {
		return nil, fmt.Errorf("%w: fitness function must be set", ErrConfiguration)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Search{
		cfg:       cfg,
		operators: operators,
		fitness:   fitness,
		logger:    logger,
	}, nil
}

// Runs MaxGenerations generations. Every run starts from the configured seed, so runs are reproducible.
// The context is checked between generations only
func (search *Search) Run(ctx context.Context) (Result, error) {
	rng := rand.New(rand.NewSource(search.cfg.Seed))
	runID := uuid.NewString()
	logger := search.logger.With(zap.String("run", runID))

	logger.Info("starting genetic search",
		zap.Int("population", search.cfg.PopulationSize),
		zap.Int("generations", search.cfg.MaxGenerations),
		zap.Int("chromosomeLength", search.cfg.ChromosomeLength),
		zap.Int64("seed", search.cfg.Seed),
	)

	//** Initialize population
	population := make([]*Chromosome, search.cfg.PopulationSize)
	for i := range population {
		population[i] = RandomChromosome(rng, search.cfg.ChromosomeLength)
	}

	evaluations, err := search.evaluate(ctx, population)
	if err != nil {
		return Result{}, err
	}

	hallOfFame := NewHallOfFame(search.cfg.HallOfFameSize)
	hallOfFame.Update(population)
	logbook := Logbook{compile(0, evaluations, population, hallOfFame)}
	logRecord(logger, logbook[0])

	//** Generational process
	for generation := 1; generation <= search.cfg.MaxGenerations; generation++ {
		if err := ctx.Err(); err != nil {
			return search.result(runID, hallOfFame, population, logbook), err
		}

		offspring := search.operators.Selector.Select(rng, population, len(population)-hallOfFame.Len())
		offspring = search.vary(rng, offspring)

		evaluations, err := search.evaluate(ctx, offspring)
		if err != nil {
			return search.result(runID, hallOfFame, population, logbook), err
		}

		offspring = append(offspring, hallOfFame.Items()...) // Elites go back untouched
		hallOfFame.Update(offspring)
		population = offspring

		record := compile(generation, evaluations, population, hallOfFame)
		logbook = append(logbook, record)
		logRecord(logger, record)
	}

	logger.Info("genetic search finished", zap.Float64("best", logbook[len(logbook)-1].Best))
	return search.result(runID, hallOfFame, population, logbook), nil
}

// Clones the selected individuals, then crosses successive pairs and mutates
func (search *Search) vary(rng *rand.Rand, selected []*Chromosome) []*Chromosome {
	offspring := lo.Map(selected, func(chromosome *Chromosome, _ int) *Chromosome { return chromosome.Clone() })

	for i := 1; i < len(offspring); i += 2 {
		if rng.Float64() < search.cfg.CrossoverProba {
			search.operators.Crossover.Mate(rng, offspring[i-1], offspring[i])
		}
	}
	for _, chromosome := range offspring {
		if rng.Float64() < search.cfg.MutationProba {
			search.operators.Mutator.Mutate(rng, chromosome)
		}
	}

	return offspring
}

// Evaluates, in parallel, every chromosome lacking a valid fitness. Returns the number of evaluations
func (search *Search) evaluate(ctx context.Context, population []*Chromosome) (int, error) {
	invalid := lo.Filter(population, func(chromosome *Chromosome, _ int) bool { return !chromosome.Valid() })
	fitnesses := make([]float64, len(invalid))

	workers := search.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	p := pool.New().WithErrors().WithContext(ctx).WithMaxGoroutines(workers)
	for i, chromosome := range invalid {
		p.Go(func(_ context.Context) error {
			fitness, err := search.fitness(chromosome.Bits)
			if err != nil {
				return fmt.Errorf("cannot evaluate chromosome %d: %w", i, err)
			}
			fitnesses[i] = fitness
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return 0, err
	}

	// Fitness is assigned once all evaluations are collected
	for i, chromosome := range invalid {
		chromosome.SetFitness(fitnesses[i])
	}
	return len(invalid), nil
}

func (search *Search) result(runID string, hallOfFame *HallOfFame, population []*Chromosome, logbook Logbook) Result {
	return Result{
		RunID:      runID,
		HallOfFame: hallOfFame.Items(),
		Population: population,
		Logbook:    logbook,
	}
}

func logRecord(logger *zap.Logger, record Record) {
	logger.Debug("generation",
		zap.Int("gen", record.Generation),
		zap.Int("nevals", record.Evaluations),
		zap.Float64("min", record.Min),
		zap.Float64("mean", record.Mean),
		zap.Float64("best", record.Best),
	)
}
