package genetic

import (
	"context"
	"errors"
	"math/rand"
	"slices"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/samber/lo"
)

// Number of set bits, so the optimum is the all-zero chromosome
func countOnes(bits []uint8) (float64, error) {
	return float64(lo.Sum(bits)), nil
}

func testConfig() Config {
	return Config{
		PopulationSize:   40,
		CrossoverProba:   0.9,
		MutationProba:    0.3,
		MaxGenerations:   30,
		HallOfFameSize:   4,
		TournamentSize:   3,
		ChromosomeLength: 64,
		Seed:             42,
		Workers:          4,
	}
}

// Records a copy of every population handed to selection
type recordingSelector struct {
	inner       Selector
	populations [][]*Chromosome
}

func (selector *recordingSelector) Select(rng *rand.Rand, population []*Chromosome, k int) []*Chromosome {
	selector.populations = append(selector.populations, lo.Map(population, func(chromosome *Chromosome, _ int) *Chromosome {
		return chromosome.Clone()
	}))
	return selector.inner.Select(rng, population, k)
}

func run(g *WithT, cfg Config, operators Operators) Result {
	search, err := New(cfg, operators, countOnes, nil)
	g.Expect(err).NotTo(HaveOccurred())
	result, err := search.Run(context.Background())
	g.Expect(err).NotTo(HaveOccurred())
	return result
}

func TestSearchIsReproducible(t *testing.T) {
	g := NewWithT(t)
	cfg := testConfig()

	first := run(g, cfg, DefaultOperators(cfg))
	second := run(g, cfg, DefaultOperators(cfg))

	g.Expect(second.Logbook).To(Equal(first.Logbook))
	g.Expect(second.HallOfFame).To(Equal(first.HallOfFame))
	g.Expect(second.Population).To(Equal(first.Population))

	t.Run("Independent of the number of workers", func(t *testing.T) {
		g := NewWithT(t)
		cfg.Workers = 1
		sequential := run(g, cfg, DefaultOperators(cfg))
		g.Expect(sequential.Logbook).To(Equal(first.Logbook))
		g.Expect(sequential.HallOfFame).To(Equal(first.HallOfFame))
	})

	t.Run("Depends on the seed", func(t *testing.T) {
		g := NewWithT(t)
		cfg.Seed = 7
		other := run(g, cfg, DefaultOperators(cfg))
		g.Expect(other.Logbook).NotTo(Equal(first.Logbook))
	})
}

func TestSearchInvariants(t *testing.T) {
	g := NewWithT(t)
	cfg := testConfig()
	operators := DefaultOperators(cfg)
	selector := &recordingSelector{inner: operators.Selector}
	operators.Selector = selector

	result := run(g, cfg, operators)
	populations := append(selector.populations, result.Population)

	t.Run("Logbook", func(t *testing.T) {
		g := NewWithT(t)
		g.Expect(result.Logbook).To(HaveLen(cfg.MaxGenerations + 1))
		g.Expect(result.Logbook[0].Evaluations).To(Equal(cfg.PopulationSize))
		for i, record := range result.Logbook {
			g.Expect(record.Generation).To(Equal(i))
			g.Expect(record.Min).To(BeNumerically("<=", record.Mean))
			g.Expect(record.Best).To(Equal(record.Min))
			if i > 0 {
				g.Expect(record.Evaluations).To(BeNumerically("<=", cfg.PopulationSize-cfg.HallOfFameSize), "generation %v", i)
				g.Expect(record.Best).To(BeNumerically("<=", result.Logbook[i-1].Best))
			}
		}
	})

	t.Run("Population size is constant", func(t *testing.T) {
		g := NewWithT(t)
		g.Expect(populations).To(HaveLen(cfg.MaxGenerations + 1))
		for _, population := range populations {
			g.Expect(population).To(HaveLen(cfg.PopulationSize))
		}
	})

	t.Run("Elites survive unchanged", func(t *testing.T) {
		g := NewWithT(t)
		for i := 0; i+1 < len(populations); i++ {
			best := slices.MinFunc(populations[i], func(a, b *Chromosome) int {
				return int(a.mustFitness() - b.mustFitness())
			})
			next := populations[i+1]
			elites := next[len(next)-cfg.HallOfFameSize:]

			survived := slices.ContainsFunc(elites, best.Equal)
			superseded := lo.EveryBy(elites, func(elite *Chromosome) bool {
				return elite.mustFitness() <= best.mustFitness()
			})
			g.Expect(survived || superseded).To(BeTrue(), "generation %v", i)
		}
	})

	t.Run("Hall of fame is sorted and holds the best", func(t *testing.T) {
		g := NewWithT(t)
		g.Expect(result.HallOfFame).To(HaveLen(cfg.HallOfFameSize))
		g.Expect(slices.IsSortedFunc(result.HallOfFame, func(a, b *Chromosome) int {
			return int(a.mustFitness() - b.mustFitness())
		})).To(BeTrue())
		g.Expect(result.Best().mustFitness()).To(Equal(result.Logbook[len(result.Logbook)-1].Best))
	})

	t.Run("Search improves on random chromosomes", func(t *testing.T) {
		g := NewWithT(t)
		g.Expect(result.Logbook[len(result.Logbook)-1].Best).To(BeNumerically("<", result.Logbook[0].Min))
	})
}

func TestSearchWithoutGenerations(t *testing.T) {
	g := NewWithT(t)
	cfg := testConfig()
	cfg.MaxGenerations = 0

	result := run(g, cfg, DefaultOperators(cfg))

	g.Expect(result.Logbook).To(HaveLen(1))
	g.Expect(result.Population).To(HaveLen(cfg.PopulationSize))
}

func TestSearchConfigurationErrors(t *testing.T) {
	scenarios := map[string]func(cfg *Config){
		"Tournament larger than population": func(cfg *Config) { cfg.TournamentSize = cfg.PopulationSize + 1 },
		"Hall of fame fills population":     func(cfg *Config) { cfg.HallOfFameSize = cfg.PopulationSize },
		"Empty chromosome":                  func(cfg *Config) { cfg.ChromosomeLength = 0 },
		"Crossover probability above one":   func(cfg *Config) { cfg.CrossoverProba = 1.5 },
		"Negative mutation probability":     func(cfg *Config) { cfg.MutationProba = -0.1 },
		"Single individual":                 func(cfg *Config) { cfg.PopulationSize = 1 },
		"Negative generations":              func(cfg *Config) { cfg.MaxGenerations = -1 },
	}

	for name, corrupt := range scenarios {
		t.Run(name, func(t *testing.T) {
			g := NewWithT(t)
			cfg := testConfig()
			corrupt(&cfg)
			_, err := New(cfg, DefaultOperators(cfg), countOnes, nil)
			g.Expect(err).To(MatchError(ErrConfiguration))
		})
	}

	t.Run("Missing operators", func(t *testing.T) {
		g := NewWithT(t)
		cfg := testConfig()
		_, err := New(cfg, Operators{Selector: Tournament{Size: 2}}, countOnes, nil)
		g.Expect(err).To(MatchError(ErrConfiguration))
	})

	t.Run("Missing fitness", func(t *testing.T) {
		g := NewWithT(t)
		cfg := testConfig()
		_, err := New(cfg, DefaultOperators(cfg), nil, nil)
		g.Expect(err).To(MatchError(ErrConfiguration))
	})
}

func TestSearchPropagatesFitnessErrors(t *testing.T) {
	g := NewWithT(t)
	cfg := testConfig()
	failure := errors.New("malformed chromosome")

	search, err := New(cfg, DefaultOperators(cfg), func(bits []uint8) (float64, error) {
		return 0, failure
	}, nil)
	g.Expect(err).NotTo(HaveOccurred())

	_, err = search.Run(context.Background())
	g.Expect(err).To(MatchError(failure))
}

func TestSearchStopsWhenContextIsDone(t *testing.T) {
	g := NewWithT(t)
	cfg := testConfig()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	search, err := New(cfg, DefaultOperators(cfg), countOnes, nil)
	g.Expect(err).NotTo(HaveOccurred())

	result, err := search.Run(ctx)
	g.Expect(err).To(MatchError(context.Canceled))
	g.Expect(result.Logbook).To(HaveLen(1))
	g.Expect(result.HallOfFame).To(HaveLen(cfg.HallOfFameSize))
}
