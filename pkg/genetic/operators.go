package genetic

import (
	"math/rand"
)

// Selector picks k individuals from the population. Returned individuals may repeat and are not copies
type Selector interface {
	Select(rng *rand.Rand, population []*Chromosome, k int) []*Chromosome
}

// Crossover recombines two individuals in place
type Crossover interface {
	Mate(rng *rand.Rand, first, second *Chromosome)
}

// Mutator alters an individual in place
type Mutator interface {
	Mutate(rng *rand.Rand, chromosome *Chromosome)
}

type Operators struct {
	Selector  Selector
	Crossover Crossover
	Mutator   Mutator
}

// Tournament selection with replacement, flip-bit mutation with a per-bit probability of 1/length and two-point crossover
func DefaultOperators(cfg Config) Operators {
	return Operators{
		Selector:  Tournament{Size: cfg.TournamentSize},
		Crossover: TwoPoint{},
		Mutator:   FlipBit{Probability: 1 / float64(cfg.ChromosomeLength)},
	}
}

type Tournament struct {
	Size int
}

func (tournament Tournament) Select(rng *rand.Rand, population []*Chromosome, k int) []*Chromosome {
	chosen := make([]*Chromosome, 0, k)
	for range k {
		best := population[rng.Intn(len(population))]
		for i := 1; i < tournament.Size; i++ {
			aspirant := population[rng.Intn(len(population))]
			if aspirant.mustFitness() < best.mustFitness() {
				best = aspirant
			}
		}
		chosen = append(chosen, best)
	}
	return chosen
}

type TwoPoint struct{}

// Swaps the segment between two distinct cut points. Chromosomes shorter than two bits are left untouched
func (TwoPoint) Mate(rng *rand.Rand, first, second *Chromosome) {
	size := min(first.Len(), second.Len())
	if size < 2 {
		return
	}

	cut1 := rng.Intn(size) + 1
	cut2 := rng.Intn(size-1) + 1
	if cut2 >= cut1 {
		cut2++
	} else {
		cut1, cut2 = cut2, cut1
	}

	for i := cut1; i < cut2; i++ {
		first.Bits[i], second.Bits[i] = second.Bits[i], first.Bits[i]
	}
	first.Invalidate()
	second.Invalidate()
}

type FlipBit struct {
	Probability float64 // Independent probability of flipping each bit
}

func (flip FlipBit) Mutate(rng *rand.Rand, chromosome *Chromosome) {
	for i := range chromosome.Bits {
		if rng.Float64() < flip.Probability {
			chromosome.Bits[i] ^= 1
		}
	}
	chromosome.Invalidate()
}
