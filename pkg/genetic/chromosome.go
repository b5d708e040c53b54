package genetic

import (
	"math/rand"
	"slices"
	"strings"
)

// Chromosome is a fixed-length bit vector together with its cached fitness (lower is better)
type Chromosome struct {
	Bits    []uint8
	fitness float64
	valid   bool
}

func NewChromosome(bits []uint8) *Chromosome {
	return &Chromosome{Bits: bits}
}

func RandomChromosome(rng *rand.Rand, length int) *Chromosome {
	bits := make([]uint8, length)
	for i := range bits {
		bits[i] = uint8(rng.Intn(2))
	}
	return NewChromosome(bits)
}

// Returns the cached fitness and whether it is still valid
func (chromosome *Chromosome) Fitness() (float64, bool) {
	return chromosome.fitness, chromosome.valid
}

func (chromosome *Chromosome) SetFitness(fitness float64) {
	chromosome.fitness = fitness
	chromosome.valid = true
}

// Must be called whenever Bits change
func (chromosome *Chromosome) Invalidate() {
	chromosome.fitness = 0
	chromosome.valid = false
}

func (chromosome *Chromosome) Valid() bool {
	return chromosome.valid
}

func (chromosome *Chromosome) Len() int {
	return len(chromosome.Bits)
}

func (chromosome *Chromosome) Clone() *Chromosome {
	return &Chromosome{
		Bits:    slices.Clone(chromosome.Bits),
		fitness: chromosome.fitness,
		valid:   chromosome.valid,
	}
}

func (chromosome *Chromosome) Equal(other *Chromosome) bool {
	return slices.Equal(chromosome.Bits, other.Bits)
}

func (chromosome *Chromosome) String() string {
	var builder strings.Builder
	builder.Grow(len(chromosome.Bits))
	for _, bit := range chromosome.Bits {
		builder.WriteByte('0' + bit)
	}
	return builder.String()
}

// Panics if the fitness was never computed or was invalidated
func (chromosome *Chromosome) mustFitness() float64 {
	if !chromosome.valid {
		panic("chromosome fitness is not valid")
	}
	return chromosome.fitness
}
