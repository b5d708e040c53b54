package genetic

import (
	"github.com/samber/lo"
)

// Record summarizes one generation
type Record struct {
	Generation  int     `json:"gen"`
	Evaluations int     `json:"nevals"`
	Min         float64 `json:"min"`
	Mean        float64 `json:"mean"`
	Best        float64 `json:"best"` // Best fitness ever seen, taken from the hall of fame
}

type Logbook []Record

func (logbook Logbook) Min() []float64 {
	return lo.Map(logbook, func(record Record, _ int) float64 { return record.Min })
}

func (logbook Logbook) Mean() []float64 {
	return lo.Map(logbook, func(record Record, _ int) float64 { return record.Mean })
}

func (logbook Logbook) Best() []float64 {
	return lo.Map(logbook, func(record Record, _ int) float64 { return record.Best })
}

func compile(generation, evaluations int, population []*Chromosome, hallOfFame *HallOfFame) Record {
	fitnesses := lo.Map(population, func(chromosome *Chromosome, _ int) float64 { return chromosome.mustFitness() })
	return Record{
		Generation:  generation,
		Evaluations: evaluations,
		Min:         lo.Min(fitnesses),
		Mean:        lo.Sum(fitnesses) / float64(len(fitnesses)),
		Best:        hallOfFame.items[0].mustFitness(),
	}
}
