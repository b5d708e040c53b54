package genetic

import (
	"slices"
	"sort"

	"github.com/samber/lo"
)

// HallOfFame keeps copies of the best individuals ever seen, sorted by ascending fitness.
// Archived individuals are never handed out directly, so no operator can alter them
type HallOfFame struct {
	size  int
	items []*Chromosome
}

func NewHallOfFame(size int) *HallOfFame {
	return &HallOfFame{
		size:  size,
		items: make([]*Chromosome, 0, size),
	}
}

func (hallOfFame *HallOfFame) Update(population []*Chromosome) {
	for _, individual := range population {
		fitness := individual.mustFitness()

		full := len(hallOfFame.items) >= hallOfFame.size
		if full && fitness >= hallOfFame.items[len(hallOfFame.items)-1].mustFitness() {
			continue
		}
		// Identical bit vectors are archived once
		if slices.ContainsFunc(hallOfFame.items, individual.Equal) {
			continue
		}
		if full {
			hallOfFame.items = hallOfFame.items[:len(hallOfFame.items)-1]
		}

		// New individuals go ahead of archived ones with the same fitness
		position := sort.Search(len(hallOfFame.items), func(i int) bool {
			return hallOfFame.items[i].mustFitness() >= fitness
		})
		hallOfFame.items = slices.Insert(hallOfFame.items, position, individual.Clone())
	}
}

// Returns copies of the archived individuals, best first
func (hallOfFame *HallOfFame) Items() []*Chromosome {
	return lo.Map(hallOfFame.items, func(item *Chromosome, _ int) *Chromosome { return item.Clone() })
}

func (hallOfFame *HallOfFame) Len() int {
	return len(hallOfFame.items)
}

// Returns a copy of the best individual ever seen, or nil if nothing was archived yet
func (hallOfFame *HallOfFame) Best() *Chromosome {
	if len(hallOfFame.items) == 0 {
		return nil
	}
	return hallOfFame.items[0].Clone()
}
