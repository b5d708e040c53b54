package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/limaJavier/schedalgen/internal/config"
	"github.com/limaJavier/schedalgen/pkg/genetic"
	"github.com/limaJavier/schedalgen/pkg/model"
	"github.com/samber/lo"
)

type BenchmarkResult struct {
	Problem        string
	Seed           int64
	PopulationSize int
	Generations    int
	Duration       int64 // Milliseconds
	Evaluations    int
	BestFitness    float64
	Violations     model.Violations
}

func main() {
	problemPathPtr := flag.String("problem", "", "Path to the problem file")
	seedsPtr := flag.String("seeds", "1,2,3,4,5", "Comma separated seeds")
	populationsPtr := flag.String("populations", "100,300", "Comma separated population sizes")
	outFilePathPtr := flag.String("out", "benchmark_results.csv", "Path to the CSV file")
	flag.Parse()

	if *problemPathPtr == "" {
		log.Fatal("a problem file must be specified")
	}

	seeds := lo.Map(parseList(*seedsPtr), func(seed int, _ int) int64 { return int64(seed) })
	populations := parseList(*populationsPtr)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("cannot load configuration: %v", err)
	}
	problem, err := model.ProblemFromJson(*problemPathPtr)
	if err != nil {
		log.Fatalf("cannot parse problem file: %v", err)
	}
	evaluator, err := model.NewEvaluator(problem, cfg.Penalties())
	if err != nil {
		log.Fatalf("cannot build evaluator: %v", err)
	}

	results := make([]BenchmarkResult, 0, len(seeds)*len(populations))
	for _, populationSize := range populations {
		for _, seed := range seeds {
			fmt.Printf("Benchmarking problem \"%v\" with population \"%v\" and seed \"%v\"\n", *problemPathPtr, populationSize, seed)

			searchCfg := cfg.Genetic(int(problem.Len()))
			searchCfg.PopulationSize = populationSize
			searchCfg.Seed = seed
			searchCfg.HallOfFameSize = min(searchCfg.HallOfFameSize, populationSize-1)

			result := measure(searchCfg, evaluator)
			result.Problem = *problemPathPtr
			results = append(results, result)
		}
	}

	toCsv(*outFilePathPtr, results)
}

func measure(searchCfg genetic.Config, evaluator model.Evaluator) BenchmarkResult {
	fitness := func(bits []uint8) (float64, error) {
		cost, _, err := evaluator.EvaluateBits(bits)
		return float64(cost), err
	}

	search, err := genetic.New(searchCfg, genetic.DefaultOperators(searchCfg), fitness, nil)
	if err != nil {
		log.Fatalf("cannot configure search with population \"%v\": %v", searchCfg.PopulationSize, err)
	}

	start := time.Now()
	result, err := search.Run(context.Background())
	duration := time.Since(start).Milliseconds()
	if err != nil {
		log.Fatalf("an error occurred during the search with seed \"%v\": %v", searchCfg.Seed, err)
	}

	_, violations, err := evaluator.EvaluateBits(result.Best().Bits)
	if err != nil {
		log.Fatalf("cannot evaluate best individual: %v", err)
	}

	bestFitness, _ := result.Best().Fitness()
	return BenchmarkResult{
		Seed:           searchCfg.Seed,
		PopulationSize: searchCfg.PopulationSize,
		Generations:    len(result.Logbook) - 1,
		Duration:       duration,
		Evaluations:    lo.SumBy(result.Logbook, func(record genetic.Record) int { return record.Evaluations }),
		BestFitness:    bestFitness,
		Violations:     violations,
	}
}

func toCsv(path string, results []BenchmarkResult) {
	file, err := os.Create(path)
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(header()); err != nil {
		log.Panicf("cannot write CSV header: %v", err)
	}
	for _, result := range results {
		if err := writer.Write(toRecord(result)); err != nil {
			log.Panicf("cannot write CSV record: %v", err)
		}
	}
}

func header() []string {
	return []string{"Problem", "Seed", "Population", "Generations", "Duration(ms)", "Evaluations", "Best Fitness", "Hard Violations", "Soft Violations"}
}

func toRecord(result BenchmarkResult) []string {
	return []string{
		result.Problem,
		fmt.Sprintf("%d", result.Seed),
		fmt.Sprintf("%d", result.PopulationSize),
		fmt.Sprintf("%d", result.Generations),
		fmt.Sprintf("%d", result.Duration),
		fmt.Sprintf("%d", result.Evaluations),
		fmt.Sprintf("%.1f", result.BestFitness),
		fmt.Sprintf("%d", result.Violations.Hard()),
		fmt.Sprintf("%d", result.Violations.Soft()),
	}
}

func parseList(list string) []int {
	return lo.Map(strings.Split(list, ","), func(item string, _ int) int {
		value, err := strconv.Atoi(strings.TrimSpace(item))
		if err != nil {
			log.Fatalf("unexpected list item: %v", item)
		}
		return value
	})
}
