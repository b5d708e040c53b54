package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/limaJavier/schedalgen/internal/config"
	"github.com/limaJavier/schedalgen/pkg/genetic"
	"github.com/limaJavier/schedalgen/pkg/model"
	"github.com/limaJavier/schedalgen/pkg/report"
	"go.uber.org/zap"
)

func main() {
	// Define arguments
	problemPathPtr := flag.String("problem", "", "Path to the problem file")
	outFilePathPtr := flag.String("out", "schedule.json", "Path to the file where the best timetable will be written")
	plotPathPtr := flag.String("plot", "stats.png", "Path to the convergence plot; if empty, no plot is drawn")
	timeoutPtr := flag.Duration("timeout", 0, "Time budget for the search, where 0 means no limit")
	evaluatePtr := flag.Bool("evaluate", false, "Evaluate a single random timetable instead of searching")
	flag.Parse()

	// Validate arguments
	if *problemPathPtr == "" {
		log.Fatal("a problem file must be specified")
	} else if *timeoutPtr < 0 {
		log.Fatalf("timeout cannot be negative: %v", *timeoutPtr)
	}

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

	if *evaluatePtr {
		evaluateRandom(problem, evaluator, cfg.Search.Seed)
		return
	}

	logger := newLogger(cfg)
	defer logger.Sync()

	ctx := context.Background()
	if *timeoutPtr > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeoutPtr)
		defer cancel()
	}

	searchCfg := cfg.Genetic(int(problem.Len()))
	search, err := genetic.New(searchCfg, genetic.DefaultOperators(searchCfg), fitness(evaluator), logger)
	if err != nil {
		log.Fatalf("cannot configure search: %v", err)
	}

	result, err := search.Run(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		logger.Warn("time budget exhausted", zap.Int("generations", len(result.Logbook)-1))
	} else if err != nil {
		log.Fatalf("an error occurred during the search: %v", err)
	}

	if err := report.WriteLogbook(os.Stdout, result.Logbook); err != nil {
		log.Fatalf("cannot write logbook: %v", err)
	}

	best := result.Best()
	timetable, err := problem.Decode(best.Bits)
	if err != nil {
		log.Fatalf("cannot decode best individual: %v", err)
	}
	_, violations := evaluator.Evaluate(timetable)

	if err := report.SaveTimetable(*outFilePathPtr, problem, timetable); err != nil {
		log.Fatalf("an error occurred while writing to the output file: %v", err)
	}
	if *plotPathPtr != "" {
		if err := report.PlotConvergence(result.Logbook, *plotPathPtr); err != nil {
			log.Fatalf("cannot draw convergence plot: %v", err)
		}
	}

	fitnessValue, _ := best.Fitness()
	fmt.Println("Solution report")
	fmt.Println()
	fmt.Printf("Run: %v\n", result.RunID)
	fmt.Printf("Best fitness value: %v\n", fitnessValue)
	fmt.Println("Best individual stats")
	fmt.Print(report.Violations(violations))
	fmt.Printf("Schedule output file name: %v\n", *outFilePathPtr)
}

// Fitness is the evaluator cost, minimized
func fitness(evaluator model.Evaluator) genetic.FitnessFunc {
	return func(bits []uint8) (float64, error) {
		cost, _, err := evaluator.EvaluateBits(bits)
		if err != nil {
			return 0, err
		}
		return float64(cost), nil
	}
}

func evaluateRandom(problem model.Problem, evaluator model.Evaluator, seed int64) {
	bits := problem.RandomBits(rand.New(rand.NewSource(seed)))

	start := time.Now()
	cost, violations, err := evaluator.EvaluateBits(bits)
	elapsed := time.Since(start)
	if err != nil {
		log.Fatalf("cannot evaluate random timetable: %v", err)
	}

	fmt.Println(cost)
	fmt.Print(report.Violations(violations))
	fmt.Printf("Execution took %v\n", elapsed)
}

func newLogger(cfg *config.Config) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.Development() {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("cannot build logger: %v", err)
	}
	return logger
}
