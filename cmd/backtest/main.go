// Command backtest runs the prediction system against a span of historical
// draws, one run per strategy, and prints per-strategy summaries with a
// histogram of daily best matches.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/fantasy5/config"
	"github.com/domino14/fantasy5/predictor"
	"github.com/domino14/fantasy5/ticketgen"
)

const dateLayout = "2006-01-02"

type strategyResult struct {
	strategy ticketgen.Strategy
	result   *predictor.RangeResult
}

func main() {
	fs := pflag.NewFlagSet("backtest", pflag.ExitOnError)
	dataPath := fs.String("data-path", "./data/CA5_date.csv", "path to the historical draw CSV")
	startStr := fs.String("start", "", "first date to test (YYYY-MM-DD)")
	endStr := fs.String("end", "", "last date to test (YYYY-MM-DD)")
	tickets := fs.Int("tickets", 20, "tickets per day")
	strategiesStr := fs.String("strategies", "", "comma-separated strategies; empty means all")
	matrixVariant := fs.String("matrix", "proximity", "contact matrix variant")
	captureLevel := fs.String("capture-level", "85", "position filter capture level")
	lookback := fs.Int("lookback", 1, "previous draws used for contact analysis")
	seed := fs.Int64("seed", 0, "random seed; 0 derives one per strategy")
	debug := fs.Bool("debug", false, "debug logging")
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if *startStr == "" || *endStr == "" {
		log.Fatal().Msg("--start and --end are required")
	}
	start, err := time.Parse(dateLayout, *startStr)
	if err != nil {
		log.Fatal().Err(err).Msg("bad --start date")
	}
	end, err := time.Parse(dateLayout, *endStr)
	if err != nil {
		log.Fatal().Err(err).Msg("bad --end date")
	}

	strategies := ticketgen.Strategies
	if *strategiesStr != "" {
		strategies = nil
		for _, s := range strings.Split(*strategiesStr, ",") {
			strategies = append(strategies, ticketgen.ParseStrategy(strings.TrimSpace(s)))
		}
	}

	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigDataPath, *dataPath)
	cfg.Set(config.ConfigMatrix, *matrixVariant)
	cfg.Set(config.ConfigCaptureLevel, *captureLevel)
	cfg.Set(config.ConfigLookback, *lookback)
	cfg.Set(config.ConfigSeed, *seed)

	// One predictor per strategy so the runs are independent.
	results := make([]strategyResult, len(strategies))
	g := errgroup.Group{}
	for i, strat := range strategies {
		i, strat := i, strat
		g.Go(func() error {
			p, err := predictor.NewFromConfig(cfg)
			if err != nil {
				return err
			}
			res, err := p.BacktestRange(start, end, *tickets, strat)
			if err != nil {
				return err
			}
			results[i] = strategyResult{strategy: strat, result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("backtest failed")
	}

	for _, sr := range results {
		printResult(sr)
	}
}

func printResult(sr strategyResult) {
	res := sr.result
	fmt.Printf("\n=== strategy: %s ===\n", sr.strategy)
	fmt.Printf("days tested:       %d\n", res.DaysTested)
	fmt.Printf("avg best match:    %.3f ± %.3f (stdev %.3f)\n",
		res.AvgBestMatch, res.ConfidenceBand, res.StdevBestMatch)
	fmt.Printf("chance baseline:   %.3f\n", res.ChanceBaseline)
	fmt.Printf("days with 5:       %d\n", res.DaysWith5)
	fmt.Printf("days with 4+:      %d\n", res.DaysWith4Plus)
	fmt.Printf("days with 3+:      %d\n", res.DaysWith3Plus)
	fmt.Printf("3+ tickets total:  %d\n", res.Total3PlusTickets)

	if len(res.Daily) == 0 {
		return
	}
	best := make([]float64, len(res.Daily))
	for i, d := range res.Daily {
		best[i] = float64(d.BestMatch)
	}
	fmt.Println("daily best match distribution:")
	hist := histogram.Hist(6, best)
	if err := histogram.Fprint(os.Stdout, hist, histogram.Linear(40)); err != nil {
		log.Error().Err(err).Msg("printing histogram")
	}
}
