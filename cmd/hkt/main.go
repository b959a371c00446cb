package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"hkt-hw/config"
	"hkt-hw/internal/app"
	"hkt-hw/internal/hkt"
	"hkt-hw/internal/lib/logger/sl"
	"hkt-hw/internal/services/explorer"
	"hkt-hw/internal/services/ingest"
	"hkt-hw/internal/utils"
	"hkt-hw/internal/workers"
)

// buildPoolQueueSize bounds how many submitted corpora may sit waiting
// for a free worker before Submit blocks.
const buildPoolQueueSize = 64

// freqSampleInterval controls how often BuildPool logs a
// sources-processed-per-second sample.
const freqSampleInterval = 5 * time.Second

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	ctx := context.Background()

	log := setupLogger(cfg.Env)

	log.Info("hkt", "env", cfg.Env)

	application := app.New(log, cfg)

	log.Info("Database initialised")

	fmt.Println("Starting hkt build")

	loader := ingest.NewLoader(log, cfg.CorpusPath)

	start := time.Now()
	corpora, err := loader.LoadCorpora()
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d corpora in %v\n", len(corpora), utils.FormatDuration(time.Since(start)))

	// Distinct corpora have no shared state, so they are fanned through
	// a bounded worker pool; hkt.Build itself stays single-threaded per
	// call. A single corpus still exercises the pool with one job.
	// Jobs are submitted from their own goroutine so that Submit can block
	// on a full queue while the workers started by Run drain it.
	pool := workers.NewBuildPool(log, cfg.WorkerPoolSize, buildPoolQueueSize, freqSampleInterval)
	go func() {
		for runID, sources := range corpora {
			pool.Submit(workers.BuildJob{RunID: runID, Sources: sources, Params: application.Params})
		}
		pool.CloseJobs()
	}()

	var results map[string]*hkt.Result
	start = time.Now()
	heapStats := utils.MeasureMemory(func() {
		results = pool.Run(ctx)
	})
	fmt.Printf("Built %d forests in %v (heap delta %d bytes)\n",
		len(results), utils.FormatDuration(time.Since(start)), heapStats.HeapAlloc)

	runIDs := make([]string, 0, len(results))
	for runID, result := range results {
		if err := application.StorageApp.Storage().SaveForest(ctx, runID, result); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		fmt.Printf("Saved forest under run id %q (%d HKTs, %d nodes)\n",
			runID, result.Stats.NumberOfHKTs, result.Stats.NumberOfNodes)
		runIDs = append(runIDs, runID)
	}
	sort.Strings(runIDs)

	if len(runIDs) == 0 {
		fmt.Println("No forest was built successfully, nothing to explore")
	} else if cfg.Explore {
		exploreForest(log, results[runIDs[0]])
	} else {
		// Graceful shutdown
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
		<-stop
	}

	if err := application.StorageApp.Stop(); err != nil {
		log.Error("Failed to close database", "error", sl.Err(err))
	}

	log.Info("Gracefully stopped")
}

// exploreForest launches the interactive forest browser over the given
// result and blocks until the user quits it.
func exploreForest(log *slog.Logger, result *hkt.Result) {
	ex, err := explorer.New(log, result)
	if err != nil {
		log.Error("Failed to start explorer", "error", sl.Err(err))
		return
	}
	if err := ex.Start(); err != nil {
		log.Error("Explorer exited with error", "error", sl.Err(err))
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}
