package workers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"hkt-hw/internal/hkt"
	"hkt-hw/internal/lib/logger/sl"
	"hkt-hw/internal/utils/frequency"
	"hkt-hw/internal/utils/metrics"
)

// BuildJob is one independent hkt.Build invocation: its own corpus and
// parameters, never sharing state with any other job in the pool.
type BuildJob struct {
	RunID   string
	Sources map[int]hkt.Source
	Params  hkt.Params
}

// BuildPool fans a batch of independent corpora — e.g. one per
// category_id, or one per sliding time window — across a bounded
// WorkerPool, each job running one complete, single-threaded
// hkt.Build call. Nothing inside one Build call is parallelized; only
// distinct Build calls run concurrently, per spec.md §5.
type BuildPool struct {
	log     *slog.Logger
	pool    *WorkerPool[BuildJob, *hkt.Result]
	metrics *metrics.Metrics
	freq    *frequency.Frequency
	freqMu  sync.Mutex
}

func NewBuildPool(log *slog.Logger, numWorkers, queueSize int, sampleInterval time.Duration) *BuildPool {
	return &BuildPool{
		log:     log,
		pool:    New[BuildJob, *hkt.Result](numWorkers, queueSize),
		metrics: &metrics.Metrics{},
		freq:    &frequency.Frequency{Interval: sampleInterval, LastTime: time.Now()},
	}
}

// Submit enqueues one corpus for building. It blocks while the job queue
// (queueSize) is full, so more than queueSize jobs can only be submitted
// while Run is draining. CloseJobs must be called after the last Submit;
// Run returns only once the jobs channel is closed and drained.
func (bp *BuildPool) Submit(job BuildJob) {
	bp.pool.AddJob(Job[BuildJob, *hkt.Result]{
		Description: JobDescriptor{ID: JobID(job.RunID), JobType: "hkt.Build"},
		Args:        job,
		ExecFn:      bp.execute,
	})
}

func (bp *BuildPool) CloseJobs() {
	bp.pool.CloseJobs()
}

func (bp *BuildPool) execute(ctx context.Context, job BuildJob) (*hkt.Result, error) {
	start := time.Now()
	result, err := hkt.Build(job.Sources, job.Params)
	duration := time.Since(start)

	if err != nil {
		bp.metrics.RecordFailure(duration)
		return nil, err
	}

	bp.metrics.RecordSuccess(duration)
	bp.freqMu.Lock()
	bp.freq.Add(len(job.Sources))
	bp.freq.Check(bp.log)
	bp.freqMu.Unlock()
	return result, nil
}

// Run starts the underlying pool and drains results, keyed by run id.
// It blocks until every submitted job has completed, then logs final
// metrics.
func (bp *BuildPool) Run(ctx context.Context) map[string]*hkt.Result {
	go bp.pool.Run(ctx)

	results := make(map[string]*hkt.Result)
	for res := range bp.pool.Results {
		if res.Err != nil {
			bp.log.Error("Build job failed", "run_id", res.Description.ID, "error", sl.Err(res.Err))
			continue
		}
		results[string(res.Description.ID)] = res.Value
	}

	bp.metrics.PrintMetrics(bp.log)
	return results
}
