package workers

import "context"

// Job wraps one unit of work: an execution function closed over its own
// input, reported back through Result. A worker pool of Job[A, R] never
// shares mutable state across goroutines — each job owns its Args and
// produces its own Result.
type Job[A any, R any] struct {
	Description JobDescriptor
	ExecFn      ExecutionFn[A, R]
	Args        A
}

type ExecutionFn[A any, R any] func(ctx context.Context, args A) (R, error)

type JobID string
type jobType string
type jobMetadata map[string]any

type JobDescriptor struct {
	ID       JobID
	JobType  jobType
	Metadata jobMetadata
}

type Result[R any] struct {
	Value       R
	Err         error
	Description JobDescriptor
}

func (j Job[A, R]) execute(ctx context.Context) Result[R] {
	value, err := j.ExecFn(ctx, j.Args)
	if err != nil {
		return Result[R]{
			Err:         err,
			Description: j.Description,
		}
	}

	return Result[R]{
		Value:       value,
		Description: j.Description,
	}
}
