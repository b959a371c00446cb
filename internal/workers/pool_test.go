package workers

import (
	"context"
	"testing"
)

func TestWorkerPoolRunsAllJobs(t *testing.T) {
	pool := New[int, int](3, 10)

	// More jobs than the queue holds: the workers must already be draining
	// while jobs are added, since AddJob blocks on a full queue.
	go pool.Run(context.Background())

	const n = 20
	for i := 0; i < n; i++ {
		pool.AddJob(Job[int, int]{
			Description: JobDescriptor{ID: JobID("job")},
			Args:        i,
			ExecFn: func(ctx context.Context, args int) (int, error) {
				return args * 2, nil
			},
		})
	}
	pool.CloseJobs()

	sum := 0
	count := 0
	for res := range pool.Results {
		if res.Err != nil {
			t.Fatalf("unexpected job error: %v", res.Err)
		}
		sum += res.Value
		count++
	}

	if count != n {
		t.Fatalf("processed %d jobs, want %d", count, n)
	}
	want := 0
	for i := 0; i < n; i++ {
		want += i * 2
	}
	if sum != want {
		t.Fatalf("sum = %d, want %d", sum, want)
	}
}

func TestWorkerPoolPropagatesJobError(t *testing.T) {
	pool := New[int, int](1, 1)

	failErr := errTest("boom")
	pool.AddJob(Job[int, int]{
		ExecFn: func(ctx context.Context, args int) (int, error) {
			return 0, failErr
		},
	})
	pool.CloseJobs()

	go pool.Run(context.Background())

	res := <-pool.Results
	if res.Err != failErr {
		t.Fatalf("res.Err = %v, want %v", res.Err, failErr)
	}
}

type errTest string

func (e errTest) Error() string { return string(e) }
