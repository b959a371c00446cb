package leveldb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/syndtr/goleveldb/leveldb"

	"hkt-hw/internal/hkt"
	"hkt-hw/internal/lib/logger/sl"
	"hkt-hw/internal/services/serialize"
)

// Storage persists completed hkt.Result forests keyed by a run id.
// Writes go through a batched write-behind worker, the same
// bufferSize/flushTimeout/writeChan design the teacher uses for
// document storage.
type Storage struct {
	log       *slog.Logger
	db        *leveldb.DB
	writeChan chan forestWrite
	wg        sync.WaitGroup
}

type forestWrite struct {
	runID  string
	result *hkt.Result
}

var ErrNotFound = errors.New("forest not found")

const (
	bufferSize   = 1000
	flushTimeout = 2 * time.Second
)

func NewStorage(log *slog.Logger, path string) (*Storage, error) {
	const op = "storage.leveldb.New"

	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	storage := &Storage{
		log:       log,
		db:        db,
		writeChan: make(chan forestWrite, bufferSize*2),
	}

	storage.wg.Add(1)
	go storage.writeWorker()

	return storage, nil
}

func (s *Storage) writeWorker() {
	defer s.wg.Done()

	batch := new(leveldb.Batch)
	ticker := time.NewTicker(flushTimeout)
	defer ticker.Stop()

	flush := func() {
		if batch.Len() == 0 {
			return
		}
		if err := s.db.Write(batch, nil); err != nil {
			s.log.Error("Failed to write batch", "error", sl.Err(err))
		}
		batch = new(leveldb.Batch)
	}

	for {
		select {
		case fw, ok := <-s.writeChan:
			if !ok {
				flush()
				return
			}

			data, err := serialize.Forest(fw.result)
			if err != nil {
				s.log.Error("Failed to serialize forest", "run_id", fw.runID, "error", sl.Err(err))
				continue
			}
			batch.Put([]byte("forest:"+fw.runID), data)

			if batch.Len() >= bufferSize {
				flush()
			}

		case <-ticker.C:
			flush()
		}
	}
}

func (s *Storage) GetDatabaseStats(ctx context.Context) (string, error) {
	stats, err := s.db.GetProperty("leveldb.stats")
	if err != nil {
		return "", err
	}

	return stats, nil
}

// SaveForest synchronously marshals and writes one forest under runID,
// bypassing the batching worker for callers that need the write
// acknowledged immediately.
func (s *Storage) SaveForest(ctx context.Context, runID string, result *hkt.Result) error {
	data, err := serialize.Forest(result)
	if err != nil {
		return fmt.Errorf("storage.leveldb.SaveForest: %w", err)
	}

	batch := new(leveldb.Batch)
	batch.Put([]byte("forest:"+runID), data)
	return s.db.Write(batch, nil)
}

// BatchForest enqueues a forest for asynchronous, batched persistence.
func (s *Storage) BatchForest(ctx context.Context, runID string, result *hkt.Result) error {
	select {
	case s.writeChan <- forestWrite{runID: runID, result: result}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Storage) GetForest(ctx context.Context, runID string) (*hkt.Result, error) {
	data, err := s.db.Get([]byte("forest:"+runID), nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return serialize.Parse(data)
}

func (s *Storage) DeleteForest(ctx context.Context, runID string) error {
	return s.db.Delete([]byte("forest:"+runID), nil)
}

// ListForestIDs returns every run id with a persisted forest.
func (s *Storage) ListForestIDs(ctx context.Context) ([]string, error) {
	var ids []string

	iter := s.db.NewIterator(nil, nil)
	defer iter.Release()

	const prefix = "forest:"
	for iter.Next() {
		key := string(iter.Key())
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			ids = append(ids, key[len(prefix):])
		}
	}

	return ids, iter.Error()
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) StopWorkers() {
	close(s.writeChan)
	s.wg.Wait()
}
