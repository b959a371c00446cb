// Package ingest loads a corpus of already-tokenized sources from a
// newline-delimited JSON file, the Go-native equivalent of the original
// system's DataHelper.load_sources. It performs no tokenization, stop
// word filtering or stemming of its own — each line is expected to
// already carry its word list.
package ingest

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"hkt-hw/internal/domain/models"
	"hkt-hw/internal/hkt"
	"hkt-hw/internal/lib/logger/sl"
)

type Loader struct {
	log  *slog.Logger
	path string
}

func NewLoader(log *slog.Logger, path string) *Loader {
	return &Loader{log: log, path: path}
}

// LoadSources reads one models.SourceRecord per line and returns the
// corpus keyed by source id, ready for hkt.Build.
func (l *Loader) LoadSources() (map[int]hkt.Source, error) {
	f, err := os.Open(l.path)
	if err != nil {
		l.log.Error("Failed to open corpus file", "error", sl.Err(err))
		return nil, fmt.Errorf("ingest: %w", err)
	}
	defer f.Close()

	sources := make(map[int]hkt.Source)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec models.SourceRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			l.log.Error("Failed to parse corpus line", "line", lineNo, "error", sl.Err(err))
			return nil, fmt.Errorf("ingest: line %d: %w", lineNo, err)
		}

		sources[rec.SourceID] = hkt.Source{
			SourceID:   rec.SourceID,
			Text:       rec.Text,
			CategoryID: rec.CategoryID,
			Words:      rec.Words,
		}
	}
	if err := scanner.Err(); err != nil {
		l.log.Error("Failed reading corpus file", "error", sl.Err(err))
		return nil, fmt.Errorf("ingest: %w", err)
	}

	l.log.Info("Loaded corpus", "sources", len(sources))
	return sources, nil
}

// LoadCorpora loads one or more independent corpora from path, keyed by
// run id. If path is a directory, every *.ndjson file inside it becomes
// its own corpus, run id taken from the file name stem; otherwise path
// is treated as a single NDJSON file and its corpus is keyed "default".
// Each returned corpus is independent: spec.md's single-threaded build
// guarantee only binds within one hkt.Build call, so distinct corpora
// may safely be built concurrently by a worker pool.
func (l *Loader) LoadCorpora() (map[string]map[int]hkt.Source, error) {
	info, err := os.Stat(l.path)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}

	if !info.IsDir() {
		sources, err := l.LoadSources()
		if err != nil {
			return nil, err
		}
		return map[string]map[int]hkt.Source{"default": sources}, nil
	}

	entries, err := os.ReadDir(l.path)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".ndjson") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	corpora := make(map[string]map[int]hkt.Source, len(names))
	for _, name := range names {
		runID := strings.TrimSuffix(name, filepath.Ext(name))
		sub := &Loader{log: l.log, path: filepath.Join(l.path, name)}
		sources, err := sub.LoadSources()
		if err != nil {
			return nil, fmt.Errorf("ingest: corpus %q: %w", name, err)
		}
		corpora[runID] = sources
	}

	l.log.Info("Loaded corpora", "count", len(corpora))
	return corpora, nil
}
