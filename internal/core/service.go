package core

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/JonMunkholm/elections/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Options configures a Service.
type Options struct {
	// DataDir is the root that relative source paths are resolved against.
	DataDir string

	// ParallelReads caps concurrent source readers. Zero means one per source.
	ParallelReads int

	// NotableWindow and NotablePerElection parameterize TopNotable.
	NotableWindow      int
	NotablePerElection int
}

// Dataset is everything the dashboard pages consume from one load. All of it
// is read-only and safe to share between concurrent requests.
type Dataset struct {
	LoadID     string
	LoadedAt   time.Time
	Duration   time.Duration
	Unified    *UnifiedTable
	Elections  []ElectionID // ascending
	AllParties []string     // sorted union of party keys
	Notable    []string     // notable party set, ascending
	Aggregate  *AggregateTable
}

// Service runs the pipeline over a fixed set of sources and memoizes the result.
type Service struct {
	sources []SourceSpec
	opts    Options
	read    func(root string, spec SourceSpec) (*RawTable, error)

	loads singleflight.Group

	mu      sync.RWMutex
	current *Dataset
	key     string // fingerprint of the files current was built from
}

// NewService creates a Service for the given sources.
func NewService(sources []SourceSpec, opts Options) (*Service, error) {
	if len(sources) == 0 {
		return nil, errors.New("no election sources configured")
	}

	seen := make(map[ElectionID]bool, len(sources))
	specs := make([]SourceSpec, len(sources))
	for i, spec := range sources {
		if err := spec.Validate(); err != nil {
			return nil, fmt.Errorf("source %d: %w", i, err)
		}
		if seen[spec.Election] {
			return nil, fmt.Errorf("election %d listed twice", spec.Election)
		}
		seen[spec.Election] = true
		specs[i] = spec
	}
	sortSpecs(specs)

	if opts.NotableWindow <= 0 {
		opts.NotableWindow = DefaultNotableWindow
	}
	if opts.NotablePerElection <= 0 {
		opts.NotablePerElection = DefaultNotablePerElection
	}
	if opts.ParallelReads <= 0 {
		opts.ParallelReads = len(specs)
	}

	return &Service{sources: specs, opts: opts, read: ReadSource}, nil
}

// Sources returns the configured sources, ascending by election.
func (s *Service) Sources() []SourceSpec {
	return append([]SourceSpec(nil), s.sources...)
}

// Current returns the last successfully loaded dataset, or nil.
func (s *Service) Current() *Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Dataset returns the memoized dataset, loading it when nothing is cached or
// when any source file changed since the cached load. Concurrent callers share
// one load. A failed load leaves the previous dataset in place but is still
// reported, so callers never serve data from an incomplete file set. A caller
// whose context ends stops waiting, but the load itself runs to completion.
func (s *Service) Dataset(ctx context.Context) (*Dataset, error) {
	key, err := s.fingerprint()
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	if s.current != nil && s.key == key {
		ds := s.current
		s.mu.RUnlock()
		return ds, nil
	}
	s.mu.RUnlock()

	ch := s.loads.DoChan(key, func() (any, error) {
		// A caller that missed the cache may arrive after another flight
		// for the same key already finished.
		s.mu.RLock()
		if s.current != nil && s.key == key {
			ds := s.current
			s.mu.RUnlock()
			return ds, nil
		}
		s.mu.RUnlock()

		// The load is shared, so the caller that started it going away must
		// not fail everyone else waiting on it.
		ds, err := s.LoadAndPrepare(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.current, s.key = ds, key
		s.mu.Unlock()
		return ds, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Dataset), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// LoadAndPrepare reads every source, waits for all of them, and derives the
// unified table, aggregate and notable party set. Any failure aborts the
// whole load and no partial dataset is returned.
func (s *Service) LoadAndPrepare(ctx context.Context) (*Dataset, error) {
	start := time.Now()
	loadID := uuid.NewString()
	ctx = logging.ContextWithLoadID(ctx, loadID)
	logger := logging.FromContext(ctx)

	logger.Info("dataset load started", "sources", len(s.sources), "parallel", s.opts.ParallelReads)

	tables, err := s.readAll(ctx)
	if err != nil {
		logger.Error("dataset load failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		return nil, err
	}

	unified, err := Build(tables...)
	if err != nil {
		logger.Error("dataset load failed", "error", err)
		return nil, fmt.Errorf("build unified table: %w", err)
	}

	agg := Aggregate(unified)
	ds := &Dataset{
		LoadID:     loadID,
		LoadedAt:   time.Now(),
		Unified:    unified,
		Elections:  agg.Elections(),
		AllParties: agg.PartyKeys(),
		Notable:    TopNotable(agg, s.opts.NotableWindow, s.opts.NotablePerElection),
		Aggregate:  agg,
	}
	ds.Duration = ds.LoadedAt.Sub(start)

	logger.Info("dataset load completed",
		"elections", len(ds.Elections),
		"rows", unified.Len(),
		"parties", len(ds.AllParties),
		"notable", len(ds.Notable),
		"duration_ms", ds.Duration.Milliseconds(),
	)
	return ds, nil
}

// readAll reads and normalizes every source in parallel. Wait is the barrier:
// nothing is built until every reader has finished.
func (s *Service) readAll(ctx context.Context) ([]*NormalizedTable, error) {
	tables := make([]*NormalizedTable, len(s.sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.ParallelReads)

	for i, spec := range s.sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			started := time.Now()

			raw, err := s.read(s.opts.DataDir, spec)
			if err != nil {
				return err
			}
			table, err := Normalize(raw)
			if err != nil {
				return err
			}
			tables[i] = table

			logging.WithFields(ctx,
				"election", spec.Election,
				"format", spec.Format,
				"encoding", spec.Encoding,
			).Debug("source read",
				"rows", len(table.Rows),
				"parties", len(table.PartyKeys),
				"dropped", len(raw.Dropped),
				"bytes", raw.Bytes,
				"duration_ms", time.Since(started).Milliseconds(),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}

// fingerprint identifies the current state of every source file by path,
// size and modification time. A missing file fails fast with ErrSourceNotFound.
func (s *Service) fingerprint() (string, error) {
	var b strings.Builder
	for _, spec := range s.sources {
		path := resolvePath(s.opts.DataDir, spec.Path)
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				err = fmt.Errorf("%w: %s", ErrSourceNotFound, filepath.Base(path))
			}
			return "", &SourceError{Election: spec.Election, Path: path, Err: err}
		}
		b.WriteString(spec.Election.String())
		b.WriteByte('|')
		b.WriteString(path)
		b.WriteByte('|')
		b.WriteString(strconv.FormatInt(info.Size(), 10))
		b.WriteByte('|')
		b.WriteString(strconv.FormatInt(info.ModTime().UnixNano(), 10))
		b.WriteByte('\n')
	}
	return b.String(), nil
}
