package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/lvseg/dicomflow/dataset"
	"github.com/lvseg/dicomflow/loader"
	"github.com/lvseg/dicomflow/queue"
)

// Pipeline drives one load worker that turns an identifier sequence into a
// stream of batches on a bounded queue. Create one with New, configure it
// with the With* setters, then call Start exactly once.
type Pipeline struct {
	cfg    Config
	loader loader.Loader
	log    zerolog.Logger
	stats  StatsCollector

	out  *queue.Bounded[*Batch]
	done chan struct{}

	mu      sync.Mutex
	started bool
	err     error
}

// New creates a Pipeline that loads items through l. Zero fields of cfg get
// defaults; an out-of-range value or nil loader returns a ConfigError.
func New(cfg Config, l loader.Loader) (*Pipeline, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if l == nil {
		return nil, &ConfigError{Field: "Loader", Err: errors.New("cannot be nil")}
	}

	out, err := queue.New[*Batch](cfg.QueueCapacity)
	if err != nil {
		return nil, &ConfigError{Field: "QueueCapacity", Err: err}
	}

	return &Pipeline{
		cfg:    cfg,
		loader: l,
		log:    zerolog.Nop(),
		stats:  NewBasic(),
		out:    out,
		done:   make(chan struct{}),
	}, nil
}

// WithLogger sets the logger used by the load worker. If not set, nothing is
// logged.
//
// Panics if called after Start.
func (p *Pipeline) WithLogger(log zerolog.Logger) *Pipeline {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		panic("pipeline: WithLogger cannot be called after Start")
	}

	p.log = log
	return p
}

// WithStats replaces the stats collector. If not set, a Basic collector is
// used so the end-of-run attempted/skipped report is always available.
//
// Panics if called after Start.
func (p *Pipeline) WithStats(stats StatsCollector) *Pipeline {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		panic("pipeline: WithStats cannot be called after Start")
	}

	p.stats = stats
	return p
}

// Start launches the load worker in its own goroutine and returns
// immediately. The worker attempts every item exactly once, in the given
// order, and owns the queue from here on: the Batches channel closes exactly
// once, after the final batch.
//
// Canceling ctx while the worker is blocked handing off a batch terminates
// the worker; Err reports the cancellation after Done closes.
//
// Panics if called more than once.
func (p *Pipeline) Start(ctx context.Context, items []dataset.Item) {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		panic("pipeline: Start called more than once")
	}
	p.started = true
	p.mu.Unlock()

	go p.run(ctx, items)
}

// Batches returns the consumer side of the queue. Batches arrive in the
// order the worker produced them; the channel closing signals that no more
// batches will ever arrive. Check Err afterwards to distinguish completion
// from failure.
func (p *Pipeline) Batches() <-chan *Batch {
	return p.out.C()
}

// Done returns a channel that closes when the load worker has exited.
func (p *Pipeline) Done() <-chan struct{} {
	return p.done
}

// Err returns the fatal pipeline error, or nil if the run completed. A run
// that finished with skipped items still counts as completed. Err is
// meaningful once Done is closed.
func (p *Pipeline) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Stats returns a snapshot of the pipeline's progress counters.
func (p *Pipeline) Stats() Counters {
	return p.stats.Counters()
}

// run is the load worker. It owns the producer side of the queue and is the
// only goroutine that touches the batch under assembly.
func (p *Pipeline) run(ctx context.Context, items []dataset.Item) {
	defer close(p.done)
	// Closing the queue is the sentinel. The deferred close runs on every
	// exit path, so the consumer always observes it exactly once.
	defer p.out.Close()

	p.log.Info().
		Int("items", len(items)).
		Int("batch_size", p.cfg.BatchSize).
		Int("queue_capacity", p.cfg.QueueCapacity).
		Msg("load worker started")

	seq := 0
	pairs := make([]*loader.Pair, 0, p.cfg.BatchSize)
	for _, item := range items {
		p.stats.RecordAttempt()

		pair, err := p.loadOne(ctx, item)
		if err != nil {
			p.stats.RecordSkip()
			p.log.Warn().Err(err).Str("image", item.ImagePath).Msg("skipping item")
			continue
		}
		p.stats.RecordLoad()

		pairs = append(pairs, pair)
		if len(pairs) >= p.cfg.BatchSize {
			if !p.put(ctx, &Batch{Seq: seq, Pairs: pairs}) {
				return
			}
			seq++
			pairs = make([]*loader.Pair, 0, p.cfg.BatchSize)
		}
	}

	if len(pairs) > 0 {
		if !p.put(ctx, &Batch{Seq: seq, Pairs: pairs}) {
			return
		}
	}

	c := p.stats.Counters()
	p.log.Info().
		Uint64("attempted", c.Attempted).
		Uint64("loaded", c.Loaded).
		Uint64("skipped", c.Skipped).
		Uint64("batches", c.Batches).
		Msg("load worker finished")
}

// loadOne invokes the loader inside the per-item fault-isolation boundary.
// An error return or a panic from the loader becomes an error here, so no
// single bad file can terminate the worker.
func (p *Pipeline) loadOne(ctx context.Context, item dataset.Item) (pair *loader.Pair, err error) {
	defer func() {
		if r := recover(); r != nil {
			pair = nil
			err = fmt.Errorf("loader panic: %v", r)
		}
	}()

	pair, err = p.loader.Load(ctx, item)
	if err == nil && pair == nil {
		err = errors.New("loader returned no pair")
	}
	return pair, err
}

// put hands a completed batch to the queue, blocking while the queue is
// full. A false return means the consumer is gone; the worker must stop,
// since loading more would only waste resources.
func (p *Pipeline) put(ctx context.Context, b *Batch) bool {
	if err := p.out.Put(ctx, b); err != nil {
		err = fmt.Errorf("enqueue batch %d: %w", b.Seq, err)
		p.log.Error().Err(err).Msg("consumer gone, load worker stopping")

		p.mu.Lock()
		p.err = err
		p.mu.Unlock()
		return false
	}
	p.stats.RecordBatch(b.Len())
	p.log.Debug().Int("batch", b.Seq).Int("pairs", b.Len()).Msg("batch enqueued")
	return true
}
