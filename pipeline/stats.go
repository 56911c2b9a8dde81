package pipeline

import "sync/atomic"

// Counters is a snapshot of pipeline progress. Attempted always equals
// Loaded + Skipped once the worker has finished.
type Counters struct {
	// Attempted is the number of identifiers the worker has tried to load.
	Attempted uint64

	// Loaded is the number of pairs successfully loaded into batches.
	Loaded uint64

	// Skipped is the number of identifiers that failed to load.
	Skipped uint64

	// Batches is the number of batches handed to the queue.
	Batches uint64
}

// StatsCollector receives progress events from the load worker.
// Implementations must be safe for concurrent use: the worker records from
// its own goroutine while consumers may read snapshots at any time.
type StatsCollector interface {
	// RecordAttempt is called once per identifier, before loading it.
	RecordAttempt()

	// RecordLoad is called for each successfully loaded pair.
	RecordLoad()

	// RecordSkip is called when loading an item fails.
	RecordSkip()

	// RecordBatch is called when a completed batch is enqueued.
	RecordBatch(size int)

	// Counters returns a snapshot of the current counts.
	Counters() Counters
}

// Basic is an in-memory StatsCollector backed by atomic counters. It is the
// collector a Pipeline uses unless WithStats replaces it.
type Basic struct {
	attempted uint64
	loaded    uint64
	skipped   uint64
	batches   uint64
}

// NewBasic creates a Basic stats collector.
func NewBasic() *Basic {
	return &Basic{}
}

// RecordAttempt implements the StatsCollector interface.
func (b *Basic) RecordAttempt() {
	atomic.AddUint64(&b.attempted, 1)
}

// RecordLoad implements the StatsCollector interface.
func (b *Basic) RecordLoad() {
	atomic.AddUint64(&b.loaded, 1)
}

// RecordSkip implements the StatsCollector interface.
func (b *Basic) RecordSkip() {
	atomic.AddUint64(&b.skipped, 1)
}

// RecordBatch implements the StatsCollector interface.
func (b *Basic) RecordBatch(int) {
	atomic.AddUint64(&b.batches, 1)
}

// Counters implements the StatsCollector interface.
func (b *Basic) Counters() Counters {
	return Counters{
		Attempted: atomic.LoadUint64(&b.attempted),
		Loaded:    atomic.LoadUint64(&b.loaded),
		Skipped:   atomic.LoadUint64(&b.skipped),
		Batches:   atomic.LoadUint64(&b.batches),
	}
}

// NoOp is a StatsCollector that discards all events.
type NoOp struct{}

// RecordAttempt implements the StatsCollector interface.
func (*NoOp) RecordAttempt() {}

// RecordLoad implements the StatsCollector interface.
func (*NoOp) RecordLoad() {}

// RecordSkip implements the StatsCollector interface.
func (*NoOp) RecordSkip() {}

// RecordBatch implements the StatsCollector interface.
func (*NoOp) RecordBatch(int) {}

// Counters implements the StatsCollector interface.
func (*NoOp) Counters() Counters {
	return Counters{}
}
