// Package pipeline streams loaded (image, mask) batches from a background
// load worker to a consumer through a bounded FIFO queue. The main type is
// Pipeline, which can be created using New with a Config and a loader.Loader
// implementation.
//
// Start launches a single producer goroutine. It walks the enumerated
// identifier sequence, loads each item through the loader, and assembles
// successful loads into fixed-size batches on the queue. The consumer ranges
// over Batches until the channel closes, which happens exactly once, after
// the final batch:
//
//	p, _ := pipeline.New(pipeline.Config{BatchSize: 8}, &loader.DICOM{})
//	p.Start(ctx, items)
//	for b := range p.Batches() {
//	    // train on b.Images() and b.Masks()
//	}
//	if err := p.Err(); err != nil {
//	    // the pipeline failed, as opposed to completing with skips
//	}
//
// A failure to load one item never stops the worker: the item is counted as
// a skip and the loop moves on. Only two things are fatal: an invalid
// configuration, reported by New before anything runs, and cancellation of
// the context while the worker is blocked handing a batch to the consumer,
// reported by Err after Done.
//
// The queue capacity bounds how far loading can run ahead of consumption.
// With the default capacity of 2, at most two batches are in flight beyond
// the one the consumer is working with.
package pipeline
