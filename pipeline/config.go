package pipeline

import "fmt"

// Default configuration values, used for fields left zero in Config.
const (
	// DefaultBatchSize is the number of loaded pairs per batch.
	DefaultBatchSize = 8

	// DefaultQueueCapacity is how many completed batches may wait for the
	// consumer. Small on purpose: each batch holds decoded images, and the
	// capacity is what caps the pipeline's memory footprint.
	DefaultQueueCapacity = 2
)

// Config holds the pipeline configuration. The zero value gets defaults for
// every field; explicitly negative values fail validation.
type Config struct {
	// BatchSize is the target number of pairs per batch. The final batch
	// may be smaller.
	BatchSize int

	// QueueCapacity is the maximum number of completed batches queued
	// ahead of the consumer.
	QueueCapacity int
}

// withDefaults fills in zero fields.
func (c Config) withDefaults() Config {
	if c.BatchSize == 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.QueueCapacity == 0 {
		c.QueueCapacity = DefaultQueueCapacity
	}
	return c
}

// Validate reports a ConfigError for out-of-range values.
func (c Config) Validate() error {
	if c.BatchSize < 1 {
		return &ConfigError{Field: "BatchSize", Err: fmt.Errorf("must be at least 1, got %d", c.BatchSize)}
	}
	if c.QueueCapacity < 1 {
		return &ConfigError{Field: "QueueCapacity", Err: fmt.Errorf("must be at least 1, got %d", c.QueueCapacity)}
	}
	return nil
}
