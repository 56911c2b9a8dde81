package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lvseg/dicomflow/dataset"
	"github.com/lvseg/dicomflow/loader"
	"github.com/lvseg/dicomflow/pipeline"
)

const (
	dataDirFlag       = "data-dir"
	batchSizeFlag     = "batch-size"
	queueCapacityFlag = "queue-capacity"
	loaderFlag        = "loader"
	shuffleFlag       = "shuffle"
	seedFlag          = "seed"
	logLevelFlag      = "log-level"
)

func newRunCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the loading pipeline and drain its batch stream",
		Args:  cobra.NoArgs,
		PreRun: func(cmd *cobra.Command, _ []string) {
			flags := cmd.Flags()
			mustBindPFlag(v, dataDirFlag, flags.Lookup(dataDirFlag))
			mustBindPFlag(v, batchSizeFlag, flags.Lookup(batchSizeFlag))
			mustBindPFlag(v, queueCapacityFlag, flags.Lookup(queueCapacityFlag))
			mustBindPFlag(v, loaderFlag, flags.Lookup(loaderFlag))
			mustBindPFlag(v, shuffleFlag, flags.Lookup(shuffleFlag))
			mustBindPFlag(v, seedFlag, flags.Lookup(seedFlag))
			mustBindPFlag(v, logLevelFlag, flags.Lookup(logLevelFlag))
			mustBindEnv(v, dataDirFlag, "DICOMFLOW_DATA_DIR")
			mustBindEnv(v, batchSizeFlag, "DICOMFLOW_BATCH_SIZE")
			mustBindEnv(v, queueCapacityFlag, "DICOMFLOW_QUEUE_CAPACITY")
			mustBindEnv(v, loaderFlag, "DICOMFLOW_LOADER")
			mustBindEnv(v, shuffleFlag, "DICOMFLOW_SHUFFLE")
			mustBindEnv(v, seedFlag, "DICOMFLOW_SEED")
			mustBindEnv(v, logLevelFlag, "DICOMFLOW_LOG_LEVEL")
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, v)
		},
	}

	flags := cmd.Flags()
	flags.String(dataDirFlag, "", "path to the dataset root (must contain link.csv)")
	flags.Int(batchSizeFlag, pipeline.DefaultBatchSize, "number of loaded pairs per batch")
	flags.Int(queueCapacityFlag, pipeline.DefaultQueueCapacity, "max completed batches queued ahead of the consumer")
	flags.String(loaderFlag, "dicom", `loader implementation ("dicom" or "stub")`)
	flags.Bool(shuffleFlag, true, "shuffle the item sequence before loading")
	flags.Int64(seedFlag, 0, "shuffle seed, for reproducible runs")
	flags.String(logLevelFlag, "info", "log level (trace, debug, info, warn, error)")

	return cmd
}

func run(cmd *cobra.Command, v *viper.Viper) error {
	log, err := newLogger(v.GetString(logLevelFlag))
	if err != nil {
		return err
	}

	root := v.GetString(dataDirFlag)
	if root == "" {
		return fmt.Errorf("--%s is required", dataDirFlag)
	}

	ldr, err := loader.Select(v.GetString(loaderFlag))
	if err != nil {
		return err
	}

	items, err := dataset.Enumerate(root, dataset.Options{
		Shuffle: v.GetBool(shuffleFlag),
		Seed:    v.GetInt64(seedFlag),
	})
	if err != nil {
		return err
	}
	log.Info().Int("items", len(items)).Str("root", root).Msg("dataset enumerated")

	p, err := pipeline.New(pipeline.Config{
		BatchSize:     v.GetInt(batchSizeFlag),
		QueueCapacity: v.GetInt(queueCapacityFlag),
	}, ldr)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	p.WithLogger(log).Start(ctx, items)

	for b := range p.Batches() {
		log.Info().Int("batch", b.Seq).Int("pairs", b.Len()).Msg("batch received")
	}
	<-p.Done()

	if err := p.Err(); err != nil {
		return fmt.Errorf("pipeline failed: %w", err)
	}

	c := p.Stats()
	log.Info().
		Uint64("attempted", c.Attempted).
		Uint64("loaded", c.Loaded).
		Uint64("skipped", c.Skipped).
		Uint64("batches", c.Batches).
		Msg("run complete")
	return nil
}

func newLogger(level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("parse log level %q: %w", level, err)
	}

	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(console).Level(lvl).With().Timestamp().Logger(), nil
}

// mustBindPFlag binds a viper key to a cobra flag and panics on failure.
func mustBindPFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic("failed to bind pflag: " + err.Error())
	}
}

func mustBindEnv(v *viper.Viper, input ...string) {
	if err := v.BindEnv(input...); err != nil {
		panic("failed to bind env key: " + err.Error())
	}
}
