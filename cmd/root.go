package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"kvcrud/config"
	"kvcrud/logging"
	"kvcrud/record"
	"kvcrud/store"
)

// NewRootCmd builds the kvcrud command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kvcrud",
		Short: "A key-value record store",
		Long: `kvcrud command.

kvcrud stores records by id in memory or in a bbolt file and lists them
page by page, sorted by creation time.`,
		SilenceUsage: true,
	}

	f := rootCmd.PersistentFlags()
	f.StringP("config", "c", "", "Config file (yaml, json or toml)")
	f.StringP("backend", "b", "", "Store backend (\"memory\" or \"persistent\")")
	f.String("db", "", "bbolt file used by the persistent backend")
	f.String("bucket", "", "bbolt bucket holding the records")
	f.String("log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newPutCmd(),
		newUpdateCmd(),
		newGetCmd(),
		newDeleteCmd(),
		newListCmd(),
		newStatsCmd(),
		newLoadCmd(),
		newServeCmd(),
	)

	return rootCmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file and environment, then applies any
// persistent flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(file)
	if err != nil {
		return nil, err
	}

	overrides := map[string]*string{
		"backend":   &cfg.Store.Backend,
		"db":        &cfg.Store.Path,
		"bucket":    &cfg.Store.Bucket,
		"log-level": &cfg.Log.Level,
	}
	for name, dst := range overrides {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetString(name)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	return logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
}

func openStore(cfg *config.Config) (store.Store[string, record.Record], func() error, error) {
	opts := store.Options[record.Record]{
		Type:     store.Type(cfg.Store.Backend),
		Path:     cfg.Store.Path,
		FileMode: os.FileMode(cfg.Store.FileMode),
		Bucket:   cfg.Store.Bucket,
	}

	if opts.Type == store.Memory && cfg.Store.Seed != "" {
		seed, err := readSeedFile(cfg.Store.Seed)
		if err != nil {
			return nil, nil, err
		}
		opts.Seed = seed
	}

	s, closeFn, err := store.Open[string, record.Record](opts)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s store: %w", cfg.Store.Backend, err)
	}

	return s, closeFn, nil
}

// withStore loads config, opens the store and hands it to fn, closing the
// store afterwards.
func withStore(cmd *cobra.Command, fn func(s store.Store[string, record.Record]) error) (err error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	s, closeFn, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore(closeFn, &err)

	return fn(s)
}

// closeStore runs closeFn and reports its error through err, unless err
// already holds an earlier failure.
func closeStore(closeFn func() error, err *error) {
	if cerr := closeFn(); cerr != nil && *err == nil {
		*err = fmt.Errorf("closing store: %w", cerr)
	}
}
