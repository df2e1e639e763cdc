package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/monitoring-agents/zbxingest/internal/apiclient"
	"github.com/monitoring-agents/zbxingest/internal/config"
	"github.com/monitoring-agents/zbxingest/internal/normalized"
	"github.com/monitoring-agents/zbxingest/internal/poller"
	"github.com/monitoring-agents/zbxingest/internal/rawcache"
	"github.com/monitoring-agents/zbxingest/internal/rpc"
	"github.com/monitoring-agents/zbxingest/internal/supervisor"
	"github.com/monitoring-agents/zbxingest/internal/update"
)

var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

var (
	configPath string
	envPath    string
	sourceID   int
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "zbxingest",
		Short: "Pull incremental monitoring data from Zabbix-compatible sources",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "./source.yaml", "Path to the source configuration file")
	root.PersistentFlags().StringVar(&envPath, "env", "./.env", "Path to a .env file holding source credentials")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run every configured source's poller until an exit signal is received",
		RunE:  runHandler,
	}

	onceCmd := &cobra.Command{
		Use:   "once",
		Short: "Run a single update cycle for one source, then exit",
		RunE:  onceHandler,
	}
	onceCmd.Flags().IntVar(&sourceID, "source", 0, "Source id to run (required)")
	onceCmd.MarkFlagRequired("source")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("zbxingest version %s (commit: %s)\n", Version, GitCommit)
		},
	}

	root.AddCommand(runCmd, onceCmd, versionCmd)
	return root
}

func runHandler(cmd *cobra.Command, args []string) error {
	doc, err := config.Load(configPath, envPath)
	if err != nil {
		return err
	}

	norm, err := normalized.Open(normalized.Config{DSN: doc.Normalized.DSN, MaxOpenConns: 25, MaxIdleConns: 25})
	if err != nil {
		return fmt.Errorf("open normalized store: %w", err)
	}
	defer norm.Close()

	workers := make([]supervisor.Worker, 0, len(doc.Sources))
	for _, src := range doc.Sources {
		w, closeFn, err := buildWorker(src, doc.RawCache.Dir, norm)
		if err != nil {
			return err
		}
		defer closeFn()
		workers = append(workers, w)
	}

	log := newLogger(doc.Sources)
	supervisor.Run(log, workers...)
	return nil
}

func onceHandler(cmd *cobra.Command, args []string) error {
	doc, err := config.Load(configPath, envPath)
	if err != nil {
		return err
	}

	var target *config.SourceConfig
	for i := range doc.Sources {
		if doc.Sources[i].ID == sourceID {
			target = &doc.Sources[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("no source with id %d in %s", sourceID, configPath)
	}

	norm, err := normalized.Open(normalized.Config{DSN: doc.Normalized.DSN})
	if err != nil {
		return fmt.Errorf("open normalized store: %w", err)
	}
	defer norm.Close()

	raw, err := rawcache.Open(rawCachePath(doc.RawCache.Dir, target.ID))
	if err != nil {
		return fmt.Errorf("open raw cache: %w", err)
	}
	defer raw.Close()

	client := apiclient.New(target.URI(), rpc.NewTransport())
	runner := &update.Runner{API: client, Raw: raw, Normalized: norm, SourceID: target.ID}

	if err := client.OpenSession(target.User, target.Password); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return runner.Run()
}

func buildWorker(src config.SourceConfig, cacheDir string, norm *normalized.Store) (supervisor.Worker, func(), error) {
	raw, err := rawcache.Open(rawCachePath(cacheDir, src.ID))
	if err != nil {
		return nil, nil, fmt.Errorf("source %d: open raw cache: %w", src.ID, err)
	}

	client := apiclient.New(src.URI(), rpc.NewTransport())
	runner := &update.Runner{API: client, Raw: raw, Normalized: norm, SourceID: src.ID}

	log := slog.Default().With("source_id", src.ID, "host", src.Host)
	w := poller.NewWorker(runner, src.User, src.Password, src.PollInterval(), src.RetryInterval(), log)

	return w, func() { raw.Close() }, nil
}

func rawCachePath(dir string, sourceID int) string {
	return fmt.Sprintf("%s/source-%d.db", dir, sourceID)
}

func newLogger(sources []config.SourceConfig) *slog.Logger {
	level := slog.LevelInfo
	if len(sources) > 0 {
		switch sources[0].LogLevel {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
