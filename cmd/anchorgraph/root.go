package main

import (
	"context"
	"fmt"
	"io"

	"github.com/Harshitk-cp/anchorgraph/internal/config"
	"github.com/Harshitk-cp/anchorgraph/internal/domain"
	"github.com/Harshitk-cp/anchorgraph/internal/service"
	"github.com/Harshitk-cp/anchorgraph/internal/store"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type rootOptions struct {
	anchorsPath  string
	readingsPath string
	backend      string
	jsonOut      bool
	logLevel     string

	stdout io.Writer
	stderr io.Writer
	logger *zap.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	_ = config.Load()

	opts := &rootOptions{stdout: stdout, stderr: stderr, logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:   "anchorgraph",
		Short: "Track how anchor status changes ripple through dependent readings",
		Long: `anchorgraph keeps a corpus of anchors (foundational claims) and readings
(interpretations that depend on them). It previews and applies status cascades,
registers readings under the confidence lattice, and validates the corpus.

Exit status is 0 on success and 1 on load failures, invalid input, unknown ids
or a corpus that fails validation.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(opts.logLevel, opts.stderr)
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = opts.logger.Sync()
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.anchorsPath, "anchors", config.AnchorsPath(), "anchors file (.json, .yaml or .yml)")
	flags.StringVar(&opts.readingsPath, "readings", config.ReadingsPath(), "readings file (.json, .yaml or .yml)")
	flags.StringVar(&opts.backend, "backend", config.StoreBackend(), "corpus backend: file or postgres")
	flags.BoolVar(&opts.jsonOut, "json", false, "print reports as JSON")
	flags.StringVar(&opts.logLevel, "log-level", config.LogLevel(), "log level written to stderr (debug, info, warn, error)")

	cmd.AddCommand(
		newCascadeCmd(opts),
		newRegisterCmd(opts),
		newValidateCmd(opts),
		newGraphCmd(opts),
		newInspectCmd(opts),
		newAnchorsCmd(opts),
		newVersionCmd(opts),
	)
	return cmd
}

func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q", level)
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), lvl)
	return zap.New(core), nil
}

// loadEngine opens the configured backend and builds an engine over it. The
// returned func releases the backend.
func (o *rootOptions) loadEngine(ctx context.Context) (*service.Engine, func(), error) {
	corpusStore, closeStore, err := o.openStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	eng, err := service.LoadEngine(ctx, corpusStore, o.logger,
		service.WithMajorCascadeThreshold(config.MajorCascadeThreshold()))
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	return eng, closeStore, nil
}

func (o *rootOptions) openStore(ctx context.Context) (domain.CorpusStore, func(), error) {
	switch o.backend {
	case config.BackendFile:
		return store.NewFileStore(o.anchorsPath, o.readingsPath), func() {}, nil
	case config.BackendPostgres:
		dbURL := config.DatabaseURL()
		if dbURL == "" {
			return nil, nil, fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
		pool, err := pgxpool.New(ctx, dbURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		pg := store.NewPostgresStore(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return pg, pool.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown backend %q", o.backend)
}
