// Command ontocheck decides whether candidate axioms are entailed by an
// ontology.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ontocheck/internal/config"
	"ontocheck/internal/entailment"
	"ontocheck/internal/logging"
	"ontocheck/internal/repository/sqlite"
	"ontocheck/internal/service"
)

// app carries state shared by the subcommands
type app struct {
	configPath string
	dbPath     string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
	store  *sqlite.Repository
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "ontocheck",
		Short: "Check axioms for entailment against an ontology",
		Long: `ontocheck decides whether candidate axioms follow from a knowledge base.

Ontologies are YAML or JSON documents. They can be imported into a SQLite
store or checked against directly with --ontology.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: search standard locations)")
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "SQLite database path (overrides config)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newImportCmd(a),
		newCheckCmd(a),
		newAxiomsCmd(a),
		newExportCmd(a),
		newConfigCmd(a),
	)
	return root
}

func (a *app) init() error {
	var (
		cfg  *config.Config
		path string
		err  error
	)
	if a.configPath != "" {
		cfg, path, err = config.LoadFromPath(a.configPath)
	} else {
		cfg, path, err = config.Load()
	}
	if err != nil {
		return err
	}
	if a.dbPath != "" {
		cfg.Database.Path = a.dbPath
	}
	a.cfg = cfg

	logger, err := logging.New(logging.Verbose(cfg.Logging.Level, a.verbose), cfg.Logging.Development)
	if err != nil {
		return err
	}
	a.logger = logger

	if path != "" {
		logger.Debug("Config loaded", zap.String("path", path), zap.String("summary", cfg.Summary()))
	}
	return nil
}

// openStore opens the configured database once per invocation
func (a *app) openStore() (*sqlite.Repository, error) {
	if a.store != nil {
		return a.store, nil
	}
	repo, err := sqlite.New(a.cfg.Database.Path)
	if err != nil {
		a.logger.Error("Failed to open database", zap.String("path", a.cfg.Database.Path), zap.Error(err))
		return nil, err
	}
	a.logger.Debug("Database opened", zap.String("path", a.cfg.Database.Path))
	a.store = repo
	return repo, nil
}

func (a *app) close() {
	if a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil {
		a.logger.Warn("Failed to close database", zap.Error(err))
	}
	a.store = nil
}

func (a *app) newService(eventBus *service.EventBus) *service.EntailmentService {
	checker := entailment.NewChecker(a.cfg.Checker, a.logger.Named("checker"))
	return service.NewEntailmentService(checker, eventBus, a.logger.Named("service"))
}

// fail logs err and returns it for cobra to report
func (a *app) fail(msg string, err error, fields ...zap.Field) error {
	a.logger.Error(msg, append(fields, zap.Error(err))...)
	return fmt.Errorf("%s: %w", msg, err)
}
