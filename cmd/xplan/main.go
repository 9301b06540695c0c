package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/oracle-developer/xplan/internal/config"
)

var (
	// Global flags
	cfgPath string
	dbPath  string
	format  string
	qualify bool
	strict  bool
	verbose bool

	// Loaded configuration, flag overrides applied
	cfg *config.Config

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "xplan",
	Short: "xplan - execution plan reports with parent and order columns",
	Long: `xplan reformats rendered execution-plan reports, splicing two derived
columns into each table: the immediate parent step (Pid) and the physical
execution order (Ord, 1 = first operation completed).

Plans are read from the plan-step catalog by statement id, live cursor or
plan history, rendered as a fixed-width report and annotated in place.
With --qualify the object-name column is widened and owner-qualified.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = logger.With(zap.String("invocation", uuid.NewString()))

		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("db") {
			cfg.Catalog.Path = dbPath
		}
		if cmd.Flags().Changed("format") {
			cfg.Report.Format = format
		}
		if cmd.Flags().Changed("qualify") {
			cfg.Report.Qualify = qualify
		}
		if cmd.Flags().Changed("strict") {
			cfg.Report.StrictUnmatched = strict
		}
		return cfg.Validate()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgPath, "config", config.DefaultPath, "Path to configuration file")
	pf.StringVar(&dbPath, "db", "", "Plan catalog database path (overrides config)")
	pf.StringVar(&format, "format", "", "Format options: basic, typical or all")
	pf.BoolVar(&qualify, "qualify", false, "Owner-qualify and width-normalize the Name column")
	pf.BoolVar(&strict, "strict", false, "Fail when a report row has no catalog step")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(displayCmd)
	rootCmd.AddCommand(cursorCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(loadCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
