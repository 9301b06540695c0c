package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oracle-developer/xplan/internal/render"
)

// displayCmd annotates the plan of an explained statement
var displayCmd = &cobra.Command{
	Use:   "display [statement-id]",
	Short: "Annotate the plan recorded for an explained statement",
	Long: `Fetches the plan steps recorded under a statement id, renders the
fixed-width report and splices in the Pid and Ord columns. Without an
argument the configured default statement id is used.

Example:
  xplan display EMP_DEPT_JOIN --format all`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDisplay,
}

func runDisplay(cmd *cobra.Command, args []string) error {
	statementID := cfg.Report.DefaultStatement
	if len(args) > 0 {
		statementID = args[0]
	}
	if statementID == "" {
		return &render.ParameterError{
			Param:  "statement id",
			Value:  statementID,
			Reason: "no argument given and no default configured",
		}
	}

	f, err := render.ParseFormat(cfg.Report.Format)
	if err != nil {
		return err
	}

	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	logger.Info("displaying statement plan", zap.String("statement_id", statementID))
	groups, err := store.ByStatement(cmd.Context(), statementID)
	if err != nil {
		return err
	}
	return annotateGroups(groups, f, nil)
}
