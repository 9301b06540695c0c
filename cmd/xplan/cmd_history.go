package main

import (
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oracle-developer/xplan/internal/plan"
	"github.com/oracle-developer/xplan/internal/render"
)

var historyPlanHash int64

// historyCmd annotates historical plans of a statement
var historyCmd = &cobra.Command{
	Use:   "history <sql-id>",
	Short: "Annotate the plans recorded in plan history",
	Long: `Fetches historical plan steps by sql id. Without --plan-hash every
recorded plan is reported, in ascending plan hash order, each block
annotated and sized independently.

Example:
  xplan history 9babjv8yq8ru3 --plan-hash 1445457117`,
	Args: cobra.ExactArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int64Var(&historyPlanHash, "plan-hash", -1, "Plan hash value (default: all plans)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	sqlID := args[0]
	if historyPlanHash < -1 {
		return &render.ParameterError{
			Param:  "plan hash",
			Value:  strconv.FormatInt(historyPlanHash, 10),
			Reason: "must be a plan hash value or -1 for all plans",
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

	logger.Info("displaying historical plans",
		zap.String("sql_id", sqlID),
		zap.Int64("plan_hash", historyPlanHash))
	groups, err := store.ByHistory(cmd.Context(), sqlID, historyPlanHash)
	if err != nil {
		return err
	}
	return annotateGroups(groups, f, func(g plan.Group) []string {
		return render.HistoryPreamble(sqlID, g.Key)
	})
}
