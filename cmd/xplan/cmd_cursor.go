package main

import (
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oracle-developer/xplan/internal/plan"
	"github.com/oracle-developer/xplan/internal/render"
)

var cursorChild int64

// cursorCmd annotates the plan(s) of a live cursor
var cursorCmd = &cobra.Command{
	Use:   "cursor <sql-id>",
	Short: "Annotate the plan of a cursor, one block per child",
	Long: `Fetches the plan steps of a cursor by sql id. Without --child every
child cursor is reported, in ascending child number order, each block
annotated and sized independently.

Example:
  xplan cursor 9babjv8yq8ru3 --child 0`,
	Args: cobra.ExactArgs(1),
	RunE: runCursor,
}

func init() {
	cursorCmd.Flags().Int64Var(&cursorChild, "child", -1, "Child cursor number (default: all children)")
}

func runCursor(cmd *cobra.Command, args []string) error {
	sqlID := args[0]
	if cursorChild < -1 {
		return &render.ParameterError{
			Param:  "child number",
			Value:  strconv.FormatInt(cursorChild, 10),
			Reason: "must be a child number or -1 for all children",
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

	logger.Info("displaying cursor plan",
		zap.String("sql_id", sqlID),
		zap.Int64("child", cursorChild))
	groups, err := store.ByCursor(cmd.Context(), sqlID, cursorChild)
	if err != nil {
		return err
	}
	return annotateGroups(groups, f, func(g plan.Group) []string {
		return render.CursorPreamble(sqlID, g.Key)
	})
}
