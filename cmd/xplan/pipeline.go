package main

import (
	"bufio"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/oracle-developer/xplan/internal/annotate"
	"github.com/oracle-developer/xplan/internal/catalog"
	"github.com/oracle-developer/xplan/internal/plan"
	"github.com/oracle-developer/xplan/internal/render"
)

func openCatalog() (*catalog.Store, error) {
	return catalog.Open(cfg.Catalog.Path, logger)
}

func reportOptions() annotate.Options {
	return annotate.Options{
		Qualify:         cfg.Report.Qualify,
		StrictUnmatched: cfg.Report.StrictUnmatched,
		Logger:          logger,
	}
}

// annotateGroups renders one block per group, annotates them and writes
// the result to stdout. An empty group set is a success with no output.
func annotateGroups(groups []plan.Group, f render.Format, preamble func(plan.Group) []string) error {
	if len(groups) == 0 {
		logger.Info("no matching plan")
		return nil
	}

	segments := make([][]string, 0, len(groups))
	for _, g := range groups {
		var seg []string
		if preamble != nil {
			seg = append(seg, preamble(g)...)
		}
		seg = append(seg, render.Table(g.Steps, f)...)
		segments = append(segments, seg)
	}

	out, err := annotate.MultiReport(segments, groups, reportOptions())
	if err != nil {
		return err
	}
	logger.Debug("report annotated",
		zap.Int("groups", len(groups)),
		zap.Int("lines", len(out)))
	return emit(out)
}

func emit(lines []string) error {
	w := bufio.NewWriter(os.Stdout)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return w.Flush()
}
