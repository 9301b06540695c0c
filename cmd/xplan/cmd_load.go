package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/oracle-developer/xplan/internal/plan"
)

// loadCmd imports plan steps into the catalog
var loadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Import plan steps from a YAML file into the catalog",
	Long: `Loads plan-step rows from a YAML fixture into the catalog database,
so exported or hand-written plans can be annotated offline.

Example:
  xplan load testdata/plans.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

// loadFile is the YAML fixture layout.
type loadFile struct {
	Statements []struct {
		StatementID string     `yaml:"statement_id"`
		PlanID      int64      `yaml:"plan_id"`
		Steps       []loadStep `yaml:"steps"`
	} `yaml:"statements"`
	Cursors []struct {
		SQLID string     `yaml:"sql_id"`
		Child int64      `yaml:"child"`
		Steps []loadStep `yaml:"steps"`
	} `yaml:"cursors"`
	History []struct {
		SQLID    string     `yaml:"sql_id"`
		PlanHash int64      `yaml:"plan_hash"`
		Steps    []loadStep `yaml:"steps"`
	} `yaml:"history"`
}

type loadStep struct {
	ID        int    `yaml:"id"`
	Parent    *int   `yaml:"parent"` // absent on the root row
	Operation string `yaml:"operation"`
	Options   string `yaml:"options"`
	Owner     string `yaml:"owner"`
	Name      string `yaml:"name"`
	Depth     int    `yaml:"depth"`
	Rows      int64  `yaml:"rows"`
	Bytes     int64  `yaml:"bytes"`
	Cost      int64  `yaml:"cost"`
	Access    string `yaml:"access"`
	Filter    string `yaml:"filter"`
}

func (l loadStep) step() plan.Step {
	s := plan.Step{
		ID:         l.ID,
		ParentID:   plan.NoParent,
		Operation:  l.Operation,
		Options:    l.Options,
		Owner:      l.Owner,
		Name:       l.Name,
		Depth:      l.Depth,
		Rows:       l.Rows,
		Bytes:      l.Bytes,
		Cost:       l.Cost,
		AccessPred: l.Access,
		FilterPred: l.Filter,
	}
	if l.Parent != nil {
		s.ParentID = *l.Parent
	}
	return s
}

func runLoad(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read fixture: %w", err)
	}
	var file loadFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse fixture: %w", err)
	}

	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	plans := 0
	for _, st := range file.Statements {
		if err := store.InsertStatementSteps(ctx, st.StatementID, st.PlanID, steps(st.Steps)); err != nil {
			return err
		}
		plans++
	}
	for _, cu := range file.Cursors {
		if err := store.InsertCursorSteps(ctx, cu.SQLID, cu.Child, steps(cu.Steps)); err != nil {
			return err
		}
		plans++
	}
	for _, hi := range file.History {
		if err := store.InsertHistorySteps(ctx, hi.SQLID, hi.PlanHash, steps(hi.Steps)); err != nil {
			return err
		}
		plans++
	}

	logger.Info("fixture loaded",
		zap.String("file", args[0]),
		zap.Int("plans", plans))
	fmt.Printf("Loaded %d plan(s) into %s\n", plans, cfg.Catalog.Path)
	return nil
}

func steps(in []loadStep) []plan.Step {
	out := make([]plan.Step, len(in))
	for i, l := range in {
		out[i] = l.step()
	}
	return out
}
