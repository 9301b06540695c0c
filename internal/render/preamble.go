package render

import "fmt"

// CursorPreamble introduces one child cursor's block in a multi-plan
// report. The leading blank keeps blocks visually separated; both lines
// classify as passthrough.
func CursorPreamble(sqlID string, child int64) []string {
	return []string{"", fmt.Sprintf("SQL_ID %s, child number %d", sqlID, child), ""}
}

// HistoryPreamble introduces one historical plan's block.
func HistoryPreamble(sqlID string, planHash int64) []string {
	return []string{"", fmt.Sprintf("SQL_ID %s, plan hash value %d", sqlID, planHash), ""}
}
