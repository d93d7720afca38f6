// Package runstore records analysis runs and their results.
package runstore

import (
	"sync"

	"github.com/huangsam/teamcap/internal/contract"
)

// Table names for run tracking.
const (
	runsTable           = "teamcap_runs"
	workloadScoresTable = "teamcap_workload_scores"
	predictionsTable    = "teamcap_predictions"
)

// allTables lists run tracking tables in dependency order.
var allTables = []string{runsTable, workloadScoresTable, predictionsTable}

// StoreManager holds the process-wide RunStore.
type StoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	runs         contract.RunStore
}

var _ contract.RunManager = &StoreManager{} // Compile-time check

// GetRunStore returns the RunStore, or nil when tracking was never initialized.
func (mgr *StoreManager) GetRunStore() contract.RunStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.runs
}
