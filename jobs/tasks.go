package jobs

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskLedgerIntegrityScan re-checks the double-entry invariants of stored vouchers.
	TaskLedgerIntegrityScan = "ledger:integrity_scan"
	// TaskStaleChequeScan reports post-dated cheques that are past due but uncleared.
	TaskStaleChequeScan = "ledger:stale_cheque_scan"
)

// ScanPayload identifies one scheduled scan run.
type ScanPayload struct {
	RunID string `json:"runId"`
}

// NewLedgerIntegrityScanTask constructs an integrity-scan task with a fresh run id.
func NewLedgerIntegrityScanTask() (*asynq.Task, error) {
	data, err := json.Marshal(ScanPayload{RunID: uuid.NewString()})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLedgerIntegrityScan, data), nil
}

// NewStaleChequeScanTask constructs a stale-cheque scan task with a fresh run id.
func NewStaleChequeScanTask() (*asynq.Task, error) {
	data, err := json.Marshal(ScanPayload{RunID: uuid.NewString()})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskStaleChequeScan, data), nil
}
