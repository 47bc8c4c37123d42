package history

import (
	"time"

	"github.com/cmlabs-hris/rota-backend-go/internal/domain/batch"
)

// AssignmentHistoryEntry is one row of the append-only ledger of
// effective-dated shift assignments per batch. At most one entry per batch
// is open (EffectiveEndDate == nil); closing the previous entry and
// appending the next one happen in the same transaction.
type AssignmentHistoryEntry struct {
	ID                 string
	BatchID            string
	ShiftID            string
	EffectiveStartDate time.Time
	EffectiveEndDate   *time.Time
	// RotationSnapshot freezes the batch's rotation pattern at the moment
	// of the change; nil when the batch was static.
	RotationSnapshot *batch.RotationPattern
	AssignedBy       string
	ChangeType       ChangeType
	CreatedAt        time.Time
}

// Open reports whether the entry is the batch's current assignment.
func (e *AssignmentHistoryEntry) Open() bool {
	return e.EffectiveEndDate == nil
}

type ChangeType string

const (
	ChangeTypeBatchCreated     ChangeType = "batch_created"
	ChangeTypeManual           ChangeType = "manual"
	ChangeTypeRotationApplied  ChangeType = "rotation_applied"
	ChangeTypeRotationUpdated  ChangeType = "rotation_updated"
	ChangeTypeRotationDisabled ChangeType = "rotation_disabled"
)
