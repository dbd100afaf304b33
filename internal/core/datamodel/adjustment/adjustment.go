package adjustment

import "github.com/frahmantamala/timeclock/internal/core/datamodel"

type Type string

const (
	TypeEntryCorrection Type = "ENTRY_CORRECTION"
	TypeExitCorrection  Type = "EXIT_CORRECTION"
	TypeManualEntry     Type = "MANUAL_ENTRY"
	TypeOther           Type = "OTHER"
)

func (t Type) Valid() bool {
	switch t {
	case TypeEntryCorrection, TypeExitCorrection, TypeManualEntry, TypeOther:
		return true
	}
	return false
}

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Adjustment mirrors TimeAdjustmentOut.
type Adjustment struct {
	ID                string              `json:"id"`
	UserID            string              `json:"user_id"`
	TimeRecordID      *string             `json:"time_record_id,omitempty"`
	AdjustedTimestamp datamodel.Timestamp `json:"adjusted_timestamp"`
	AdjustedType      Type                `json:"adjusted_type"`
	Reason            string              `json:"reason"`
	Status            Status              `json:"status"`
	ReviewedBy        *string             `json:"reviewed_by,omitempty"`
	ReviewComment     *string             `json:"review_comment,omitempty"`
}

type Create struct {
	TimeRecordID      string              `json:"time_record_id"`
	AdjustedTimestamp datamodel.Timestamp `json:"adjusted_timestamp"`
	AdjustedType      Type                `json:"adjusted_type"`
	Reason            string              `json:"reason"`
}
