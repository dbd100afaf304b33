package timeoff

type LeaveType string

const (
	LeaveVacation LeaveType = "VACATION"
	LeaveSick     LeaveType = "SICK"
	LeavePersonal LeaveType = "PERSONAL"
	LeaveOther    LeaveType = "OTHER"
)

func (t LeaveType) Valid() bool {
	switch t {
	case LeaveVacation, LeaveSick, LeavePersonal, LeaveOther:
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

// Request mirrors TimeOffRequestOut. Dates stay as YYYY-MM-DD strings on the wire.
type Request struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	FullName      string    `json:"full_name,omitempty"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	LeaveType     LeaveType `json:"leave_type"`
	DaysRequested float64   `json:"days_requested"`
	Reason        string    `json:"reason,omitempty"`
	Status        Status    `json:"status"`
	ReviewedBy    *string   `json:"reviewed_by,omitempty"`
	ReviewComment *string   `json:"review_comment,omitempty"`
}

type Create struct {
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	LeaveType     LeaveType `json:"leave_type"`
	DaysRequested float64   `json:"days_requested"`
	Reason        string    `json:"reason"`
}

type Update struct {
	Status        *Status `json:"status,omitempty"`
	ReviewComment *string `json:"review_comment,omitempty"`
}
