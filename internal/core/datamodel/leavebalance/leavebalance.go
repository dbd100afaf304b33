package leavebalance

// Balance mirrors LeaveBalanceRead.
type Balance struct {
	ID            string   `json:"id"`
	UserID        string   `json:"user_id"`
	UserName      string   `json:"user_name,omitempty"`
	LeaveType     string   `json:"leave_type"`
	Year          int      `json:"year"`
	TotalDays     *float64 `json:"total_days,omitempty"`
	UsedDays      *float64 `json:"used_days,omitempty"`
	RemainingDays float64  `json:"remaining_days"`
}

type Create struct {
	UserID        string   `json:"user_id"`
	LeaveType     string   `json:"leave_type"`
	Year          int      `json:"year"`
	RemainingDays float64  `json:"remaining_days"`
	TotalDays     *float64 `json:"total_days,omitempty"`
}

type Update struct {
	RemainingDays *float64 `json:"remaining_days,omitempty"`
	LeaveType     *string  `json:"leave_type,omitempty"`
	Year          *int     `json:"year,omitempty"`
}
