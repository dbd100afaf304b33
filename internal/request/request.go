// Package request flattens adjustments and time-off requests into one row shape so both can be
// shown, coloured and filtered by the same table.
package request

import (
	"fmt"
	"strings"
	"time"

	"github.com/frahmantamala/timeclock/internal/core/datamodel/adjustment"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/timeoff"
)

type Kind string

const (
	KindAdjustment Kind = "adjustment"
	KindTimeOff    Kind = "timeoff"
)

const (
	ColorPending  = "amber"
	ColorApproved = "green"
	ColorRejected = "red"
	ColorUnknown  = "grey"
)

type Row struct {
	Kind          Kind
	ID            string
	OwnerID       string
	OwnerName     string
	Category      string
	When          string
	Reason        string
	Status        string
	ReviewedBy    string
	ReviewComment string
}

func FromAdjustment(a adjustment.Adjustment, loc *time.Location) Row {
	if loc == nil {
		loc = time.UTC
	}
	when := ""
	if !a.AdjustedTimestamp.IsZero() {
		when = a.AdjustedTimestamp.In(loc).Format("2006-01-02 15:04")
	}
	return Row{
		Kind:          KindAdjustment,
		ID:            a.ID,
		OwnerID:       a.UserID,
		Category:      string(a.AdjustedType),
		When:          when,
		Reason:        a.Reason,
		Status:        string(a.Status),
		ReviewedBy:    deref(a.ReviewedBy),
		ReviewComment: deref(a.ReviewComment),
	}
}

func FromAdjustments(list []adjustment.Adjustment, loc *time.Location) []Row {
	rows := make([]Row, 0, len(list))
	for _, a := range list {
		rows = append(rows, FromAdjustment(a, loc))
	}
	return rows
}

func FromTimeOff(t timeoff.Request) Row {
	when := t.StartDate
	if t.EndDate != "" && t.EndDate != t.StartDate {
		when = fmt.Sprintf("%s → %s", t.StartDate, t.EndDate)
	}
	if t.DaysRequested > 0 {
		when = fmt.Sprintf("%s (%g d)", when, t.DaysRequested)
	}
	return Row{
		Kind:          KindTimeOff,
		ID:            t.ID,
		OwnerID:       t.UserID,
		OwnerName:     t.FullName,
		Category:      string(t.LeaveType),
		When:          when,
		Reason:        t.Reason,
		Status:        string(t.Status),
		ReviewedBy:    deref(t.ReviewedBy),
		ReviewComment: deref(t.ReviewComment),
	}
}

func FromTimeOffs(list []timeoff.Request) []Row {
	rows := make([]Row, 0, len(list))
	for _, t := range list {
		rows = append(rows, FromTimeOff(t))
	}
	return rows
}

func (r Row) StatusColor() string {
	return StatusColor(r.Status)
}

func (r Row) StatusLabel() string {
	return StatusLabel(r.Status)
}

func (r Row) IsPending() bool {
	return strings.EqualFold(r.Status, "PENDING")
}

// Owner prefers the display name and falls back to the user id.
func (r Row) Owner() string {
	if r.OwnerName != "" {
		return r.OwnerName
	}
	return r.OwnerID
}

func StatusColor(status string) string {
	switch strings.ToUpper(status) {
	case "PENDING":
		return ColorPending
	case "APPROVED":
		return ColorApproved
	case "REJECTED":
		return ColorRejected
	}
	return ColorUnknown
}

// StatusLabel turns PENDING into Pending.
func StatusLabel(status string) string {
	if status == "" {
		return ""
	}
	lower := strings.ToLower(status)
	return strings.ToUpper(lower[:1]) + lower[1:]
}

// FilterByStatus keeps rows whose status matches; "" and "all" keep everything.
func FilterByStatus(rows []Row, status string) []Row {
	if status == "" || strings.EqualFold(status, "all") {
		return rows
	}
	filtered := make([]Row, 0, len(rows))
	for _, r := range rows {
		if strings.EqualFold(r.Status, status) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
