package timetracking

import "github.com/frahmantamala/timeclock/internal/core/datamodel"

type RecordType string

const (
	CheckIn  RecordType = "CHECK_IN"
	CheckOut RecordType = "CHECK_OUT"
)

// Record mirrors TimeTrackingOut / TimeTrackingSearchOut.
type Record struct {
	ID           string               `json:"id"`
	UserID       string               `json:"user_id"`
	RecordType   RecordType           `json:"record_type"`
	Timestamp    datamodel.Timestamp  `json:"timestamp"`
	Description  string               `json:"description,omitempty"`
	CreateDate   datamodel.Timestamp  `json:"create_date"`
	UpdateDate   *datamodel.Timestamp `json:"update_date,omitempty"`
	UserFullName string               `json:"user_full_name,omitempty"`
	UserUsername string               `json:"user_username,omitempty"`
	UserEmail    string               `json:"user_email,omitempty"`
}

type Create struct {
	RecordType  RecordType `json:"record_type"`
	Description string     `json:"description,omitempty"`
}

type Page struct {
	Total   int      `json:"total"`
	Count   int      `json:"count"`
	Limit   int      `json:"limit"`
	Offset  int      `json:"offset"`
	Results []Record `json:"results"`
}

type WeeklyHours struct {
	HoursWorked float64 `json:"hours_worked"`
	WeeklyLimit float64 `json:"weekly_limit"`
	OverLimit   float64 `json:"over_limit"`
}

type MonthlyHours struct {
	HoursWorked  float64 `json:"hours_worked"`
	MonthlyLimit float64 `json:"monthly_limit"`
	OverLimit    float64 `json:"over_limit"`
}
