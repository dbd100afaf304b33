package request

import "github.com/frahmantamala/timeclock/internal/core/pagination"

// TableView is one page of the shared requests table.
type TableView struct {
	Rows      []Row
	Page      pagination.Page
	Status    string
	BasePath  string
	ShowOwner bool
	CanReview bool
}

// NewTableView filters rows by status and cuts the requested window.
func NewTableView(rows []Row, status string, page pagination.Page, basePath string) TableView {
	if status == "" {
		status = "all"
	}
	window, page := pagination.Slice(FilterByStatus(rows, status), page)
	return TableView{
		Rows:     window,
		Page:     page,
		Status:   status,
		BasePath: basePath,
	}
}

func (v TableView) Statuses() []string {
	return []string{"all", "PENDING", "APPROVED", "REJECTED"}
}
