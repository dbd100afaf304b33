// Package leavebalance shows and maintains per-year leave entitlements.
package leavebalance

import (
	"context"

	"github.com/frahmantamala/timeclock/internal/core/datamodel/leavebalance"
)

type ServiceAPI interface {
	Mine(ctx context.Context) (*leavebalance.Balance, error)
	List(ctx context.Context) ([]leavebalance.Balance, error)
	Create(ctx context.Context, form CreateForm) (*leavebalance.Balance, error)
	Update(ctx context.Context, id string, form UpdateForm) (*leavebalance.Balance, error)
	Accrue(ctx context.Context, userID string) (*leavebalance.Balance, error)
}

type UpstreamAPI interface {
	MyLeaveBalance(ctx context.Context) (*leavebalance.Balance, error)
	ListLeaveBalances(ctx context.Context) ([]leavebalance.Balance, error)
	CreateLeaveBalance(ctx context.Context, payload leavebalance.Create) (*leavebalance.Balance, error)
	UpdateLeaveBalance(ctx context.Context, id string, payload leavebalance.Update) (*leavebalance.Balance, error)
	AccrueLeave(ctx context.Context, userID string) (*leavebalance.Balance, error)
}
