package apiclient

import (
	"context"
	"net/http"

	"github.com/frahmantamala/timeclock/internal/core/datamodel/leavebalance"
)

func (c *Client) MyLeaveBalance(ctx context.Context) (*leavebalance.Balance, error) {
	var b leavebalance.Balance
	if err := c.get(ctx, "/leave_balances/me", nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) ListLeaveBalances(ctx context.Context) ([]leavebalance.Balance, error) {
	var list []leavebalance.Balance
	if err := c.get(ctx, "/leave_balances/", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) CreateLeaveBalance(ctx context.Context, payload leavebalance.Create) (*leavebalance.Balance, error) {
	var b leavebalance.Balance
	if err := c.send(ctx, http.MethodPost, "/leave_balances/", payload, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) UpdateLeaveBalance(ctx context.Context, id string, payload leavebalance.Update) (*leavebalance.Balance, error) {
	var b leavebalance.Balance
	if err := c.send(ctx, http.MethodPatch, "/leave_balances/"+id, payload, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// AccrueLeave runs the monthly accrual for one employee.
func (c *Client) AccrueLeave(ctx context.Context, userID string) (*leavebalance.Balance, error) {
	var b leavebalance.Balance
	if err := c.send(ctx, http.MethodPost, "/leave_balances/"+userID+"/accrue", nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}
