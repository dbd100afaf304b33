package dashboard

import (
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/frahmantamala/timeclock/internal"
	"github.com/frahmantamala/timeclock/internal/apiclient"
	"github.com/frahmantamala/timeclock/internal/core/pagination"
	"github.com/frahmantamala/timeclock/internal/transport"
	"github.com/frahmantamala/timeclock/internal/transport/web"
	"github.com/frahmantamala/timeclock/pkg/logger"
)

const recentLimit = 5

type Handler struct {
	*transport.BaseHandler
	Clock       Clock
	Balances    Balances
	Adjustments Adjustments
	TimeOff     TimeOff
	now         func() time.Time
}

func NewHandler(base *transport.BaseHandler, clock Clock, balances Balances, adjustments Adjustments, timeOff TimeOff) *Handler {
	return &Handler{
		BaseHandler: base,
		Clock:       clock,
		Balances:    balances,
		Adjustments: adjustments,
		TimeOff:     timeOff,
		now:         time.Now,
	}
}

// Show loads every dashboard panel concurrently. A failed panel leaves its zero value and
// raises one error toast; the other panels keep loading and the page itself always renders.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, _ := internal.PrincipalFromContext(ctx)
	now := h.now().In(h.Renderer.Location())

	// a plain group: one failing panel must not cancel the others
	var (
		view View
		g    errgroup.Group
	)

	g.Go(func() error {
		next, err := h.Clock.NextRecordType(ctx)
		view.NextAction = next
		return err
	})
	g.Go(func() error {
		weekly, err := h.Clock.Weekly(ctx, now)
		view.Weekly = weekly
		return err
	})
	g.Go(func() error {
		monthly, err := h.Clock.Monthly(ctx, now)
		view.Monthly = monthly
		return err
	})
	g.Go(func() error {
		recent, _, err := h.Clock.ListOwn(ctx, pagination.Page{Limit: recentLimit})
		view.Recent = recent
		return err
	})
	g.Go(func() error {
		balance, err := h.Balances.Mine(ctx)
		view.Balance = balance
		return err
	})

	if principal.IsHR() {
		g.Go(func() error {
			list, err := h.Adjustments.List(ctx)
			view.PendingAdjust = countPendingAdjustments(list)
			return err
		})
		g.Go(func() error {
			list, err := h.TimeOff.List(ctx)
			view.PendingTimeOff = countPendingTimeOff(list)
			return err
		})
	}

	page := web.Page{Title: "Dashboard", Active: "dashboard"}
	if err := g.Wait(); err != nil {
		if apiclient.IsUnauthorized(err) && h.OnUnauthorized != nil {
			h.OnUnauthorized(w, r)
			return
		}
		logger.From(ctx).Error("failed to load dashboard", "error", err)
		view.LoadFailed = true
		page.Flash = web.Failure(transport.ErrorMessage(err, "could not load dashboard"))
	}

	page.Data = view
	h.Render(w, r, http.StatusOK, "dashboard", page)
}
