// Package accrual runs the monthly leave accrual for every active employee.
package accrual

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/frahmantamala/timeclock/internal"
	"github.com/frahmantamala/timeclock/internal/apiclient"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/leavebalance"
	"github.com/frahmantamala/timeclock/internal/core/datamodel/user"
)

var ErrMissingCredentials = errors.New("accrual credentials are not configured")

type UpstreamAPI interface {
	Login(ctx context.Context, username, password string) (*user.Token, error)
	ListUsers(ctx context.Context) ([]user.User, error)
}

// Accruer is satisfied by leavebalance.Service, which also announces each accrual.
type Accruer interface {
	Accrue(ctx context.Context, userID string) (*leavebalance.Balance, error)
}

type Failure struct {
	UserID string
	Err    error
}

type Summary struct {
	Queued   int
	Accrued  int
	Skipped  int
	Failures []Failure
}

type Runner struct {
	api     UpstreamAPI
	accruer Accruer
	cfg     internal.AccrualConfig
	logger  *slog.Logger
}

func NewRunner(api UpstreamAPI, accruer Accruer, cfg internal.AccrualConfig, logger *slog.Logger) *Runner {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 4
	}
	if cfg.JobQueueSize <= 0 {
		cfg.JobQueueSize = 100
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 10 * time.Second
	}
	return &Runner{api: api, accruer: accruer, cfg: cfg, logger: logger}
}

// Eligible keeps active employees; HR accounts do not accrue through this run.
func Eligible(users []user.User) []user.User {
	out := make([]user.User, 0, len(users))
	for _, u := range users {
		if u.IsActive && u.Role == user.RoleEmployee {
			out = append(out, u)
		}
	}
	return out
}

// Run signs in as HR, then accrues every eligible employee through a bounded worker pool.
// A failure for one employee is recorded in the summary and does not stop the others.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	if r.cfg.Username == "" || r.cfg.Password == "" {
		return nil, ErrMissingCredentials
	}

	token, err := r.api.Login(ctx, r.cfg.Username, r.cfg.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to sign in for accrual: %w", err)
	}
	if token.AccessToken == "" {
		return nil, internal.ErrMissingAccessToken
	}
	ctx = apiclient.WithToken(ctx, token.AccessToken)

	users, err := r.api.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	eligible := Eligible(users)

	summary := &Summary{Skipped: len(users) - len(eligible)}
	if len(eligible) == 0 {
		r.logger.Info("no employees to accrue", "users", len(users))
		return summary, nil
	}

	pool := newPool(ctx, r.cfg.MaxWorkers, r.cfg.JobQueueSize, r.logger)

	var mu sync.Mutex
	pool.start(func(job Job) {
		jobCtx, cancel := context.WithTimeout(pool.ctx, r.cfg.JobTimeout)
		defer cancel()

		b, err := r.accruer.Accrue(jobCtx, job.UserID)

		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			r.logger.Warn("accrual failed", "user_id", job.UserID, "username", job.Username, "error", err)
			summary.Failures = append(summary.Failures, Failure{UserID: job.UserID, Err: err})
			return
		}
		r.logger.Info("leave accrued",
			"user_id", job.UserID,
			"leave_type", b.LeaveType,
			"remaining_days", b.RemainingDays)
		summary.Accrued++
	})

	for _, u := range eligible {
		if err := pool.enqueue(Job{UserID: u.ID, Username: u.Username}); err != nil {
			pool.shutdown()
			return summary, err
		}
		summary.Queued++
	}

	pool.drain()
	if err := ctx.Err(); err != nil {
		return summary, fmt.Errorf("accrual cancelled: %w", err)
	}

	r.logger.Info("accrual run complete",
		"queued", summary.Queued,
		"accrued", summary.Accrued,
		"failed", len(summary.Failures),
		"skipped", summary.Skipped)
	return summary, nil
}

type pool struct {
	jobQueue   chan Job
	workerPool chan chan Job
	maxWorkers int
	logger     *slog.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	pending sync.WaitGroup
	once    sync.Once
}

func newPool(parent context.Context, maxWorkers, queueSize int, logger *slog.Logger) *pool {
	ctx, cancel := context.WithCancel(parent)
	return &pool{
		jobQueue:   make(chan Job, queueSize),
		workerPool: make(chan chan Job, maxWorkers),
		maxWorkers: maxWorkers,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
	}
}

func (p *pool) start(process func(Job)) {
	p.once.Do(func() {
		tracked := func(job Job) {
			defer p.pending.Done()
			process(job)
		}
		for i := 0; i < p.maxWorkers; i++ {
			NewWorker(i, p.workerPool, p.logger).Start(p.ctx, &p.wg, tracked)
		}

		p.wg.Add(1)
		go p.dispatch()

		p.logger.Info("accrual worker pool started",
			"max_workers", p.maxWorkers,
			"queue_size", cap(p.jobQueue))
	})
}

func (p *pool) dispatch() {
	defer p.wg.Done()

	for {
		select {
		case job := <-p.jobQueue:
			select {
			case jobChannel := <-p.workerPool:
				select {
				case jobChannel <- job:
				case <-p.ctx.Done():
					p.pending.Done()
					return
				}
			case <-p.ctx.Done():
				p.pending.Done()
				return
			}
		case <-p.ctx.Done():
			p.logger.Debug("dispatcher shutting down")
			return
		}
	}
}

// enqueue blocks while the queue is full; it gives up only when the run is cancelled.
func (p *pool) enqueue(job Job) error {
	p.pending.Add(1)
	select {
	case p.jobQueue <- job:
		return nil
	case <-p.ctx.Done():
		p.pending.Done()
		return fmt.Errorf("accrual cancelled: %w", p.ctx.Err())
	}
}

// drain waits for queued jobs to finish, unless the run is cancelled first, then stops the workers.
func (p *pool) drain() {
	done := make(chan struct{})
	go func() {
		p.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-p.ctx.Done():
	}
	p.shutdown()
}

func (p *pool) shutdown() {
	p.cancel()
	p.wg.Wait()

	// nothing reads the queue any more; release what is left so pending.Wait returns
	for {
		select {
		case <-p.jobQueue:
			p.pending.Done()
		default:
			return
		}
	}
}
