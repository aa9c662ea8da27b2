// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"votiz/models"
)

// ErrStopped is returned by actions issued after the loop has shut down.
var ErrStopped = errors.New("client: loop stopped")

const (
	defaultRefreshInterval   = 5 * time.Second
	defaultCountdownInterval = 1 * time.Second
)

// Listener receives loop callbacks. Both are invoked from the loop
// goroutine and must return promptly.
type Listener struct {
	// OnPolls is called with a fresh snapshot after every state change.
	OnPolls func(polls []models.Poll)
	// OnNotice is called with user-facing text worth surfacing, such as
	// a poll being observed ending.
	OnNotice func(text string)
}

// Options configures a Loop. Zero values select the defaults.
type Options struct {
	RefreshInterval   time.Duration
	CountdownInterval time.Duration
	Now               func() time.Time
	Logger            *slog.Logger
	Listener          Listener
}

// Loop keeps a local snapshot of the viewer's polls synchronized with a
// Store. It pulls the full list on an interval, ticks countdowns once a
// second, and re-pulls as soon as a deadline passes so tallies reveal
// without waiting for the next scheduled refresh.
//
// All state is owned by the single goroutine inside Run. Actions from
// other goroutines are funneled through a channel and answered on a
// per-action reply channel, so there is no locking.
type Loop struct {
	store Store
	opts  Options

	polls   []models.Poll
	tracker *expiryTracker

	actions chan action
	done    chan struct{}
}

type action struct {
	run func(ctx context.Context) error
	// mutation marks actions that change server state and therefore
	// warrant an immediate pull before the caller is answered.
	mutation bool
	reply    chan error
}

func NewLoop(store Store, opts Options) *Loop {
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = defaultRefreshInterval
	}
	if opts.CountdownInterval <= 0 {
		opts.CountdownInterval = defaultCountdownInterval
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Loop{
		store:   store,
		opts:    opts,
		tracker: newExpiryTracker(),
		actions: make(chan action),
		done:    make(chan struct{}),
	}
}

// Run drives the loop until ctx is cancelled. It performs an initial
// synchronization before entering the tick cycle; a failure there is
// returned rather than swallowed, since the caller has no data yet.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)

	if err := l.reconcile(ctx, false); err != nil {
		return err
	}

	refresh := time.NewTicker(l.opts.RefreshInterval)
	defer refresh.Stop()
	countdown := time.NewTicker(l.opts.CountdownInterval)
	defer countdown.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-refresh.C:
			if err := l.reconcile(ctx, true); err != nil {
				return err
			}

		case <-countdown.C:
			if err := l.tick(ctx); err != nil {
				return err
			}

		case act := <-l.actions:
			err := act.run(ctx)
			if err == nil && act.mutation {
				// The server's answer just changed; refresh the
				// snapshot before answering the caller.
				if rerr := l.reconcile(ctx, true); rerr != nil {
					return rerr
				}
			}
			act.reply <- err
			if ctx.Err() != nil {
				return ctx.Err()
			}
		}
	}
}

// Polls enqueues a snapshot read. The returned slice is a copy and safe
// to retain.
func (l *Loop) Polls(ctx context.Context) ([]models.Poll, error) {
	var snapshot []models.Poll
	err := l.read(ctx, func() {
		snapshot = append([]models.Poll(nil), l.polls...)
	})
	return snapshot, err
}

// CreatePoll validates the request locally, then creates the poll and
// returns it as the server resolved it for the creator.
func (l *Loop) CreatePoll(ctx context.Context, req models.CreatePollRequest) (models.Poll, error) {
	if err := req.Validate(l.opts.Now()); err != nil {
		return models.Poll{}, err
	}
	var created models.Poll
	err := l.submit(ctx, func(ctx context.Context) error {
		p, err := l.store.CreatePoll(ctx, req)
		if err != nil {
			return err
		}
		created = p
		return nil
	})
	return created, err
}

func (l *Loop) Vote(ctx context.Context, pollID, optionID int64) error {
	return l.submit(ctx, func(ctx context.Context) error {
		return l.store.Vote(ctx, pollID, optionID)
	})
}

func (l *Loop) Join(ctx context.Context, inviteCode string) (int64, error) {
	var pollID int64
	err := l.submit(ctx, func(ctx context.Context) error {
		id, err := l.store.Join(ctx, inviteCode)
		if err != nil {
			return err
		}
		pollID = id
		return nil
	})
	return pollID, err
}

func (l *Loop) Leave(ctx context.Context, pollID int64) error {
	return l.submit(ctx, func(ctx context.Context) error {
		return l.store.Leave(ctx, pollID)
	})
}

func (l *Loop) EndPoll(ctx context.Context, pollID int64) error {
	return l.submit(ctx, func(ctx context.Context) error {
		return l.store.EndPoll(ctx, pollID)
	})
}

func (l *Loop) DeletePoll(ctx context.Context, pollID int64) error {
	return l.submit(ctx, func(ctx context.Context) error {
		return l.store.DeletePoll(ctx, pollID)
	})
}

// submit hands a mutation to the loop goroutine and waits for its answer.
func (l *Loop) submit(ctx context.Context, fn func(ctx context.Context) error) error {
	return l.send(ctx, action{run: fn, mutation: true, reply: make(chan error, 1)})
}

// read runs fn on the loop goroutine without touching the server.
func (l *Loop) read(ctx context.Context, fn func()) error {
	run := func(context.Context) error { fn(); return nil }
	return l.send(ctx, action{run: run, reply: make(chan error, 1)})
}

func (l *Loop) send(ctx context.Context, act action) error {
	select {
	case l.actions <- act:
	case <-l.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-act.reply:
		return err
	case <-l.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// reconcile replaces the local snapshot with the server's list, sorted
// newest first. A background failure is logged and the stale snapshot
// kept; the next tick will try again.
func (l *Loop) reconcile(ctx context.Context, background bool) error {
	polls, err := l.store.ListPolls(ctx)
	if err != nil {
		if background {
			l.opts.Logger.Warn("poll refresh failed", "error", err)
			return nil
		}
		return err
	}

	sort.Slice(polls, func(i, j int) bool { return polls[i].ID > polls[j].ID })
	l.polls = polls

	present := make(map[int64]bool, len(polls))
	now := l.opts.Now()
	for _, p := range polls {
		present[p.ID] = true
		if Remaining(p, now) > 0 {
			l.tracker.observeActive(p.ID)
		}
	}
	l.tracker.prune(present)

	l.notifyPolls()
	return nil
}

// tick advances the countdowns. A poll whose deadline just passed is
// flipped inactive locally right away, announced, and reconciled against
// the server once, so its revealed tallies arrive without waiting out the
// refresh interval.
func (l *Loop) tick(ctx context.Context) error {
	now := l.opts.Now()

	expired := false
	for i := range l.polls {
		p := &l.polls[i]
		if Remaining(*p, now) > 0 {
			l.tracker.observeActive(p.ID)
			continue
		}
		if !p.IsActive {
			continue
		}
		if l.tracker.fire(p.ID) {
			p.IsActive = false
			expired = true
			l.notice("Poll \"" + p.Title + "\" has ended")
		}
	}

	if !expired {
		l.notifyPolls()
		return nil
	}
	return l.reconcile(ctx, true)
}

func (l *Loop) notifyPolls() {
	if l.opts.Listener.OnPolls == nil {
		return
	}
	snapshot := append([]models.Poll(nil), l.polls...)
	l.callListener(func() { l.opts.Listener.OnPolls(snapshot) })
}

func (l *Loop) notice(text string) {
	if l.opts.Listener.OnNotice == nil {
		return
	}
	l.callListener(func() { l.opts.Listener.OnNotice(text) })
}

// callListener keeps a misbehaving listener from taking the loop down.
func (l *Loop) callListener(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.opts.Logger.Error("listener panicked", "panic", r)
		}
	}()
	fn()
}
