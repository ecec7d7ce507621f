package guidepost

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/guidepost/guidepost/event"
	"github.com/guidepost/guidepost/history"
	"github.com/guidepost/guidepost/id"
	"github.com/guidepost/guidepost/nav"
	"github.com/guidepost/guidepost/resume"
	"github.com/guidepost/guidepost/retry"
	"github.com/guidepost/guidepost/route"
	"github.com/guidepost/guidepost/session"
	"github.com/guidepost/guidepost/step"
	"github.com/guidepost/guidepost/store"
	"github.com/guidepost/guidepost/store/memory"
)

// Navigator is the navigation orchestrator: it owns per-session history,
// the prerequisite/completion computation, the context cache and retry
// layer, local persistence, and the native history bridge. It composes
// the route directory and resume advisor and is the only component
// exposed to callers.
//
// Construct one with New. Safe for concurrent use.
type Navigator struct {
	config   Config
	logger   *slog.Logger
	store    store.Store
	routes   *route.Directory
	advisor  *resume.Advisor
	sessions session.Service
	platform history.Platform
	bus      *event.Bus
	log      *history.Log
	policy   retry.Policy
	online   func() bool
	now      func() time.Time

	// flight collapses concurrent context requests per session.
	flight singleflight.Group

	mu        sync.Mutex
	timers    map[string]*time.Timer
	detachPop func()
	closed    bool
}

// New creates a Navigator with the given collaborators and options.
func New(routes *route.Directory, advisor *resume.Advisor, sessions session.Service, opts ...Option) (*Navigator, error) {
	n := &Navigator{
		config:   DefaultConfig(),
		logger:   slog.Default(),
		routes:   routes,
		advisor:  advisor,
		sessions: sessions,
		platform: history.NopPlatform{},
		policy:   retry.Default(),
		online:   func() bool { return true },
		now:      time.Now,
		timers:   make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		if err := opt(n); err != nil {
			return nil, err
		}
	}
	if n.store == nil {
		n.store = memory.New()
	}
	if n.bus == nil {
		n.bus = event.NewBus()
	}
	if n.policy.IsRetryable == nil {
		n.policy.IsRetryable = Retryable
	}
	n.log = history.NewLog(n.store, n.config.HistoryRetention)
	n.detachPop = n.platform.OnPopped(n.handlePopped)
	return n, nil
}

// Logger returns the navigator's logger.
func (n *Navigator) Logger() *slog.Logger { return n.logger }

// Bus returns the notification bus navigation signals are emitted on.
func (n *Navigator) Bus() *event.Bus { return n.bus }

// Routes returns the route directory.
func (n *Navigator) Routes() *route.Directory { return n.routes }

// Advisor returns the resume advisor.
func (n *Navigator) Advisor() *resume.Advisor { return n.advisor }

// ── Navigation writes ───────────────────────────────

// PushState appends a state to its session's history, writes the
// corresponding entry to the native history mechanism, and emits a
// pushed notification. Native history failures are logged and swallowed:
// navigation bookkeeping must never crash the caller.
func (n *Navigator) PushState(ctx context.Context, st nav.State) error {
	if err := n.checkOpen(); err != nil {
		return err
	}
	if err := validateTarget(st.SessionID, st.Step); err != nil {
		return err
	}

	if st.ID.IsNil() {
		st.ID = id.NewEntryID()
	}
	if st.Timestamp.IsZero() {
		st.Timestamp = n.now().UTC()
	}
	if st.Transition == "" {
		st.Transition = nav.TransitionPush
	}
	address := n.routes.AddressForState(st)
	st.SourceAddress = address

	if err := n.log.Push(ctx, st); err != nil {
		return fmt.Errorf("guidepost: push state: %w", err)
	}

	entry := history.Entry{
		SessionID: st.SessionID,
		Step:      st.Step,
		Substep:   st.Substep,
		Timestamp: st.Timestamp,
		Title:     n.config.Product + " - " + n.routes.Title(st.Step),
		Address:   address,
	}
	if err := n.platform.PushEntry(entry); err != nil {
		n.logger.Warn("native history push failed",
			slog.String("session_id", st.SessionID),
			slog.String("step", st.Step.String()),
			slog.String("error", err.Error()),
		)
	}

	kind := event.KindPushed
	if st.Transition == nav.TransitionReplace {
		kind = event.KindReplaced
	}
	n.bus.Emit(kind, st)
	return nil
}

// NavigateTo requests a debounced navigation. The request starts
// pending; a newer request for the same (session, step) destination
// within the debounce window aborts it, and only the most recent request
// is ever committed. Commit failures are logged, not surfaced, since the
// commit happens after the caller has moved on.
func (n *Navigator) NavigateTo(ctx context.Context, sessionID string, s step.Step, substep string, params map[string]string) error {
	if err := n.checkOpen(); err != nil {
		return err
	}
	if err := validateTarget(sessionID, s); err != nil {
		return err
	}

	st := nav.State{
		ID:         id.NewEntryID(),
		SessionID:  sessionID,
		Step:       s,
		Substep:    substep,
		Timestamp:  n.now().UTC(),
		Parameters: params,
		Transition: nav.TransitionPush,
	}

	if n.config.DebounceWindow <= 0 {
		return n.PushState(ctx, st)
	}

	key := sessionID + "\x00" + string(s)

	n.mu.Lock()
	defer n.mu.Unlock()
	if t, ok := n.timers[key]; ok {
		// Supersede the pending request; it never executes.
		t.Stop()
		n.logger.Debug("navigation debounced",
			slog.String("session_id", sessionID),
			slog.String("step", s.String()),
		)
	}
	n.timers[key] = time.AfterFunc(n.config.DebounceWindow, func() {
		n.mu.Lock()
		delete(n.timers, key)
		closed := n.closed
		n.mu.Unlock()
		if closed {
			return
		}
		if err := n.PushState(context.Background(), st); err != nil {
			n.logger.Warn("debounced navigation failed",
				slog.String("session_id", sessionID),
				slog.String("step", s.String()),
				slog.String("error", err.Error()),
			)
		}
	})
	return nil
}

// Back pops the session's most recent history entry and returns the new
// tail tagged as a back transition, emitting a popped notification.
// Returns (nil, nil) when there is no current state or fewer than two
// entries — that is not an error.
func (n *Navigator) Back(ctx context.Context, sessionID string) (*nav.State, error) {
	if err := n.checkOpen(); err != nil {
		return nil, err
	}
	if sessionID == "" {
		return nil, ErrEmptySessionID
	}

	st, err := n.log.Back(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("guidepost: back: %w", err)
	}
	if st == nil {
		return nil, nil
	}
	st.SourceAddress = n.routes.AddressForState(*st)
	n.bus.Emit(event.KindPopped, *st)
	return st, nil
}

// handlePopped reacts to externally-driven navigation reported by the
// platform (native back/forward): it resolves the navigation state, keeps
// the history log in step with the native stack, and emits a popped
// notification for the rest of the application.
func (n *Navigator) handlePopped(e history.Entry) {
	ctx := context.Background()

	st := n.routes.ParseAddress(e.Address)
	if st == nil {
		// The native entry predates this process or carries a foreign
		// address; rebuild what we can from the entry itself.
		st = &nav.State{
			ID:        id.NewEntryID(),
			SessionID: e.SessionID,
			Step:      e.Step,
			Substep:   e.Substep,
			Timestamp: n.now().UTC(),
		}
	}
	st.Transition = nav.TransitionBack

	// A native back leaves our log one entry ahead of the native stack.
	if tail, err := n.log.Tail(ctx, st.SessionID); err == nil && tail != nil && tail.Step != st.Step {
		if _, err := n.log.Back(ctx, st.SessionID); err != nil {
			n.logger.Warn("history sync after native pop failed",
				slog.String("session_id", st.SessionID),
				slog.String("error", err.Error()),
			)
		}
	}

	n.bus.Emit(event.KindPopped, *st)
}

// ── Navigation reads ────────────────────────────────

// Context computes the navigation context for a session: reachable and
// blocked paths, recommended next steps, completion percentage, and
// critical issues.
//
// Offline, a cached context within its freshness window is served
// without a fetch. Otherwise the snapshot is fetched through the retry
// policy, with concurrent calls for the same session sharing one fetch.
// A missing session always surfaces ErrSessionNotFound; transient fetch
// failures fall back to a fresh cached context when one exists.
func (n *Navigator) Context(ctx context.Context, sessionID string) (*nav.Context, error) {
	if err := n.checkOpen(); err != nil {
		return nil, err
	}
	if sessionID == "" {
		return nil, ErrEmptySessionID
	}

	if !n.online() {
		if cached := n.cachedContext(ctx, sessionID); cached != nil {
			return cached, nil
		}
	}

	v, err, _ := n.flight.Do(sessionID, func() (any, error) {
		snap, fetchErr := retry.DoValue(ctx, n.policy, func(ctx context.Context) (*session.Snapshot, error) {
			s, err := n.sessions.GetSnapshot(ctx, sessionID)
			if err != nil {
				return nil, err
			}
			if s == nil {
				return nil, fmt.Errorf("%w: %q", ErrSessionNotFound, sessionID)
			}
			return s, nil
		})
		if fetchErr != nil {
			return nil, fetchErr
		}

		c := n.buildContext(snap)
		if err := n.store.SetContext(ctx, sessionID, c, n.now().UTC()); err != nil {
			n.logger.Warn("context cache write failed",
				slog.String("session_id", sessionID),
				slog.String("error", err.Error()),
			)
		}
		return c, nil
	})
	if err != nil {
		if !Retryable(err) {
			return nil, err
		}
		// Transient failure after the retry budget: degrade to a fresh
		// cached context when one exists.
		if cached := n.cachedContext(ctx, sessionID); cached != nil {
			n.logger.Warn("serving cached context after fetch failure",
				slog.String("session_id", sessionID),
				slog.String("error", err.Error()),
			)
			return cached, nil
		}
		return nil, fmt.Errorf("guidepost: navigation context: %w", err)
	}
	return v.(*nav.Context), nil
}

// cachedContext returns the session's cached context when it exists and
// is within its freshness window. Corrupt cache entries are deleted and
// treated as a miss.
func (n *Navigator) cachedContext(ctx context.Context, sessionID string) *nav.Context {
	c, storedAt, err := n.store.Context(ctx, sessionID)
	if err != nil {
		n.logger.Warn("context cache read failed",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
		if delErr := n.store.DeleteContext(ctx, sessionID); delErr != nil {
			n.logger.Warn("context cache delete failed",
				slog.String("session_id", sessionID),
				slog.String("error", delErr.Error()),
			)
		}
		return nil
	}
	if c == nil {
		return nil
	}
	if n.now().Sub(storedAt) > n.config.ContextFreshness {
		return nil
	}
	return c
}

// buildContext derives the navigation context from a snapshot. Pure and
// synchronous: everything after the snapshot fetch happens here with no
// further I/O.
func (n *Navigator) buildContext(snap *session.Snapshot) *nav.Context {
	done := snap.CompletedSet()

	var available, blocked []nav.Path
	for _, def := range n.routes.Routes() {
		s := def.Step
		accessible := step.Accessible(s, done)
		p := nav.Path{
			Step:              s,
			Address:           n.routes.AddressFor(snap.SessionID, s, "", nil),
			Label:             def.Title,
			Accessible:        accessible,
			Completed:         done[s],
			Required:          s.Required(),
			EstimatedDuration: def.EstimatedDuration,
			Prerequisites:     step.Prerequisites(s),
		}
		if accessible {
			available = append(available, p)
		} else {
			for _, pre := range p.Prerequisites {
				if !done[pre] {
					p.Warnings = append(p.Warnings, fmt.Sprintf("complete %s first", n.routes.Title(pre)))
				}
			}
			blocked = append(blocked, p)
		}
	}

	return &nav.Context{
		SessionID:            snap.SessionID,
		CurrentAddress:       n.routes.AddressFor(snap.SessionID, snap.CurrentStep, "", nil),
		AvailablePaths:       available,
		BlockedPaths:         blocked,
		RecommendedNextSteps: recommendedNext(done),
		CompletionPercent: step.Completion(step.Progress{
			Completed:       done,
			Current:         snap.CurrentStep,
			CurrentPercent:  snap.CurrentPercent(),
			EnabledFeatures: len(snap.EnabledFeatures),
		}),
		CriticalIssues: criticalIssues(snap),
	}
}

// recommendedNext applies the advisor's first-branch rule to the
// completed set: the first incomplete main step, then the optional
// enrichment stage when it is open, then the terminal step.
func recommendedNext(done map[step.Step]bool) []step.Step {
	var out []step.Step
	for _, s := range step.MainSteps() {
		if !done[s] {
			out = append(out, s)
			break
		}
	}
	if !done[step.Enrichment] && step.Accessible(step.Enrichment, done) {
		out = append(out, step.Enrichment)
	}
	if len(out) == 0 {
		out = append(out, step.Completed)
	}
	return out
}

func criticalIssues(snap *session.Snapshot) []string {
	var issues []string
	if c := len(snap.ValidationIssues); c > 0 {
		issues = append(issues, fmt.Sprintf("%d unresolved validation issue(s)", c))
	}
	if snap.FailedCheckpoints > 0 {
		issues = append(issues, fmt.Sprintf("%d failed checkpoint(s)", snap.FailedCheckpoints))
	}
	return issues
}

// Breadcrumbs builds the trail for a session: one entry per completed or
// current step, in canonical order, tagged with the same DAG-based
// accessibility check Context uses.
func (n *Navigator) Breadcrumbs(snap *session.Snapshot) []nav.Breadcrumb {
	done := snap.CompletedSet()

	var crumbs []nav.Breadcrumb
	for _, s := range step.Pipeline() {
		if !done[s] && s != snap.CurrentStep {
			continue
		}
		def, _ := n.routes.RouteFor(s)
		crumbs = append(crumbs, nav.Breadcrumb{
			ID:          "crumb-" + s.String(),
			Label:       def.Title,
			Address:     n.routes.AddressFor(snap.SessionID, s, "", nil),
			Step:        s,
			Completed:   done[s],
			Accessible:  step.Accessible(s, done),
			Icon:        def.Icon,
			Description: def.Description,
		})
	}
	return crumbs
}

// Resume delegates to the advisor for a resumption recommendation.
func (n *Navigator) Resume(snap *session.Snapshot) resume.Recommendation {
	return n.advisor.SuggestResumePoint(snap)
}

// ── Persistence across reloads ──────────────────────

// SaveBackup persists every session's history as a versioned backup,
// for restoration after a reload or tab duplication.
func (n *Navigator) SaveBackup(ctx context.Context) error {
	if err := n.checkOpen(); err != nil {
		return err
	}

	ids, err := n.store.SessionIDs(ctx)
	if err != nil {
		return fmt.Errorf("guidepost: save backup: %w", err)
	}
	histories := make(map[string][]nav.State, len(ids))
	for _, sid := range ids {
		states, err := n.store.History(ctx, sid)
		if err != nil {
			return fmt.Errorf("guidepost: save backup %q: %w", sid, err)
		}
		histories[sid] = states
	}
	b := &store.Backup{
		Histories: histories,
		Timestamp: n.now().UTC(),
		Version:   n.config.BackupVersion,
	}
	if err := n.store.SaveBackup(ctx, b); err != nil {
		return fmt.Errorf("guidepost: save backup: %w", err)
	}
	return nil
}

// RestoreBackup restores per-session histories from the persisted
// backup. Backups past the freshness window, with a foreign version, or
// with a corrupt payload are discarded rather than restored; corruption
// is never surfaced as an error. Reports whether a restore happened.
func (n *Navigator) RestoreBackup(ctx context.Context) (bool, error) {
	if err := n.checkOpen(); err != nil {
		return false, err
	}

	b, err := n.store.LoadBackup(ctx)
	if err != nil {
		n.logger.Warn("backup load failed, discarding",
			slog.String("error", err.Error()),
		)
		if clearErr := n.store.ClearBackup(ctx); clearErr != nil {
			n.logger.Warn("backup clear failed", slog.String("error", clearErr.Error()))
		}
		return false, nil
	}
	if b == nil {
		return false, nil
	}
	if b.Version != n.config.BackupVersion || n.now().Sub(b.Timestamp) > n.config.BackupFreshness {
		n.logger.Info("discarding stale navigation backup",
			slog.String("version", b.Version),
			slog.Time("saved_at", b.Timestamp),
		)
		if err := n.store.ClearBackup(ctx); err != nil {
			n.logger.Warn("backup clear failed", slog.String("error", err.Error()))
		}
		return false, nil
	}

	for sid, states := range b.Histories {
		if err := n.store.SetHistory(ctx, sid, states); err != nil {
			return false, fmt.Errorf("guidepost: restore %q: %w", sid, err)
		}
	}
	return true, nil
}

// ── Lifecycle ───────────────────────────────────────

// Cleanup cancels pending debounced navigations, drops the context
// cache, detaches the platform listener and all bus subscribers, and
// truncates every session's history to the retention bound. The
// navigator rejects further calls with ErrClosed.
func (n *Navigator) Cleanup(ctx context.Context) error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	for key, t := range n.timers {
		t.Stop()
		delete(n.timers, key)
	}
	n.mu.Unlock()

	if err := n.store.ClearContexts(ctx); err != nil {
		n.logger.Warn("context cache clear failed", slog.String("error", err.Error()))
	}
	if err := n.log.TruncateAll(ctx); err != nil {
		n.logger.Warn("history truncation failed", slog.String("error", err.Error()))
	}
	n.detachPop()
	n.bus.Close()
	return nil
}

func (n *Navigator) checkOpen() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return ErrClosed
	}
	return nil
}

func validateTarget(sessionID string, s step.Step) error {
	if sessionID == "" {
		return ErrEmptySessionID
	}
	if !s.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStep, s)
	}
	return nil
}
