package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"reeferlink/domain"
	"reeferlink/helpers"
	"reeferlink/interfaces"

	"github.com/benbjohnson/clock"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
)

// OrchestratorConfig holds run budgets and cloud credentials.
type OrchestratorConfig struct {
	// LocalBudget and CloudBudget bound a whole run.
	LocalBudget time.Duration
	CloudBudget time.Duration
	// ProbeTimeout bounds each fallback probe.
	ProbeTimeout time.Duration
	// AnnouncedProbeTimeout bounds the probe of an announced or manually entered address.
	AnnouncedProbeTimeout time.Duration
	CloudProbeTimeout     time.Duration

	CloudAPIKey  string
	Organization string
}

// DefaultOrchestratorConfig returns the documented budgets.
func DefaultOrchestratorConfig() OrchestratorConfig {
	return OrchestratorConfig{
		LocalBudget:           10 * time.Second,
		CloudBudget:           12 * time.Second,
		ProbeTimeout:          1500 * time.Millisecond,
		AnnouncedProbeTimeout: 5 * time.Second,
		CloudProbeTimeout:     10 * time.Second,
	}
}

// OrchestratorOption customizes an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithListener enables multicast discovery for local runs.
func WithListener(l *ServiceDiscoveryListener) OrchestratorOption {
	return func(o *Orchestrator) { o.listener = l }
}

// WithClock replaces the wall clock, e.g. with clock.NewMock() in tests.
func WithClock(c clock.Clock) OrchestratorOption {
	return func(o *Orchestrator) { o.clock = c }
}

// WithMetrics records runs, probes and state changes.
func WithMetrics(m *Metrics) OrchestratorOption {
	return func(o *Orchestrator) { o.metrics = m }
}

// WithObserver receives every state transition, in order, from the goroutine that caused it.
// The observer must not block and must not call Connect, ConnectAddress, Reconnect, Cancel or Reset.
func WithObserver(fn func(domain.Transition)) OrchestratorOption {
	return func(o *Orchestrator) { o.observer = fn }
}

var _ interfaces.Connector = (*Orchestrator)(nil)

// Orchestrator runs discovery: it races the multicast listener against the fallback scan under one
// deadline, commits the first reachable candidate and reports the outcome. At most one run is active.
type Orchestrator struct {
	generator *CandidateGenerator
	prober    interfaces.Prober
	store     *SessionStore
	listener  *ServiceDiscoveryListener
	clock     clock.Clock
	metrics   *Metrics
	observer  func(domain.Transition)
	cfg       OrchestratorConfig
	logger    log.Logger

	// notifyMu orders state changes with their observer calls.
	notifyMu sync.Mutex

	mu      sync.Mutex
	state   domain.State
	current *run
}

type run struct {
	id         string
	cancel     context.CancelFunc
	done       chan struct{}
	committing bool // under Orchestrator.mu
}

func NewOrchestrator(
	generator *CandidateGenerator,
	prober interfaces.Prober,
	store *SessionStore,
	cfg OrchestratorConfig,
	logger log.Logger,
	opts ...OrchestratorOption,
) *Orchestrator {
	o := &Orchestrator{
		generator: helpers.NilPanic(generator, "service.orchestrator.go: generator is required"),
		prober:    helpers.NilPanic(prober, "service.orchestrator.go: prober is required"),
		store:     helpers.NilPanic(store, "service.orchestrator.go: store is required"),
		clock:     clock.New(),
		cfg:       cfg,
		logger:    log.With(helpers.NilPanic(logger, "service.orchestrator.go: logger is required"), "component", "orchestrator"),
		state:     domain.StateIdle,
	}
	helpers.DurationPanic(cfg.LocalBudget, "service.orchestrator.go: local budget must be positive")
	helpers.DurationPanic(cfg.CloudBudget, "service.orchestrator.go: cloud budget must be positive")
	helpers.DurationPanic(cfg.ProbeTimeout, "service.orchestrator.go: probe timeout must be positive")
	helpers.DurationPanic(cfg.AnnouncedProbeTimeout, "service.orchestrator.go: announced probe timeout must be positive")
	helpers.DurationPanic(cfg.CloudProbeTimeout, "service.orchestrator.go: cloud probe timeout must be positive")
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// State returns the current state.
func (o *Orchestrator) State() domain.State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Session returns the committed session, if any.
func (o *Orchestrator) Session() (domain.ConnectionSession, bool) {
	return o.store.Load()
}

// plan is what one run probes and how long it may take.
type plan struct {
	mode         domain.ConnectionMode
	seq          *CandidateSeq
	probeTimeout time.Duration
	budget       time.Duration
	discovery    bool
}

// Connect runs discovery for an explicit mode choice and commits the winner.
//
// Returns:
// 1) (outcome, nil) with outcome.Candidate set when a candidate answered and the session was committed;
// 2) mode_required before any state change when hint is ModeHintNone;
// 3) no_candidates or all_unreachable when the run failed; the stored session is untouched;
// 4) cancelled when Cancel was called or ctx ended; the state is back to Idle.
func (o *Orchestrator) Connect(ctx context.Context, hint domain.ModeHint) (domain.DiscoveryOutcome, error) {
	strategies, err := SelectStrategies(hint)
	if err != nil {
		return domain.DiscoveryOutcome{}, err
	}
	return o.execute(ctx, o.planFor(strategies))
}

// planFor turns the selected strategies into a run plan. The fallback sequence is empty when the
// strategies leave the scan out.
func (o *Orchestrator) planFor(strategies Strategies) plan {
	p := plan{mode: strategies.Mode}
	switch {
	case strategies.RunCloudProbe:
		p.seq = o.generator.Generate(domain.ModeCloud, "")
		p.probeTimeout = o.cfg.CloudProbeTimeout
		p.budget = o.cfg.CloudBudget
	default:
		p.seq = newCandidateSeq(nil, nil)
		if strategies.RunFallbackScan {
			prior := ""
			if s, ok := o.store.Load(); ok && s.Mode == domain.ModeLocal {
				prior = s.Address
			}
			p.seq = o.generator.Generate(domain.ModeLocal, prior)
		}
		p.probeTimeout = o.cfg.ProbeTimeout
		p.budget = o.cfg.LocalBudget
		p.discovery = strategies.RunServiceDiscovery && o.listener != nil
	}
	return p
}

// ConnectAddress probes one explicitly entered local address and commits it when it answers.
// An empty address, or one with a scheme other than http, is a bad_parameter error.
func (o *Orchestrator) ConnectAddress(ctx context.Context, address string) (domain.DiscoveryOutcome, error) {
	if err := CheckLocalAddress(address); err != nil {
		return domain.DiscoveryOutcome{}, err
	}
	return o.execute(ctx, plan{
		mode:         domain.ModeLocal,
		seq:          o.generator.Single(address, domain.SourceManual),
		probeTimeout: o.cfg.AnnouncedProbeTimeout,
		budget:       o.cfg.LocalBudget,
	})
}

// Reconnect probes the committed session's endpoint once. On success the session is committed
// again with a fresh timestamp; on failure it is left as it was. Returns entity_not_found when no
// session is stored.
func (o *Orchestrator) Reconnect(ctx context.Context) (domain.DiscoveryOutcome, error) {
	session, ok := o.store.Load()
	if !ok {
		return domain.DiscoveryOutcome{}, NewEntityNotFoundError("no stored session", nil)
	}
	p := plan{mode: session.Mode}
	switch session.Mode {
	case domain.ModeCloud:
		p.seq = newCandidateSeq([]domain.Candidate{{
			Address:      session.CloudEndpoint,
			Protocol:     domain.ProtocolHTTP,
			Mode:         domain.ModeCloud,
			Source:       domain.SourcePrior,
			Organization: session.Organization,
		}}, nil)
		p.probeTimeout = o.cfg.CloudProbeTimeout
		p.budget = o.cfg.CloudBudget
	default:
		p.seq = o.generator.Single(session.Address, domain.SourcePrior)
		p.probeTimeout = o.cfg.AnnouncedProbeTimeout
		p.budget = o.cfg.LocalBudget
	}
	return o.execute(ctx, p)
}

// Cancel abandons the active run, if any, and waits until it has returned to Idle. A run that
// already picked its winner is not abandoned: Cancel waits for its commit and the run ends in
// Succeeded (or Failed when the store rejects the session).
func (o *Orchestrator) Cancel() {
	o.mu.Lock()
	r := o.current
	if r == nil {
		o.mu.Unlock()
		return
	}
	if !r.committing {
		r.cancel()
	}
	o.mu.Unlock()
	<-r.done
}

// Reset cancels any active run and clears the stored session.
func (o *Orchestrator) Reset(ctx context.Context) error {
	o.Cancel()
	if err := o.store.Clear(ctx); err != nil {
		return err
	}
	o.transition(nil, domain.StateIdle, nil, false)
	return nil
}

// beginRun aborts and awaits any active run, then installs a new one in state Discovering.
func (o *Orchestrator) beginRun(parent context.Context) (*run, context.Context) {
	o.mu.Lock()
	for o.current != nil {
		prev := o.current
		if !prev.committing {
			prev.cancel()
		}
		o.mu.Unlock()
		<-prev.done
		o.mu.Lock()
	}
	ctx, cancel := context.WithCancel(parent)
	r := &run{id: uuid.NewString(), cancel: cancel, done: make(chan struct{})}
	o.current = r
	o.mu.Unlock()

	o.transition(r, domain.StateDiscovering, nil, false)
	return r, ctx
}

// transition moves the state machine and notifies the observer. Transitions from a run that is no
// longer current are dropped. With finish set the run is detached so its stragglers cannot move
// the state any more. r is nil for transitions outside a run.
func (o *Orchestrator) transition(r *run, to domain.State, c *domain.Candidate, finish bool) {
	o.notifyMu.Lock()
	defer o.notifyMu.Unlock()

	o.mu.Lock()
	if r != nil && o.current != r {
		o.mu.Unlock()
		return
	}
	if r == nil && o.current != nil {
		o.mu.Unlock()
		return
	}
	from := o.state
	o.state = to
	if finish {
		o.current = nil
	}
	o.mu.Unlock()

	o.metrics.setState(to)
	if o.observer != nil {
		t := domain.Transition{From: from, To: to, Candidate: c}
		if r != nil {
			t.RunID = r.id
		}
		o.observer(t)
	}
}

// attemptLog collects probe attempts from concurrent probers.
type attemptLog struct {
	mu       sync.Mutex
	started  atomic.Int32
	attempts []domain.ProbeAttempt
}

func (a *attemptLog) add(p domain.ProbeAttempt) {
	a.mu.Lock()
	a.attempts = append(a.attempts, p)
	a.mu.Unlock()
}

func (a *attemptLog) snapshot() []domain.ProbeAttempt {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.ProbeAttempt(nil), a.attempts...)
}

func (o *Orchestrator) execute(parent context.Context, p plan) (domain.DiscoveryOutcome, error) {
	r, runCtx := o.beginRun(parent)
	defer close(r.done)
	defer r.cancel()

	logger := log.With(o.logger, "run_id", r.id, "mode", p.mode)
	start := o.clock.Now()
	deadline := start.Add(p.budget)
	deadlineCtx, cancelDeadline := o.clock.WithTimeout(runCtx, p.budget)
	defer cancelDeadline()

	_ = level.Info(logger).Log("msg", "discovery started", "budget", p.budget, "service_discovery", p.discovery)

	attempts := &attemptLog{}
	outcome := domain.DiscoveryOutcome{RunID: r.id, Mode: p.mode}
	wins := make(chan domain.Candidate, 1)
	announced := make(chan domain.Candidate, 1)

	fallbackDone := make(chan struct{})
	go func() {
		defer close(fallbackDone)
		for deadlineCtx.Err() == nil {
			c, ok := p.seq.Next()
			if !ok {
				return
			}
			if o.probe(deadlineCtx, r, c, p.probeTimeout, deadline, attempts, logger) == domain.Reachable {
				offer(wins, c)
				return
			}
		}
	}()

	var listenerDone <-chan struct{}
	if p.discovery {
		h := o.listener.Start(deadlineCtx, func(c domain.Candidate) { offer(announced, c) }, func(err error) {
			outcome.DiscoveryErr = err
		})
		defer h.Stop()
		listenerDone = h.Done()
	}
	listening := listenerDone != nil
	scanning := true
	var announcedDone chan struct{}

	for {
		select {
		case <-deadlineCtx.Done():
			if err := runCtx.Err(); err != nil {
				return o.cancelled(r, outcome, attempts, start, logger, err)
			}
			select {
			case c := <-wins:
				return o.succeeded(parent, r, runCtx, outcome, c, attempts, start, logger)
			default:
			}
			_ = level.Info(logger).Log("msg", "discovery deadline elapsed")
			return o.failed(r, outcome, attempts, start, logger)

		case c := <-wins:
			return o.succeeded(parent, r, runCtx, outcome, c, attempts, start, logger)

		case c := <-announced:
			announcedDone = make(chan struct{})
			done := announcedDone
			go func() {
				defer close(done)
				if o.probe(deadlineCtx, r, c, o.cfg.AnnouncedProbeTimeout, deadline, attempts, logger) == domain.Reachable {
					offer(wins, c)
				}
			}()

		case <-fallbackDone:
			fallbackDone = nil
			scanning = false
		case <-listenerDone:
			listenerDone = nil
			listening = false
		case <-announcedDone:
			announcedDone = nil
		}

		if scanning || listening || announcedDone != nil || len(announced) > 0 {
			continue
		}
		select {
		case c := <-wins:
			return o.succeeded(parent, r, runCtx, outcome, c, attempts, start, logger)
		default:
		}
		if err := runCtx.Err(); err != nil {
			return o.cancelled(r, outcome, attempts, start, logger, err)
		}
		return o.failed(r, outcome, attempts, start, logger)
	}
}

// offer hands a candidate to the run goroutine. Only the first one is kept.
func offer(ch chan domain.Candidate, c domain.Candidate) {
	select {
	case ch <- c:
	default:
	}
}

func (o *Orchestrator) probe(
	ctx context.Context,
	r *run,
	c domain.Candidate,
	timeout time.Duration,
	deadline time.Time,
	attempts *attemptLog,
	logger log.Logger,
) domain.ProbeResult {
	if remaining := deadline.Sub(o.clock.Now()); remaining < timeout {
		timeout = remaining
	}
	if timeout <= 0 || ctx.Err() != nil {
		return domain.TimedOut
	}
	attempts.started.Add(1)
	o.transition(r, domain.StateProbing, &c, false)

	start := o.clock.Now()
	result := o.prober.Probe(ctx, c, timeout)
	elapsed := o.clock.Since(start)

	attempts.add(domain.ProbeAttempt{Candidate: c, Result: result, Elapsed: elapsed})
	o.metrics.observeProbe(c, result)
	_ = level.Debug(logger).Log("msg", "probe", "address", c.Address, "source", c.Source, "result", result, "elapsed", elapsed)
	return result
}

func (o *Orchestrator) succeeded(
	parent context.Context,
	r *run,
	runCtx context.Context,
	outcome domain.DiscoveryOutcome,
	c domain.Candidate,
	attempts *attemptLog,
	start time.Time,
	logger log.Logger,
) (domain.DiscoveryOutcome, error) {
	o.mu.Lock()
	if err := runCtx.Err(); err != nil {
		o.mu.Unlock()
		return o.cancelled(r, outcome, attempts, start, logger, err)
	}
	r.committing = true
	o.mu.Unlock()

	outcome.Attempts = attempts.snapshot()
	session := o.sessionFor(c)
	if err := o.store.Commit(context.WithoutCancel(parent), session); err != nil {
		_ = level.Error(logger).Log("msg", "failed to commit session", "address", c.Address, "err", err)
		o.transition(r, domain.StateFailed, nil, true)
		o.metrics.observeRun(outcome.Mode, "failed", o.clock.Since(start))
		return outcome, err
	}

	outcome.Candidate = &c
	o.transition(r, domain.StateSucceeded, &c, true)
	o.metrics.observeRun(outcome.Mode, "succeeded", o.clock.Since(start))
	_ = level.Info(logger).Log("msg", "discovery succeeded", "address", c.Address, "source", c.Source, "probes", len(outcome.Attempts))
	return outcome, nil
}

func (o *Orchestrator) failed(
	r *run,
	outcome domain.DiscoveryOutcome,
	attempts *attemptLog,
	start time.Time,
	logger log.Logger,
) (domain.DiscoveryOutcome, error) {
	outcome.Attempts = attempts.snapshot()
	var err error
	if attempts.started.Load() == 0 {
		outcome.Reason = domain.ReasonNoCandidates
		err = NewNoCandidatesError(fmt.Sprintf("nothing to probe for mode %s", outcome.Mode))
	} else {
		outcome.Reason = domain.ReasonAllUnreachable
		err = NewAllUnreachableError(fmt.Sprintf("%d probes, none reachable", attempts.started.Load()), outcome.DiscoveryErr)
	}
	o.transition(r, domain.StateFailed, nil, true)
	o.metrics.observeRun(outcome.Mode, "failed", o.clock.Since(start))
	_ = level.Info(logger).Log("msg", "discovery failed", "reason", outcome.Reason, "probes", attempts.started.Load())
	return outcome, err
}

func (o *Orchestrator) cancelled(
	r *run,
	outcome domain.DiscoveryOutcome,
	attempts *attemptLog,
	start time.Time,
	logger log.Logger,
	cause error,
) (domain.DiscoveryOutcome, error) {
	outcome.Attempts = attempts.snapshot()
	outcome.Reason = domain.ReasonCancelled
	o.transition(r, domain.StateIdle, nil, true)
	o.metrics.observeRun(outcome.Mode, "cancelled", o.clock.Since(start))
	_ = level.Info(logger).Log("msg", "discovery cancelled")
	return outcome, NewCancelledError(cause)
}

func (o *Orchestrator) sessionFor(c domain.Candidate) domain.ConnectionSession {
	session := domain.ConnectionSession{
		Mode:         c.Mode,
		Organization: o.cfg.Organization,
		Configured:   true,
		ConfiguredAt: o.clock.Now(),
	}
	if c.Mode == domain.ModeCloud {
		session.CloudEndpoint = c.Address
		session.CloudAPIKey = o.cfg.CloudAPIKey
		session.Organization = c.Organization
	} else {
		session.Address = c.Address
	}
	return session
}
