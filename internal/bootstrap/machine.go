package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/teamkeeper/internal/common"
	"github.com/dmitrijs2005/teamkeeper/internal/identity"
	"github.com/dmitrijs2005/teamkeeper/internal/logging"
	"github.com/dmitrijs2005/teamkeeper/internal/session"
	"github.com/dmitrijs2005/teamkeeper/internal/team"
)

// Machine is the bootstrap state machine. One machine runs per process;
// all its methods are safe for concurrent use, but the intended model is
// a single bootstrap task driving it, with downstream readers calling
// Session once it is published.
type Machine struct {
	store  identity.Store
	setup  SetupProvider
	loader TeamLoader
	log    logging.Logger

	mu          sync.Mutex
	state       State
	liveTeam    *team.Team
	session     *session.Context
	terminalErr error

	// reloadDone guards the one reload allowed per process lifetime.
	reloadDone bool
}

type Option func(*Machine)

func WithLogger(l logging.Logger) Option {
	return func(m *Machine) { m.log = l }
}

func NewMachine(store identity.Store, setup SetupProvider, loader TeamLoader, opts ...Option) *Machine {
	m := &Machine{
		store:  store,
		setup:  setup,
		loader: loader,
		log:    logging.Nop(),
		state:  StateAwaitingUserName,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Observe evaluates the current state from the persisted identity record
// and the live team held in memory. Observing StateReloading triggers the
// reconstruction of the team from durable storage; the reload runs at
// most once per process, so concurrent observations of the same persisted
// identity result in exactly one reconstruction call.
func (m *Machine) Observe(ctx context.Context) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.Terminal() {
		return m.state, m.terminalErr
	}

	rec, err := m.store.Load(ctx)
	if err != nil {
		return m.state, fmt.Errorf("failed to load identity record: %w", err)
	}

	st := SelectState(m.observationFrom(rec))
	if st != StateReloading {
		m.state = st
		return st, nil
	}
	return m.reloadLocked(ctx, rec)
}

// SubmitUserName persists the user-supplied display name and moves the
// machine out of StateAwaitingUserName. Only valid while a name is
// actually awaited.
func (m *Machine) SubmitUserName(ctx context.Context, userName string) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.Terminal() {
		return m.state, common.ErrBootstrapTerminated
	}
	if userName == "" {
		return m.state, errors.New("user name must not be empty")
	}

	rec, err := m.store.Load(ctx)
	if err != nil {
		return m.state, fmt.Errorf("failed to load identity record: %w", err)
	}
	if rec.UserName != nil {
		return m.state, common.ErrUserNameNotRequested
	}

	if err := m.store.SetUserName(ctx, userName); err != nil {
		return m.state, fmt.Errorf("failed to persist user name: %w", err)
	}
	rec.UserName = &userName

	m.state = SelectState(m.observationFrom(rec))
	m.log.Info(ctx, "user name chosen", "user_name", userName, "state", m.state)
	return m.state, nil
}

// RunFirstUseSetup delegates to the setup collaborator to create a new
// device/user identity and create or join a team, persists the resulting
// identity fields, and publishes the session using the just-constructed
// objects. A setup failure leaves the machine in StateFirstUseSetup; the
// caller may retry.
func (m *Machine) RunFirstUseSetup(ctx context.Context) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.Terminal() {
		return m.state, common.ErrBootstrapTerminated
	}

	rec, err := m.store.Load(ctx)
	if err != nil {
		return m.state, fmt.Errorf("failed to load identity record: %w", err)
	}
	if st := SelectState(m.observationFrom(rec)); st != StateFirstUseSetup {
		m.state = st
		return st, fmt.Errorf("first-use setup not applicable in state %q", st)
	}

	res, err := m.setup.CreateOrLoadIdentity(ctx, *rec.UserName)
	if err != nil {
		m.log.Warn(ctx, "first-use setup failed", "error", err)
		return m.state, fmt.Errorf("first-use setup failed: %w", err)
	}

	if got := team.RootDocumentIDOf(res.Team); got != res.RootDocumentID {
		return m.failLocked(ctx, fmt.Errorf("%w: setup produced %q, team carries %q",
			common.ErrRootDocumentMismatch, res.RootDocumentID, got))
	}

	shareID := team.DeriveShareID(res.Team)
	if err := m.store.SetUser(ctx, res.User); err != nil {
		return m.state, fmt.Errorf("failed to persist user: %w", err)
	}
	if err := m.store.SetDevice(ctx, res.Device); err != nil {
		return m.state, fmt.Errorf("failed to persist device: %w", err)
	}
	if err := m.store.SetShareID(ctx, shareID); err != nil {
		return m.state, fmt.Errorf("failed to persist share id: %w", err)
	}
	if err := m.store.SetRootDocumentID(ctx, res.RootDocumentID); err != nil {
		return m.state, fmt.Errorf("failed to persist root document id: %w", err)
	}

	// No reload needed: the just-constructed objects are used directly.
	m.liveTeam = res.Team
	m.session = session.New(res.Device, res.User, res.Team, res.Auth, res.Repo)
	m.state = StateReady
	m.log.Info(ctx, "first-use setup complete",
		"share_id", shareID, "root_document_id", res.RootDocumentID)
	return m.state, nil
}

// reloadLocked reconstructs the team for the persisted share and checks
// that its root document id matches the persisted one. Either direction
// of silent auto-resolution could redirect the user to the wrong
// document, so any disagreement is terminal.
func (m *Machine) reloadLocked(ctx context.Context, rec identity.Record) (State, error) {
	if m.reloadDone {
		return m.state, m.terminalErr
	}
	m.reloadDone = true
	m.state = StateReloading

	shareID := *rec.ShareID
	m.log.Info(ctx, "reconstructing team", "share_id", shareID)

	res, err := m.loader.ReconstructTeam(ctx, shareID)
	if err != nil {
		return m.failLocked(ctx, fmt.Errorf("%w: %w", common.ErrTeamReconstruction, err))
	}

	got := team.RootDocumentIDOf(res.Team)
	if rec.RootDocumentID == nil || got != *rec.RootDocumentID {
		persisted := team.DocumentID("")
		if rec.RootDocumentID != nil {
			persisted = *rec.RootDocumentID
		}
		return m.failLocked(ctx, fmt.Errorf("%w: persisted %q, team carries %q",
			common.ErrRootDocumentMismatch, persisted, got))
	}

	// Defensive re-persist of the unchanged value.
	if err := m.store.SetRootDocumentID(ctx, got); err != nil {
		return m.state, fmt.Errorf("failed to persist root document id: %w", err)
	}

	m.liveTeam = res.Team
	m.session = session.New(*rec.Device, *rec.User, res.Team, res.Auth, res.Repo)
	m.state = StateReady
	m.log.Info(ctx, "session ready", "share_id", shareID, "root_document_id", got)
	return m.state, nil
}

func (m *Machine) failLocked(ctx context.Context, err error) (State, error) {
	m.state = StateFatalInconsistency
	m.terminalErr = err
	m.log.Error(ctx, "bootstrap failed", "error", err)
	return m.state, err
}

func (m *Machine) observationFrom(rec identity.Record) Observation {
	return Observation{
		UserName:       rec.UserName != nil,
		Device:         rec.Device != nil,
		User:           rec.User != nil,
		ShareID:        rec.ShareID != nil,
		RootDocumentID: rec.RootDocumentID != nil,
		LiveTeam:       m.liveTeam != nil,
	}
}

// Current returns the last decided state without re-evaluating it.
func (m *Machine) Current() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Err returns the terminal error, if the machine reached
// StateFatalInconsistency.
func (m *Machine) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.terminalErr
}

// Session returns the published session. Before StateReady it returns
// common.ErrSessionNotReady; in StateFatalInconsistency it returns the
// terminal error.
func (m *Machine) Session() (*session.Context, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session != nil {
		return m.session, nil
	}
	if m.terminalErr != nil {
		return nil, m.terminalErr
	}
	return nil, common.ErrSessionNotReady
}
