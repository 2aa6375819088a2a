// Package bootstrap decides, from persisted identity plus asynchronously
// loaded team/auth/repo objects, which application state the process is
// in, performs the consistency check guarding against identity/document
// drift, and publishes the session once bootstrap succeeds.
package bootstrap

// State is one of the five application states the bootstrap machine can
// be in. Ready and FatalInconsistency are terminal.
type State string

const (
	// StateAwaitingUserName: no user name chosen yet; interactive setup
	// must submit one before anything else can happen.
	StateAwaitingUserName State = "awaiting_user_name"

	// StateFirstUseSetup: a name is chosen but the device/user/share
	// identity has not been created yet.
	StateFirstUseSetup State = "first_use_setup"

	// StateReloading: a complete identity is persisted but no live team
	// is held in memory; the team must be reconstructed from durable
	// storage.
	StateReloading State = "reloading"

	// StateReady: the session is published.
	StateReady State = "ready"

	// StateFatalInconsistency: reconstruction failed or the persisted
	// root document id disagrees with the team's. Not retried.
	StateFatalInconsistency State = "fatal_inconsistency"
)

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool {
	return s == StateReady || s == StateFatalInconsistency
}

// Observation is the presence/absence snapshot state selection is
// computed from.
type Observation struct {
	UserName       bool
	Device         bool
	User           bool
	ShareID        bool
	RootDocumentID bool
	LiveTeam       bool
}

// SelectState maps an observation to a state. It is total and pure, and
// the rules apply in precedence order: no user name wins over missing
// identity, which wins over a missing live team.
//
// RootDocumentID presence does not participate in selection; a persisted
// identity missing only its root document id still reloads, and the
// reload's consistency check is what catches the drift.
func SelectState(obs Observation) State {
	switch {
	case !obs.UserName:
		return StateAwaitingUserName
	case !obs.Device || !obs.User || !obs.ShareID:
		return StateFirstUseSetup
	case !obs.LiveTeam:
		return StateReloading
	default:
		return StateReady
	}
}
