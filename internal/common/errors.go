// Package common defines shared sentinel errors used across the
// teamkeeper bootstrap, identity and team layers. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Identity-store errors.
	ErrorFieldAbsent = errors.New("identity field absent")

	// Bootstrap errors. Both are terminal for the current bootstrap
	// attempt; neither is retried automatically.
	ErrTeamReconstruction   = errors.New("team reconstruction failed")
	ErrRootDocumentMismatch = errors.New("team has a different root document id")

	// Machine lifecycle errors.
	ErrSessionNotReady      = errors.New("session not published")
	ErrBootstrapTerminated  = errors.New("bootstrap already reached a terminal state")
	ErrUserNameNotRequested = errors.New("user name not awaited in this state")
)
