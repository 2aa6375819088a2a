// Package team defines the materialized, conflict-resolved view of a
// share: its members, devices and registered sync servers, plus the pure
// selectors the rest of the application queries it with.
//
// A Team value is an immutable snapshot. New team states produced by the
// signed-log engine are swapped in as fresh snapshots; nothing in this
// package mutates a snapshot in place, so snapshots are safe to read from
// any number of goroutines.
package team

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Host identifies a sync endpoint, e.g. "sync.example.com". Compared by
// exact value equality; callers canonicalize before comparing.
type Host string

// ShareID is the stable identifier of a share, derived deterministically
// from the team's root identity key.
type ShareID string

// DocumentID identifies a replicated document. Each team is bound to a
// single canonical root document.
type DocumentID string

// UserID and DeviceID identify the per-person and per-installation
// identities known to a team.
type (
	UserID   string
	DeviceID string
)

// Role is a permission level granted to a member.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Server is a sync endpoint the team has registered.
type Server struct {
	Host Host `json:"host"`
}

// Member is a user known to the team.
type Member struct {
	ID       UserID `json:"id"`
	UserName string `json:"user_name"`
	Roles    []Role `json:"roles,omitempty"`
}

// Device is an installation enrolled for one of the team's members.
type Device struct {
	ID        DeviceID `json:"id"`
	UserID    UserID   `json:"user_id"`
	Name      string   `json:"name"`
	PublicKey []byte   `json:"public_key"`
}

// State is the raw reduced team state as produced by the signed-log
// engine (or loaded back from durable storage).
type State struct {
	Name           string     `json:"name"`
	RootKey        []byte     `json:"root_key"`
	RootDocumentID DocumentID `json:"root_document_id"`
	Members        []Member   `json:"members,omitempty"`
	Devices        []Device   `json:"devices,omitempty"`
	Servers        []Server   `json:"servers,omitempty"`
}

// Team is an immutable snapshot over a State. The zero value is not
// usable; construct with New.
type Team struct {
	state State
}

// New builds a snapshot from the given state. The state is copied, so the
// caller may keep mutating its own value afterwards.
func New(state State) *Team {
	return &Team{state: cloneState(state)}
}

// State returns a deep copy of the underlying state, e.g. for
// serialization into durable storage.
func (t *Team) State() State {
	return cloneState(t.state)
}

// Name returns the team's display name.
func (t *Team) Name() string { return t.state.Name }

// RootDocumentID returns the id of the canonical top-level document this
// team is bound to.
func (t *Team) RootDocumentID() DocumentID { return t.state.RootDocumentID }

// Servers returns a copy of the registered sync server set.
func (t *Team) Servers() []Server {
	return append([]Server(nil), t.state.Servers...)
}

// Members returns a copy of the member set.
func (t *Team) Members() []Member {
	members := make([]Member, len(t.state.Members))
	for i, m := range t.state.Members {
		members[i] = m
		members[i].Roles = append([]Role(nil), m.Roles...)
	}
	return members
}

// Devices returns a copy of the enrolled device set.
func (t *Team) Devices() []Device {
	devices := make([]Device, len(t.state.Devices))
	for i, d := range t.state.Devices {
		devices[i] = d
		devices[i].PublicKey = append([]byte(nil), d.PublicKey...)
	}
	return devices
}

// shareIDBytes is the truncated length of the root-key digest encoded
// into a ShareID.
const shareIDBytes = 12

// DeriveShareID computes the stable share identifier from the team's
// root identity key. The derivation is deterministic: the same team
// always yields the same id, on every device.
func DeriveShareID(t *Team) ShareID {
	sum := blake2b.Sum256(t.state.RootKey)
	return ShareID(hex.EncodeToString(sum[:shareIDBytes]))
}

// RootDocumentIDOf is the package-level projection form of
// (*Team).RootDocumentID, for symmetry with DeriveShareID.
func RootDocumentIDOf(t *Team) DocumentID { return t.RootDocumentID() }

func cloneState(s State) State {
	out := s
	out.RootKey = append([]byte(nil), s.RootKey...)
	out.Members = make([]Member, len(s.Members))
	for i, m := range s.Members {
		out.Members[i] = m
		out.Members[i].Roles = append([]Role(nil), m.Roles...)
	}
	out.Devices = make([]Device, len(s.Devices))
	for i, d := range s.Devices {
		out.Devices[i] = d
		out.Devices[i].PublicKey = append([]byte(nil), d.PublicKey...)
	}
	out.Servers = append([]Server(nil), s.Servers...)
	return out
}
