// Package session defines the immutable bundle published once bootstrap
// succeeds: the local device and user identity, the live team snapshot,
// and the handles into the external auth and replication subsystems.
package session

import (
	"context"

	"github.com/dmitrijs2005/teamkeeper/internal/identity"
	"github.com/dmitrijs2005/teamkeeper/internal/team"
)

// AuthHandle is the live handle into the external auth subsystem (the
// signed-log engine) for one share.
type AuthHandle interface {
	ShareID() team.ShareID
}

// RepoHandle is the live handle into the document replication subsystem.
type RepoHandle interface {
	Close(ctx context.Context) error
}

// Context is published exactly once per successful bootstrap and is
// immutable from then on: any change to team/device/user requires tearing
// the session down and publishing a new one. Safe for any number of
// concurrent readers.
type Context struct {
	device identity.DeviceIdentity
	user   identity.UserIdentity
	team   *team.Team
	auth   AuthHandle
	repo   RepoHandle
}

func New(device identity.DeviceIdentity, user identity.UserIdentity, t *team.Team, auth AuthHandle, repo RepoHandle) *Context {
	return &Context{device: device, user: user, team: t, auth: auth, repo: repo}
}

func (c *Context) Device() identity.DeviceIdentity { return c.device }
func (c *Context) User() identity.UserIdentity     { return c.user }
func (c *Context) Team() *team.Team                { return c.team }
func (c *Context) Auth() AuthHandle                { return c.auth }
func (c *Context) Repo() RepoHandle                { return c.repo }
