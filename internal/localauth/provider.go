// Package localauth is the local implementation of the bootstrap
// collaborators: it creates fresh device/user identities, founds teams,
// and reconstructs them from the sqlite teams table on restart.
//
// It stands in for a full signed-log team engine. Key material is
// generated here but only carried; no signing or verification happens in
// this layer.
package localauth

import (
	"context"
	"crypto/ed25519"
	"database/sql"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/teamkeeper/internal/bootstrap"
	"github.com/dmitrijs2005/teamkeeper/internal/common"
	"github.com/dmitrijs2005/teamkeeper/internal/identity"
	"github.com/dmitrijs2005/teamkeeper/internal/logging"
	"github.com/dmitrijs2005/teamkeeper/internal/team"
)

// Provider implements bootstrap.SetupProvider and bootstrap.TeamLoader
// against the local database.
type Provider struct {
	teams      *TeamStore
	log        logging.Logger
	deviceName string
}

type Option func(*Provider)

func WithLogger(l logging.Logger) Option {
	return func(p *Provider) { p.log = l }
}

// WithDeviceName overrides the default device name (the OS hostname).
func WithDeviceName(name string) Option {
	return func(p *Provider) { p.deviceName = name }
}

func NewProvider(db *sql.DB, opts ...Option) *Provider {
	p := &Provider{
		teams: NewTeamStore(db),
		log:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.deviceName == "" {
		p.deviceName = defaultDeviceName()
	}
	return p
}

func defaultDeviceName() string {
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	suffix, err := common.MakeRandHexString(4)
	if err != nil {
		suffix = "0"
	}
	return "device-" + suffix
}

// CreateOrLoadIdentity creates a fresh device and user identity, founds
// a team with the user as admin, binds it to a new root document, and
// persists the team snapshot so it can be reconstructed after a restart.
func (p *Provider) CreateOrLoadIdentity(ctx context.Context, userName string) (*bootstrap.SetupResult, error) {
	user, err := newUserIdentity(userName)
	if err != nil {
		return nil, err
	}
	device, err := newDeviceIdentity(user.ID, p.deviceName)
	if err != nil {
		return nil, err
	}

	rootDocumentID := team.DocumentID(uuid.NewString())
	t := team.New(team.State{
		Name:           userName,
		RootKey:        common.GenerateRandByteArray(32),
		RootDocumentID: rootDocumentID,
		Members: []team.Member{
			{ID: user.ID, UserName: userName, Roles: []team.Role{team.RoleAdmin}},
		},
		Devices: []team.Device{
			{ID: device.ID, UserID: user.ID, Name: device.Name, PublicKey: device.PublicKey},
		},
	})

	shareID := team.DeriveShareID(t)
	if err := p.teams.Save(ctx, shareID, t); err != nil {
		return nil, fmt.Errorf("failed to persist team: %w", err)
	}

	p.log.Info(ctx, "team created",
		"share_id", shareID, "root_document_id", rootDocumentID, "user", userName)

	return &bootstrap.SetupResult{
		Device:         device,
		User:           user,
		Team:           t,
		Auth:           &authHandle{shareID: shareID},
		Repo:           &repoHandle{},
		RootDocumentID: rootDocumentID,
	}, nil
}

// ReconstructTeam loads the team snapshot for the given share from
// durable storage. Missing or unreadable state is returned as an error;
// the bootstrap machine treats it as fatal.
func (p *Provider) ReconstructTeam(ctx context.Context, shareID team.ShareID) (*bootstrap.LoadResult, error) {
	t, err := p.teams.Get(ctx, shareID)
	if err != nil {
		return nil, err
	}
	return &bootstrap.LoadResult{
		Team: t,
		Auth: &authHandle{shareID: shareID},
		Repo: &repoHandle{},
	}, nil
}

// RegisterServer records a new sync server in the team and persists the
// resulting snapshot. Registering an already-known host is a no-op and
// returns the snapshot unchanged.
func (p *Provider) RegisterServer(ctx context.Context, t *team.Team, host team.Host) (*team.Team, error) {
	if team.HasServer(t, host) {
		return t, nil
	}

	state := t.State()
	state.Servers = append(state.Servers, team.Server{Host: host})
	next := team.New(state)

	shareID := team.DeriveShareID(next)
	if err := p.teams.Save(ctx, shareID, next); err != nil {
		return nil, fmt.Errorf("failed to persist team: %w", err)
	}
	p.log.Info(ctx, "sync server registered", "share_id", shareID, "host", host)
	return next, nil
}

func newUserIdentity(userName string) (identity.UserIdentity, error) {
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		return identity.UserIdentity{}, fmt.Errorf("failed to generate user keys: %w", err)
	}
	return identity.UserIdentity{
		ID:         team.UserID(uuid.NewString()),
		UserName:   userName,
		PublicKey:  pub,
		PrivateKey: priv,
	}, nil
}

func newDeviceIdentity(owner team.UserID, name string) (identity.DeviceIdentity, error) {
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		return identity.DeviceIdentity{}, fmt.Errorf("failed to generate device keys: %w", err)
	}
	return identity.DeviceIdentity{
		ID:         team.DeviceID(uuid.NewString()),
		Name:       name,
		PublicKey:  pub,
		PrivateKey: priv,
	}, nil
}

// authHandle is the provider's handle into the auth subsystem for one
// share.
type authHandle struct {
	shareID team.ShareID
}

func (h *authHandle) ShareID() team.ShareID { return h.shareID }

// repoHandle is the provider's replication handle. The local engine has
// no transport resources to release.
type repoHandle struct{}

func (h *repoHandle) Close(context.Context) error { return nil }
