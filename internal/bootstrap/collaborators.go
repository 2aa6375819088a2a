package bootstrap

import (
	"context"

	"github.com/dmitrijs2005/teamkeeper/internal/identity"
	"github.com/dmitrijs2005/teamkeeper/internal/session"
	"github.com/dmitrijs2005/teamkeeper/internal/team"
)

// SetupResult is everything the first-use collaborator hands back after
// creating (or joining) a team.
type SetupResult struct {
	Device         identity.DeviceIdentity
	User           identity.UserIdentity
	Team           *team.Team
	Auth           session.AuthHandle
	Repo           session.RepoHandle
	RootDocumentID team.DocumentID
}

// SetupProvider creates a fresh device/user identity and creates or
// joins a team on first use. Implementations may suspend (network,
// storage) and must honor ctx cancellation.
type SetupProvider interface {
	CreateOrLoadIdentity(ctx context.Context, userName string) (*SetupResult, error)
}

// LoadResult is what the reload collaborator reconstructs from durable
// storage on a fresh process start.
type LoadResult struct {
	Team *team.Team
	Auth session.AuthHandle
	Repo session.RepoHandle
}

// TeamLoader reconstructs the team and the associated auth/repo handles
// for a previously joined share.
type TeamLoader interface {
	ReconstructTeam(ctx context.Context, shareID team.ShareID) (*LoadResult, error)
}
