package localauth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/teamkeeper/internal/bootstrap"
	"github.com/dmitrijs2005/teamkeeper/internal/common"
	"github.com/dmitrijs2005/teamkeeper/internal/identity"
	"github.com/dmitrijs2005/teamkeeper/internal/team"
)

// End-to-end: first use, then a simulated process restart against the
// same database.
func TestBootstrap_FirstUseThenRestart(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	store := identity.NewSQLiteStore(db)
	provider := NewProvider(db, WithDeviceName("laptop"))

	// First launch.
	m1 := bootstrap.NewMachine(store, provider, provider)

	st, err := m1.Observe(ctx)
	require.NoError(t, err)
	require.Equal(t, bootstrap.StateAwaitingUserName, st)

	st, err = m1.SubmitUserName(ctx, "Alice")
	require.NoError(t, err)
	require.Equal(t, bootstrap.StateFirstUseSetup, st)

	st, err = m1.RunFirstUseSetup(ctx)
	require.NoError(t, err)
	require.Equal(t, bootstrap.StateReady, st)

	sess1, err := m1.Session()
	require.NoError(t, err)

	// Restart: fresh machine, same durable state.
	m2 := bootstrap.NewMachine(store, provider, provider)

	st, err = m2.Observe(ctx)
	require.NoError(t, err)
	require.Equal(t, bootstrap.StateReady, st)

	sess2, err := m2.Session()
	require.NoError(t, err)
	assert.Equal(t, sess1.Team().RootDocumentID(), sess2.Team().RootDocumentID())
	assert.Equal(t, team.DeriveShareID(sess1.Team()), team.DeriveShareID(sess2.Team()))
	assert.Equal(t, sess1.User().ID, sess2.User().ID)
	assert.Equal(t, sess1.Device().ID, sess2.Device().ID)
}

// A tampered root document binding must be caught on restart.
func TestBootstrap_RestartDetectsDrift(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	store := identity.NewSQLiteStore(db)
	provider := NewProvider(db)

	m1 := bootstrap.NewMachine(store, provider, provider)
	_, err := m1.SubmitUserName(ctx, "Alice")
	require.NoError(t, err)
	_, err = m1.RunFirstUseSetup(ctx)
	require.NoError(t, err)

	// Drift: the locally remembered root document id changes out from
	// under the team snapshot.
	require.NoError(t, store.SetRootDocumentID(ctx, "doc-tampered"))

	m2 := bootstrap.NewMachine(store, provider, provider)
	st, err := m2.Observe(ctx)
	assert.Equal(t, bootstrap.StateFatalInconsistency, st)
	require.ErrorIs(t, err, common.ErrRootDocumentMismatch)

	_, err = m2.Session()
	assert.ErrorIs(t, err, common.ErrRootDocumentMismatch)
}

func TestBootstrap_ResetReturnsToFirstLaunch(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	store := identity.NewSQLiteStore(db)
	provider := NewProvider(db)

	m1 := bootstrap.NewMachine(store, provider, provider)
	_, err := m1.SubmitUserName(ctx, "Alice")
	require.NoError(t, err)
	_, err = m1.RunFirstUseSetup(ctx)
	require.NoError(t, err)

	// Explicit identity reset (logout).
	require.NoError(t, store.Clear(ctx))

	m2 := bootstrap.NewMachine(store, provider, provider)
	st, err := m2.Observe(ctx)
	require.NoError(t, err)
	assert.Equal(t, bootstrap.StateAwaitingUserName, st)
}
