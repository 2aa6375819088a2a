package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/teamkeeper/internal/bootstrap"
	"github.com/dmitrijs2005/teamkeeper/internal/config"
	"github.com/dmitrijs2005/teamkeeper/internal/identity"
	"github.com/dmitrijs2005/teamkeeper/internal/localauth"
	"github.com/dmitrijs2005/teamkeeper/internal/logging"
	"github.com/dmitrijs2005/teamkeeper/internal/storage"
)

func newTestApp(t *testing.T, input string) (*App, *bytes.Buffer) {
	t.Helper()
	ctx := context.Background()

	db, err := storage.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := identity.NewSQLiteStore(db)
	provider := localauth.NewProvider(db, localauth.WithDeviceName("test-device"))

	cfg := &config.Config{}
	cfg.LoadDefaults()

	var out bytes.Buffer
	return &App{
		config:  cfg,
		store:   store,
		machine: bootstrap.NewMachine(store, provider, provider),
		servers: provider,
		log:     logging.Nop(),
		in:      bufio.NewReader(strings.NewReader(input)),
		out:     &out,
	}, &out
}

func TestBootstrap_PromptsForNameAndSetsUp(t *testing.T) {
	app, out := newTestApp(t, "Alice\n")

	require.NoError(t, app.bootstrap(context.Background()))

	assert.Equal(t, bootstrap.StateReady, app.machine.Current())
	assert.Contains(t, out.String(), "Signed in as Alice")
}

func TestDispatch_StatusAndServers(t *testing.T) {
	ctx := context.Background()
	app, out := newTestApp(t, "Alice\n")
	require.NoError(t, app.bootstrap(ctx))
	out.Reset()

	require.True(t, app.dispatch(ctx, "status", nil))
	assert.Contains(t, out.String(), "state: ready")
	assert.Contains(t, out.String(), "root document:")

	out.Reset()
	require.True(t, app.dispatch(ctx, "servers", nil))
	assert.Contains(t, out.String(), "no sync servers registered")
}

func TestDispatch_AddServerThenQuery(t *testing.T) {
	ctx := context.Background()
	app, out := newTestApp(t, "Alice\n")
	require.NoError(t, app.bootstrap(ctx))
	out.Reset()

	require.True(t, app.dispatch(ctx, "addserver", []string{"sync.example.com"}))
	assert.Contains(t, out.String(), "registered: sync.example.com")

	out.Reset()
	require.True(t, app.dispatch(ctx, "hasserver", []string{"sync.example.com"}))
	assert.Contains(t, out.String(), "true")

	out.Reset()
	require.True(t, app.dispatch(ctx, "hasserver", []string{"other.example.com"}))
	assert.Contains(t, out.String(), "false")

	// Re-adding is reported, not duplicated.
	out.Reset()
	require.True(t, app.dispatch(ctx, "addserver", []string{"sync.example.com"}))
	assert.Contains(t, out.String(), "already registered")
}

func TestDispatch_ResetWipesIdentityAndExits(t *testing.T) {
	ctx := context.Background()
	app, out := newTestApp(t, "Alice\n")
	require.NoError(t, app.bootstrap(ctx))
	out.Reset()

	require.False(t, app.dispatch(ctx, "reset", nil))

	rec, err := app.store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, rec.UserName)
}

func TestDispatch_ExitAndUnknown(t *testing.T) {
	ctx := context.Background()
	app, out := newTestApp(t, "Alice\n")
	require.NoError(t, app.bootstrap(ctx))

	require.True(t, app.dispatch(ctx, "bogus", nil))
	assert.Contains(t, out.String(), "Unknown command: bogus")

	require.False(t, app.dispatch(ctx, "exit", nil))
}
