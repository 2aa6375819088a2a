// Package cli is a minimal interactive shell over the bootstrap core:
// it drives the machine to a terminal state, publishing a session on
// success, and then answers team queries from the prompt. The library
// packages underneath it never depend on this shell.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dmitrijs2005/teamkeeper/internal/bootstrap"
	"github.com/dmitrijs2005/teamkeeper/internal/config"
	"github.com/dmitrijs2005/teamkeeper/internal/identity"
	"github.com/dmitrijs2005/teamkeeper/internal/localauth"
	"github.com/dmitrijs2005/teamkeeper/internal/logging"
	"github.com/dmitrijs2005/teamkeeper/internal/storage"
	"github.com/dmitrijs2005/teamkeeper/internal/team"
)

// serverRegistry is the slice of the local auth provider the shell uses
// to register sync servers.
type serverRegistry interface {
	RegisterServer(ctx context.Context, t *team.Team, host team.Host) (*team.Team, error)
}

type App struct {
	config  *config.Config
	store   identity.Store
	machine *bootstrap.Machine
	servers serverRegistry
	log     logging.Logger

	in  *bufio.Reader
	out io.Writer

	// current team snapshot; replaced wholesale when servers are added.
	team *team.Team
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	db, err := storage.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	store := identity.NewSQLiteStore(db)

	providerOpts := []localauth.Option{localauth.WithLogger(log)}
	if cfg.DeviceName != "" {
		providerOpts = append(providerOpts, localauth.WithDeviceName(cfg.DeviceName))
	}
	provider := localauth.NewProvider(db, providerOpts...)

	machine := bootstrap.NewMachine(store, provider, provider, bootstrap.WithLogger(log))

	return &App{
		config:  cfg,
		store:   store,
		machine: machine,
		servers: provider,
		log:     log,
		in:      bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// Run bootstraps to a terminal state and, on success, enters the
// interactive loop.
func (a *App) Run(ctx context.Context) error {
	if err := a.bootstrap(ctx); err != nil {
		return err
	}
	a.repl(ctx)
	return nil
}

func (a *App) bootstrap(ctx context.Context) error {
	bootCtx, cancel := context.WithTimeout(ctx, a.config.BootstrapTimeout)
	defer cancel()

	st, err := a.machine.Observe(bootCtx)
	if err != nil {
		return err
	}

	if st == bootstrap.StateAwaitingUserName {
		name, err := a.promptUserName()
		if err != nil {
			return err
		}
		if st, err = a.machine.SubmitUserName(bootCtx, name); err != nil {
			return err
		}
	}

	if st == bootstrap.StateFirstUseSetup {
		fmt.Fprintln(a.out, "Setting up this device...")
		if st, err = a.machine.RunFirstUseSetup(bootCtx); err != nil {
			return err
		}
	}

	if st != bootstrap.StateReady {
		return fmt.Errorf("bootstrap ended in state %q", st)
	}

	sess, err := a.machine.Session()
	if err != nil {
		return err
	}
	a.team = sess.Team()
	fmt.Fprintf(a.out, "Signed in as %s on team %q\n", sess.User().UserName, a.team.Name())
	return nil
}

func (a *App) promptUserName() (string, error) {
	for {
		fmt.Fprint(a.out, "Choose a user name: ")
		line, err := a.in.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read user name: %w", err)
		}
		if name := strings.TrimSpace(line); name != "" {
			return name, nil
		}
	}
}
