package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/teamkeeper/internal/team"
)

func (a *App) repl(ctx context.Context) {
	fmt.Fprintln(a.out, "teamkeeper shell (type 'help' for commands)")

	for {
		fmt.Fprint(a.out, "teamkeeper > ")
		line, err := a.in.ReadString('\n')
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		if !a.dispatch(ctx, parts[0], parts[1:]) {
			return
		}
	}
}

// dispatch executes one command; returns false when the loop should end.
func (a *App) dispatch(ctx context.Context, cmd string, args []string) bool {
	switch cmd {
	case "help":
		fmt.Fprintln(a.out, "Available commands: status, whoami, servers, addserver <host>, hasserver <host>, reset, exit")

	case "status":
		fmt.Fprintf(a.out, "state: %s\n", a.machine.Current())
		fmt.Fprintf(a.out, "team: %s\n", a.team.Name())
		fmt.Fprintf(a.out, "share id: %s\n", team.DeriveShareID(a.team))
		fmt.Fprintf(a.out, "root document: %s\n", a.team.RootDocumentID())

	case "whoami":
		sess, err := a.machine.Session()
		if err != nil {
			fmt.Fprintln(a.out, "error:", err)
			break
		}
		fmt.Fprintf(a.out, "user: %s (%s)\n", sess.User().UserName, sess.User().ID)
		fmt.Fprintf(a.out, "device: %s (%s)\n", sess.Device().Name, sess.Device().ID)

	case "servers":
		servers := a.team.Servers()
		if len(servers) == 0 {
			fmt.Fprintln(a.out, "no sync servers registered")
			break
		}
		for _, s := range servers {
			fmt.Fprintln(a.out, s.Host)
		}

	case "hasserver":
		if len(args) == 0 {
			fmt.Fprintln(a.out, "Usage: hasserver <host>")
			break
		}
		fmt.Fprintln(a.out, team.HasServer(a.team, team.Host(args[0])))

	case "addserver":
		if len(args) == 0 {
			fmt.Fprintln(a.out, "Usage: addserver <host>")
			break
		}
		host := team.Host(args[0])
		if team.HasServer(a.team, host) {
			fmt.Fprintln(a.out, "already registered:", host)
			break
		}
		next, err := a.servers.RegisterServer(ctx, a.team, host)
		if err != nil {
			fmt.Fprintln(a.out, "error:", err)
			break
		}
		a.team = next
		fmt.Fprintln(a.out, "registered:", host)

	case "reset":
		if err := a.store.Clear(ctx); err != nil {
			fmt.Fprintln(a.out, "error:", err)
			break
		}
		fmt.Fprintln(a.out, "local identity wiped; restart to set up again")
		return false

	case "exit", "quit":
		fmt.Fprintln(a.out, "Bye!")
		return false

	default:
		fmt.Fprintln(a.out, "Unknown command:", cmd)
	}
	return true
}
