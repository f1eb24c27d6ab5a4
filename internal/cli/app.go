// Package cli implements the administrative command-line interface: the
// caller layer that feeds raw credentials into the account service and
// relays the results. The core itself never prints or logs.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/services"
)

type App struct {
	service *services.AccountService
	logger  logging.Logger
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(service *services.AccountService, logger logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		service: service,
		logger:  logger,
		reader:  bufio.NewReader(in),
		out:     out,
	}
}

// Run dispatches the subcommand named by the first argument. Configuration
// flags may follow the subcommand; they are parsed elsewhere and ignored
// here.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return fmt.Errorf("missing command")
	}

	switch cmd := args[0]; cmd {
	case "createuser":
		return a.CreateUser(ctx)
	case "createsuperuser":
		return a.CreateSuperuser(ctx)
	case "activate":
		return a.Activate(ctx, args[1:])
	case "token":
		return a.Token(ctx, args[1:])
	case "help":
		a.usage()
		return nil
	default:
		a.usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *App) usage() {
	fmt.Fprintln(a.out, `Usage: authkeeper <command> [flags]

Commands:
  createuser        create an account (prompts for credentials)
  createsuperuser   create a staff + superuser account (password required)
  activate <token>  activate the account holding the activation token
  token <username>  issue an identity token for an account
  help              show this message

Flags:
  -d string   database DSN
  -s string   token signing secret
  -t int      token validity, days
  -b int      bcrypt cost factor
  -c string   path to JSON config file`)
}
