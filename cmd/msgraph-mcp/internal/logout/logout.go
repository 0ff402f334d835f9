// Package logout contains the CLI command that removes the stored credential.
package logout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rusq/msgraph-mcp/cmd/msgraph-mcp/internal/bootstrap"
	"github.com/rusq/msgraph-mcp/cmd/msgraph-mcp/internal/cfg"
	"github.com/rusq/msgraph-mcp/cmd/msgraph-mcp/internal/golang/base"
	"github.com/rusq/msgraph-mcp/internal/osext"
)

var CmdLogout = &base.Command{
	UsageLine: "msgraph-mcp logout [flags]",
	Short:     "remove the stored credential",
	Long: `
# Logout Command

Deletes the credential file.  The command asks for confirmation, unless -y is
given, and refuses to run without -y if it is not attached to a terminal.
Removing a credential that does not exist is not an error.
`,
	FlagMask:   cfg.OmitGraphFlags,
	PrintFlags: true,
	Run:        runLogout,
}

var yes bool

var errNoTerminal = errors.New("not running in a terminal, use -y to remove the credential without confirmation")

func init() {
	CmdLogout.Flag.BoolVar(&yes, "y", false, "do not ask for confirmation")
}

type clearer interface {
	Clear() error
	Path() string
}

func runLogout(ctx context.Context, cmd *base.Command, args []string) error {
	store, err := bootstrap.Store(cfg.Log)
	if err != nil {
		base.SetExitStatus(base.SInitializationError)
		return err
	}
	if !yes && !osext.CanPrompt() {
		base.SetExitStatus(base.SInvalidParameters)
		return errNoTerminal
	}
	return logout(os.Stderr, store, yes, base.YesNo)
}

func logout(w io.Writer, c clearer, force bool, confirm func(string) bool) error {
	if !force && !confirm(fmt.Sprintf("Remove the credential stored in %s", c.Path())) {
		base.SetExitStatus(base.SUserError)
		return base.ErrOpCancelled
	}
	if err := c.Clear(); err != nil {
		base.SetExitStatus(base.SApplicationError)
		return fmt.Errorf("logout: %w", err)
	}
	fmt.Fprintln(w, "Logged out of Microsoft Graph.")
	return nil
}
