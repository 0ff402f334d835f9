// Package status contains the CLI command that reports the sign in status.
package status

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/rusq/msgraph-mcp/cmd/msgraph-mcp/internal/bootstrap"
	"github.com/rusq/msgraph-mcp/cmd/msgraph-mcp/internal/cfg"
	"github.com/rusq/msgraph-mcp/cmd/msgraph-mcp/internal/golang/base"
	"github.com/rusq/msgraph-mcp/internal/authstatus"
)

var CmdStatus = &base.Command{
	UsageLine: "msgraph-mcp status [flags]",
	Short:     "show the sign in status",
	Long: `
# Status Command

Shows the location of the credential file, the state of the stored
credential, and the account it belongs to.  The account is looked up on
Microsoft Graph, use -offline to skip the lookup.

The command exits with a non-zero status if there is no usable credential.
`,
	FlagMask:   cfg.DefaultFlags,
	PrintFlags: true,
	Run:        runStatus,
}

var offline bool

func init() {
	CmdStatus.Flag.BoolVar(&offline, "offline", false, "do not contact Microsoft Graph")
}

// ErrNotSignedIn is returned when there is no usable credential.
var ErrNotSignedIn = errors.New("not signed in, run \"msgraph-mcp login\"")

type reporter interface {
	Status(ctx context.Context) authstatus.LiveStatus
	Check() authstatus.LocalStatus
}

func runStatus(ctx context.Context, cmd *base.Command, args []string) error {
	svc, err := bootstrap.New(cfg.Log)
	if err != nil {
		base.SetExitStatus(base.SInitializationError)
		return err
	}
	if err := report(ctx, os.Stdout, svc.Status, svc.Store.Path(), !offline); err != nil {
		base.SetExitStatus(base.SAuthError)
		return err
	}
	return nil
}

func report(ctx context.Context, w io.Writer, r reporter, path string, live bool) error {
	fmt.Fprintf(w, "Credential file: %s\n", path)
	ls := r.Check()
	switch ls.State {
	case authstatus.StateNone:
		fmt.Fprintln(w, "State:           not signed in")
		return ErrNotSignedIn
	case authstatus.StateValid:
		fmt.Fprintln(w, "State:           valid")
	case authstatus.StateExpired:
		fmt.Fprintln(w, "State:           expired")
	}
	fmt.Fprintf(w, "Signed in:       %s (%s)\n", ls.IssuedAt.Format(time.RFC3339), humanize.RelTime(ls.IssuedAt, ls.Now, "ago", "from now"))
	if ls.ExpiresAt != nil {
		fmt.Fprintf(w, "Expires:         %s (%s)\n", ls.ExpiresAt.Format(time.RFC3339), humanize.RelTime(*ls.ExpiresAt, ls.Now, "ago", "from now"))
	} else {
		fmt.Fprintln(w, "Expires:         unknown")
	}
	if !live {
		return nil
	}
	st := r.Status(ctx)
	if st.DisplayName == "" {
		fmt.Fprintln(w, "Account:         unable to retrieve the user profile")
		return nil
	}
	fmt.Fprintf(w, "Account:         %s (%s)\n", st.DisplayName, st.UserPrincipalName)
	return nil
}
