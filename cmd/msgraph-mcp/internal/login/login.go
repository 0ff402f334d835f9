// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package login contains the CLI command that signs in to Microsoft Graph
// with a device code.
package login

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/browser"

	"github.com/rusq/msgraph-mcp/cmd/msgraph-mcp/internal/bootstrap"
	"github.com/rusq/msgraph-mcp/cmd/msgraph-mcp/internal/cfg"
	"github.com/rusq/msgraph-mcp/cmd/msgraph-mcp/internal/golang/base"
	"github.com/rusq/msgraph-mcp/internal/authstatus"
	"github.com/rusq/msgraph-mcp/internal/devicecode"
)

var CmdLogin = &base.Command{
	UsageLine: "msgraph-mcp login [flags]",
	Short:     "sign in to Microsoft Graph with a device code",
	Long: `
# Login Command

Signs in to Microsoft Graph using the OAuth device code flow and stores the
credential, so that the MCP server can use it.

The command prints a code and a URL.  Open the URL in any browser, on this or
another device, and enter the code.  The command waits until the sign in
completes, or the -timeout elapses.
`,
	FlagMask:   cfg.DefaultFlags,
	PrintFlags: true,
	Run:        runLogin,
}

const defTimeout = 15 * time.Minute

var (
	openBrowser bool
	timeout     time.Duration
)

func init() {
	CmdLogin.Flag.BoolVar(&openBrowser, "browser", false, "open the sign in page in the default browser")
	CmdLogin.Flag.DurationVar(&timeout, "timeout", defTimeout, "maximum `duration` to wait for the sign in")
}

type authenticator interface {
	Start(ctx context.Context) (devicecode.Activation, *devicecode.Exchange, error)
}

type statusReporter interface {
	Status(ctx context.Context) authstatus.LiveStatus
}

func runLogin(ctx context.Context, cmd *base.Command, args []string) error {
	svc, err := bootstrap.New(cfg.Log)
	if err != nil {
		base.SetExitStatus(base.SInitializationError)
		return err
	}
	var open func(string) error
	if openBrowser {
		browser.Stdout = os.Stderr
		open = browser.OpenURL
	}
	if err := login(ctx, os.Stderr, svc.Auth, svc.Status, open, timeout); err != nil {
		base.SetExitStatus(base.SAuthError)
		return err
	}
	return nil
}

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("4")).
			Padding(0, 2)
	codeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// login runs the device code sign in, writing the instructions to w.  If open
// is not nil, it is called with the verification URL.
func login(ctx context.Context, w io.Writer, auth authenticator, status statusReporter, open func(string) error, timeout time.Duration) error {
	lg := cfg.Log
	act, x, err := auth.Start(ctx)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if !act.IsZero() {
		fmt.Fprintln(w, renderActivation(act))
		if open != nil {
			if err := open(act.VerificationURL); err != nil {
				lg.WarnContext(ctx, "unable to open the browser", "error", err)
			}
		}
		fmt.Fprintln(w, "Waiting for the sign in to complete...")
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := x.Wait(ctx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("login: sign in was not completed within %s", timeout)
		}
		return fmt.Errorf("login: %w", err)
	}

	msg := "Signed in."
	if st := status.Status(context.WithoutCancel(ctx)); st.DisplayName != "" {
		msg = fmt.Sprintf("Signed in as %s (%s).", st.DisplayName, st.UserPrincipalName)
	}
	fmt.Fprintln(w, okStyle.Render(msg))
	return nil
}

func renderActivation(act devicecode.Activation) string {
	return boxStyle.Render(fmt.Sprintf(
		"To sign in, open %s\nand enter the code %s",
		act.VerificationURL, codeStyle.Render(act.UserCode),
	))
}
