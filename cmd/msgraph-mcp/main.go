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

// Command msgraph-mcp is a Model Context Protocol server for Microsoft Teams
// chats, channels and the user directory.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	_ "golang.org/x/crypto/x509roots/fallback"

	"github.com/rusq/msgraph-mcp/cmd/msgraph-mcp/internal/cfg"
	"github.com/rusq/msgraph-mcp/cmd/msgraph-mcp/internal/golang/base"
	"github.com/rusq/msgraph-mcp/cmd/msgraph-mcp/internal/golang/help"
	"github.com/rusq/msgraph-mcp/cmd/msgraph-mcp/internal/login"
	"github.com/rusq/msgraph-mcp/cmd/msgraph-mcp/internal/logout"
	"github.com/rusq/msgraph-mcp/cmd/msgraph-mcp/internal/serve"
	"github.com/rusq/msgraph-mcp/cmd/msgraph-mcp/internal/status"
)

// secrets defines the names of the supported secret files that we load our
// secrets from.  Inexperienced windows users might have bad experience trying
// to create .env file with the notepad as it will battle for having the
// "txt" extension.  Let it have it.
var secrets = []string{".env", ".env.txt", "secrets.txt"}

func init() {
	base.MsGraphMCP.Commands = []*base.Command{
		serve.CmdServe,
		login.CmdLogin,
		status.CmdStatus,
		logout.CmdLogout,
		CmdVersion,
	}
}

func main() {
	loadSecrets(secrets)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	if err := run(ctx, os.Args[1:]); err != nil {
		cfg.Log.ErrorContext(ctx, "msgraph-mcp", "error", err)
		if base.ExitStatus() == base.SNoError {
			base.SetExitStatus(base.SApplicationError)
		}
	}
	stop()
	base.Exit()
}

// run finds the command in args, parses its flags and runs it.  The serve
// command is run if no command is given.
func run(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "help" {
		return help.Help(os.Stdout, args[1:])
	}
	cmd, args, err := lookup(args)
	if err != nil {
		base.SetExitStatus(base.SInvalidParameters)
		return err
	}

	if !cmd.CustomFlags {
		cfg.SetBaseFlags(&cmd.Flag, cmd.FlagMask)
		cmd.Flag.Usage = func() {
			fmt.Fprintf(cmd.Flag.Output(), "usage: %s\n", cmd.UsageLine)
			cmd.Flag.PrintDefaults()
		}
		if err := cmd.Flag.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				base.SetExitStatus(base.SHelpRequested)
				return nil
			}
			base.SetExitStatus(base.SInvalidParameters)
			return err
		}
		args = cmd.Flag.Args()
		if err := cfg.LoadConfig(&cmd.Flag, cfg.ConfigFile); err != nil {
			base.SetExitStatus(base.SInvalidParameters)
			return err
		}
	}

	lg, err := initLog(cfg.LogFile, cfg.JSONHandler, cfg.Verbose)
	if err != nil {
		return err
	}
	cfg.Log = lg
	stopTrace := initTrace(cfg.TraceFile)
	defer stopTrace()

	lg.DebugContext(ctx, "running command", "command", cmd.Name(), "args", args)
	return cmd.Run(ctx, cmd, args)
}

// lookup returns the command named by the first argument and the remaining
// arguments.  If args is empty or starts with a flag, it returns the serve
// command.
func lookup(args []string) (*base.Command, []string, error) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return serve.CmdServe, args, nil
	}
	cmd := base.MsGraphMCP.Lookup(args[0])
	if cmd == nil || !cmd.Runnable() {
		return nil, nil, fmt.Errorf("%s %s: unknown command\nRun '%s help' for usage", base.CmdName, args[0], base.CmdName)
	}
	return cmd, args[1:], nil
}

// loadSecrets load secrets from the files in secrets slice.
func loadSecrets(files []string) {
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}
