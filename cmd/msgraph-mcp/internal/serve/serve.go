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

// Package serve contains the CLI command for starting the MCP server.
package serve

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/rusq/osenv/v2"

	"github.com/rusq/msgraph-mcp/cmd/msgraph-mcp/internal/bootstrap"
	"github.com/rusq/msgraph-mcp/cmd/msgraph-mcp/internal/cfg"
	"github.com/rusq/msgraph-mcp/cmd/msgraph-mcp/internal/golang/base"
	"github.com/rusq/msgraph-mcp/internal/mcp"
)

//go:embed assets/serve.md
var mdServe string

// CmdServe is the "msgraph-mcp serve" command.
var CmdServe = &base.Command{
	UsageLine:  "msgraph-mcp serve [flags]",
	Short:      "start the MCP server (default)",
	Long:       mdServe,
	FlagMask:   cfg.DefaultFlags,
	PrintFlags: true,
	Run:        runServe,
}

const defListen = "127.0.0.1:8484"

var (
	listenAddr string
	transport  string
)

func init() {
	CmdServe.Flag.StringVar(&transport, "transport", osenv.Value("MCP_TRANSPORT", string(mcp.TransportStdio)), "MCP transport: \"stdio\" or \"http\"")
	CmdServe.Flag.StringVar(&listenAddr, "listen", osenv.Value("MCP_LISTEN", defListen), "`address` to listen on when -transport=http")
}

func runServe(ctx context.Context, cmd *base.Command, args []string) error {
	lg := cfg.Log

	svc, err := bootstrap.New(lg)
	if err != nil {
		base.SetExitStatus(base.SInitializationError)
		return fmt.Errorf("serve: %w", err)
	}

	srv := mcp.New(
		mcp.WithLogger(lg),
		mcp.WithGraph(svc.Graph),
		mcp.WithAuthenticator(svc.Auth),
		mcp.WithStatusReporter(svc.Status),
		mcp.WithCredentials(svc.Store),
	)

	switch mcp.Transport(strings.ToLower(transport)) {
	case mcp.TransportStdio, "":
		return srv.ServeStdio(ctx)
	case mcp.TransportHTTP:
		lg.InfoContext(ctx, "serve: http transport", "addr", listenAddr)
		return srv.ServeHTTP(ctx, listenAddr)
	default:
		base.SetExitStatus(base.SInvalidParameters)
		return fmt.Errorf("serve: unknown transport %q (use %q or %q)", transport, mcp.TransportStdio, mcp.TransportHTTP)
	}
}
