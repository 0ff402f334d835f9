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

package mcp

// In this file: authentication tools.

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/rusq/msgraph-mcp/internal/authstatus"
	"github.com/rusq/msgraph-mcp/internal/devicecode"
)

const (
	defAwaitTimeout = 30
	maxAwaitTimeout = 300
)

// ─── auth_status ──────────────────────────────────────────────────────────────

func (s *Server) toolAuthStatus() mcpsrv.ServerTool {
	tool := mcplib.NewTool("auth_status",
		mcplib.WithDescription(`Check the authentication status with Microsoft Graph.

Reads the stored credential and, if one is present, makes a live request to
Microsoft Graph to fetch the signed in user's name.`),
		mcplib.WithReadOnlyHintAnnotation(true),
		mcplib.WithOpenWorldHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleAuthStatus}
}

func (s *Server) handleAuthStatus(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	if s.status == nil {
		return resultErr(errNotConfigured), nil
	}
	st := s.status.Status(ctx)
	if !st.IsAuthenticated {
		return resultText("❌ Not authenticated. Use the authenticate tool to sign in."), nil
	}
	if st.DisplayName == "" && st.UserPrincipalName == "" {
		return resultText("✅ Authenticated, but the user profile could not be retrieved. The credential may have expired."), nil
	}
	return resultText(fmt.Sprintf("✅ Authenticated as %s (%s)", st.DisplayName, st.UserPrincipalName)), nil
}

// ─── authenticate ─────────────────────────────────────────────────────────────

func (s *Server) toolAuthenticate() mcpsrv.ServerTool {
	tool := mcplib.NewTool("authenticate",
		mcplib.WithDescription(`Sign in to Microsoft Graph using the device code flow.

Returns a code and a URL immediately.  The user must open the URL in a
browser and enter the code.  Sign in completes in the background; use
check_auth or await_authentication to find out when it is done.`),
		mcplib.WithOpenWorldHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleAuthenticate}
}

func (s *Server) handleAuthenticate(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	if s.auth == nil {
		return resultErr(errNotConfigured), nil
	}
	act, _, err := s.auth.Start(ctx)
	if err != nil {
		return resultErr(fmt.Errorf("authenticate: %w", err)), nil
	}
	if act.IsZero() {
		return resultText("✅ Authentication completed."), nil
	}
	s.logger.InfoContext(ctx, "mcp: authenticate: device code issued", "verification_url", act.VerificationURL)

	var b strings.Builder
	b.WriteString("🔐 To sign in to Microsoft Graph:\n\n")
	fmt.Fprintf(&b, "1. Open %s\n", act.VerificationURL)
	fmt.Fprintf(&b, "2. Enter the code: %s\n\n", act.UserCode)
	if act.Message != "" {
		b.WriteString(act.Message)
		b.WriteString("\n\n")
	}
	b.WriteString("Sign in completes in the background. Use check_auth or await_authentication to confirm.")
	return resultText(b.String()), nil
}

// ─── check_auth ───────────────────────────────────────────────────────────────

func (s *Server) toolCheckAuth() mcpsrv.ServerTool {
	tool := mcplib.NewTool("check_auth",
		mcplib.WithDescription(`Check the stored credential without contacting Microsoft Graph.

Reports whether a credential is stored and whether its recorded expiry time
has passed.`),
		mcplib.WithReadOnlyHintAnnotation(true),
		mcplib.WithOpenWorldHintAnnotation(false),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleCheckAuth}
}

func (s *Server) handleCheckAuth(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	if s.status == nil {
		return resultErr(errNotConfigured), nil
	}
	return resultText(describeLocal(s.status.Check())), nil
}

// describeLocal renders the result of a local credential check.
func describeLocal(st authstatus.LocalStatus) string {
	switch st.State {
	case authstatus.StateValid:
		if st.ExpiresAt == nil {
			return fmt.Sprintf("✅ Authenticated (signed in %s, no expiry recorded).",
				humanize.RelTime(st.IssuedAt, st.Now, "ago", "from now"))
		}
		return fmt.Sprintf("✅ Authenticated. The credential expires %s (%s).",
			humanize.RelTime(*st.ExpiresAt, st.Now, "ago", "from now"),
			st.ExpiresAt.Format(time.RFC3339))
	case authstatus.StateExpired:
		return fmt.Sprintf("⚠️ The stored credential may have expired %s (%s). Use the authenticate tool to sign in again.",
			humanize.RelTime(*st.ExpiresAt, st.Now, "ago", "from now"),
			st.ExpiresAt.Format(time.RFC3339))
	default:
		return "❌ Not authenticated. Use the authenticate tool to sign in."
	}
}

// ─── logout ───────────────────────────────────────────────────────────────────

func (s *Server) toolLogout() mcpsrv.ServerTool {
	tool := mcplib.NewTool("logout",
		mcplib.WithDescription("Sign out of Microsoft Graph by removing the stored credential."),
		mcplib.WithDestructiveHintAnnotation(true),
		mcplib.WithIdempotentHintAnnotation(true),
		mcplib.WithOpenWorldHintAnnotation(false),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleLogout}
}

func (s *Server) handleLogout(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	if s.creds == nil {
		return resultErr(errNotConfigured), nil
	}
	if err := s.creds.Clear(); err != nil {
		return resultErr(fmt.Errorf("logout: %w", err)), nil
	}
	s.logger.InfoContext(ctx, "mcp: logout: credential removed")
	return resultText("✅ Logged out of Microsoft Graph."), nil
}

// ─── await_authentication ─────────────────────────────────────────────────────

func (s *Server) toolAwaitAuthentication() mcpsrv.ServerTool {
	tool := mcplib.NewTool("await_authentication",
		mcplib.WithDescription(`Wait for the sign in started by authenticate to complete.

Returns when the sign in succeeds, fails, or the timeout elapses.  Call it
after the user reports that they have entered the code.`),
		mcplib.WithNumber("timeout_seconds",
			mcplib.Description(fmt.Sprintf("Maximum time to wait, in seconds (default %d, max %d).", defAwaitTimeout, maxAwaitTimeout)),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleAwaitAuthentication}
}

func (s *Server) handleAwaitAuthentication(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	if s.auth == nil {
		return resultErr(errNotConfigured), nil
	}
	x := s.auth.Last()
	if x == nil {
		return resultErr(fmt.Errorf("await_authentication: %w; call authenticate first", devicecode.ErrNoExchange)), nil
	}
	timeout := max(min(intArg(req, "timeout_seconds", defAwaitTimeout), maxAwaitTimeout), 1)

	wctx, cancel := context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
	defer cancel()
	if err := x.Wait(wctx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) && x.Pending() {
			return resultText(fmt.Sprintf("⏳ Sign in is still pending after %d seconds. Ask the user to complete it and call await_authentication again.", timeout)), nil
		}
		return resultErr(fmt.Errorf("await_authentication: sign in failed: %w", err)), nil
	}
	return s.handleAuthStatus(ctx, req)
}
