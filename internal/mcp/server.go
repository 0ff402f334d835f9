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

// In this file: MCP server construction and transport management.

//go:generate mockgen -destination=mock_mcp/mock_mcp.go . GraphAPI,Authenticator,StatusReporter,CredentialClearer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"

	"github.com/rusq/msgraph-mcp/internal/authstatus"
	"github.com/rusq/msgraph-mcp/internal/devicecode"
	"github.com/rusq/msgraph-mcp/internal/graph"
)

const (
	serverName    = "msgraph-mcp"
	serverVersion = "1.0.0"
)

// Transport selects how the MCP server communicates with its client.
type Transport string

const (
	// TransportStdio uses stdin/stdout for communication (default, suitable
	// for local agent integrations such as Claude Desktop).
	TransportStdio Transport = "stdio"
	// TransportHTTP uses Streamable HTTP transport (suitable for remote
	// agents or when multiple concurrent clients are needed).
	TransportHTTP Transport = "http"
)

// GraphAPI is the subset of the Microsoft Graph client used by the tools.
type GraphAPI interface {
	Me(ctx context.Context) (*graph.User, error)
	User(ctx context.Context, id string) (*graph.User, error)
	SearchUsers(ctx context.Context, query string, limit int) ([]graph.User, error)
	JoinedTeams(ctx context.Context) ([]graph.Team, error)
	Channels(ctx context.Context, teamID string) ([]graph.Channel, error)
	TeamMembers(ctx context.Context, teamID string) ([]graph.Member, error)
	ChannelMessages(ctx context.Context, teamID, channelID string, limit int) ([]graph.ChatMessage, error)
	SendChannelMessage(ctx context.Context, teamID, channelID string, body graph.ItemBody, importance string) (*graph.ChatMessage, error)
	Chats(ctx context.Context, limit int) ([]graph.Chat, error)
	ChatMessages(ctx context.Context, chatID string, limit int) ([]graph.ChatMessage, error)
	SendChatMessage(ctx context.Context, chatID string, body graph.ItemBody) (*graph.ChatMessage, error)
	SearchMessages(ctx context.Context, query string, limit int) ([]graph.SearchHit, error)
}

// Authenticator starts device-code sign ins.
type Authenticator interface {
	Start(ctx context.Context) (devicecode.Activation, *devicecode.Exchange, error)
	Last() *devicecode.Exchange
}

// StatusReporter reports the authentication status.
type StatusReporter interface {
	Status(ctx context.Context) authstatus.LiveStatus
	Check() authstatus.LocalStatus
}

// CredentialClearer removes the stored credential.
type CredentialClearer interface {
	Clear() error
}

// Server wraps an MCP server and the services its tools call.
type Server struct {
	mcp    *mcpsrv.MCPServer
	graph  GraphAPI
	auth   Authenticator
	status StatusReporter
	creds  CredentialClearer
	logger *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger.  Nil logger falls back to slog.Default().
func WithLogger(lg *slog.Logger) Option {
	return func(s *Server) {
		if lg != nil {
			s.logger = lg
		}
	}
}

// WithGraph sets the Microsoft Graph client.
func WithGraph(g GraphAPI) Option {
	return func(s *Server) {
		s.graph = g
	}
}

// WithAuthenticator sets the device-code authenticator.
func WithAuthenticator(a Authenticator) Option {
	return func(s *Server) {
		s.auth = a
	}
}

// WithStatusReporter sets the status reporter.
func WithStatusReporter(r StatusReporter) Option {
	return func(s *Server) {
		s.status = r
	}
}

// WithCredentials sets the credential store used by logout.
func WithCredentials(c CredentialClearer) Option {
	return func(s *Server) {
		s.creds = c
	}
}

// errNotConfigured is returned by tool handlers whose service is missing.
var errNotConfigured = errors.New("this tool is not available: the server was started without the required service")

// New creates a new MCP server.  The server is populated with all available
// tools but does not start listening until one of the Serve* methods is
// called.
func New(opts ...Option) *Server {
	s := &Server{
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}

	mcpServer := mcpsrv.NewMCPServer(
		serverName,
		serverVersion,
		mcpsrv.WithInstructions(instructions()),
		mcpsrv.WithToolCapabilities(false),
		mcpsrv.WithRecovery(),
	)

	for _, t := range s.tools() {
		mcpServer.AddTool(t.Tool, t.Handler)
	}

	s.mcp = mcpServer
	return s
}

// instructions returns the server instructions for the connecting agent.
func instructions() string {
	return `You are connected to a Microsoft Graph MCP server.

Before using any data tool the user must be signed in:
- Call check_auth or auth_status to see whether a credential is stored.
- If not, call authenticate.  It returns a code and a URL; show both to the
  user and ask them to complete the sign in in a browser.
- Then call await_authentication (or check_auth) to confirm.

Available tools allow you to:
- Look up the signed in user and search the user directory
- List joined teams, their channels and members
- Read and send channel messages
- List chats, read and send chat messages
- Search chat and channel messages

Message bodies are returned as plain text.  When sending, set format to
"markdown" to have the message rendered with formatting.
`
}

// ServeStdio runs the MCP server over stdin/stdout until ctx is cancelled.
// This is the standard transport used by local agent integrations.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.serveStdio(ctx, os.Stdin, os.Stdout)
}

func (s *Server) serveStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	srv := mcpsrv.NewStdioServer(s.mcp)
	srv.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))
	s.logger.InfoContext(ctx, "mcp server listening on stdio")
	if err := srv.Listen(ctx, in, out); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("mcp stdio server error: %w", err)
	}
	return nil
}

// mcpPath is the path the Streamable HTTP endpoint is mounted at.
const mcpPath = "/mcp"

// Handler returns the HTTP handler serving the MCP endpoint at /mcp and a
// health check at /healthz.
func (s *Server) Handler() http.Handler {
	return s.handler(mcpsrv.NewStreamableHTTPServer(s.mcp))
}

func (s *Server) handler(stream http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "ok\n")
	})
	r.Handle(mcpPath, stream)
	return r
}

// ServeHTTP runs the MCP server as a Streamable HTTP server on addr until
// ctx is cancelled.  addr should be a host:port string such as "127.0.0.1:8484".
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	streamSrv := mcpsrv.NewStreamableHTTPServer(s.mcp)
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           s.handler(streamSrv),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.InfoContext(ctx, "mcp server listening on http", "addr", addr, "path", mcpPath)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("mcp http server error: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		s.logger.Info("mcp server shutting down")
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		if err := streamSrv.Shutdown(sctx); err != nil {
			s.logger.Warn("mcp stream shutdown", "error", err)
		}
		if err := httpSrv.Shutdown(sctx); err != nil {
			return fmt.Errorf("mcp http server shutdown error: %w", err)
		}
		return nil
	})
	return eg.Wait()
}

// tools returns all MCP tools that this server exposes.
func (s *Server) tools() []mcpsrv.ServerTool {
	return []mcpsrv.ServerTool{
		// authentication
		s.toolAuthStatus(),
		s.toolAuthenticate(),
		s.toolCheckAuth(),
		s.toolLogout(),
		s.toolAwaitAuthentication(),
		// directory
		s.toolGetCurrentUser(),
		s.toolSearchUsers(),
		s.toolGetUser(),
		// teams
		s.toolListTeams(),
		s.toolListChannels(),
		s.toolListTeamMembers(),
		s.toolGetChannelMessages(),
		s.toolSendChannelMessage(),
		// chats
		s.toolListChats(),
		s.toolGetChatMessages(),
		s.toolSendChatMessage(),
		// search
		s.toolSearchMessages(),
	}
}

// AddTool adds an additional tool to the MCP server.  This can be called after
// New but before serving starts.
func (s *Server) AddTool(tool mcpsrv.ServerTool) {
	s.mcp.AddTool(tool.Tool, tool.Handler)
}

// resultText is a helper that wraps text in a successful CallToolResult.
func resultText(text string) *mcplib.CallToolResult {
	return mcplib.NewToolResultText(text)
}

// resultErr is a helper that wraps an error in a CallToolResult with IsError=true.
func resultErr(err error) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(err.Error())},
		IsError: true,
	}
}

// resultGraphErr renders a Microsoft Graph error for the user.
func resultGraphErr(op string, err error) *mcplib.CallToolResult {
	return resultErr(fmt.Errorf("%s: %s", op, graph.Describe(err)))
}

// resultJSON is a helper that serialises v to JSON and returns a CallToolResult.
func resultJSON(v any) (*mcplib.CallToolResult, error) {
	return mcplib.NewToolResultJSON(v)
}

// stringArg extracts a named string argument from a tool call request.
// Returns ("", false) if the argument is absent or not a string.
func stringArg(req mcplib.CallToolRequest, name string) (string, bool) {
	args := req.GetArguments()
	if args == nil {
		return "", false
	}
	v, ok := args[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// intArg extracts a named int argument from a tool call request.  The MCP
// protocol serialises numbers as float64, so we convert accordingly.
func intArg(req mcplib.CallToolRequest, name string, defaultVal int) int {
	args := req.GetArguments()
	if args == nil {
		return defaultVal
	}
	v, ok := args[name]
	if !ok {
		return defaultVal
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return defaultVal
}

// limitArg returns the "limit" argument clamped to [1, maxVal].
func limitArg(req mcplib.CallToolRequest, defaultVal, maxVal int) int {
	return max(min(intArg(req, "limit", defaultVal), maxVal), 1)
}
