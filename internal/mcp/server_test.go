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

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/rusq/msgraph-mcp/internal/mcp/mock_mcp"
)

// newTestServer creates a *Server backed by a MockGraphAPI.
func newTestServer(t *testing.T, ctrl *gomock.Controller) (*Server, *mock_mcp.MockGraphAPI) {
	t.Helper()
	m := mock_mcp.NewMockGraphAPI(ctrl)
	srv := New(WithLogger(nil), WithGraph(m))
	require.NotNil(t, srv)
	return srv, m
}

// toolReq builds a CallToolRequest with the given argument map.
func toolReq(args map[string]any) mcplib.CallToolRequest {
	req := mcplib.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// firstText returns the text of the first content item of r.
func firstText(t *testing.T, r *mcplib.CallToolResult) string {
	t.Helper()
	require.NotNil(t, r)
	require.NotEmpty(t, r.Content)
	txt, ok := r.Content[0].(mcplib.TextContent)
	require.True(t, ok, "content is %T", r.Content[0])
	return txt.Text
}

// ─── New / options ────────────────────────────────────────────────────────────

func TestNew_noOptions(t *testing.T) {
	srv := New()
	require.NotNil(t, srv)
	assert.NotNil(t, srv.mcp)
	assert.Nil(t, srv.graph) // no services by default
	assert.Nil(t, srv.auth)
	assert.Nil(t, srv.status)
	assert.Nil(t, srv.creds)
	assert.NotNil(t, srv.logger)
}

func TestNew_withLogger_nil(t *testing.T) {
	// A nil logger must not panic and must fall back to slog.Default().
	assert.NotPanics(t, func() {
		srv := New(WithLogger(nil))
		assert.NotNil(t, srv.logger)
	})
}

func TestNew_registersTools(t *testing.T) {
	srv := New()
	var names []string
	for _, tool := range srv.tools() {
		names = append(names, tool.Tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"auth_status", "authenticate", "check_auth", "logout", "await_authentication",
		"get_current_user", "search_users", "get_user",
		"list_teams", "list_channels", "list_team_members", "get_channel_messages", "send_channel_message",
		"list_chats", "get_chat_messages", "send_chat_message", "search_messages",
	}, names)
}

func TestAddTool(t *testing.T) {
	ctrl := gomock.NewController(t)
	srv, _ := newTestServer(t, ctrl)

	extra := mcpsrv.ServerTool{
		Tool: mcplib.NewTool("extra_tool", mcplib.WithDescription("extra")),
		Handler: func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
			return resultText("ok"), nil
		},
	}
	assert.NotPanics(t, func() {
		srv.AddTool(extra)
	})
}

func TestInstructions(t *testing.T) {
	got := instructions()
	assert.Contains(t, got, "authenticate")
	assert.Contains(t, got, "await_authentication")
	assert.Contains(t, got, "markdown")
}

func TestNotConfigured(t *testing.T) {
	srv := New()
	for _, tool := range srv.tools() {
		t.Run(tool.Tool.Name, func(t *testing.T) {
			r, err := tool.Handler(context.Background(), toolReq(map[string]any{
				"query": "q", "user_id": "u", "team_id": "t", "channel_id": "c", "chat_id": "c", "message": "m",
			}))
			require.NoError(t, err)
			assert.True(t, r.IsError)
			assert.Equal(t, errNotConfigured.Error(), firstText(t, r))
		})
	}
}

// ─── http transport ───────────────────────────────────────────────────────────

func TestHandler_healthz(t *testing.T) {
	ts := httptest.NewServer(New().Handler())
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "ok\n", string(body))
}

func TestHandler_mountsStream(t *testing.T) {
	var hit bool
	stream := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hit = true
		w.WriteHeader(http.StatusAccepted)
	})
	ts := httptest.NewServer(New().handler(stream))
	defer ts.Close()

	resp, err := ts.Client().Post(ts.URL+mcpPath, "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.True(t, hit)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	resp, err = ts.Client().Get(ts.URL + "/other")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServeHTTP_stopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	errC := make(chan error, 1)
	go func() { errC <- New().ServeHTTP(ctx, "127.0.0.1:0") }()
	cancel()
	assert.NoError(t, <-errC)
}

func TestServeStdio_EOF(t *testing.T) {
	srv := New()
	var out strings.Builder
	err := srv.serveStdio(context.Background(), strings.NewReader(""), &out)
	assert.NoError(t, err)
}

// ─── result helpers ───────────────────────────────────────────────────────────

func TestResultText(t *testing.T) {
	r := resultText("hello")
	require.NotNil(t, r)
	assert.False(t, r.IsError)
	require.Len(t, r.Content, 1)
	txt, ok := r.Content[0].(mcplib.TextContent)
	require.True(t, ok)
	assert.Equal(t, "hello", txt.Text)
}

func TestResultErr(t *testing.T) {
	r := resultErr(assert.AnError)
	require.NotNil(t, r)
	assert.True(t, r.IsError)
	require.Len(t, r.Content, 1)
	txt, ok := r.Content[0].(mcplib.TextContent)
	require.True(t, ok)
	assert.Equal(t, assert.AnError.Error(), txt.Text)
}

func TestResultJSON(t *testing.T) {
	type payload struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	r, err := resultJSON(payload{ID: "C1", Name: "general"})
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.False(t, r.IsError)
	require.Len(t, r.Content, 1)
	txt, ok := r.Content[0].(mcplib.TextContent)
	require.True(t, ok)
	assert.Contains(t, txt.Text, "C1")
	assert.Contains(t, txt.Text, "general")
}

// ─── argument helpers ─────────────────────────────────────────────────────────

func TestStringArg(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		argName string
		wantVal string
		wantOK  bool
	}{
		{
			name:    "present string",
			args:    map[string]any{"key": "value"},
			argName: "key",
			wantVal: "value",
			wantOK:  true,
		},
		{
			name:    "missing key",
			args:    map[string]any{},
			argName: "key",
			wantVal: "",
			wantOK:  false,
		},
		{
			name:    "wrong type",
			args:    map[string]any{"key": 42},
			argName: "key",
			wantVal: "",
			wantOK:  false,
		},
		{
			name:    "nil args",
			args:    nil,
			argName: "key",
			wantVal: "",
			wantOK:  false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := toolReq(tt.args)
			got, ok := stringArg(req, tt.argName)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantVal, got)
		})
	}
}

func TestIntArg(t *testing.T) {
	tests := []struct {
		name       string
		args       map[string]any
		argName    string
		defaultVal int
		want       int
	}{
		{
			name:       "float64 value",
			args:       map[string]any{"n": float64(42)},
			argName:    "n",
			defaultVal: 0,
			want:       42,
		},
		{
			name:       "int value",
			args:       map[string]any{"n": 7},
			argName:    "n",
			defaultVal: 0,
			want:       7,
		},
		{
			name:       "missing key uses default",
			args:       map[string]any{},
			argName:    "n",
			defaultVal: 99,
			want:       99,
		},
		{
			name:       "nil args uses default",
			args:       nil,
			argName:    "n",
			defaultVal: 5,
			want:       5,
		},
		{
			name:       "wrong type uses default",
			args:       map[string]any{"n": "not-a-number"},
			argName:    "n",
			defaultVal: 3,
			want:       3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := toolReq(tt.args)
			got := intArg(req, tt.argName, tt.defaultVal)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLimitArg(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		want int
	}{
		{"default", nil, 10},
		{"within range", map[string]any{"limit": float64(5)}, 5},
		{"above max", map[string]any{"limit": float64(500)}, 50},
		{"zero", map[string]any{"limit": float64(0)}, 1},
		{"negative", map[string]any{"limit": float64(-3)}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, limitArg(toolReq(tt.args), 10, 50))
		})
	}
}
