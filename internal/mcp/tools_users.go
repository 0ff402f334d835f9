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

// In this file: directory tools.

import (
	"context"
	"errors"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/rusq/msgraph-mcp/internal/graph"
)

const (
	defUserLimit = 10
	maxUserLimit = 50
)

// userSummary is a JSON-serialisable summary of a directory user.
type userSummary struct {
	ID                string `json:"id"`
	DisplayName       string `json:"display_name,omitempty"`
	UserPrincipalName string `json:"user_principal_name,omitempty"`
	Mail              string `json:"mail,omitempty"`
	JobTitle          string `json:"job_title,omitempty"`
	Department        string `json:"department,omitempty"`
	OfficeLocation    string `json:"office_location,omitempty"`
}

func toUserSummary(u *graph.User) userSummary {
	return userSummary{
		ID:                u.ID,
		DisplayName:       u.DisplayName,
		UserPrincipalName: u.UserPrincipalName,
		Mail:              u.Mail,
		JobTitle:          u.JobTitle,
		Department:        u.Department,
		OfficeLocation:    u.OfficeLocation,
	}
}

// ─── get_current_user ─────────────────────────────────────────────────────────

func (s *Server) toolGetCurrentUser() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_current_user",
		mcplib.WithDescription("Get the profile of the signed in user."),
		mcplib.WithReadOnlyHintAnnotation(true),
		mcplib.WithOpenWorldHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetCurrentUser}
}

func (s *Server) handleGetCurrentUser(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	if s.graph == nil {
		return resultErr(errNotConfigured), nil
	}
	u, err := s.graph.Me(ctx)
	if err != nil {
		return resultGraphErr("get_current_user", err), nil
	}
	return resultJSON(toUserSummary(u))
}

// ─── search_users ─────────────────────────────────────────────────────────────

func (s *Server) toolSearchUsers() mcpsrv.ServerTool {
	tool := mcplib.NewTool("search_users",
		mcplib.WithDescription("Search the directory for users whose name or email starts with the query."),
		mcplib.WithString("query",
			mcplib.Description("Beginning of the display name, given name, surname or email address."),
			mcplib.Required(),
		),
		mcplib.WithNumber("limit",
			mcplib.Description("Maximum number of users to return (default 10, max 50)."),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
		mcplib.WithOpenWorldHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleSearchUsers}
}

func (s *Server) handleSearchUsers(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	if s.graph == nil {
		return resultErr(errNotConfigured), nil
	}
	query, ok := stringArg(req, "query")
	if !ok || query == "" {
		return resultErr(errors.New("search_users: query is required")), nil
	}
	users, err := s.graph.SearchUsers(ctx, query, limitArg(req, defUserLimit, maxUserLimit))
	if err != nil {
		return resultGraphErr("search_users", err), nil
	}
	summaries := make([]userSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, toUserSummary(&users[i]))
	}
	return resultJSON(summaries)
}

// ─── get_user ─────────────────────────────────────────────────────────────────

func (s *Server) toolGetUser() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_user",
		mcplib.WithDescription("Get a user's profile by ID or user principal name."),
		mcplib.WithString("user_id",
			mcplib.Description("User ID or user principal name (e.g. alex@contoso.com)."),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
		mcplib.WithOpenWorldHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetUser}
}

func (s *Server) handleGetUser(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	if s.graph == nil {
		return resultErr(errNotConfigured), nil
	}
	id, ok := stringArg(req, "user_id")
	if !ok || id == "" {
		return resultErr(errors.New("get_user: user_id is required")), nil
	}
	u, err := s.graph.User(ctx, id)
	if err != nil {
		return resultGraphErr("get_user", err), nil
	}
	return resultJSON(toUserSummary(u))
}
