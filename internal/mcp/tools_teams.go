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

// In this file: Microsoft Teams tools.

import (
	"context"
	"errors"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/rusq/msgraph-mcp/internal/graph"
)

const defMessageLimit = 20

// ─── list_teams ───────────────────────────────────────────────────────────────

func (s *Server) toolListTeams() mcpsrv.ServerTool {
	tool := mcplib.NewTool("list_teams",
		mcplib.WithDescription("List the Microsoft Teams teams the signed in user is a member of."),
		mcplib.WithReadOnlyHintAnnotation(true),
		mcplib.WithOpenWorldHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleListTeams}
}

// teamSummary is a JSON-serialisable summary of a team.
type teamSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsArchived  bool   `json:"is_archived,omitempty"`
}

func (s *Server) handleListTeams(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	if s.graph == nil {
		return resultErr(errNotConfigured), nil
	}
	teams, err := s.graph.JoinedTeams(ctx)
	if err != nil {
		return resultGraphErr("list_teams", err), nil
	}
	summaries := make([]teamSummary, 0, len(teams))
	for _, t := range teams {
		summaries = append(summaries, teamSummary{
			ID:          t.ID,
			Name:        t.DisplayName,
			Description: t.Description,
			IsArchived:  t.IsArchived,
		})
	}
	return resultJSON(summaries)
}

// ─── list_channels ────────────────────────────────────────────────────────────

func (s *Server) toolListChannels() mcpsrv.ServerTool {
	tool := mcplib.NewTool("list_channels",
		mcplib.WithDescription("List the channels of a team."),
		mcplib.WithString("team_id",
			mcplib.Description("Team ID, as returned by list_teams."),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
		mcplib.WithOpenWorldHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleListChannels}
}

// channelSummary is a JSON-serialisable summary of a team channel.
type channelSummary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	MembershipType string `json:"membership_type,omitempty"`
}

func (s *Server) handleListChannels(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	if s.graph == nil {
		return resultErr(errNotConfigured), nil
	}
	teamID, ok := stringArg(req, "team_id")
	if !ok || teamID == "" {
		return resultErr(errors.New("list_channels: team_id is required")), nil
	}
	channels, err := s.graph.Channels(ctx, teamID)
	if err != nil {
		return resultGraphErr("list_channels", err), nil
	}
	summaries := make([]channelSummary, 0, len(channels))
	for _, c := range channels {
		summaries = append(summaries, channelSummary{
			ID:             c.ID,
			Name:           c.DisplayName,
			Description:    c.Description,
			MembershipType: c.MembershipType,
		})
	}
	return resultJSON(summaries)
}

// ─── list_team_members ────────────────────────────────────────────────────────

func (s *Server) toolListTeamMembers() mcpsrv.ServerTool {
	tool := mcplib.NewTool("list_team_members",
		mcplib.WithDescription("List the members of a team and their roles."),
		mcplib.WithString("team_id",
			mcplib.Description("Team ID, as returned by list_teams."),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
		mcplib.WithOpenWorldHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleListTeamMembers}
}

// memberSummary is a JSON-serialisable summary of a team or chat member.
type memberSummary struct {
	UserID string   `json:"user_id,omitempty"`
	Name   string   `json:"name"`
	Email  string   `json:"email,omitempty"`
	Roles  []string `json:"roles,omitempty"`
}

func toMemberSummaries(members []graph.Member) []memberSummary {
	out := make([]memberSummary, 0, len(members))
	for _, m := range members {
		out = append(out, memberSummary{
			UserID: m.UserID,
			Name:   m.DisplayName,
			Email:  m.Email,
			Roles:  m.Roles,
		})
	}
	return out
}

func (s *Server) handleListTeamMembers(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	if s.graph == nil {
		return resultErr(errNotConfigured), nil
	}
	teamID, ok := stringArg(req, "team_id")
	if !ok || teamID == "" {
		return resultErr(errors.New("list_team_members: team_id is required")), nil
	}
	members, err := s.graph.TeamMembers(ctx, teamID)
	if err != nil {
		return resultGraphErr("list_team_members", err), nil
	}
	return resultJSON(toMemberSummaries(members))
}

// ─── get_channel_messages ─────────────────────────────────────────────────────

func (s *Server) toolGetChannelMessages() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_channel_messages",
		mcplib.WithDescription("Get the most recent messages posted to a team channel.  Message bodies are returned as plain text."),
		mcplib.WithString("team_id",
			mcplib.Description("Team ID, as returned by list_teams."),
			mcplib.Required(),
		),
		mcplib.WithString("channel_id",
			mcplib.Description("Channel ID, as returned by list_channels."),
			mcplib.Required(),
		),
		mcplib.WithNumber("limit",
			mcplib.Description(fmt.Sprintf("Maximum number of messages to return (default %d, max %d).", defMessageLimit, graph.MaxMessages)),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
		mcplib.WithOpenWorldHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetChannelMessages}
}

func (s *Server) handleGetChannelMessages(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	if s.graph == nil {
		return resultErr(errNotConfigured), nil
	}
	teamID, ok := stringArg(req, "team_id")
	if !ok || teamID == "" {
		return resultErr(errors.New("get_channel_messages: team_id is required")), nil
	}
	channelID, ok := stringArg(req, "channel_id")
	if !ok || channelID == "" {
		return resultErr(errors.New("get_channel_messages: channel_id is required")), nil
	}
	msgs, err := s.graph.ChannelMessages(ctx, teamID, channelID, limitArg(req, defMessageLimit, graph.MaxMessages))
	if err != nil {
		return resultGraphErr("get_channel_messages", err), nil
	}
	return resultJSON(toMessageSummaries(msgs))
}

// ─── send_channel_message ─────────────────────────────────────────────────────

func (s *Server) toolSendChannelMessage() mcpsrv.ServerTool {
	tool := mcplib.NewTool("send_channel_message",
		mcplib.WithDescription("Post a new message to a team channel."),
		mcplib.WithString("team_id",
			mcplib.Description("Team ID, as returned by list_teams."),
			mcplib.Required(),
		),
		mcplib.WithString("channel_id",
			mcplib.Description("Channel ID, as returned by list_channels."),
			mcplib.Required(),
		),
		mcplib.WithString("message",
			mcplib.Description("Message text."),
			mcplib.Required(),
		),
		mcplib.WithString("format",
			mcplib.Description(`Message format: "text" (default) or "markdown".`),
			mcplib.Enum(string(graph.FormatText), string(graph.FormatMarkdown)),
		),
		mcplib.WithString("importance",
			mcplib.Description(`Message importance: "normal" (default), "high" or "urgent".`),
			mcplib.Enum(graph.ImportanceNormal, graph.ImportanceHigh, graph.ImportanceUrgent),
		),
		mcplib.WithDestructiveHintAnnotation(false),
		mcplib.WithOpenWorldHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleSendChannelMessage}
}

func (s *Server) handleSendChannelMessage(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	if s.graph == nil {
		return resultErr(errNotConfigured), nil
	}
	teamID, ok := stringArg(req, "team_id")
	if !ok || teamID == "" {
		return resultErr(errors.New("send_channel_message: team_id is required")), nil
	}
	channelID, ok := stringArg(req, "channel_id")
	if !ok || channelID == "" {
		return resultErr(errors.New("send_channel_message: channel_id is required")), nil
	}
	body, err := messageBody(req)
	if err != nil {
		return resultErr(fmt.Errorf("send_channel_message: %w", err)), nil
	}
	importance, _ := stringArg(req, "importance")
	switch importance {
	case "", graph.ImportanceNormal, graph.ImportanceHigh, graph.ImportanceUrgent:
	default:
		return resultErr(fmt.Errorf("send_channel_message: unknown importance %q", importance)), nil
	}

	msg, err := s.graph.SendChannelMessage(ctx, teamID, channelID, body, importance)
	if err != nil {
		return resultGraphErr("send_channel_message", err), nil
	}
	s.logger.InfoContext(ctx, "mcp: send_channel_message: sent", "team_id", teamID, "channel_id", channelID, "message_id", msg.ID)
	return resultJSON(toSentSummary(msg))
}

// messageBody builds the outgoing message body from the "message" and
// "format" arguments.
func messageBody(req mcplib.CallToolRequest) (graph.ItemBody, error) {
	text, ok := stringArg(req, "message")
	if !ok || text == "" {
		return graph.ItemBody{}, errors.New("message is required")
	}
	fs, _ := stringArg(req, "format")
	f, err := graph.ParseFormat(fs)
	if err != nil {
		return graph.ItemBody{}, err
	}
	return graph.NewBody(text, f)
}
