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

// In this file: chat and search tools.

import (
	"context"
	"errors"
	"fmt"
	"time"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/rusq/msgraph-mcp/internal/graph"
)

const (
	defChatLimit   = 20
	defSearchLimit = 10
)

// ─── list_chats ───────────────────────────────────────────────────────────────

func (s *Server) toolListChats() mcpsrv.ServerTool {
	tool := mcplib.NewTool("list_chats",
		mcplib.WithDescription("List the signed in user's chats (one-on-one, group and meeting chats) with their members."),
		mcplib.WithNumber("limit",
			mcplib.Description(fmt.Sprintf("Maximum number of chats to return (default %d, max %d).", defChatLimit, graph.MaxChats)),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
		mcplib.WithOpenWorldHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleListChats}
}

// chatSummary is a JSON-serialisable summary of a chat.
type chatSummary struct {
	ID          string          `json:"id"`
	Topic       string          `json:"topic,omitempty"`
	Type        string          `json:"type,omitempty"`
	LastUpdated *time.Time      `json:"last_updated,omitempty"`
	Members     []memberSummary `json:"members,omitempty"`
}

func (s *Server) handleListChats(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	if s.graph == nil {
		return resultErr(errNotConfigured), nil
	}
	chats, err := s.graph.Chats(ctx, limitArg(req, defChatLimit, graph.MaxChats))
	if err != nil {
		return resultGraphErr("list_chats", err), nil
	}
	summaries := make([]chatSummary, 0, len(chats))
	for _, c := range chats {
		summaries = append(summaries, chatSummary{
			ID:          c.ID,
			Topic:       c.Topic,
			Type:        c.ChatType,
			LastUpdated: c.LastUpdatedDateTime,
			Members:     toMemberSummaries(c.Members),
		})
	}
	return resultJSON(summaries)
}

// ─── get_chat_messages ────────────────────────────────────────────────────────

func (s *Server) toolGetChatMessages() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_chat_messages",
		mcplib.WithDescription("Get the most recent messages of a chat, newest first.  Message bodies are returned as plain text."),
		mcplib.WithString("chat_id",
			mcplib.Description("Chat ID, as returned by list_chats."),
			mcplib.Required(),
		),
		mcplib.WithNumber("limit",
			mcplib.Description(fmt.Sprintf("Maximum number of messages to return (default %d, max %d).", defMessageLimit, graph.MaxMessages)),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
		mcplib.WithOpenWorldHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetChatMessages}
}

func (s *Server) handleGetChatMessages(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	if s.graph == nil {
		return resultErr(errNotConfigured), nil
	}
	chatID, ok := stringArg(req, "chat_id")
	if !ok || chatID == "" {
		return resultErr(errors.New("get_chat_messages: chat_id is required")), nil
	}
	msgs, err := s.graph.ChatMessages(ctx, chatID, limitArg(req, defMessageLimit, graph.MaxMessages))
	if err != nil {
		return resultGraphErr("get_chat_messages", err), nil
	}
	return resultJSON(toMessageSummaries(msgs))
}

// ─── send_chat_message ────────────────────────────────────────────────────────

func (s *Server) toolSendChatMessage() mcpsrv.ServerTool {
	tool := mcplib.NewTool("send_chat_message",
		mcplib.WithDescription("Send a message to a chat."),
		mcplib.WithString("chat_id",
			mcplib.Description("Chat ID, as returned by list_chats."),
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
		mcplib.WithDestructiveHintAnnotation(false),
		mcplib.WithOpenWorldHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleSendChatMessage}
}

func (s *Server) handleSendChatMessage(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	if s.graph == nil {
		return resultErr(errNotConfigured), nil
	}
	chatID, ok := stringArg(req, "chat_id")
	if !ok || chatID == "" {
		return resultErr(errors.New("send_chat_message: chat_id is required")), nil
	}
	body, err := messageBody(req)
	if err != nil {
		return resultErr(fmt.Errorf("send_chat_message: %w", err)), nil
	}
	msg, err := s.graph.SendChatMessage(ctx, chatID, body)
	if err != nil {
		return resultGraphErr("send_chat_message", err), nil
	}
	s.logger.InfoContext(ctx, "mcp: send_chat_message: sent", "chat_id", chatID, "message_id", msg.ID)
	return resultJSON(toSentSummary(msg))
}

// ─── search_messages ──────────────────────────────────────────────────────────

func (s *Server) toolSearchMessages() mcpsrv.ServerTool {
	tool := mcplib.NewTool("search_messages",
		mcplib.WithDescription("Search chat and channel messages the signed in user can access."),
		mcplib.WithString("query",
			mcplib.Description("Search terms (KQL syntax is supported)."),
			mcplib.Required(),
		),
		mcplib.WithNumber("limit",
			mcplib.Description(fmt.Sprintf("Maximum number of results (default %d, max %d).", defSearchLimit, graph.MaxSearchResults)),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
		mcplib.WithOpenWorldHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleSearchMessages}
}

// searchHitSummary is a JSON-serialisable search result.
type searchHitSummary struct {
	Rank    int    `json:"rank"`
	Summary string `json:"summary,omitempty"`
	messageSummary
}

func (s *Server) handleSearchMessages(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	if s.graph == nil {
		return resultErr(errNotConfigured), nil
	}
	query, ok := stringArg(req, "query")
	if !ok || query == "" {
		return resultErr(errors.New("search_messages: query is required")), nil
	}
	hits, err := s.graph.SearchMessages(ctx, query, limitArg(req, defSearchLimit, graph.MaxSearchResults))
	if err != nil {
		return resultGraphErr("search_messages", err), nil
	}
	summaries := make([]searchHitSummary, 0, len(hits))
	for i := range hits {
		summaries = append(summaries, searchHitSummary{
			Rank:           hits[i].Rank,
			Summary:        graph.PlainText(graph.ItemBody{ContentType: graph.ContentHTML, Content: hits[i].Summary}),
			messageSummary: toMessageSummary(&hits[i].Resource),
		})
	}
	return resultJSON(summaries)
}
