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

// In this file: message summaries shared by the teams, chats and search tools.

import (
	"time"

	"github.com/rusq/msgraph-mcp/internal/graph"
)

// messageSummary is a JSON-serialisable summary of a channel or chat
// message.  The body is always returned as plain text.
type messageSummary struct {
	ID         string     `json:"id"`
	From       string     `json:"from,omitempty"`
	Created    *time.Time `json:"created,omitempty"`
	Subject    string     `json:"subject,omitempty"`
	Text       string     `json:"text"`
	Importance string     `json:"importance,omitempty"`
	ReplyToID  string     `json:"reply_to_id,omitempty"`
	ChatID     string     `json:"chat_id,omitempty"`
	WebURL     string     `json:"web_url,omitempty"`
}

func toMessageSummary(m *graph.ChatMessage) messageSummary {
	imp := m.Importance
	if imp == graph.ImportanceNormal {
		imp = ""
	}
	return messageSummary{
		ID:         m.ID,
		From:       m.From.Name(),
		Created:    m.CreatedDateTime,
		Subject:    m.Subject,
		Text:       graph.PlainText(m.Body),
		Importance: imp,
		ReplyToID:  m.ReplyToID,
		ChatID:     m.ChatID,
		WebURL:     m.WebURL,
	}
}

// toMessageSummaries converts msgs, skipping system event messages.
func toMessageSummaries(msgs []graph.ChatMessage) []messageSummary {
	out := make([]messageSummary, 0, len(msgs))
	for i := range msgs {
		if msgs[i].MessageType != "" && msgs[i].MessageType != "message" {
			continue
		}
		out = append(out, toMessageSummary(&msgs[i]))
	}
	return out
}

// sentSummary is returned by the send tools.
type sentSummary struct {
	ID      string     `json:"id"`
	Created *time.Time `json:"created,omitempty"`
	WebURL  string     `json:"web_url,omitempty"`
}

func toSentSummary(m *graph.ChatMessage) sentSummary {
	return sentSummary{ID: m.ID, Created: m.CreatedDateTime, WebURL: m.WebURL}
}
