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

package graph

// In this file: message body rendering.

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Format is the format of an outgoing message.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
)

// ParseFormat parses s, empty string means FormatText.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatMarkdown:
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown message format %q, use %q or %q", s, FormatText, FormatMarkdown)
	}
}

var (
	mdRenderer = goldmark.New(goldmark.WithExtensions(extension.GFM))
	// ugcPolicy keeps the formatting Teams can display.
	ugcPolicy = bluemonday.UGCPolicy()
	// stripPolicy removes all markup.
	stripPolicy = bluemonday.StrictPolicy()
)

// NewBody returns the message body for text in the given format.  Markdown
// is rendered to sanitised HTML.
func NewBody(text string, f Format) (ItemBody, error) {
	switch f {
	case FormatText, "":
		return ItemBody{ContentType: ContentText, Content: text}, nil
	case FormatMarkdown:
		var buf bytes.Buffer
		if err := mdRenderer.Convert([]byte(text), &buf); err != nil {
			return ItemBody{}, fmt.Errorf("render markdown: %w", err)
		}
		return ItemBody{
			ContentType: ContentHTML,
			Content:     strings.TrimSpace(ugcPolicy.Sanitize(buf.String())),
		}, nil
	default:
		return ItemBody{}, fmt.Errorf("unsupported format %q", f)
	}
}

var (
	reLineBreak = regexp.MustCompile(`(?i)<br\s*/?>|</p>|</div>|</li>`)
	reBlankRuns = regexp.MustCompile(`\n{3,}`)
)

// PlainText returns the text of the body with the markup removed.
func PlainText(b ItemBody) string {
	if !strings.EqualFold(b.ContentType, ContentHTML) {
		return strings.TrimSpace(b.Content)
	}
	s := reLineBreak.ReplaceAllStringFunc(b.Content, func(m string) string { return m + "\n" })
	s = html.UnescapeString(stripPolicy.Sanitize(s))
	s = reBlankRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
