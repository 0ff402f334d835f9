package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{" Markdown ", FormatMarkdown, false},
		{"html", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewBody(t *testing.T) {
	t.Run("text is sent as is", func(t *testing.T) {
		b, err := NewBody("**not bold** <b>", FormatText)
		require.NoError(t, err)
		assert.Equal(t, ItemBody{ContentType: ContentText, Content: "**not bold** <b>"}, b)
	})
	t.Run("markdown is rendered", func(t *testing.T) {
		b, err := NewBody("Hello **world**\n\n- one\n- two", FormatMarkdown)
		require.NoError(t, err)
		assert.Equal(t, ContentHTML, b.ContentType)
		assert.Contains(t, b.Content, "<strong>world</strong>")
		assert.Contains(t, b.Content, "<li>one</li>")
	})
	t.Run("markdown is sanitised", func(t *testing.T) {
		b, err := NewBody("hi <script>alert(1)</script> [x](javascript:alert(1))", FormatMarkdown)
		require.NoError(t, err)
		assert.NotContains(t, b.Content, "<script")
		assert.NotContains(t, b.Content, "javascript:")
	})
	t.Run("unknown format", func(t *testing.T) {
		_, err := NewBody("x", Format("rtf"))
		assert.Error(t, err)
	})
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		body ItemBody
		want string
	}{
		{"text", ItemBody{ContentType: "text", Content: "  plain  "}, "plain"},
		{"html paragraphs", ItemBody{ContentType: "html", Content: "<p>first</p><p>second &amp; third</p>"}, "first\nsecond & third"},
		{"html line breaks", ItemBody{ContentType: "HTML", Content: "a<br>b<br/>c"}, "a\nb\nc"},
		{"attachments", ItemBody{ContentType: "html", Content: `<attachment id="1"></attachment>`}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlainText(tt.body))
		})
	}
}
