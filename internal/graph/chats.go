package graph

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

// MaxChats is the largest page Graph serves for chats.
const MaxChats = 50

// Chats returns up to limit chats of the signed in user, with members.
func (c *Client) Chats(ctx context.Context, limit int) ([]Chat, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	v := url.Values{
		"$expand": {"members"},
	}
	setTop(v, limit, MaxChats)
	chats, err := list[Chat](ctx, c, c.url("me", "chats"), v, limit)
	if err != nil {
		return nil, fmt.Errorf("chats: %w", err)
	}
	return chats, nil
}

// ChatMessages returns up to limit most recent messages of the chat, newest
// first.
func (c *Client) ChatMessages(ctx context.Context, chatID string, limit int) ([]ChatMessage, error) {
	if chatID == "" {
		return nil, errors.New("chat id is required")
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	v := url.Values{
		"$orderby": {"createdDateTime desc"},
	}
	setTop(v, limit, MaxMessages)
	msgs, err := list[ChatMessage](ctx, c, c.url("me", "chats", chatID, "messages"), v, limit)
	if err != nil {
		return nil, fmt.Errorf("messages of chat %s: %w", chatID, err)
	}
	return msgs, nil
}

// SendChatMessage posts a message to the chat.
func (c *Client) SendChatMessage(ctx context.Context, chatID string, body ItemBody) (*ChatMessage, error) {
	if chatID == "" {
		return nil, errors.New("chat id is required")
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var msg ChatMessage
	if err := c.post(ctx, c.url("chats", chatID, "messages"), newMessage{Body: body}, &msg); err != nil {
		return nil, fmt.Errorf("send to chat %s: %w", chatID, err)
	}
	return &msg, nil
}
