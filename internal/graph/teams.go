package graph

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

// MaxMessages is the largest page Graph serves for channel and chat
// messages.
const MaxMessages = 50

// JoinedTeams returns the teams the signed in user is a member of.
func (c *Client) JoinedTeams(ctx context.Context) ([]Team, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	teams, err := list[Team](ctx, c, c.url("me", "joinedTeams"), nil, 0)
	if err != nil {
		return nil, fmt.Errorf("joined teams: %w", err)
	}
	return teams, nil
}

// Channels returns the channels of the team.
func (c *Client) Channels(ctx context.Context, teamID string) ([]Channel, error) {
	if teamID == "" {
		return nil, errors.New("team id is required")
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	chans, err := list[Channel](ctx, c, c.url("teams", teamID, "channels"), nil, 0)
	if err != nil {
		return nil, fmt.Errorf("channels of team %s: %w", teamID, err)
	}
	return chans, nil
}

// TeamMembers returns the members of the team.
func (c *Client) TeamMembers(ctx context.Context, teamID string) ([]Member, error) {
	if teamID == "" {
		return nil, errors.New("team id is required")
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	mm, err := list[Member](ctx, c, c.url("teams", teamID, "members"), nil, 0)
	if err != nil {
		return nil, fmt.Errorf("members of team %s: %w", teamID, err)
	}
	return mm, nil
}

// ChannelMessages returns up to limit most recent top level messages of the
// channel.
func (c *Client) ChannelMessages(ctx context.Context, teamID, channelID string, limit int) ([]ChatMessage, error) {
	if teamID == "" || channelID == "" {
		return nil, errors.New("team id and channel id are required")
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	v := url.Values{}
	setTop(v, limit, MaxMessages)
	msgs, err := list[ChatMessage](ctx, c, c.url("teams", teamID, "channels", channelID, "messages"), v, limit)
	if err != nil {
		return nil, fmt.Errorf("messages of channel %s: %w", channelID, err)
	}
	return msgs, nil
}

type newMessage struct {
	Body       ItemBody `json:"body"`
	Importance string   `json:"importance,omitempty"`
}

// SendChannelMessage posts a new top level message to the channel.
// importance may be empty.
func (c *Client) SendChannelMessage(ctx context.Context, teamID, channelID string, body ItemBody, importance string) (*ChatMessage, error) {
	if teamID == "" || channelID == "" {
		return nil, errors.New("team id and channel id are required")
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var msg ChatMessage
	if err := c.post(ctx, c.url("teams", teamID, "channels", channelID, "messages"), newMessage{Body: body, Importance: importance}, &msg); err != nil {
		return nil, fmt.Errorf("send to channel %s: %w", channelID, err)
	}
	return &msg, nil
}
