package graph

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const userFields = "id,displayName,userPrincipalName,mail,jobTitle,department,officeLocation"

// Me returns the signed in user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var u User
	if err := c.get(ctx, c.url("me"), url.Values{"$select": {userFields}}, &u); err != nil {
		return nil, fmt.Errorf("me: %w", err)
	}
	return &u, nil
}

// User returns the user by object ID or user principal name.
func (c *Client) User(ctx context.Context, id string) (*User, error) {
	if id == "" {
		return nil, errors.New("user id is required")
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var u User
	if err := c.get(ctx, c.url("users", id), url.Values{"$select": {userFields}}, &u); err != nil {
		return nil, fmt.Errorf("user %s: %w", id, err)
	}
	return &u, nil
}

// SearchUsers returns up to limit users whose display name, mail or user
// principal name starts with query.
func (c *Client) SearchUsers(ctx context.Context, query string, limit int) ([]User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("search query is required")
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	q := odataString(query)
	filter := fmt.Sprintf("startswith(displayName,%[1]s) or startswith(mail,%[1]s) or startswith(userPrincipalName,%[1]s)", q)
	v := url.Values{
		"$filter": {filter},
		"$select": {userFields},
	}
	setTop(v, limit, 0)
	users, err := list[User](ctx, c, c.url("users"), v, limit)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return users, nil
}

// odataString quotes s as an OData string literal.
func odataString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
