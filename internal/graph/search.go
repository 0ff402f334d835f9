package graph

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// MaxSearchResults is the largest page the search endpoint serves.
const MaxSearchResults = 25

type searchRequest struct {
	Requests []searchRequestItem `json:"requests"`
}

type searchRequestItem struct {
	EntityTypes []string    `json:"entityTypes"`
	Query       searchQuery `json:"query"`
	From        int         `json:"from"`
	Size        int         `json:"size"`
}

type searchQuery struct {
	QueryString string `json:"queryString"`
}

type searchResponse struct {
	Value []struct {
		HitsContainers []struct {
			Hits  []SearchHit `json:"hits"`
			Total int         `json:"total"`
		} `json:"hitsContainers"`
	} `json:"value"`
}

// SearchMessages runs a Microsoft Search query over the user's chat and
// channel messages and returns up to limit hits.
func (c *Client) SearchMessages(ctx context.Context, query string, limit int) ([]SearchHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("search query is required")
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	req := searchRequest{Requests: []searchRequestItem{{
		EntityTypes: []string{"chatMessage"},
		Query:       searchQuery{QueryString: query},
		From:        0,
		Size:        max(min(limit, MaxSearchResults), 1),
	}}}
	var resp searchResponse
	if err := c.post(ctx, c.url("search", "query"), req, &resp); err != nil {
		return nil, fmt.Errorf("search messages: %w", err)
	}
	var hits []SearchHit
	for _, v := range resp.Value {
		for _, hc := range v.HitsContainers {
			hits = append(hits, hc.Hits...)
		}
	}
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}
