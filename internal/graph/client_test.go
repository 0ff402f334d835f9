package graph

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rusq/msgraph-mcp/internal/credstore"
)

const testToken = "test-token"

func authedStore(t *testing.T) *credstore.Store {
	t.Helper()
	s := credstore.New(filepath.Join(t.TempDir(), credstore.DefaultFilename))
	require.NoError(t, s.Save(credstore.Record{
		ClientID:      "client",
		Authenticated: true,
		Timestamp:     time.Now(),
		Token:         testToken,
	}))
	return s
}

// newTestClient starts a server with the handler and returns a client that
// talks to it.
func newTestClient(t *testing.T, store TokenLoader, h http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := New(StoreCredential{Store: store},
		WithEndpoint(srv.URL+"/v1.0"),
		WithTransport(srv.Client()),
		WithRetry(policy.RetryOptions{MaxRetries: -1}),
		WithLimiter(nil),
	)
	return c, srv
}

func writeJSON(t *testing.T, w http.ResponseWriter, code int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestClient_Me(t *testing.T) {
	c, _ := newTestClient(t, authedStore(t), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1.0/me", r.URL.Path)
		assert.Equal(t, "Bearer "+testToken, r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("client-request-id"))
		assert.Equal(t, userFields, r.URL.Query().Get("$select"))
		writeJSON(t, w, http.StatusOK, User{ID: "u1", DisplayName: "Ada Lovelace", UserPrincipalName: "ada@example.com"})
	}))

	me, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &User{ID: "u1", DisplayName: "Ada Lovelace", UserPrincipalName: "ada@example.com"}, me)
}

func TestClient_NotAuthenticated(t *testing.T) {
	var calls atomic.Int32
	empty := credstore.New(filepath.Join(t.TempDir(), credstore.DefaultFilename))
	c, _ := newTestClient(t, empty, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))

	_, err := c.Me(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Zero(t, calls.Load(), "no request must be sent without a credential")
	assert.Contains(t, Describe(err), "authenticate")
}

func TestClient_NotAuthenticatedFlag(t *testing.T) {
	s := credstore.New(filepath.Join(t.TempDir(), credstore.DefaultFilename))
	require.NoError(t, s.Save(credstore.Record{ClientID: "c", Authenticated: false, Timestamp: time.Now(), Token: "t"}))
	c, _ := newTestClient(t, s, http.NotFoundHandler())

	_, err := c.JoinedTeams(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestClient_ErrorResponse(t *testing.T) {
	tests := []struct {
		name       string
		code       int
		body       string
		wantCode   string
		wantDetail string
	}{
		{"not found", http.StatusNotFound, `{"error":{"code":"Request_ResourceNotFound","message":"Resource 'x' does not exist"}}`, "Request_ResourceNotFound", "Not found: Resource 'x' does not exist"},
		{"unauthorized", http.StatusUnauthorized, `{"error":{"code":"InvalidAuthenticationToken","message":"Access token has expired"}}`, "InvalidAuthenticationToken", "may have expired"},
		{"forbidden", http.StatusForbidden, `{"error":{"code":"Forbidden","message":"Missing scope"}}`, "Forbidden", "Access denied by Microsoft Graph: Missing scope"},
		{"server error without body", http.StatusInternalServerError, ``, "", "Microsoft Graph request failed (500): Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, authedStore(t), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.code)
				_, _ = io.WriteString(w, tt.body)
			}))
			_, err := c.User(context.Background(), "x")
			require.Error(t, err)

			var ge *Error
			require.True(t, errors.As(err, &ge))
			assert.Equal(t, tt.code, ge.StatusCode)
			assert.Equal(t, tt.wantCode, ge.Code)

			var re *azcore.ResponseError
			assert.True(t, errors.As(err, &re), "must unwrap to the azcore response error")

			assert.Contains(t, Describe(err), tt.wantDetail)
		})
	}
}

func TestClient_UserEscapesID(t *testing.T) {
	c, _ := newTestClient(t, authedStore(t), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1.0/users/a%2Fb@example.com", r.URL.EscapedPath())
		writeJSON(t, w, http.StatusOK, User{ID: "u1"})
	}))
	_, err := c.User(context.Background(), "a/b@example.com")
	require.NoError(t, err)
}

func TestClient_SearchUsers(t *testing.T) {
	c, _ := newTestClient(t, authedStore(t), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1.0/users", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "startswith(displayName,'O''Brien') or startswith(mail,'O''Brien') or startswith(userPrincipalName,'O''Brien')", q.Get("$filter"))
		assert.Equal(t, "5", q.Get("$top"))
		writeJSON(t, w, http.StatusOK, map[string]any{"value": []User{{ID: "1"}, {ID: "2"}}})
	}))

	users, err := c.SearchUsers(context.Background(), "  O'Brien ", 5)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	_, err = c.SearchUsers(context.Background(), " ", 5)
	assert.Error(t, err)
}

func TestClient_ListFollowsNextLink(t *testing.T) {
	var srv *httptest.Server
	c, srv := newTestClient(t, authedStore(t), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "":
			assert.Equal(t, "Bearer "+testToken, r.Header.Get("Authorization"))
			writeJSON(t, w, http.StatusOK, map[string]any{
				"value":           []Team{{ID: "t1"}, {ID: "t2"}},
				"@odata.nextLink": srv.URL + "/v1.0/me/joinedTeams?page=2",
			})
		case "2":
			assert.Equal(t, "Bearer "+testToken, r.Header.Get("Authorization"))
			writeJSON(t, w, http.StatusOK, map[string]any{"value": []Team{{ID: "t3"}}})
		default:
			t.Errorf("unexpected page %q", r.URL.RawQuery)
		}
	}))

	teams, err := c.JoinedTeams(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Team{{ID: "t1"}, {ID: "t2"}, {ID: "t3"}}, teams)
}

func TestClient_ListStopsAtLimit(t *testing.T) {
	var srv *httptest.Server
	var calls atomic.Int32
	c, srv := newTestClient(t, authedStore(t), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "3", r.URL.Query().Get("$top"))
		assert.Equal(t, "createdDateTime desc", r.URL.Query().Get("$orderby"))
		writeJSON(t, w, http.StatusOK, map[string]any{
			"value":           []ChatMessage{{ID: "1"}, {ID: "2"}, {ID: "3"}},
			"@odata.nextLink": srv.URL + "/v1.0/me/chats/c1/messages?$skiptoken=x",
		})
	}))

	msgs, err := c.ChatMessages(context.Background(), "c1", 3)
	require.NoError(t, err)
	assert.Len(t, msgs, 3)
	assert.EqualValues(t, 1, calls.Load())
}

func TestClient_ChannelMessages(t *testing.T) {
	c, _ := newTestClient(t, authedStore(t), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1.0/teams/t1/channels/19:abc@thread.tacv2/messages", r.URL.Path)
		assert.Equal(t, "50", r.URL.Query().Get("$top"), "page size is capped")
		writeJSON(t, w, http.StatusOK, map[string]any{"value": []ChatMessage{{ID: "m1", Body: ItemBody{ContentType: "html", Content: "<p>hi</p>"}}}})
	}))

	msgs, err := c.ChannelMessages(context.Background(), "t1", "19:abc@thread.tacv2", 200)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "hi", PlainText(msgs[0].Body))

	_, err = c.ChannelMessages(context.Background(), "", "c", 1)
	assert.Error(t, err)
}

func TestClient_SendChatMessage(t *testing.T) {
	c, _ := newTestClient(t, authedStore(t), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1.0/chats/c1/messages", r.URL.Path)
		var got newMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, newMessage{Body: ItemBody{ContentType: "text", Content: "hello"}}, got)
		writeJSON(t, w, http.StatusCreated, ChatMessage{ID: "m1", Body: got.Body})
	}))

	msg, err := c.SendChatMessage(context.Background(), "c1", ItemBody{ContentType: "text", Content: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "m1", msg.ID)
}

func TestClient_SendChannelMessage(t *testing.T) {
	c, _ := newTestClient(t, authedStore(t), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1.0/teams/t1/channels/ch1/messages", r.URL.Path)
		var got map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "high", got["importance"])
		writeJSON(t, w, http.StatusCreated, ChatMessage{ID: "m2"})
	}))

	msg, err := c.SendChannelMessage(context.Background(), "t1", "ch1", ItemBody{ContentType: "html", Content: "<b>x</b>"}, ImportanceHigh)
	require.NoError(t, err)
	assert.Equal(t, "m2", msg.ID)
}

func TestClient_SearchMessages(t *testing.T) {
	c, _ := newTestClient(t, authedStore(t), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1.0/search/query", r.URL.Path)
		var got searchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		require.Len(t, got.Requests, 1)
		assert.Equal(t, []string{"chatMessage"}, got.Requests[0].EntityTypes)
		assert.Equal(t, "budget", got.Requests[0].Query.QueryString)
		assert.Equal(t, MaxSearchResults, got.Requests[0].Size)
		_, _ = io.WriteString(w, `{"value":[{"hitsContainers":[{"total":2,"hits":[
			{"hitId":"h1","rank":1,"summary":"the <c0>budget</c0>","resource":{"id":"m1","body":{"contentType":"html","content":"budget"}}},
			{"hitId":"h2","rank":2,"resource":{"id":"m2","body":{"contentType":"text","content":"budget 2"}}}
		]}]}]}`)
	}))

	hits, err := c.SearchMessages(context.Background(), "budget", 100)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "m1", hits[0].Resource.ID)
	assert.Equal(t, 2, hits[1].Rank)
}

func TestStoreCredential_GetToken(t *testing.T) {
	exp := time.Date(2026, 10, 16, 13, 0, 0, 0, time.UTC)
	s := credstore.New(filepath.Join(t.TempDir(), credstore.DefaultFilename))
	cred := StoreCredential{Store: s}

	_, err := cred.GetToken(context.Background(), policy.TokenRequestOptions{})
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	require.NoError(t, s.Save(credstore.Record{ClientID: "c", Authenticated: true, Timestamp: time.Now(), ExpiresAt: &exp, Token: "abc"}))
	tok, err := cred.GetToken(context.Background(), policy.TokenRequestOptions{})
	require.NoError(t, err)
	assert.Equal(t, "abc", tok.Token)
	assert.True(t, tok.ExpiresOn.Equal(exp))
}

func TestNewLimiter(t *testing.T) {
	l := NewLimiter(0, 0)
	assert.True(t, l.Allow())
	l = NewLimiter(60, 0)
	assert.Equal(t, 1, l.Burst())
	assert.InDelta(t, 1.0, float64(l.Limit()), 1e-9)
}

func TestSetTop(t *testing.T) {
	tests := []struct {
		name    string
		limit   int
		pageMax int
		want    string
		wantSet bool
	}{
		{"no limit", 0, MaxChats, "", false},
		{"negative limit", -1, 0, "", false},
		{"below page max", 10, MaxChats, "10", true},
		{"above page max", 200, MaxChats, "50", true},
		{"no page max", 200, 0, "200", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := url.Values{}
			setTop(v, tt.limit, tt.pageMax)
			assert.Equal(t, tt.wantSet, v.Has("$top"))
			assert.Equal(t, tt.want, v.Get("$top"))
		})
	}
}

func TestClient_ChatsWithoutLimitFetchesAll(t *testing.T) {
	var srv *httptest.Server
	c, srv := newTestClient(t, authedStore(t), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("$top"), "page size must be left to the server")
		if r.URL.Query().Get("page") == "2" {
			writeJSON(t, w, http.StatusOK, map[string]any{"value": []Chat{{ID: "c3"}}})
			return
		}
		writeJSON(t, w, http.StatusOK, map[string]any{
			"value":           []Chat{{ID: "c1"}, {ID: "c2"}},
			"@odata.nextLink": srv.URL + "/v1.0/me/chats?page=2",
		})
	}))

	chats, err := c.Chats(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, chats, 3)
}
