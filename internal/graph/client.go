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

// Package graph is a thin Microsoft Graph v1.0 client covering the user
// directory, teams, channels, chats and search.  Requests go through an azcore
// pipeline, which provides the retry behaviour; nothing else retries.
package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"golang.org/x/time/rate"

	"github.com/rusq/msgraph-mcp/internal/credstore"
)

const (
	moduleName    = "msgraphmcp"
	moduleVersion = "v1.0.0"

	// DefaultEndpoint is the Microsoft Graph v1.0 root.
	DefaultEndpoint = "https://graph.microsoft.com/v1.0"
)

// Scope is the resource scope presented to token credentials.
const Scope = "https://graph.microsoft.com/.default"

// Client calls Microsoft Graph.  It is safe for concurrent use; one client
// per process is enough.
type Client struct {
	pl       runtime.Pipeline
	endpoint string
	lg       *slog.Logger
}

type options struct {
	endpoint   string
	limiter    *rate.Limiter
	clientOpts policy.ClientOptions
	lg         *slog.Logger
}

// Option configures the Client.
type Option func(*options)

// WithEndpoint overrides the Graph root URL.
func WithEndpoint(endpoint string) Option {
	return func(o *options) {
		if endpoint != "" {
			o.endpoint = endpoint
		}
	}
}

// WithLimiter sets the request rate limiter.  Nil disables limiting.
func WithLimiter(l *rate.Limiter) Option {
	return func(o *options) {
		o.limiter = l
	}
}

// WithTransport sets the HTTP transport, i.e. an *http.Client.
func WithTransport(t policy.Transporter) Option {
	return func(o *options) {
		o.clientOpts.Transport = t
	}
}

// WithRetry overrides the pipeline retry options.
func WithRetry(r policy.RetryOptions) Option {
	return func(o *options) {
		o.clientOpts.Retry = r
	}
}

// WithLogger sets the logger.
func WithLogger(lg *slog.Logger) Option {
	return func(o *options) {
		if lg != nil {
			o.lg = lg
		}
	}
}

// New creates a Client that authorises requests with tokens from cred.
func New(cred azcore.TokenCredential, opts ...Option) *Client {
	o := options{
		endpoint: DefaultEndpoint,
		limiter:  NewLimiter(DefaultRate, DefaultBurst),
		lg:       slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	perCall := []policy.Policy{requestIDPolicy{lg: o.lg}}
	if o.limiter != nil {
		perCall = append(perCall, limiterPolicy{l: o.limiter})
	}
	perCall = append(perCall, bearerPolicy{cred: cred})

	pl := runtime.NewPipeline(moduleName, moduleVersion, runtime.PipelineOptions{
		PerCall: perCall,
	}, &o.clientOpts)

	return &Client{pl: pl, endpoint: o.endpoint, lg: o.lg}
}

// ErrNotAuthenticated is returned when no usable credential is stored.
var ErrNotAuthenticated error = notAuthenticatedError{}

type notAuthenticatedError struct{}

func (notAuthenticatedError) Error() string { return "not authenticated" }

// NonRetriable tells the azcore retry policy not to retry.
func (notAuthenticatedError) NonRetriable() {}

// TokenLoader loads the stored credential.
type TokenLoader interface {
	Load() (credstore.Record, bool)
}

// StoreCredential is an azcore.TokenCredential that serves the token from
// the credential store.  The store is read on every call, so a new sign in is
// picked up without restarting.
type StoreCredential struct {
	Store TokenLoader
}

var _ azcore.TokenCredential = StoreCredential{}

func (c StoreCredential) GetToken(context.Context, policy.TokenRequestOptions) (azcore.AccessToken, error) {
	rec, ok := c.Store.Load()
	if !ok || !rec.Usable() {
		return azcore.AccessToken{}, ErrNotAuthenticated
	}
	tok := azcore.AccessToken{Token: rec.Token}
	if rec.ExpiresAt != nil {
		tok.ExpiresOn = *rec.ExpiresAt
	}
	return tok, nil
}

// Error is a Graph error response.
type Error struct {
	StatusCode int
	Code       string
	Message    string
	// Err is the underlying *azcore.ResponseError.
	Err error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("graph: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("graph: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Describe renders err as a message suitable for the end user.
func Describe(err error) string {
	if errors.Is(err, ErrNotAuthenticated) {
		return "Not authenticated. Use the authenticate tool to sign in first."
	}
	var ge *Error
	if errors.As(err, &ge) {
		switch ge.StatusCode {
		case http.StatusUnauthorized:
			return "Microsoft Graph rejected the stored credential, it may have expired. Use the authenticate tool to sign in again."
		case http.StatusForbidden:
			return "Access denied by Microsoft Graph: " + ge.messageOrCode()
		case http.StatusNotFound:
			return "Not found: " + ge.messageOrCode()
		}
		return fmt.Sprintf("Microsoft Graph request failed (%d): %s", ge.StatusCode, ge.messageOrCode())
	}
	return err.Error()
}

func (e *Error) messageOrCode() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Code != "" {
		return e.Code
	}
	return http.StatusText(e.StatusCode)
}

func newError(resp *http.Response) error {
	ge := &Error{
		StatusCode: resp.StatusCode,
		Err:        runtime.NewResponseError(resp),
	}
	if body, err := runtime.Payload(resp); err == nil && len(body) > 0 {
		var eb struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(body, &eb) == nil {
			ge.Code = eb.Error.Code
			ge.Message = eb.Error.Message
		}
	}
	return ge
}

// url joins the path segments to the endpoint, escaping each segment.
func (c *Client) url(segments ...string) string {
	esc := make([]string, len(segments))
	for i, s := range segments {
		esc[i] = url.PathEscape(s)
	}
	return runtime.JoinPaths(c.endpoint, esc...)
}

func (c *Client) get(ctx context.Context, u string, query url.Values, v any) error {
	req, err := runtime.NewRequest(ctx, http.MethodGet, u)
	if err != nil {
		return err
	}
	if len(query) > 0 {
		req.Raw().URL.RawQuery = query.Encode()
	}
	req.Raw().Header.Set("Accept", "application/json")
	return c.do(req, v, http.StatusOK)
}

func (c *Client) post(ctx context.Context, u string, body any, v any) error {
	req, err := runtime.NewRequest(ctx, http.MethodPost, u)
	if err != nil {
		return err
	}
	req.Raw().Header.Set("Accept", "application/json")
	if err := runtime.MarshalAsJSON(req, body); err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	return c.do(req, v, http.StatusOK, http.StatusCreated)
}

func (c *Client) do(req *policy.Request, v any, codes ...int) error {
	resp, err := c.pl.Do(req)
	if err != nil {
		return err
	}
	if !runtime.HasStatusCode(resp, codes...) {
		return newError(resp)
	}
	if v == nil {
		return nil
	}
	if err := runtime.UnmarshalAsJSON(resp, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// page is a Graph collection response.
type page[T any] struct {
	Value    []T    `json:"value"`
	NextLink string `json:"@odata.nextLink"`
}

// list fetches a collection, following next links until limit items are
// collected.  limit <= 0 fetches everything.
func list[T any](ctx context.Context, c *Client, u string, query url.Values, limit int) ([]T, error) {
	var out []T
	for u != "" {
		var p page[T]
		if err := c.get(ctx, u, query, &p); err != nil {
			return nil, err
		}
		out = append(out, p.Value...)
		if limit > 0 && len(out) >= limit {
			return out[:limit], nil
		}
		// the next link carries the query.
		u, query = p.NextLink, nil
	}
	return out, nil
}

// setTop sets the page size for a list of up to limit items, capped at
// pageMax if it is positive.  limit <= 0 leaves the page size to the server.
func setTop(v url.Values, limit, pageMax int) {
	if limit <= 0 {
		return
	}
	if pageMax > 0 {
		limit = min(limit, pageMax)
	}
	v.Set("$top", strconv.Itoa(limit))
}

// timeout bounds a single request when the caller did not set a deadline.
const timeout = 60 * time.Second

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
