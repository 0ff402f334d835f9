package graph

// In this file: pipeline policies.

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	// DefaultRate is the default request rate, in requests per minute.
	DefaultRate = 600
	// DefaultBurst is the default request burst.
	DefaultBurst = 10
)

// NewLimiter returns a limiter allowing perMinute requests per minute.
func NewLimiter(perMinute int, burst int) *rate.Limiter {
	if perMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), max(burst, 1))
}

// requestIDPolicy tags every request with a client-request-id, which Graph
// echoes back and support can trace.
type requestIDPolicy struct {
	lg *slog.Logger
}

func (p requestIDPolicy) Do(req *policy.Request) (*http.Response, error) {
	id := uuid.NewString()
	raw := req.Raw()
	raw.Header.Set("client-request-id", id)
	start := time.Now()
	resp, err := req.Next()
	if err != nil {
		p.lg.DebugContext(raw.Context(), "graph request failed", "method", raw.Method, "path", raw.URL.Path, "client_request_id", id, "error", err)
		return resp, err
	}
	p.lg.DebugContext(raw.Context(), "graph request", "method", raw.Method, "path", raw.URL.Path, "status", resp.StatusCode, "client_request_id", id, "took", time.Since(start))
	return resp, nil
}

type limiterPolicy struct {
	l *rate.Limiter
}

func (p limiterPolicy) Do(req *policy.Request) (*http.Response, error) {
	if err := p.l.Wait(req.Raw().Context()); err != nil {
		return nil, err
	}
	return req.Next()
}

// bearerPolicy authorises the request with a token from cred.  Unlike the
// azcore bearer token policy it does not cache tokens and does not insist on
// TLS, the credential store is the cache.
type bearerPolicy struct {
	cred azcore.TokenCredential
}

func (p bearerPolicy) Do(req *policy.Request) (*http.Response, error) {
	tok, err := p.cred.GetToken(req.Raw().Context(), policy.TokenRequestOptions{Scopes: []string{Scope}})
	if err != nil {
		return nil, err
	}
	req.Raw().Header.Set("Authorization", "Bearer "+tok.Token)
	return req.Next()
}
