// Package bootstrap contains the initialisation functions that are shared
// between the top level commands.
package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/rusq/msgraph-mcp/cmd/msgraph-mcp/internal/cfg"
	"github.com/rusq/msgraph-mcp/internal/authstatus"
	"github.com/rusq/msgraph-mcp/internal/credstore"
	"github.com/rusq/msgraph-mcp/internal/devicecode"
	"github.com/rusq/msgraph-mcp/internal/graph"
)

// Services are the components the commands are built from.
type Services struct {
	Store  *credstore.Store
	Graph  *graph.Client
	Auth   *devicecode.Authenticator
	Status *authstatus.Reporter
}

// ErrNoClientID is returned when the client ID is empty.
var ErrNoClientID = errors.New("client ID is not set, use -client-id flag or MSGRAPH_CLIENT_ID environment variable")

// Store returns the credential store at cfg.AuthFile, or at the default
// location in the home directory.
func Store(lg *slog.Logger) (*credstore.Store, error) {
	path := cfg.AuthFile
	if path == "" {
		var err error
		if path, err = credstore.DefaultPath(); err != nil {
			return nil, err
		}
	}
	return credstore.New(path, credstore.WithLogger(lg)), nil
}

// New initialises all services from the configuration.
func New(lg *slog.Logger) (*Services, error) {
	if lg == nil {
		lg = slog.Default()
	}
	if cfg.ClientID == "" {
		return nil, ErrNoClientID
	}
	if err := checkEndpoint(cfg.Endpoint); err != nil {
		return nil, err
	}
	store, err := Store(lg)
	if err != nil {
		return nil, err
	}

	gc := graph.New(
		graph.StoreCredential{Store: store},
		graph.WithEndpoint(cfg.Endpoint),
		graph.WithLimiter(graph.NewLimiter(cfg.RateLimit, cfg.RateBurst)),
		graph.WithLogger(lg),
	)
	prov := &devicecode.AzureProvider{
		ClientID: cfg.ClientID,
		TenantID: cfg.TenantID,
	}
	lg.Debug("services initialised", "auth_file", store.Path(), "tenant", cfg.TenantID, "endpoint", cfg.Endpoint)
	return &Services{
		Store:  store,
		Graph:  gc,
		Auth:   devicecode.New(prov, store, cfg.ClientID, devicecode.WithLogger(lg)),
		Status: authstatus.New(store, gc, authstatus.WithLogger(lg)),
	}, nil
}

// checkEndpoint validates the Graph endpoint URL.  Empty endpoint means the
// default.
func checkEndpoint(endpoint string) error {
	if endpoint == "" {
		return nil
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint: %w", err)
	}
	if (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return fmt.Errorf("invalid endpoint %q: must be an absolute http(s) URL", endpoint)
	}
	return nil
}
