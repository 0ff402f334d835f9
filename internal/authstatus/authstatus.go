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

// Package authstatus derives the authentication state from the stored
// credential.
//
// There are two independent checks.  Status trusts the stored flag and probes
// the remote profile for display purposes.  Check looks only at the stored
// expiry and never calls the remote API.
package authstatus

import (
	"context"
	"log/slog"
	"time"

	"github.com/juju/clock"

	"github.com/rusq/msgraph-mcp/internal/credstore"
	"github.com/rusq/msgraph-mcp/internal/graph"
)

// Loader loads the stored credential.
type Loader interface {
	Load() (credstore.Record, bool)
}

// ProfileFetcher fetches the signed in user's profile.
type ProfileFetcher interface {
	Me(ctx context.Context) (*graph.User, error)
}

// LiveStatus is the outcome of Status.
type LiveStatus struct {
	IsAuthenticated   bool
	DisplayName       string
	UserPrincipalName string
}

// State is the local credential state.
type State int

const (
	StateNone State = iota
	StateValid
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateValid:
		return "valid"
	case StateExpired:
		return "expired"
	default:
		return "none"
	}
}

// LocalStatus is the outcome of Check.
type LocalStatus struct {
	State     State
	IssuedAt  time.Time
	ExpiresAt *time.Time
	// Now is the time the check was made at.
	Now time.Time
}

// Reporter reports the authentication status.
type Reporter struct {
	store   Loader
	profile ProfileFetcher
	clk     clock.Clock
	lg      *slog.Logger
}

// Option configures the Reporter.
type Option func(*Reporter)

func WithClock(clk clock.Clock) Option {
	return func(r *Reporter) {
		if clk != nil {
			r.clk = clk
		}
	}
}

func WithLogger(lg *slog.Logger) Option {
	return func(r *Reporter) {
		if lg != nil {
			r.lg = lg
		}
	}
}

// New creates a Reporter.  profile may be nil, in which case Status does not
// attach the user names.
func New(store Loader, profile ProfileFetcher, opts ...Option) *Reporter {
	r := &Reporter{
		store:   store,
		profile: profile,
		clk:     clock.WallClock,
		lg:      slog.Default(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Status reports whether a usable credential is stored and, if the remote
// profile can be fetched, who it belongs to.  A failed profile fetch does not
// change the verdict.
func (r *Reporter) Status(ctx context.Context) LiveStatus {
	rec, ok := r.store.Load()
	if !ok || !rec.Usable() {
		return LiveStatus{}
	}
	st := LiveStatus{IsAuthenticated: true}
	if r.profile == nil {
		return st
	}
	me, err := r.profile.Me(ctx)
	if err != nil {
		r.lg.DebugContext(ctx, "profile fetch failed", "error", err)
		return st
	}
	st.DisplayName = me.DisplayName
	st.UserPrincipalName = me.UserPrincipalName
	return st
}

// Check reports the local credential state by comparing the stored expiry
// with the current time.
func (r *Reporter) Check() LocalStatus {
	now := r.clk.Now()
	rec, ok := r.store.Load()
	if !ok || !rec.Usable() {
		return LocalStatus{State: StateNone, Now: now}
	}
	st := LocalStatus{
		State:     StateValid,
		IssuedAt:  rec.Timestamp,
		ExpiresAt: rec.ExpiresAt,
		Now:       now,
	}
	if rec.Expired(now) {
		st.State = StateExpired
	}
	return st
}
