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

// Package devicecode drives the OAuth device-code sign in.  Start hands the
// activation instructions back to the caller as soon as the identity provider
// produces them, while the grant itself keeps running in the background and
// stores the resulting credential when it completes.
package devicecode

//go:generate mockgen -destination=mock_devicecode/mock_devicecode.go . Provider,Saver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/trace"
	"sync"
	"time"

	"github.com/juju/clock"

	"github.com/rusq/msgraph-mcp/internal/credstore"
)

// Scopes is the set of Microsoft Graph permissions requested on sign in.
var Scopes = []string{
	"https://graph.microsoft.com/User.Read",
	"https://graph.microsoft.com/User.ReadBasic.All",
	"https://graph.microsoft.com/Team.ReadBasic.All",
	"https://graph.microsoft.com/Channel.ReadBasic.All",
	"https://graph.microsoft.com/ChannelMessage.Read.All",
	"https://graph.microsoft.com/ChannelMessage.Send",
	"https://graph.microsoft.com/TeamMember.Read.All",
	"https://graph.microsoft.com/Chat.Read",
	"https://graph.microsoft.com/Chat.ReadWrite",
}

// Activation is what the user needs to complete the sign in on another
// device.
type Activation struct {
	UserCode        string
	VerificationURL string
	// Message is the provider supplied human readable instruction.
	Message string
}

// IsZero reports whether no activation data was produced.
func (a Activation) IsZero() bool {
	return a.UserCode == "" && a.VerificationURL == ""
}

// Token is the outcome of a successful grant.
type Token struct {
	Value     string
	ExpiresOn time.Time
}

// PromptFunc receives the activation data.
type PromptFunc func(ctx context.Context, a Activation) error

// Provider performs the device-code grant.  Acquire must call prompt once the
// activation data is available, and then block until the grant is resolved.
type Provider interface {
	Acquire(ctx context.Context, scopes []string, prompt PromptFunc) (Token, error)
}

// Saver persists the credential record.
type Saver interface {
	Save(credstore.Record) error
}

var ErrNoExchange = errors.New("no sign in was started")

// Authenticator starts device-code exchanges.
type Authenticator struct {
	prov     Provider
	store    Saver
	clientID string
	scopes   []string
	clk      clock.Clock
	lg       *slog.Logger

	mu   sync.Mutex
	last *Exchange
}

// Option configures the Authenticator.
type Option func(*Authenticator)

// WithLogger sets the logger.  Nil is ignored.
func WithLogger(lg *slog.Logger) Option {
	return func(a *Authenticator) {
		if lg != nil {
			a.lg = lg
		}
	}
}

// WithClock sets the clock used to timestamp the records.
func WithClock(clk clock.Clock) Option {
	return func(a *Authenticator) {
		if clk != nil {
			a.clk = clk
		}
	}
}

// WithScopes overrides the requested scopes.
func WithScopes(scopes ...string) Option {
	return func(a *Authenticator) {
		if len(scopes) > 0 {
			a.scopes = scopes
		}
	}
}

// New creates an Authenticator.  clientID is written to the credential
// record.
func New(prov Provider, store Saver, clientID string, opts ...Option) *Authenticator {
	a := &Authenticator{
		prov:     prov,
		store:    store,
		clientID: clientID,
		scopes:   Scopes,
		clk:      clock.WallClock,
		lg:       slog.Default(),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Start initiates a device-code exchange and returns as soon as the provider
// hands out the activation data.  The exchange continues after Start returns,
// detached from ctx, and its outcome is available through the returned
// Exchange.  If ctx is done before the activation data arrives, the exchange
// is abandoned.
//
// If the provider completes the grant without prompting, Start returns a zero
// Activation and an already finished Exchange.
func (a *Authenticator) Start(ctx context.Context) (Activation, *Exchange, error) {
	bg, cancel := context.WithCancel(context.WithoutCancel(ctx))
	x := newExchange(a.clk.Now())

	actC := make(chan Activation, 1)
	go func() {
		defer cancel()
		a.run(bg, x, actC)
	}()

	select {
	case act := <-actC:
		a.setLast(x)
		return act, x, nil
	case <-x.Done():
		// activation could have raced with completion.
		select {
		case act := <-actC:
			a.setLast(x)
			return act, x, nil
		default:
		}
		if err := x.Err(); err != nil {
			return Activation{}, x, fmt.Errorf("device code sign in: %w", err)
		}
		a.setLast(x)
		return Activation{}, x, nil
	case <-ctx.Done():
		cancel()
		return Activation{}, x, context.Cause(ctx)
	}
}

// Last returns the most recent exchange that delivered activation data to the
// user or completed without it, or nil.  Exchanges that failed or were
// abandoned before the activation do not replace it, so that a pending sign
// in stays reachable.
func (a *Authenticator) Last() *Exchange {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last
}

func (a *Authenticator) setLast(x *Exchange) {
	a.mu.Lock()
	a.last = x
	a.mu.Unlock()
}

func (a *Authenticator) run(ctx context.Context, x *Exchange, actC chan<- Activation) {
	ctx, task := trace.NewTask(ctx, "DeviceCodeExchange")
	defer task.End()

	var once sync.Once
	prompt := func(_ context.Context, act Activation) error {
		once.Do(func() {
			a.lg.Info("device code issued", "verification_url", act.VerificationURL)
			actC <- act
		})
		return nil
	}

	tok, err := a.prov.Acquire(ctx, a.scopes, prompt)
	if err != nil {
		a.lg.Error("device code sign in failed", "error", err)
		x.finish(err)
		return
	}

	rec := credstore.Record{
		ClientID:      a.clientID,
		Authenticated: true,
		Timestamp:     a.clk.Now(),
		Token:         tok.Value,
	}
	if !tok.ExpiresOn.IsZero() {
		exp := tok.ExpiresOn
		rec.ExpiresAt = &exp
	}
	if err := a.store.Save(rec); err != nil {
		a.lg.Error("failed to save credentials", "error", err)
		x.finish(fmt.Errorf("save credentials: %w", err))
		return
	}
	trace.Log(ctx, "info", "credentials saved")
	a.lg.Info("device code sign in complete", "expires_at", rec.ExpiresAt)
	x.finish(nil)
}
