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

// Package credstore persists the single credential record produced by a
// successful device-code sign in.  The record lives in a JSON file at a fixed
// location in the user's home directory.  There is no locking: concurrent
// writers race and the last one wins.
package credstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/natefinch/atomic"
)

// DefaultFilename is the name of the credential file in the home directory.
const DefaultFilename = ".msgraph-mcp-auth.json"

// Record is the persisted outcome of an authentication.
type Record struct {
	ClientID      string     `json:"clientId" validate:"required"`
	Authenticated bool       `json:"authenticated"`
	Timestamp     time.Time  `json:"timestamp" validate:"required"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
	Token         string     `json:"token" validate:"required"`
}

// Usable reports whether the record may be used to call the remote API.
func (r Record) Usable() bool {
	return r.Authenticated
}

// Expired reports whether the record carries an expiry at or before now.
// Records without expiry never expire.
func (r Record) Expired(now time.Time) bool {
	return r.ExpiresAt != nil && !r.ExpiresAt.After(now)
}

// Store reads and writes the credential file.
type Store struct {
	path string
	lg   *slog.Logger
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Option configures the Store.
type Option func(*Store)

// WithLogger sets the logger.  Nil logger is ignored.
func WithLogger(lg *slog.Logger) Option {
	return func(s *Store) {
		if lg != nil {
			s.lg = lg
		}
	}
}

// New returns a Store backed by the file at path.
func New(path string, opts ...Option) *Store {
	s := &Store{path: path, lg: slog.Default()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// DefaultPath returns the location of the credential file in the user's home
// directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("unable to determine home directory: %w", err)
	}
	return filepath.Join(home, DefaultFilename), nil
}

// Path returns the file location.
func (s *Store) Path() string {
	return s.path
}

// Save writes the record, replacing any existing content.  The file is
// replaced atomically.
func (s *Store) Save(r Record) error {
	r.Timestamp = r.Timestamp.UTC()
	if r.ExpiresAt != nil {
		exp := r.ExpiresAt.UTC()
		r.ExpiresAt = &exp
	}
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid credential record: %w", err)
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal credential record: %w", err)
	}
	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// Load reads the record.  Any failure to read, decode or validate the file
// is reported as absence, ok is false in that case.
func (s *Store) Load() (rec Record, ok bool) {
	rec, err := s.load()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.lg.Debug("ignoring unreadable credential file", "path", s.path, "error", err)
		}
		return Record{}, false
	}
	return rec, true
}

func (s *Store) load() (Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Record{}, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var r Record
	if err := dec.Decode(&r); err != nil {
		return Record{}, fmt.Errorf("decode: %w", err)
	}
	// the file must hold exactly one JSON value.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Record{}, errors.New("decode: unexpected data after the record")
	}
	if err := validate.Struct(r); err != nil {
		return Record{}, fmt.Errorf("validate: %w", err)
	}
	return r, nil
}

// Clear removes the credential file.  A missing file is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", s.path, err)
	}
	return nil
}
