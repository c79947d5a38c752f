/* Copyright 2025 Inkwell Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package session owns the authenticated session lifecycle. The manager is
// the sole writer of the session store and the single authority on whether
// the user is authenticated; every other component reads the session
// through the context.
package session

import (
	"database/sql"
	"encoding/json"

	"github.com/inkwellhq/inkwell/pkg/cli/client"
	"github.com/inkwellhq/inkwell/pkg/cli/consts"
	"github.com/inkwellhq/inkwell/pkg/cli/context"
	"github.com/inkwellhq/inkwell/pkg/cli/database"
	"github.com/inkwellhq/inkwell/pkg/cli/log"
	"github.com/pkg/errors"
)

// ErrNotLoggedIn is an error for operations that require a session when
// none is active
var ErrNotLoggedIn = errors.New("not logged in")

// ErrSessionExpired is an error raised when the server rejects the current
// session token. By the time it is returned the local session has already
// been torn down.
var ErrSessionExpired = errors.New("session expired, please log in again")

// Session is the active authenticated context: a bearer token plus the
// cached user it authenticates. It is either fully absent or carries both.
type Session struct {
	Key  string
	User client.User
}

// Active returns true if the session carries a token
func (s Session) Active() bool {
	return s.Key != ""
}

// Manager establishes, restores, and tears down the session
type Manager struct {
	ctx      *context.InkwellCtx
	session  Session
	restored bool
}

// NewManager returns a session manager bound to the given runtime context
func NewManager(ctx *context.InkwellCtx) *Manager {
	return &Manager{ctx: ctx}
}

// Current returns a read-only copy of the current session
func (m *Manager) Current() Session {
	return m.session
}

// Restore loads the stored token, if any, and validates it against the
// identity endpoint. On success the cached user is refreshed from the
// response; on any failure the store is cleared and the session is left
// absent, since an unverifiable token must not keep a stale user logged
// in. It runs at most once per process.
func (m *Manager) Restore() error {
	if m.restored {
		return nil
	}
	m.restored = true

	var key string
	err := database.GetSystem(m.ctx.DB, consts.SystemSessionToken, &key)
	if err == sql.ErrNoRows {
		return nil
	} else if err != nil {
		return errors.Wrap(err, "getting session token")
	}

	m.ctx.SessionKey = key

	user, err := client.GetMe(*m.ctx)
	if err != nil {
		log.Debug("session restore failed: %v\n", err)

		if err := m.clear(); err != nil {
			return errors.Wrap(err, "clearing unverifiable session")
		}
		return nil
	}

	userJSON, err := json.Marshal(user)
	if err != nil {
		return errors.Wrap(err, "marshaling user")
	}
	if err := database.UpsertSystem(m.ctx.DB, consts.SystemSessionUser, string(userJSON)); err != nil {
		return errors.Wrap(err, "caching user")
	}

	m.session = Session{Key: key, User: user}

	return nil
}

// Login exchanges credentials for a session. On success the token and user
// are persisted in one transaction and the session becomes active; nothing
// is written on failure.
func (m *Manager) Login(email, password string) (client.User, error) {
	resp, err := client.Signin(*m.ctx, email, password)
	if err != nil {
		return client.User{}, err
	}

	if err := m.activate(resp); err != nil {
		return client.User{}, errors.Wrap(err, "activating session")
	}

	return resp.User, nil
}

// Register creates an account and immediately activates a session for it,
// behaving identically to Login on success.
func (m *Manager) Register(email, username, password string) (client.User, error) {
	resp, err := client.Register(*m.ctx, email, username, password)
	if err != nil {
		return client.User{}, err
	}

	if err := m.activate(resp); err != nil {
		return client.User{}, errors.Wrap(err, "activating session")
	}

	return resp.User, nil
}

// Logout clears the stored token and cached user and deactivates the
// session. It has no network side effect.
func (m *Manager) Logout() error {
	if !m.session.Active() && m.ctx.SessionKey == "" {
		var key string
		err := database.GetSystem(m.ctx.DB, consts.SystemSessionToken, &key)
		if err == sql.ErrNoRows {
			return ErrNotLoggedIn
		} else if err != nil {
			return errors.Wrap(err, "getting session token")
		}
	}

	if err := m.clear(); err != nil {
		return errors.Wrap(err, "clearing session")
	}

	return nil
}

// Guard inspects an error from any gateway operation. If the server
// rejected the session token, the local session is torn down the same way
// as an explicit logout and ErrSessionExpired is returned instead so the
// caller lands back at the unauthenticated entry point. Any other error
// passes through unchanged.
func (m *Manager) Guard(err error) error {
	if err == nil {
		return nil
	}

	if client.IsAuthRejected(err) {
		if clearErr := m.clear(); clearErr != nil {
			log.Debug("tearing down rejected session: %v\n", clearErr)
		}
		return ErrSessionExpired
	}

	return err
}

func (m *Manager) activate(resp client.SigninResponse) error {
	userJSON, err := json.Marshal(resp.User)
	if err != nil {
		return errors.Wrap(err, "marshaling user")
	}

	tx, err := m.ctx.DB.Begin()
	if err != nil {
		return errors.Wrap(err, "beginning a transaction")
	}

	if err := database.UpsertSystem(tx, consts.SystemSessionToken, resp.Token); err != nil {
		tx.Rollback()
		return errors.Wrap(err, "storing session token")
	}
	if err := database.UpsertSystem(tx, consts.SystemSessionUser, string(userJSON)); err != nil {
		tx.Rollback()
		return errors.Wrap(err, "storing user")
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "committing transaction")
	}

	m.ctx.SessionKey = resp.Token
	m.session = Session{Key: resp.Token, User: resp.User}

	return nil
}

func (m *Manager) clear() error {
	tx, err := m.ctx.DB.Begin()
	if err != nil {
		return errors.Wrap(err, "beginning a transaction")
	}

	if err := database.DeleteSystem(tx, consts.SystemSessionToken); err != nil {
		tx.Rollback()
		return errors.Wrap(err, "deleting session token")
	}
	if err := database.DeleteSystem(tx, consts.SystemSessionUser); err != nil {
		tx.Rollback()
		return errors.Wrap(err, "deleting cached user")
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "committing transaction")
	}

	m.ctx.SessionKey = ""
	m.session = Session{}

	return nil
}
