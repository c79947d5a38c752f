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

package session

import (
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/inkwellhq/inkwell/pkg/assert"
	"github.com/inkwellhq/inkwell/pkg/cli/client"
	"github.com/inkwellhq/inkwell/pkg/cli/consts"
	"github.com/inkwellhq/inkwell/pkg/cli/context"
	"github.com/inkwellhq/inkwell/pkg/cli/database"
)

func newTestCtx(t *testing.T, server *httptest.Server) *context.InkwellCtx {
	db := database.InitTestMemoryDB(t)

	ctx := &context.InkwellCtx{
		APIEndpoint: server.URL,
		Version:     "test",
		DB:          db,
	}
	if server != nil {
		ctx.HTTPClient = server.Client()
	}

	return ctx
}

func mustGetSystem(t *testing.T, db *database.DB, key string) string {
	t.Helper()

	var val string
	if err := database.GetSystem(db, key, &val); err != nil {
		t.Fatalf("getting system value %s: %v", key, err)
	}
	return val
}

func systemKeyMissing(t *testing.T, db *database.DB, key string) bool {
	t.Helper()

	var val string
	err := database.GetSystem(db, key, &val)
	return err == sql.ErrNoRows
}

func TestLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"token": "tok-1", "user": {"id": "u1", "email": "a@b.com", "username": "ab"}}`)
	}))
	defer server.Close()

	ctx := newTestCtx(t, server)
	m := NewManager(ctx)

	user, err := m.Login("a@b.com", "secret1")
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, user.Username, "ab", "returned user mismatch")
	assert.Equal(t, m.Current().Active(), true, "session should be active")
	assert.Equal(t, ctx.SessionKey, "tok-1", "context session key mismatch")
	assert.Equal(t, mustGetSystem(t, ctx.DB, consts.SystemSessionToken), "tok-1", "stored token mismatch")
	assert.Equal(t, mustGetSystem(t, ctx.DB, consts.SystemSessionUser),
		`{"id":"u1","email":"a@b.com","username":"ab"}`, "stored user mismatch")
}

func TestLoginInvalidCredentialsWritesNothing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"detail": "Invalid credentials"}`)
	}))
	defer server.Close()

	ctx := newTestCtx(t, server)
	m := NewManager(ctx)

	_, err := m.Login("a@b.com", "wrong")
	if err == nil {
		t.Fatal("expected an error")
	}

	assert.Equal(t, m.Current().Active(), false, "session should not be active")
	assert.Equal(t, ctx.SessionKey, "", "context session key should be absent")
	assert.Equal(t, systemKeyMissing(t, ctx.DB, consts.SystemSessionToken), true, "no token should be stored")
}

func TestRegisterActivatesSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, r.URL.Path, "/auth/register", "path mismatch")

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"token": "tok-2", "user": {"id": "u2", "email": "a@b.com", "username": "ab"}}`)
	}))
	defer server.Close()

	ctx := newTestCtx(t, server)
	m := NewManager(ctx)

	user, err := m.Register("a@b.com", "ab", "secret12")
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, user.Username, "ab", "returned user mismatch")
	assert.Equal(t, m.Current().Active(), true, "session should be active after register")
	assert.Equal(t, mustGetSystem(t, ctx.DB, consts.SystemSessionToken), "tok-2", "stored token mismatch")
}

func TestRestoreAfterLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/auth/login":
			fmt.Fprint(w, `{"token": "tok-1", "user": {"id": "u1", "email": "a@b.com", "username": "ab"}}`)
		case "/auth/me":
			assert.Equal(t, r.Header.Get("Authorization"), "Bearer tok-1", "restore should validate the stored token")
			fmt.Fprint(w, `{"id": "u1", "email": "a@b.com", "username": "ab"}`)
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	ctx := newTestCtx(t, server)

	// login, then simulate a reload with a fresh manager over the same store
	if _, err := NewManager(ctx).Login("a@b.com", "secret1"); err != nil {
		t.Fatal(err)
	}

	ctx.SessionKey = ""
	m := NewManager(ctx)
	if err := m.Restore(); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, m.Current().Active(), true, "restored session should be active")
	assert.Equal(t, m.Current().User.Username, "ab", "restored user mismatch")
	assert.Equal(t, ctx.SessionKey, "tok-1", "context session key mismatch")
}

func TestRestoreWithoutToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be made when no token is stored")
	}))
	defer server.Close()

	ctx := newTestCtx(t, server)
	m := NewManager(ctx)

	if err := m.Restore(); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, m.Current().Active(), false, "session should be absent")
}

func TestRestoreUnverifiableTokenClearsStore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"detail": "Token expired"}`)
	}))
	defer server.Close()

	ctx := newTestCtx(t, server)
	database.MustExec(t, "seeding stale token", ctx.DB,
		"INSERT INTO system (key, value) VALUES (?, ?)", consts.SystemSessionToken, "stale")
	database.MustExec(t, "seeding stale user", ctx.DB,
		"INSERT INTO system (key, value) VALUES (?, ?)", consts.SystemSessionUser, `{"id":"u1"}`)

	m := NewManager(ctx)
	if err := m.Restore(); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, m.Current().Active(), false, "session should be absent")
	assert.Equal(t, ctx.SessionKey, "", "context session key should be cleared")
	assert.Equal(t, systemKeyMissing(t, ctx.DB, consts.SystemSessionToken), true, "token should be cleared")
	assert.Equal(t, systemKeyMissing(t, ctx.DB, consts.SystemSessionUser), true, "cached user should be cleared")
}

func TestRestoreRunsOnce(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": "u1", "email": "a@b.com", "username": "ab"}`)
	}))
	defer server.Close()

	ctx := newTestCtx(t, server)
	database.MustExec(t, "seeding token", ctx.DB,
		"INSERT INTO system (key, value) VALUES (?, ?)", consts.SystemSessionToken, "tok-1")

	m := NewManager(ctx)
	if err := m.Restore(); err != nil {
		t.Fatal(err)
	}
	if err := m.Restore(); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, calls, 1, "restore should validate exactly once")
}

func TestLogout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"token": "tok-1", "user": {"id": "u1", "email": "a@b.com", "username": "ab"}}`)
	}))
	defer server.Close()

	ctx := newTestCtx(t, server)
	m := NewManager(ctx)

	if _, err := m.Login("a@b.com", "secret1"); err != nil {
		t.Fatal(err)
	}
	if err := m.Logout(); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, m.Current().Active(), false, "session should be inactive")
	assert.Equal(t, ctx.SessionKey, "", "no token should remain in the context")
	assert.Equal(t, systemKeyMissing(t, ctx.DB, consts.SystemSessionToken), true, "no token should remain in the store")
	assert.Equal(t, systemKeyMissing(t, ctx.DB, consts.SystemSessionUser), true, "no cached user should remain in the store")
}

func TestLogoutNotLoggedIn(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	ctx := newTestCtx(t, server)
	m := NewManager(ctx)

	err := m.Logout()
	assert.Equal(t, err, ErrNotLoggedIn, "should return the not-logged-in sentinel")
}

func TestGuardTearsDownRejectedSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/auth/login":
			fmt.Fprint(w, `{"token": "tok-1", "user": {"id": "u1", "email": "a@b.com", "username": "ab"}}`)
		default:
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"detail": "Token expired"}`)
		}
	}))
	defer server.Close()

	ctx := newTestCtx(t, server)
	m := NewManager(ctx)

	if _, err := m.Login("a@b.com", "secret1"); err != nil {
		t.Fatal(err)
	}

	// any component's request can hit the rejection
	_, err := client.GetStats(*ctx)
	if err == nil {
		t.Fatal("expected an error")
	}

	guarded := m.Guard(err)
	assert.Equal(t, guarded, ErrSessionExpired, "should map to the session-expired sentinel")
	assert.Equal(t, m.Current().Active(), false, "session should be torn down")
	assert.Equal(t, ctx.SessionKey, "", "token should be cleared from the context")
	assert.Equal(t, systemKeyMissing(t, ctx.DB, consts.SystemSessionToken), true, "token should be cleared from the store")
}

func TestGuardPassesThroughOtherErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"token": "tok-1", "user": {"id": "u1", "email": "a@b.com", "username": "ab"}}`)
	}))
	defer server.Close()

	ctx := newTestCtx(t, server)
	m := NewManager(ctx)

	if _, err := m.Login("a@b.com", "secret1"); err != nil {
		t.Fatal(err)
	}

	plain := fmt.Errorf("some network problem")
	assert.Equal(t, m.Guard(plain), plain, "non-auth errors pass through")
	assert.Equal(t, m.Current().Active(), true, "session should stay active")
	assert.Equal(t, m.Guard(nil), nil, "nil passes through")
}
