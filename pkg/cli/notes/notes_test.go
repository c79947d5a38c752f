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

package notes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/inkwellhq/inkwell/pkg/assert"
	"github.com/inkwellhq/inkwell/pkg/cli/client"
	"github.com/inkwellhq/inkwell/pkg/cli/context"
)

func newTestCtx(server *httptest.Server) context.InkwellCtx {
	return context.InkwellCtx{
		APIEndpoint: server.URL,
		Version:     "test",
		SessionKey:  "tok",
		HTTPClient:  server.Client(),
	}
}

func seededCollection(t *testing.T, server *httptest.Server) *Collection {
	t.Helper()

	c := NewCollection(newTestCtx(server))
	c.notes = []client.Note{
		{ID: "n1", Title: "Graphs", Subject: "CS"},
		{ID: "n2", Title: "Limits", Subject: "Math", IsFavorite: true},
	}
	c.page = Page{Number: 1, Pages: 1, Total: 2}

	return c
}

func TestList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, r.URL.Path, "/notes", "path mismatch")
		assert.Equal(t, r.URL.Query().Get("page"), "1", "page mismatch")
		assert.Equal(t, r.URL.Query().Get("subject"), "Math", "subject mismatch")

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"notes": [{"id": "n2", "title": "Limits", "subject": "Math"}],
			"total": 1,
			"page": 1,
			"pages": 1
		}`)
	}))
	defer server.Close()

	c := NewCollection(newTestCtx(server))

	if err := c.List(1, 10, Filters{Subject: "Math"}); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, len(c.Notes()), 1, "note count mismatch")
	assert.Equal(t, c.Notes()[0].ID, "n2", "note id mismatch")
	assert.Equal(t, c.Page().Total, 1, "total mismatch")
}

func TestListClampsPastLastPage(t *testing.T) {
	var requestedPages []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		requestedPages = append(requestedPages, page)

		w.Header().Set("Content-Type", "application/json")
		if page == "9" {
			fmt.Fprint(w, `{"notes": [], "total": 12, "page": 9, "pages": 2}`)
			return
		}
		fmt.Fprint(w, `{
			"notes": [{"id": "n12", "title": "Last", "subject": "Other"}],
			"total": 12,
			"page": 2,
			"pages": 2
		}`)
	}))
	defer server.Close()

	c := NewCollection(newTestCtx(server))

	if err := c.List(9, 10, Filters{}); err != nil {
		t.Fatal(err)
	}

	assert.DeepEqual(t, requestedPages, []string{"9", "2"}, "should refetch the last page")
	assert.Equal(t, c.Page().Number, 2, "page number mismatch")
	assert.Equal(t, c.Notes()[0].ID, "n12", "note id mismatch")
}

func TestSetFavorite(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, r.Method, "PATCH", "method mismatch")
		assert.Equal(t, r.URL.Path, "/notes/n1", "path mismatch")

		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Error(err)
		}
		assert.Equal(t, body["is_favorite"], true, "payload mismatch")
		if _, ok := body["title"]; ok {
			t.Error("title should be omitted")
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"message": "updated"}`)
	}))
	defer server.Close()

	c := seededCollection(t, server)

	if err := c.SetFavorite("n1", true); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, c.Notes()[0].IsFavorite, true, "flag should be patched in place")
	assert.Equal(t, c.Notes()[1].IsFavorite, true, "other notes should be untouched")
}

func TestSetFavoriteRepeatHitsServer(t *testing.T) {
	var requests int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++

		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Error(err)
		}
		assert.Equal(t, body["is_favorite"], true, "payload mismatch")

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"message": "updated"}`)
	}))
	defer server.Close()

	c := seededCollection(t, server)

	if err := c.SetFavorite("n1", true); err != nil {
		t.Fatal(err)
	}
	if err := c.SetFavorite("n1", true); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, requests, 2, "each call should reach the server")
	assert.Equal(t, c.Notes()[0].IsFavorite, true, "flag mismatch")
}

func TestFavorites(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("favorites should be narrowed locally")
	}))
	defer server.Close()

	c := seededCollection(t, server)

	got := c.Favorites()
	assert.Equal(t, len(got), 1, "favorite count mismatch")
	assert.Equal(t, got[0].ID, "n2", "favorite id mismatch")
	assert.Equal(t, len(c.Notes()), 2, "the held page should be untouched")
}

func TestSetFavoriteFailureLeavesCollection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"detail": "Note not found"}`)
	}))
	defer server.Close()

	c := seededCollection(t, server)

	err := c.SetFavorite("n1", true)
	if err == nil {
		t.Fatal("expected an error")
	}

	assert.Equal(t, c.Notes()[0].IsFavorite, false, "failed call should mutate nothing")
}

func TestSetTitle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Error(err)
		}
		assert.Equal(t, body["title"], "Spanning Trees", "payload mismatch")

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"message": "updated"}`)
	}))
	defer server.Close()

	c := seededCollection(t, server)

	if err := c.SetTitle("n1", "Spanning Trees"); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, c.Notes()[0].Title, "Spanning Trees", "title should be patched in place")
}

func TestSetTitleBlank(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be made for a blank title")
	}))
	defer server.Close()

	c := seededCollection(t, server)

	err := c.SetTitle("n1", "   ")
	assert.Equal(t, err, ErrBlankTitle, "error mismatch")
	assert.Equal(t, c.Notes()[0].Title, "Graphs", "title should be untouched")
}

func TestRemove(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, r.Method, "DELETE", "method mismatch")
		assert.Equal(t, r.URL.Path, "/notes/n1", "path mismatch")

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"message": "deleted"}`)
	}))
	defer server.Close()

	c := seededCollection(t, server)

	if err := c.Remove("n1"); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, len(c.Notes()), 1, "note count mismatch")
	assert.Equal(t, c.Notes()[0].ID, "n2", "remaining note mismatch")
	assert.Equal(t, c.Page().Total, 1, "total should be decremented")
}

func TestRemoveFailureLeavesCollection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"detail": "boom"}`)
	}))
	defer server.Close()

	c := seededCollection(t, server)

	err := c.Remove("n1")
	if err == nil {
		t.Fatal("expected an error")
	}

	assert.Equal(t, len(c.Notes()), 2, "failed delete should mutate nothing")
}
