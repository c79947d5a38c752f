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

package stats

import (
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

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.URL.Path == "/notes/stats/summary" {
			fmt.Fprint(w, `{"total_notes": 4, "favorites": 1, "samples": 2,
				"subjects": [{"subject": "Math", "count": 4}]}`)
			return
		}

		fmt.Fprint(w, `{"notes": [{"id": "n1", "title": "Limits"}], "page": 1, "pages": 1, "total": 1}`)
	}))
	defer server.Close()

	stats, recent, err := fetch(newTestCtx(server))
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, stats.TotalNotes, 4, "total notes mismatch")
	assert.Equal(t, len(recent), 1, "recent note count mismatch")
	assert.Equal(t, recent[0].ID, "n1", "recent note id mismatch")
}

func TestFetchFailureDegradesToEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"detail": "boom"}`)
	}))
	defer server.Close()

	stats, recent, err := fetch(newTestCtx(server))
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, stats.TotalNotes, 0, "stats should degrade to the zero value")
	assert.Equal(t, len(recent), 0, "recent notes should degrade to empty")
}

func TestFetchAuthRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"detail": "Could not validate credentials"}`)
	}))
	defer server.Close()

	_, _, err := fetch(newTestCtx(server))
	if err == nil {
		t.Fatal("expected an error")
	}

	assert.Equal(t, client.IsAuthRejected(err), true, "a rejected session should propagate")
}
