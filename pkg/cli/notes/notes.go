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

// Package notes keeps a local page of notes in sync with the server.
// Every mutation is confirm-first: the server call must succeed before
// the in-memory copy is touched, so a failed call leaves the page exactly
// as it was.
package notes

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/inkwellhq/inkwell/pkg/cli/client"
	"github.com/inkwellhq/inkwell/pkg/cli/context"
)

// ErrBlankTitle is returned from SetTitle before any network call is made.
var ErrBlankTitle = errors.New("title cannot be empty")

// Filters narrows a listing. A blank or "All" subject and a blank search
// mean unfiltered.
type Filters struct {
	Subject string
	Search  string
}

// Page describes one fetched page of the listing.
type Page struct {
	Number int
	Pages  int
	Total  int
}

// Collection is a client-side view over the user's notes.
type Collection struct {
	ctx   context.InkwellCtx
	notes []client.Note
	page  Page
}

func NewCollection(ctx context.InkwellCtx) *Collection {
	return &Collection{ctx: ctx}
}

// Notes returns the currently held page of notes.
func (c *Collection) Notes() []client.Note {
	return c.notes
}

// Page returns the pagination state of the last successful List call.
func (c *Collection) Page() Page {
	return c.page
}

// Favorites returns the favorited notes on the currently held page. The
// server has no favorites filter, so the narrowing happens locally.
func (c *Collection) Favorites() []client.Note {
	favorites := []client.Note{}

	for _, note := range c.notes {
		if note.IsFavorite {
			favorites = append(favorites, note)
		}
	}

	return favorites
}

// List fetches one page of notes and replaces the local copy. The
// requested page is clamped into [1, pages]: asking for a page past the
// end refetches the last page instead of returning an empty one.
func (c *Collection) List(page, limit int, filters Filters) error {
	if page < 1 {
		page = 1
	}

	resp, err := client.GetNotes(c.ctx, page, limit, filters.Subject, filters.Search)
	if err != nil {
		return errors.Wrap(err, "fetching notes")
	}

	if resp.Pages > 0 && page > resp.Pages {
		resp, err = client.GetNotes(c.ctx, resp.Pages, limit, filters.Subject, filters.Search)
		if err != nil {
			return errors.Wrap(err, "fetching notes")
		}
	}

	c.notes = resp.Notes
	c.page = Page{Number: resp.Page, Pages: resp.Pages, Total: resp.Total}

	return nil
}

// Get fetches a single note in full.
func (c *Collection) Get(id string) (client.Note, error) {
	note, err := client.GetNote(c.ctx, id)
	if err != nil {
		return client.Note{}, errors.Wrap(err, "fetching note")
	}

	return note, nil
}

// SetFavorite updates the favorite flag on the server, then patches the
// local copy. Repeated calls with the same value each hit the server.
func (c *Collection) SetFavorite(id string, value bool) error {
	_, err := client.UpdateNote(c.ctx, id, client.UpdateNotePayload{
		IsFavorite: &value,
	})
	if err != nil {
		return errors.Wrap(err, "updating note")
	}

	c.patch(id, func(n *client.Note) {
		n.IsFavorite = value
	})

	return nil
}

// SetTitle renames a note. Blank titles are rejected before any call.
func (c *Collection) SetTitle(id, title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrBlankTitle
	}

	_, err := client.UpdateNote(c.ctx, id, client.UpdateNotePayload{
		Title: &title,
	})
	if err != nil {
		return errors.Wrap(err, "updating note")
	}

	c.patch(id, func(n *client.Note) {
		n.Title = title
	})

	return nil
}

// Remove deletes a note on the server, then drops it from the local page.
func (c *Collection) Remove(id string) error {
	_, err := client.DeleteNote(c.ctx, id)
	if err != nil {
		return errors.Wrap(err, "deleting note")
	}

	for i, n := range c.notes {
		if n.ID == id {
			c.notes = append(c.notes[:i], c.notes[i+1:]...)
			c.page.Total--
			break
		}
	}

	return nil
}

func (c *Collection) patch(id string, fn func(*client.Note)) {
	for i := range c.notes {
		if c.notes[i].ID == id {
			fn(&c.notes[i])
			return
		}
	}
}
