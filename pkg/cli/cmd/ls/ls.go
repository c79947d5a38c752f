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

package ls

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/inkwellhq/inkwell/pkg/cli/context"
	"github.com/inkwellhq/inkwell/pkg/cli/infra"
	"github.com/inkwellhq/inkwell/pkg/cli/notes"
	"github.com/inkwellhq/inkwell/pkg/cli/output"
	"github.com/inkwellhq/inkwell/pkg/cli/session"
)

var pageFlag int
var limitFlag int
var subjectFlag string
var searchFlag string
var favoritesFlag bool

var example = `
 * List your notes
 inkwell ls

 * List notes in a subject
 inkwell ls --subject Math

 * Search notes
 inkwell ls --search "binary tree"

 * List only favorited notes
 inkwell ls --favorites

 * Paginate
 inkwell ls --page 2 --limit 20`

// NewCmd returns a new ls command
func NewCmd(ctx *context.InkwellCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls",
		Short:   "List notes",
		Aliases: []string{"l", "list"},
		Example: example,
		RunE:    newRun(ctx),
	}

	f := cmd.Flags()
	f.IntVar(&pageFlag, "page", 1, "the page to list")
	f.IntVar(&limitFlag, "limit", 10, "the number of notes per page")
	f.StringVarP(&subjectFlag, "subject", "s", "", "only list notes in the subject")
	f.StringVar(&searchFlag, "search", "", "only list notes matching the query")
	f.BoolVar(&favoritesFlag, "favorites", false, "only list favorited notes")

	return cmd
}

func newRun(ctx *context.InkwellCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		manager := session.NewManager(ctx)
		if err := manager.Restore(); err != nil {
			return err
		}

		collection := notes.NewCollection(*ctx)

		err := collection.List(pageFlag, limitFlag, notes.Filters{
			Subject: subjectFlag,
			Search:  searchFlag,
		})
		if err != nil {
			return manager.Guard(errors.Wrap(err, "listing notes"))
		}

		list := collection.Notes()
		if favoritesFlag {
			list = collection.Favorites()
		}

		output.NoteList(list, collection.Page())

		return nil
	}
}
