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

package favorite

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/inkwellhq/inkwell/pkg/cli/context"
	"github.com/inkwellhq/inkwell/pkg/cli/infra"
	"github.com/inkwellhq/inkwell/pkg/cli/log"
	"github.com/inkwellhq/inkwell/pkg/cli/notes"
	"github.com/inkwellhq/inkwell/pkg/cli/session"
)

var removeFlag bool

var example = `
 * Mark a note as favorite
 inkwell favorite 8f3c9e2a

 * Unmark a favorite
 inkwell favorite 8f3c9e2a --remove`

func preRun(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("Incorrect number of argument")
	}

	return nil
}

// NewCmd returns a new favorite command
func NewCmd(ctx *context.InkwellCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorite <note id>",
		Short:   "Mark or unmark a note as favorite",
		Aliases: []string{"fav"},
		Example: example,
		PreRunE: preRun,
		RunE:    newRun(ctx),
	}

	f := cmd.Flags()
	f.BoolVar(&removeFlag, "remove", false, "unmark the note")

	return cmd
}

func newRun(ctx *context.InkwellCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		manager := session.NewManager(ctx)
		if err := manager.Restore(); err != nil {
			return err
		}

		collection := notes.NewCollection(*ctx)

		value := !removeFlag
		if err := collection.SetFavorite(args[0], value); err != nil {
			return manager.Guard(errors.Wrap(err, "updating note"))
		}

		if value {
			log.Successf("marked %s as favorite\n", args[0])
		} else {
			log.Successf("unmarked %s\n", args[0])
		}

		return nil
	}
}
