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

package edit

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/inkwellhq/inkwell/pkg/cli/context"
	"github.com/inkwellhq/inkwell/pkg/cli/infra"
	"github.com/inkwellhq/inkwell/pkg/cli/log"
	"github.com/inkwellhq/inkwell/pkg/cli/notes"
	"github.com/inkwellhq/inkwell/pkg/cli/session"
)

var titleFlag string

var example = `
 * Rename a note
 inkwell edit 8f3c9e2a --title "Spanning Trees"`

func preRun(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("Incorrect number of argument")
	}

	return nil
}

// NewCmd returns a new edit command
func NewCmd(ctx *context.InkwellCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "edit <note id>",
		Short:   "Edit a note title",
		Aliases: []string{"e"},
		Example: example,
		PreRunE: preRun,
		RunE:    newRun(ctx),
	}

	f := cmd.Flags()
	f.StringVarP(&titleFlag, "title", "t", "", "a new title for the note")

	return cmd
}

func newRun(ctx *context.InkwellCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		manager := session.NewManager(ctx)
		if err := manager.Restore(); err != nil {
			return err
		}

		collection := notes.NewCollection(*ctx)

		err := collection.SetTitle(args[0], titleFlag)
		if errors.Cause(err) == notes.ErrBlankTitle {
			return errors.New("a title is required. pass one with --title")
		} else if err != nil {
			return manager.Guard(errors.Wrap(err, "editing note"))
		}

		log.Successf("edited the note %s\n", args[0])

		return nil
	}
}
