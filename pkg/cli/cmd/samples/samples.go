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

package samples

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/inkwellhq/inkwell/pkg/cli/context"
	"github.com/inkwellhq/inkwell/pkg/cli/infra"
	"github.com/inkwellhq/inkwell/pkg/cli/output"
	manager "github.com/inkwellhq/inkwell/pkg/cli/samples"
	"github.com/inkwellhq/inkwell/pkg/cli/session"
)

var nameFlag string

var example = `
 * List your handwriting samples
 inkwell samples

 * Upload a new handwriting sample
 inkwell samples upload sample.jpg --name "Cursive"`

// NewCmd returns a new samples command
func NewCmd(ctx *context.InkwellCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "samples",
		Short:   "Manage handwriting samples",
		Example: example,
		RunE:    newListRun(ctx),
	}

	uploadCmd := &cobra.Command{
		Use:     "upload <file>",
		Short:   "Upload a handwriting sample",
		PreRunE: preUploadRun,
		RunE:    newUploadRun(ctx),
	}

	f := uploadCmd.Flags()
	f.StringVarP(&nameFlag, "name", "n", "", "a name for the sample")

	cmd.AddCommand(uploadCmd)

	return cmd
}

func preUploadRun(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("Incorrect number of argument")
	}

	return nil
}

func newListRun(ctx *context.InkwellCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		sess := session.NewManager(ctx)
		if err := sess.Restore(); err != nil {
			return err
		}

		m := manager.NewManager(*ctx)

		list, err := m.List()
		if err != nil {
			return sess.Guard(err)
		}
		output.SampleList(list)

		return nil
	}
}

func newUploadRun(ctx *context.InkwellCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		sess := session.NewManager(ctx)
		if err := sess.Restore(); err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return errors.Wrap(err, "opening the file")
		}
		defer f.Close()

		m := manager.NewManager(*ctx)
		m.OnCheckpoint(output.RenderCheckpoint)

		sample, err := m.Upload(filepath.Base(args[0]), f, nameFlag)
		if err != nil {
			return sess.Guard(err)
		}

		output.SampleInfo(sample)

		return nil
	}
}
