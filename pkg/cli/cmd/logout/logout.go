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

package logout

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/inkwellhq/inkwell/pkg/cli/context"
	"github.com/inkwellhq/inkwell/pkg/cli/infra"
	"github.com/inkwellhq/inkwell/pkg/cli/log"
	"github.com/inkwellhq/inkwell/pkg/cli/session"
)

var example = `
  inkwell logout`

// NewCmd returns a new logout command
func NewCmd(ctx *context.InkwellCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "logout",
		Short:   "Log out and discard the stored session",
		Example: example,
		RunE:    newRun(ctx),
	}

	return cmd
}

func newRun(ctx *context.InkwellCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		manager := session.NewManager(ctx)

		err := manager.Logout()
		if errors.Cause(err) == session.ErrNotLoggedIn {
			log.Error("not logged in\n")
			return nil
		} else if err != nil {
			return errors.Wrap(err, "logging out")
		}

		log.Success("logged out\n")

		return nil
	}
}
