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

package login

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/inkwellhq/inkwell/pkg/cli/client"
	"github.com/inkwellhq/inkwell/pkg/cli/context"
	"github.com/inkwellhq/inkwell/pkg/cli/infra"
	"github.com/inkwellhq/inkwell/pkg/cli/log"
	"github.com/inkwellhq/inkwell/pkg/cli/session"
	"github.com/inkwellhq/inkwell/pkg/cli/ui"
	"github.com/inkwellhq/inkwell/pkg/cli/validate"
)

var example = `
  inkwell login`

// NewCmd returns a new login command
func NewCmd(ctx *context.InkwellCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "login",
		Short:   "Login to the server",
		Example: example,
		RunE:    newRun(ctx),
	}

	return cmd
}

// Do prompts for credentials and starts a session
func Do(ctx *context.InkwellCtx) error {
	var email, password string

	if err := ui.PromptInput("email", &email); err != nil {
		return errors.Wrap(err, "getting email input")
	}
	if err := ui.PromptPassword("password", &password); err != nil {
		return errors.Wrap(err, "getting password input")
	}

	if err := validate.Credentials(email, password); err != nil {
		return err
	}

	manager := session.NewManager(ctx)

	user, err := manager.Login(email, password)
	if errors.Cause(err) == client.ErrInvalidLogin {
		log.Error("wrong email and password combination\n")
		return nil
	} else if err != nil {
		return errors.Wrap(err, "logging in")
	}

	log.Successf("logged in as %s\n", user.Email)

	return nil
}

func newRun(ctx *context.InkwellCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		return Do(ctx)
	}
}
