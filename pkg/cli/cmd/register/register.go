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

package register

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/inkwellhq/inkwell/pkg/cli/context"
	"github.com/inkwellhq/inkwell/pkg/cli/infra"
	"github.com/inkwellhq/inkwell/pkg/cli/log"
	"github.com/inkwellhq/inkwell/pkg/cli/session"
	"github.com/inkwellhq/inkwell/pkg/cli/ui"
	"github.com/inkwellhq/inkwell/pkg/cli/validate"
)

var example = `
  inkwell register`

// NewCmd returns a new register command
func NewCmd(ctx *context.InkwellCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "register",
		Short:   "Create an account and log in",
		Example: example,
		RunE:    newRun(ctx),
	}

	return cmd
}

// Do prompts for account details, registers and starts a session
func Do(ctx *context.InkwellCtx) error {
	var email, username, password, passwordConfirm string

	if err := ui.PromptInput("email", &email); err != nil {
		return errors.Wrap(err, "getting email input")
	}
	if err := ui.PromptInput("username", &username); err != nil {
		return errors.Wrap(err, "getting username input")
	}
	if err := ui.PromptPassword("password", &password); err != nil {
		return errors.Wrap(err, "getting password input")
	}
	if err := ui.PromptPassword("confirm password", &passwordConfirm); err != nil {
		return errors.Wrap(err, "getting password confirmation input")
	}

	if err := validate.Registration(email, username, password, passwordConfirm); err != nil {
		return err
	}

	manager := session.NewManager(ctx)

	user, err := manager.Register(email, username, password)
	if err != nil {
		return errors.Wrap(err, "registering")
	}

	log.Successf("welcome, %s\n", user.Username)

	return nil
}

func newRun(ctx *context.InkwellCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		return Do(ctx)
	}
}
