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

package main

import (
	"os"

	"github.com/pkg/errors"

	"github.com/inkwellhq/inkwell/pkg/cli/infra"
	"github.com/inkwellhq/inkwell/pkg/cli/log"

	// commands
	"github.com/inkwellhq/inkwell/pkg/cli/cmd/edit"
	"github.com/inkwellhq/inkwell/pkg/cli/cmd/favorite"
	"github.com/inkwellhq/inkwell/pkg/cli/cmd/generate"
	"github.com/inkwellhq/inkwell/pkg/cli/cmd/login"
	"github.com/inkwellhq/inkwell/pkg/cli/cmd/logout"
	"github.com/inkwellhq/inkwell/pkg/cli/cmd/ls"
	"github.com/inkwellhq/inkwell/pkg/cli/cmd/register"
	"github.com/inkwellhq/inkwell/pkg/cli/cmd/remove"
	"github.com/inkwellhq/inkwell/pkg/cli/cmd/root"
	"github.com/inkwellhq/inkwell/pkg/cli/cmd/samples"
	"github.com/inkwellhq/inkwell/pkg/cli/cmd/stats"
	"github.com/inkwellhq/inkwell/pkg/cli/cmd/version"
	"github.com/inkwellhq/inkwell/pkg/cli/cmd/view"
)

// apiEndpoint and versionTag are populated during link time
var apiEndpoint string
var versionTag = "master"

func main() {
	ctx, err := infra.Init(versionTag, apiEndpoint)
	if err != nil {
		panic(errors.Wrap(err, "initializing context"))
	}
	defer ctx.DB.Close()

	root.Register(login.NewCmd(ctx))
	root.Register(register.NewCmd(ctx))
	root.Register(logout.NewCmd(ctx))
	root.Register(generate.NewCmd(ctx))
	root.Register(ls.NewCmd(ctx))
	root.Register(view.NewCmd(ctx))
	root.Register(edit.NewCmd(ctx))
	root.Register(favorite.NewCmd(ctx))
	root.Register(remove.NewCmd(ctx))
	root.Register(samples.NewCmd(ctx))
	root.Register(stats.NewCmd(ctx))
	root.Register(version.NewCmd(ctx))

	if err := root.Execute(); err != nil {
		log.Errorf("%s\n", err.Error())
		os.Exit(1)
	}
}
