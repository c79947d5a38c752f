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

// Package infra provides operations and definitions for the
// local infrastructure for Inkwell
package infra

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/inkwellhq/inkwell/pkg/cli/client"
	"github.com/inkwellhq/inkwell/pkg/cli/config"
	"github.com/inkwellhq/inkwell/pkg/cli/consts"
	"github.com/inkwellhq/inkwell/pkg/cli/context"
	"github.com/inkwellhq/inkwell/pkg/cli/database"
	"github.com/inkwellhq/inkwell/pkg/cli/log"
	"github.com/inkwellhq/inkwell/pkg/cli/utils"
	"github.com/inkwellhq/inkwell/pkg/clock"
	"github.com/inkwellhq/inkwell/pkg/dirs"
)

const (
	// DefaultAPIEndpoint is the default API endpoint used when none is configured
	DefaultAPIEndpoint = "http://localhost:8000"

	envAPIEndpoint = "INKWELL_API_ENDPOINT"
	envEditor      = "INKWELL_EDITOR"
)

// RunEFunc is a function type of inkwell commands
type RunEFunc func(*cobra.Command, []string) error

func getDBPath(paths context.Paths) string {
	return fmt.Sprintf("%s/%s/%s", paths.Data, consts.InkwellDirName, consts.InkwellDBFileName)
}

// newBaseCtx creates a minimal context with paths and database connection.
// This base context is used for file and database initialization before
// being enriched with config values by setupCtx.
func newBaseCtx(versionTag string) (context.InkwellCtx, error) {
	paths := context.Paths{
		Home:   dirs.Home,
		Config: dirs.ConfigHome,
		Data:   dirs.DataHome,
		Cache:  dirs.CacheHome,
	}

	if err := context.InitDirs(paths); err != nil {
		return context.InkwellCtx{}, errors.Wrap(err, "creating the inkwell dirs")
	}

	db, err := database.Open(getDBPath(paths))
	if err != nil {
		return context.InkwellCtx{}, errors.Wrap(err, "connecting to db")
	}

	ctx := context.InkwellCtx{
		Paths:   paths,
		Version: versionTag,
		DB:      db,
	}

	return ctx, nil
}

// Init initializes the Inkwell environment and returns a new inkwell context.
// apiEndpoint, when not blank, seeds the config file on first run.
func Init(versionTag, apiEndpoint string) (*context.InkwellCtx, error) {
	// a missing .env is fine; it only exists for local overrides
	_ = godotenv.Load()

	ctx, err := newBaseCtx(versionTag)
	if err != nil {
		return nil, errors.Wrap(err, "initializing a context")
	}

	if err := initConfigFile(ctx, apiEndpoint); err != nil {
		return nil, errors.Wrap(err, "generating the config file")
	}

	if err := ctx.DB.InitSchema(); err != nil {
		return nil, errors.Wrap(err, "initializing database")
	}

	ctx, err = setupCtx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "setting up the context")
	}

	log.Debug("context: %+v\n", context.Redact(ctx))

	return &ctx, nil
}

// setupCtx enriches the base context with values from the config file and
// environment overrides. The session key stays blank here; the session
// manager restores it on demand.
func setupCtx(ctx context.InkwellCtx) (context.InkwellCtx, error) {
	cf, err := config.Read(ctx)
	if err != nil {
		return ctx, errors.Wrap(err, "reading config")
	}

	apiEndpoint := cf.APIEndpoint
	if override := os.Getenv(envAPIEndpoint); override != "" {
		apiEndpoint = override
	}

	editor := cf.Editor
	if override := os.Getenv(envEditor); override != "" {
		editor = override
	}

	ret := context.InkwellCtx{
		Paths:       ctx.Paths,
		Version:     ctx.Version,
		DB:          ctx.DB,
		APIEndpoint: apiEndpoint,
		Editor:      editor,
		Clock:       clock.New(),
		HTTPClient:  client.NewHTTPClient(),
	}

	return ret, nil
}

// getEditorCommand returns the system's editor command with appropriate flags,
// if necessary, to make the command wait until editor is close to exit.
func getEditorCommand() string {
	editor := os.Getenv("EDITOR")

	var ret string

	switch editor {
	case "atom":
		ret = "atom -w"
	case "subl":
		ret = "subl -n -w"
	case "code":
		ret = "code -n -w"
	case "mate":
		ret = "mate -w"
	case "vim":
		ret = "vim"
	case "nano":
		ret = "nano"
	case "emacs":
		ret = "emacs"
	case "nvim":
		ret = "nvim"
	default:
		ret = "vi"
	}

	return ret
}

// initConfigFile populates a new config file if it does not exist yet
func initConfigFile(ctx context.InkwellCtx, apiEndpoint string) error {
	path := config.GetPath(ctx)
	ok, err := utils.FileExists(path)
	if err != nil {
		return errors.Wrap(err, "checking if config exists")
	}
	if ok {
		return nil
	}

	endpoint := apiEndpoint
	if endpoint == "" {
		endpoint = DefaultAPIEndpoint
	}

	cf := config.Config{
		Editor:      getEditorCommand(),
		APIEndpoint: endpoint,
	}

	if err := config.Write(ctx, cf); err != nil {
		return errors.Wrap(err, "writing config")
	}

	return nil
}
