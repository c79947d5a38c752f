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

package stats

import (
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/inkwellhq/inkwell/pkg/cli/client"
	"github.com/inkwellhq/inkwell/pkg/cli/context"
	"github.com/inkwellhq/inkwell/pkg/cli/infra"
	"github.com/inkwellhq/inkwell/pkg/cli/log"
	"github.com/inkwellhq/inkwell/pkg/cli/output"
	"github.com/inkwellhq/inkwell/pkg/cli/session"
)

const recentNotesLimit = 5

var example = `
  inkwell stats`

// NewCmd returns a new stats command
func NewCmd(ctx *context.InkwellCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "stats",
		Short:   "Show a summary of your notes",
		Example: example,
		RunE:    newRun(ctx),
	}

	return cmd
}

// fetch gets the stats summary and the most recent notes concurrently.
// Either fetch failing degrades to empty data with a warning so that the
// other half still renders. A rejected session is never degraded; it is
// returned so the caller can tear the session down.
func fetch(ctx context.InkwellCtx) (client.StatsResp, []client.Note, error) {
	var stats client.StatsResp
	var recent []client.Note

	var g errgroup.Group

	g.Go(func() error {
		resp, err := client.GetStats(ctx)
		if err != nil {
			if client.IsAuthRejected(err) {
				return err
			}

			log.Warnf("could not fetch the stats summary: %s\n", err)
			return nil
		}

		stats = resp
		return nil
	})
	g.Go(func() error {
		resp, err := client.GetNotes(ctx, 1, recentNotesLimit, "", "")
		if err != nil {
			if client.IsAuthRejected(err) {
				return err
			}

			log.Warnf("could not fetch recent notes: %s\n", err)
			return nil
		}

		recent = resp.Notes
		return nil
	})

	if err := g.Wait(); err != nil {
		return client.StatsResp{}, nil, err
	}

	return stats, recent, nil
}

func newRun(ctx *context.InkwellCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		manager := session.NewManager(ctx)
		if err := manager.Restore(); err != nil {
			return err
		}

		stats, recent, err := fetch(*ctx)
		if err != nil {
			return manager.Guard(err)
		}

		output.Stats(stats, recent)

		return nil
	}
}
