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

// Package samples manages the user's handwriting samples.
package samples

import (
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/inkwellhq/inkwell/pkg/cli/client"
	"github.com/inkwellhq/inkwell/pkg/cli/context"
	"github.com/inkwellhq/inkwell/pkg/cli/log"
)

// DefaultSampleName is used when the user submits a sample without naming it.
const DefaultSampleName = "My Handwriting"

// Checkpoint marks the client-side phases of a sample upload. The server
// performs OCR and style analysis within the single upload request, so the
// checkpoints bracket that one round trip.
type Checkpoint int

const (
	CheckpointSubmitted Checkpoint = iota
	CheckpointAnalyzing
	CheckpointDone
)

func (c Checkpoint) String() string {
	switch c {
	case CheckpointSubmitted:
		return "submitted"
	case CheckpointAnalyzing:
		return "analyzing"
	case CheckpointDone:
		return "done"
	}

	return "unknown"
}

// Manager is a client-side view over the user's handwriting samples,
// newest first.
type Manager struct {
	ctx          context.InkwellCtx
	samples      []client.Sample
	onCheckpoint func(Checkpoint)
}

func NewManager(ctx context.InkwellCtx) *Manager {
	return &Manager{ctx: ctx}
}

// OnCheckpoint registers a callback invoked at each upload checkpoint.
func (m *Manager) OnCheckpoint(fn func(Checkpoint)) {
	m.onCheckpoint = fn
}

// Samples returns the currently held samples.
func (m *Manager) Samples() []client.Sample {
	return m.samples
}

// List fetches all samples of the current user. A fetch failure degrades
// to an empty list with a warning so that callers relying on samples only
// as an optional input stay usable. A rejected session is never degraded;
// it is returned so the caller can tear the session down.
func (m *Manager) List() ([]client.Sample, error) {
	samples, err := client.GetSamples(m.ctx)
	if err != nil {
		if client.IsAuthRejected(err) {
			return nil, err
		}

		log.Warnf("could not fetch handwriting samples: %s\n", err)
		m.samples = []client.Sample{}
		return m.samples, nil
	}

	m.samples = samples

	return m.samples, nil
}

// Upload submits a handwriting sample image and prepends the created
// sample to the local list. A blank name falls back to DefaultSampleName.
// On failure the local list is untouched.
func (m *Manager) Upload(fileName string, file io.Reader, name string) (client.Sample, error) {
	if file == nil {
		return client.Sample{}, errors.New("a sample file is required")
	}
	if strings.TrimSpace(name) == "" {
		name = DefaultSampleName
	}

	m.checkpoint(CheckpointSubmitted)
	m.checkpoint(CheckpointAnalyzing)

	sample, err := client.UploadSample(m.ctx, client.UploadSampleParams{
		FileName:   fileName,
		File:       file,
		SampleName: name,
	})
	if err != nil {
		var httpErr *client.HTTPError
		if errors.As(err, &httpErr) && httpErr.Message != "" {
			return client.Sample{}, err
		}
		return client.Sample{}, errors.Wrap(err, "upload failed")
	}

	m.checkpoint(CheckpointDone)
	m.samples = append([]client.Sample{sample}, m.samples...)

	return sample, nil
}

func (m *Manager) checkpoint(c Checkpoint) {
	if m.onCheckpoint != nil {
		m.onCheckpoint(c)
	}
}
