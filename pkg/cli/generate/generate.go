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

// Package generate drives one user submission through the note generation
// pipeline: upload, extraction, AI restructuring, and persistence. The
// extraction and restructuring stages run server-side within a single
// request; the intermediate step transitions exist to pace user feedback
// around that one round trip, not to acknowledge server progress.
package generate

import (
	"io"
	"strings"
	"time"

	"github.com/inkwellhq/inkwell/pkg/cli/client"
	"github.com/inkwellhq/inkwell/pkg/cli/context"
	"github.com/inkwellhq/inkwell/pkg/cli/validate"
	"github.com/pkg/errors"
)

// Step is the progress step of an in-flight generation job
type Step int

// The steps a generation job moves through. The sequence is strictly
// forward except the terminal reset to StepIdle, on success and failure
// alike.
const (
	StepIdle Step = iota
	StepSubmitting
	StepExtracting
	StepRestructuring
	StepPersisting
)

func (s Step) String() string {
	switch s {
	case StepIdle:
		return "idle"
	case StepSubmitting:
		return "uploading"
	case StepExtracting:
		return "extracting text"
	case StepRestructuring:
		return "restructuring"
	case StepPersisting:
		return "saving"
	}

	return "unknown"
}

// Mode is the input mode of a generation job
type Mode int

const (
	// ModeFile submits a file artifact for extraction and restructuring
	ModeFile Mode = iota
	// ModeText submits typed text directly for restructuring
	ModeText
)

// ErrJobInFlight is an error for starting a job while another one is running
var ErrJobInFlight = errors.New("a generation job is already in progress")

// ErrNoFile is an error for a file-mode submission without a file
var ErrNoFile = errors.New("no file selected")

// ErrNoContent is an error for a text-mode submission without content
var ErrNoContent = errors.New("content cannot be empty")

const (
	// extractingHold paces the transition into the restructuring step on
	// the file path
	extractingHold = 600 * time.Millisecond
	// persistingHold lets the final progress state render before resolving
	persistingHold = 400 * time.Millisecond
)

// Input is one user submission to the pipeline
type Input struct {
	Mode     Mode
	Title    string
	Subject  string
	Tags     string
	Content  string
	FileName string
	File     io.Reader
	SampleID string
}

// Job tracks one in-flight invocation of the pipeline. The step counter is
// monotonically non-decreasing within an invocation and is reset to idle,
// never left mid-range, on completion or failure.
type Job struct {
	step   Step
	active bool
	onStep func(Step)
}

// Step returns the job's current step
func (j *Job) Step() Step {
	return j.step
}

func (j *Job) advance(s Step) {
	if s != StepIdle && s < j.step {
		return
	}

	j.step = s
	if j.onStep != nil && s != StepIdle {
		j.onStep(s)
	}
}

func (j *Job) reset() {
	j.step = StepIdle
	j.active = false
}

// Pipeline converts user submissions into persisted notes
type Pipeline struct {
	ctx   context.InkwellCtx
	job   Job
	sleep func(time.Duration)
}

// NewPipeline returns a pipeline bound to the given runtime context. The
// pacing holds run on the context's clock so tests run instantly.
func NewPipeline(ctx context.InkwellCtx) *Pipeline {
	sleep := time.Sleep
	if ctx.Clock != nil {
		sleep = ctx.Clock.Sleep
	}

	return &Pipeline{ctx: ctx, sleep: sleep}
}

// OnStep registers a callback invoked on every forward step transition
func (p *Pipeline) OnStep(fn func(Step)) {
	p.job.onStep = fn
}

// Step returns the current step of the pipeline's job
func (p *Pipeline) Step() Step {
	return p.job.Step()
}

// ParseTags splits a comma-delimited tags input into an ordered list.
// Fragments are trimmed and empty ones dropped; duplicates are kept.
func ParseTags(input string) []string {
	ret := []string{}
	for _, fragment := range strings.Split(input, ",") {
		tag := strings.TrimSpace(fragment)
		if tag == "" {
			continue
		}
		ret = append(ret, tag)
	}

	return ret
}

func validateInput(input Input) error {
	if err := validate.NoteTitle(strings.TrimSpace(input.Title)); err != nil {
		return err
	}
	if err := validate.Subject(input.Subject); err != nil {
		return err
	}

	switch input.Mode {
	case ModeFile:
		if input.File == nil {
			return ErrNoFile
		}
	case ModeText:
		if strings.TrimSpace(input.Content) == "" {
			return ErrNoContent
		}
	}

	return nil
}

// Run drives one submission through the pipeline and returns the created
// note. Validation failures are reported before any step transition or
// network call. On failure at any stage the job is abandoned and the step
// resets to idle; no partial note is ever surfaced. Only one job may be
// active at a time.
func (p *Pipeline) Run(input Input) (client.Note, error) {
	if p.job.active {
		return client.Note{}, ErrJobInFlight
	}

	if err := validateInput(input); err != nil {
		return client.Note{}, err
	}

	p.job.active = true
	defer p.job.reset()

	tags := ParseTags(input.Tags)

	var note client.Note
	var err error

	p.job.advance(StepSubmitting)

	switch input.Mode {
	case ModeFile:
		p.job.advance(StepExtracting)
		p.sleep(extractingHold)
		p.job.advance(StepRestructuring)

		note, err = client.GenerateNote(p.ctx, client.GenerateNoteParams{
			FileName: input.FileName,
			File:     input.File,
			Title:    input.Title,
			Subject:  input.Subject,
			Tags:     tags,
			SampleID: input.SampleID,
		})
	case ModeText:
		p.job.advance(StepRestructuring)

		note, err = client.CreateNote(p.ctx, client.CreateNotePayload{
			Title:   input.Title,
			Subject: input.Subject,
			Tags:    tags,
			Content: input.Content,
		})
	}

	if err != nil {
		var httpErr *client.HTTPError
		if errors.As(err, &httpErr) && httpErr.Message != "" {
			return client.Note{}, err
		}
		return client.Note{}, errors.Wrap(err, "generation failed")
	}

	p.job.advance(StepPersisting)
	p.sleep(persistingHold)

	return note, nil
}
