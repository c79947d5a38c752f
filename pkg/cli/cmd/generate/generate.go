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

package generate

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/inkwellhq/inkwell/pkg/cli/context"
	pipeline "github.com/inkwellhq/inkwell/pkg/cli/generate"
	"github.com/inkwellhq/inkwell/pkg/cli/infra"
	"github.com/inkwellhq/inkwell/pkg/cli/log"
	"github.com/inkwellhq/inkwell/pkg/cli/output"
	"github.com/inkwellhq/inkwell/pkg/cli/session"
	"github.com/inkwellhq/inkwell/pkg/cli/ui"
)

var titleFlag string
var subjectFlag string
var tagsFlag string
var sampleFlag string
var contentFlag string

var example = `
 * Generate a note from a photo of handwritten notes
 inkwell generate lecture.jpg --title "Graph Traversal" --subject CS

 * Generate a note from a PDF with tags and a handwriting sample
 inkwell generate scan.pdf --title "Derivatives" --subject Math --tags "calculus, limits" --sample <sample id>

 * Generate a note from typed text
 inkwell generate --title "Ottoman Empire" --subject History -c "the notes content"

 * Send stdin content to a note
 cat notes.txt | inkwell generate --title "Ottoman Empire" --subject History`

func preRun(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return errors.New("Incorrect number of argument")
	}

	return nil
}

// NewCmd returns a new generate command
func NewCmd(ctx *context.InkwellCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate <file?>",
		Short:   "Generate a structured note",
		Aliases: []string{"g"},
		Example: example,
		PreRunE: preRun,
		RunE:    newRun(ctx),
	}

	f := cmd.Flags()
	f.StringVarP(&titleFlag, "title", "t", "", "the title for the new note")
	f.StringVarP(&subjectFlag, "subject", "s", "General", "the subject for the new note")
	f.StringVar(&tagsFlag, "tags", "", "comma separated tags for the new note")
	f.StringVar(&sampleFlag, "sample", "", "the id of a handwriting sample to guide OCR")
	f.StringVarP(&contentFlag, "content", "c", "", "the content for a typed note")

	return cmd
}

func getContent(ctx *context.InkwellCtx) (string, error) {
	if contentFlag != "" {
		return contentFlag, nil
	}

	// check for piped content
	fInfo, _ := os.Stdin.Stat()
	if fInfo.Mode()&os.ModeCharDevice == 0 {
		c, err := ui.ReadStdInput()
		if err != nil {
			return "", errors.Wrap(err, "Failed to get piped input")
		}
		return c, nil
	}

	fpath, err := ui.GetTmpContentPath(*ctx)
	if err != nil {
		return "", errors.Wrap(err, "getting temporarily content file path")
	}

	c, err := ui.GetEditorInput(*ctx, fpath)
	if err != nil {
		return "", errors.Wrap(err, "Failed to get editor input")
	}

	return c, nil
}

func getInput(ctx *context.InkwellCtx, args []string) (pipeline.Input, func(), error) {
	cleanup := func() {}

	input := pipeline.Input{
		Title:    titleFlag,
		Subject:  subjectFlag,
		Tags:     tagsFlag,
		SampleID: sampleFlag,
	}

	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return input, cleanup, errors.Wrap(err, "opening the file")
		}

		input.Mode = pipeline.ModeFile
		input.FileName = filepath.Base(args[0])
		input.File = f
		cleanup = func() { f.Close() }

		return input, cleanup, nil
	}

	content, err := getContent(ctx)
	if err != nil {
		return input, cleanup, errors.Wrap(err, "getting content")
	}

	input.Mode = pipeline.ModeText
	input.Content = content

	return input, cleanup, nil
}

func newRun(ctx *context.InkwellCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		manager := session.NewManager(ctx)
		if err := manager.Restore(); err != nil {
			return err
		}

		if strings.TrimSpace(titleFlag) == "" {
			if err := ui.PromptInput("note title", &titleFlag); err != nil {
				return errors.Wrap(err, "getting title input")
			}
		}

		input, cleanup, err := getInput(ctx, args)
		if err != nil {
			return err
		}
		defer cleanup()

		p := pipeline.NewPipeline(*ctx)
		p.OnStep(output.RenderStep)

		note, err := p.Run(input)
		if err != nil {
			return manager.Guard(err)
		}

		log.Successf("created note %s\n", note.ID)
		log.Plainf("run `inkwell view %s` to see it\n", note.ID)

		return nil
	}
}
