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

// Package output provides functions to print informations on the terminal
// in a consistent manner
package output

import (
	"fmt"
	"strings"

	"github.com/inkwellhq/inkwell/pkg/cli/client"
	"github.com/inkwellhq/inkwell/pkg/cli/generate"
	"github.com/inkwellhq/inkwell/pkg/cli/log"
	"github.com/inkwellhq/inkwell/pkg/cli/notes"
	"github.com/inkwellhq/inkwell/pkg/cli/samples"
)

// NoteLine prints a single note as one listing row.
func NoteLine(note client.Note) {
	marker := " "
	if note.IsFavorite {
		marker = log.ColorYellow.Sprint("*")
	}

	fmt.Printf("%s %s %s %s\n",
		marker,
		log.ColorYellow.Sprintf("(%s)", note.ID),
		note.Title,
		log.ColorGray.Sprintf("[%s]", note.Subject),
	)
}

// NoteList prints one page of notes followed by the page position.
func NoteList(items []client.Note, page notes.Page) {
	if len(items) == 0 {
		log.Plain("no notes found\n")
		return
	}

	for _, note := range items {
		NoteLine(note)
	}

	log.Plainf("\npage %d of %d (%d total)\n", page.Number, page.Pages, page.Total)
}

// NoteDetail prints a full note. The original content is shown only when
// it differs from the processed content.
func NoteDetail(note client.Note) {
	log.Infof("title: %s\n", note.Title)
	log.Infof("subject: %s\n", note.Subject)
	if len(note.Tags) > 0 {
		log.Infof("tags: %s\n", strings.Join(note.Tags, ", "))
	}
	log.Infof("favorite: %t\n", note.IsFavorite)
	if note.CreatedAt != "" {
		log.Infof("created at: %s\n", note.CreatedAt)
	}
	if note.UpdatedAt != "" && note.UpdatedAt != note.CreatedAt {
		log.Infof("updated at: %s\n", note.UpdatedAt)
	}
	log.Infof("note id: %s\n", note.ID)

	fmt.Printf("\n------------------------content------------------------\n")
	fmt.Printf("%s", note.ProcessedContent)
	fmt.Printf("\n-------------------------------------------------------\n")

	if note.OriginalContent != "" && note.OriginalContent != note.ProcessedContent {
		fmt.Printf("\n------------------------original------------------------\n")
		fmt.Printf("%s", note.OriginalContent)
		fmt.Printf("\n--------------------------------------------------------\n")
	}
}

// SampleList prints all handwriting samples, newest first.
func SampleList(items []client.Sample) {
	if len(items) == 0 {
		log.Plain("no handwriting samples yet\n")
		return
	}

	for _, sample := range items {
		fmt.Printf("%s %s\n",
			log.ColorYellow.Sprintf("(%s)", sample.ID),
			sample.SampleName,
		)
		if sample.StyleData.FontStyle != "" {
			log.Plainf("  style: %s, slant %s, size %s, spacing %s\n",
				sample.StyleData.FontStyle,
				sample.StyleData.Slant,
				sample.StyleData.Size,
				sample.StyleData.Spacing,
			)
		}
		if sample.CreatedAt != "" {
			log.Plainf("  uploaded: %s\n", sample.CreatedAt)
		}
	}
}

// SampleInfo prints a freshly analyzed sample.
func SampleInfo(sample client.Sample) {
	log.Infof("sample name: %s\n", sample.SampleName)
	log.Infof("sample id: %s\n", sample.ID)
	log.Infof("font style: %s\n", sample.StyleData.FontStyle)
	log.Infof("slant: %s\n", sample.StyleData.Slant)
	log.Infof("size: %s\n", sample.StyleData.Size)
	log.Infof("spacing: %s\n", sample.StyleData.Spacing)
}

// RenderStep prints one generation pipeline transition.
func RenderStep(step generate.Step) {
	switch step {
	case generate.StepSubmitting:
		log.Infof("uploading your notes...\n")
	case generate.StepExtracting:
		log.Infof("extracting text...\n")
	case generate.StepRestructuring:
		log.Infof("restructuring with AI...\n")
	case generate.StepPersisting:
		log.Infof("saving the note...\n")
	}
}

// RenderCheckpoint prints one sample upload checkpoint.
func RenderCheckpoint(c samples.Checkpoint) {
	switch c {
	case samples.CheckpointSubmitted:
		log.Infof("uploading the sample...\n")
	case samples.CheckpointAnalyzing:
		log.Infof("analyzing handwriting style...\n")
	case samples.CheckpointDone:
		log.Successf("sample analyzed\n")
	}
}

// Stats prints the dashboard summary.
func Stats(stats client.StatsResp, recent []client.Note) {
	log.Infof("total notes: %d\n", stats.TotalNotes)
	log.Infof("favorites: %d\n", stats.Favorites)
	log.Infof("handwriting samples: %d\n", stats.Samples)

	if len(stats.Subjects) > 0 {
		log.Plain("\nby subject:\n")
		for _, s := range stats.Subjects {
			log.Plainf("  %s: %d\n", s.Subject, s.Count)
		}
	}

	if len(recent) > 0 {
		log.Plain("\nrecent notes:\n")
		for _, note := range recent {
			NoteLine(note)
		}
	}
}
