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

package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/inkwellhq/inkwell/pkg/cli/context"
	"github.com/pkg/errors"
)

// Note is a note in the response. Timestamps are kept as the server's raw
// strings; the server does not guarantee an offset-qualified format.
type Note struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Subject          string   `json:"subject"`
	Tags             []string `json:"tags"`
	ProcessedContent string   `json:"processed_content"`
	OriginalContent  string   `json:"original_content"`
	Preview          string   `json:"preview"`
	IsFavorite       bool     `json:"is_favorite"`
	CreatedAt        string   `json:"created_at"`
	UpdatedAt        string   `json:"updated_at"`
}

// GetNotesResp is the response from the notes listing endpoint
type GetNotesResp struct {
	Notes []Note `json:"notes"`
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Pages int    `json:"pages"`
}

// GetNotes fetches a page of notes. An empty or "All" subject and an empty
// search string mean no filtering.
func GetNotes(ctx context.InkwellCtx, page, limit int, subject, search string) (GetNotesResp, error) {
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	v.Set("limit", strconv.Itoa(limit))
	if subject != "" && subject != "All" {
		v.Set("subject", subject)
	}
	if search != "" {
		v.Set("search", search)
	}

	path := fmt.Sprintf("/notes?%s", v.Encode())
	res, err := doAuthorizedReq(ctx, "GET", path, nil, nil)
	if err != nil {
		return GetNotesResp{}, errors.Wrap(err, "making http request")
	}

	var resp GetNotesResp
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return GetNotesResp{}, errors.Wrap(err, "decoding payload")
	}

	return resp, nil
}

// GetNote fetches the full note record with the given id
func GetNote(ctx context.InkwellCtx, id string) (Note, error) {
	endpoint := fmt.Sprintf("/notes/%s", id)
	res, err := doAuthorizedReq(ctx, "GET", endpoint, nil, nil)
	if err != nil {
		return Note{}, errors.Wrap(err, "making http request")
	}

	var resp Note
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return Note{}, errors.Wrap(err, "decoding payload")
	}

	return resp, nil
}

// UpdateNotePayload is a partial update of a note. Nil fields are omitted
// from the request.
type UpdateNotePayload struct {
	Title      *string `json:"title,omitempty"`
	IsFavorite *bool   `json:"is_favorite,omitempty"`
}

// MessageResp is a response carrying only an acknowledgement message
type MessageResp struct {
	Message string `json:"message"`
}

// UpdateNote issues a partial update of a note in the server
func UpdateNote(ctx context.InkwellCtx, id string, payload UpdateNotePayload) (MessageResp, error) {
	endpoint := fmt.Sprintf("/notes/%s", id)
	res, err := doJSONReq(ctx, "PATCH", endpoint, payload, true)
	if err != nil {
		return MessageResp{}, errors.Wrap(err, "patching a note in the server")
	}

	var resp MessageResp
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return MessageResp{}, errors.Wrap(err, "decoding payload")
	}

	return resp, nil
}

// DeleteNote removes a note in the server
func DeleteNote(ctx context.InkwellCtx, id string) (MessageResp, error) {
	endpoint := fmt.Sprintf("/notes/%s", id)
	res, err := doAuthorizedReq(ctx, "DELETE", endpoint, nil, nil)
	if err != nil {
		return MessageResp{}, errors.Wrap(err, "deleting a note in the server")
	}

	var resp MessageResp
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return MessageResp{}, errors.Wrap(err, "decoding payload")
	}

	return resp, nil
}

// SubjectCount is a per-subject note count in the stats response
type SubjectCount struct {
	Subject string `json:"subject"`
	Count   int    `json:"count"`
}

// StatsResp is the response from the stats summary endpoint
type StatsResp struct {
	TotalNotes int            `json:"total_notes"`
	Favorites  int            `json:"favorites"`
	Samples    int            `json:"samples"`
	Subjects   []SubjectCount `json:"subjects"`
}

// GetStats fetches the summary statistics for the current user
func GetStats(ctx context.InkwellCtx) (StatsResp, error) {
	res, err := doAuthorizedReq(ctx, "GET", "/notes/stats/summary", nil, nil)
	if err != nil {
		return StatsResp{}, errors.Wrap(err, "making http request")
	}

	var resp StatsResp
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return StatsResp{}, errors.Wrap(err, "decoding payload")
	}

	return resp, nil
}

// GenerateNoteParams describes a file submission to the generation endpoint
type GenerateNoteParams struct {
	FileName string
	File     io.Reader
	Title    string
	Subject  string
	Tags     []string
	SampleID string
}

// GenerateNote submits a file for generation as a multipart request and
// returns the created note. The extraction and restructuring happen
// server-side within this single request.
func GenerateNote(ctx context.InkwellCtx, params GenerateNoteParams) (Note, error) {
	tags, err := json.Marshal(params.Tags)
	if err != nil {
		return Note{}, errors.Wrap(err, "marshaling tags")
	}

	fields := map[string]string{
		"title":   params.Title,
		"subject": params.Subject,
		"tags":    string(tags),
	}
	if params.SampleID != "" {
		fields["sample_id"] = params.SampleID
	}

	res, err := doMultipartReq(ctx, "/notes/generate", fields, multipartFile{
		FieldName: "file",
		FileName:  params.FileName,
		Body:      params.File,
	})
	if err != nil {
		return Note{}, errors.Wrap(err, "posting the file to the server")
	}

	var resp Note
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return Note{}, errors.Wrap(err, "decoding payload")
	}

	return resp, nil
}

// CreateNotePayload is a payload for creating a note from typed text
type CreateNotePayload struct {
	Title   string   `json:"title"`
	Subject string   `json:"subject"`
	Tags    []string `json:"tags"`
	Content string   `json:"content"`
}

// CreateNote creates a note from typed text in the server
func CreateNote(ctx context.InkwellCtx, payload CreateNotePayload) (Note, error) {
	res, err := doJSONReq(ctx, "POST", "/notes/create", payload, true)
	if err != nil {
		return Note{}, errors.Wrap(err, "posting a note to the server")
	}

	var resp Note
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return Note{}, errors.Wrap(err, "decoding payload")
	}

	return resp, nil
}
