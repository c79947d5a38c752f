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
	"io"

	"github.com/inkwellhq/inkwell/pkg/cli/context"
	"github.com/pkg/errors"
)

// StyleData holds the style attributes derived from a handwriting sample
type StyleData struct {
	FontStyle string `json:"font_style"`
	Slant     string `json:"slant"`
	Size      string `json:"size"`
	Spacing   string `json:"spacing"`
}

// Sample is a handwriting sample in the response
type Sample struct {
	ID         string    `json:"id"`
	SampleName string    `json:"sample_name"`
	OCRText    string    `json:"ocr_text"`
	StyleData  StyleData `json:"style_data"`
	CreatedAt  string    `json:"created_at"`
}

// GetSamples fetches all handwriting samples of the current user,
// newest first.
func GetSamples(ctx context.InkwellCtx) ([]Sample, error) {
	res, err := doAuthorizedReq(ctx, "GET", "/samples", nil, nil)
	if err != nil {
		return nil, errors.Wrap(err, "making http request")
	}

	var resp []Sample
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return nil, errors.Wrap(err, "decoding payload")
	}

	return resp, nil
}

// UploadSampleParams describes a sample submission to the upload endpoint
type UploadSampleParams struct {
	FileName   string
	File       io.Reader
	SampleName string
}

// UploadSample submits a handwriting sample image as a multipart request.
// The style analysis happens server-side within this single request.
func UploadSample(ctx context.InkwellCtx, params UploadSampleParams) (Sample, error) {
	fields := map[string]string{
		"sample_name": params.SampleName,
	}

	res, err := doMultipartReq(ctx, "/samples/upload", fields, multipartFile{
		FieldName: "file",
		FileName:  params.FileName,
		Body:      params.File,
	})
	if err != nil {
		return Sample{}, errors.Wrap(err, "posting the sample to the server")
	}

	var resp Sample
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return Sample{}, errors.Wrap(err, "decoding payload")
	}

	return resp, nil
}
