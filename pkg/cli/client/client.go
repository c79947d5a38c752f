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

// Package client provides interfaces for interacting with the Inkwell server
// and the data structures for responses
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inkwellhq/inkwell/pkg/cli/context"
	"github.com/inkwellhq/inkwell/pkg/cli/log"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// ErrInvalidLogin is an error for invalid credentials for login
var ErrInvalidLogin = errors.New("wrong credentials")

// ErrContentTypeMismatch is an error for an unexpected response content type
var ErrContentTypeMismatch = errors.New("content type mismatch")

// HTTPError represents an HTTP error response from the server. Message
// carries the server-provided detail when the body could be parsed.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf(`response %d "%s"`, e.StatusCode, e.Message)
}

// IsAuthRejected returns true if the error is a 401 Unauthorized error
func (e *HTTPError) IsAuthRejected() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsAuthRejected returns true if the given error, anywhere in its chain,
// is an authentication-rejected response from the server.
func IsAuthRejected(err error) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.IsAuthRejected()
	}

	return false
}

var contentTypeApplicationJSON = "application/json"

// requestOptions contains options for requests
type requestOptions struct {
	HTTPClient *http.Client
	// ContentType is the Content-Type of the request body
	ContentType string
}

const (
	// clientRateLimitPerSecond is the max requests per second the client will make
	clientRateLimitPerSecond = 50
	// clientRateLimitBurst is the burst capacity for rate limiting
	clientRateLimitBurst = 100
	// requestTimeout is the only deadline the client enforces. Operations do
	// not layer their own timeouts or cancellation on top of it.
	requestTimeout = 60 * time.Second
)

// rateLimitedTransport wraps an http.RoundTripper with rate limiting
type rateLimitedTransport struct {
	transport http.RoundTripper
	limiter   *rate.Limiter
}

func (t *rateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.transport.RoundTrip(req)
}

// NewHTTPClient creates the HTTP client used for all gateway requests,
// with rate limiting and the default request deadline.
func NewHTTPClient() *http.Client {
	interval := time.Second / time.Duration(clientRateLimitPerSecond)

	transport := &rateLimitedTransport{
		transport: http.DefaultTransport,
		limiter:   rate.NewLimiter(rate.Every(interval), clientRateLimitBurst),
	}
	return &http.Client{
		Transport: transport,
		Timeout:   requestTimeout,
	}
}

func getHTTPClient(ctx context.InkwellCtx, options *requestOptions) *http.Client {
	if options != nil && options.HTTPClient != nil {
		return options.HTTPClient
	}

	if ctx.HTTPClient != nil {
		return ctx.HTTPClient
	}

	return &http.Client{}
}

func getReq(ctx context.InkwellCtx, method, path string, body io.Reader, options *requestOptions) (*http.Request, error) {
	endpoint := fmt.Sprintf("%s%s", ctx.APIEndpoint, path)
	req, err := http.NewRequest(method, endpoint, body)
	if err != nil {
		return nil, errors.Wrap(err, "constructing http request")
	}

	req.Header.Set("CLI-Version", ctx.Version)
	if requestID, err := uuid.NewRandom(); err == nil {
		req.Header.Set("X-Request-ID", requestID.String())
	}

	contentType := contentTypeApplicationJSON
	if options != nil && options.ContentType != "" {
		contentType = options.ContentType
	}
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}

	if ctx.SessionKey != "" {
		credential := fmt.Sprintf("Bearer %s", ctx.SessionKey)
		req.Header.Set("Authorization", credential)
	}

	return req, nil
}

// errorResp is the shape of an error body from the server
type errorResp struct {
	Detail string `json:"detail"`
}

// checkRespErr checks if the given http response indicates an error. The
// resulting message is the server's detail field when the body parses as
// JSON, otherwise the raw body.
func checkRespErr(res *http.Response) error {
	if res.StatusCode < 400 {
		return nil
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrapf(err, "server responded with %d but client could not read the response body", res.StatusCode)
	}

	message := strings.TrimRight(string(body), "\n")

	var er errorResp
	if err := json.Unmarshal(body, &er); err == nil && er.Detail != "" {
		message = er.Detail
	}

	return &HTTPError{
		StatusCode: res.StatusCode,
		Message:    message,
	}
}

func checkContentType(res *http.Response) error {
	got := res.Header.Get("Content-Type")
	if !strings.HasPrefix(got, contentTypeApplicationJSON) {
		return errors.Wrapf(ErrContentTypeMismatch, "got: '%s' want: '%s'. Did you configure your endpoint correctly?", got, contentTypeApplicationJSON)
	}

	return nil
}

// doReq does a http request to the given path in the api endpoint
func doReq(ctx context.InkwellCtx, method, path string, body io.Reader, options *requestOptions) (*http.Response, error) {
	req, err := getReq(ctx, method, path, body, options)
	if err != nil {
		return nil, errors.Wrap(err, "getting request")
	}

	log.Debug("HTTP %s %s\n", method, path)

	hc := getHTTPClient(ctx, options)
	res, err := hc.Do(req)
	if err != nil {
		return res, errors.Wrap(err, "making http request")
	}

	log.Debug("HTTP %d %s\n", res.StatusCode, res.Status)

	if err = checkRespErr(res); err != nil {
		return res, errors.Wrap(err, "server responded with an error")
	}

	if err = checkContentType(res); err != nil {
		return res, errors.Wrap(err, "unexpected Content-Type")
	}

	return res, nil
}

// doAuthorizedReq does a http request to the given path in the api endpoint as a user,
// with the appropriate headers. The given path should include the preceding slash.
func doAuthorizedReq(ctx context.InkwellCtx, method, path string, body io.Reader, options *requestOptions) (*http.Response, error) {
	if ctx.SessionKey == "" {
		return nil, errors.New("no session key found")
	}

	return doReq(ctx, method, path, body, options)
}

// doJSONReq does a request with a JSON-marshaled payload
func doJSONReq(ctx context.InkwellCtx, method, path string, payload interface{}, authorized bool) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.Wrap(err, "marshaling payload")
		}
		body = bytes.NewReader(b)
	}

	if authorized {
		return doAuthorizedReq(ctx, method, path, body, nil)
	}

	return doReq(ctx, method, path, body, nil)
}

// multipartFile describes the file part of a multipart submission
type multipartFile struct {
	FieldName string
	FileName  string
	Body      io.Reader
}

// doMultipartReq posts a multipart/form-data submission with the given text
// fields and file to the api endpoint.
func doMultipartReq(ctx context.InkwellCtx, path string, fields map[string]string, file multipartFile) (*http.Response, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for key, val := range fields {
		if err := w.WriteField(key, val); err != nil {
			return nil, errors.Wrapf(err, "writing field %s", key)
		}
	}

	part, err := w.CreateFormFile(file.FieldName, file.FileName)
	if err != nil {
		return nil, errors.Wrap(err, "creating file part")
	}
	if _, err := io.Copy(part, file.Body); err != nil {
		return nil, errors.Wrap(err, "copying file content")
	}

	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "finalizing multipart body")
	}

	opts := requestOptions{
		ContentType: w.FormDataContentType(),
	}
	return doAuthorizedReq(ctx, "POST", path, &buf, &opts)
}
