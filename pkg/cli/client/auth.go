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
	"net/http"

	"github.com/inkwellhq/inkwell/pkg/cli/context"
	"github.com/pkg/errors"
)

// User is a user account in the response
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// SigninPayload is a payload for /auth/login
type SigninPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SigninResponse is a response from the login and register endpoints
type SigninResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Signin requests a session token with the given credentials
func Signin(ctx context.InkwellCtx, email, password string) (SigninResponse, error) {
	payload := SigninPayload{
		Email:    email,
		Password: password,
	}

	res, err := doJSONReq(ctx, "POST", "/auth/login", payload, false)
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusUnauthorized {
			return SigninResponse{}, errors.Wrap(ErrInvalidLogin, httpErr.Message)
		}
		return SigninResponse{}, errors.Wrap(err, "making http request")
	}

	var resp SigninResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return SigninResponse{}, errors.Wrap(err, "decoding payload")
	}

	return resp, nil
}

// RegisterPayload is a payload for /auth/register
type RegisterPayload struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a new account and returns a session token for it
func Register(ctx context.InkwellCtx, email, username, password string) (SigninResponse, error) {
	payload := RegisterPayload{
		Email:    email,
		Username: username,
		Password: password,
	}

	res, err := doJSONReq(ctx, "POST", "/auth/register", payload, false)
	if err != nil {
		return SigninResponse{}, errors.Wrap(err, "making http request")
	}

	var resp SigninResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return SigninResponse{}, errors.Wrap(err, "decoding payload")
	}

	return resp, nil
}

// GetMe fetches the user that the current session token authenticates.
// It is used to validate a stored token when restoring a session.
func GetMe(ctx context.InkwellCtx) (User, error) {
	res, err := doAuthorizedReq(ctx, "GET", "/auth/me", nil, nil)
	if err != nil {
		return User{}, errors.Wrap(err, "making http request")
	}

	var resp User
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return User{}, errors.Wrap(err, "decoding payload")
	}

	return resp, nil
}
