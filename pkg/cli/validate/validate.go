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

// Package validate checks user input before any request is made
package validate

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/pkg/errors"
)

// Subjects is the fixed set of note subjects the service accepts
var Subjects = []string{"General", "Math", "Science", "History", "English", "CS", "Other"}

// ErrPasswordMismatch is an error for a register attempt in which the
// password confirmation does not match the password
var ErrPasswordMismatch = errors.New("passwords do not match")

// Credentials validates a login input
func Credentials(email, password string) error {
	return validation.Errors{
		"email":    validation.Validate(email, validation.Required),
		"password": validation.Validate(password, validation.Required),
	}.Filter()
}

// Registration validates a register input
func Registration(email, username, password, passwordConfirm string) error {
	err := validation.Errors{
		"email":    validation.Validate(email, validation.Required, is.Email),
		"username": validation.Validate(username, validation.Required),
		"password": validation.Validate(password, validation.Required, validation.Length(8, 0)),
	}.Filter()
	if err != nil {
		return err
	}

	if password != passwordConfirm {
		return ErrPasswordMismatch
	}

	return nil
}

// NoteTitle validates a note title
func NoteTitle(title string) error {
	return validation.Validate(title, validation.Required.Error("title cannot be empty"))
}

// Subject validates a note subject against the fixed enumeration
func Subject(subject string) error {
	choices := make([]interface{}, len(Subjects))
	for i, s := range Subjects {
		choices[i] = s
	}

	return validation.Validate(subject,
		validation.Required.Error("subject cannot be empty"),
		validation.In(choices...).Error("unknown subject"),
	)
}
