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

package validate

import (
	"fmt"
	"testing"

	"github.com/inkwellhq/inkwell/pkg/assert"
)

func TestCredentials(t *testing.T) {
	testCases := []struct {
		email    string
		password string
		valid    bool
	}{
		{email: "a@b.com", password: "secret1", valid: true},
		{email: "", password: "secret1", valid: false},
		{email: "a@b.com", password: "", valid: false},
		{email: "", password: "", valid: false},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s %s", tc.email, tc.password), func(t *testing.T) {
			err := Credentials(tc.email, tc.password)
			assert.Equal(t, err == nil, tc.valid, "validation result mismatch")
		})
	}
}

func TestRegistration(t *testing.T) {
	testCases := []struct {
		name            string
		email           string
		username        string
		password        string
		passwordConfirm string
		valid           bool
	}{
		{
			name:            "valid",
			email:           "a@b.com",
			username:        "ab",
			password:        "longenough",
			passwordConfirm: "longenough",
			valid:           true,
		},
		{
			name:            "short password",
			email:           "a@b.com",
			username:        "ab",
			password:        "short",
			passwordConfirm: "short",
			valid:           false,
		},
		{
			name:            "mismatched confirmation",
			email:           "a@b.com",
			username:        "ab",
			password:        "longenough",
			passwordConfirm: "different1",
			valid:           false,
		},
		{
			name:            "invalid email",
			email:           "not-an-email",
			username:        "ab",
			password:        "longenough",
			passwordConfirm: "longenough",
			valid:           false,
		},
		{
			name:            "missing username",
			email:           "a@b.com",
			username:        "",
			password:        "longenough",
			passwordConfirm: "longenough",
			valid:           false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Registration(tc.email, tc.username, tc.password, tc.passwordConfirm)
			assert.Equal(t, err == nil, tc.valid, "validation result mismatch")
		})
	}
}

func TestRegistrationMismatchError(t *testing.T) {
	err := Registration("a@b.com", "ab", "longenough", "different1")
	assert.Equal(t, err, ErrPasswordMismatch, "should return the mismatch sentinel")
}

func TestSubject(t *testing.T) {
	for _, s := range Subjects {
		t.Run(s, func(t *testing.T) {
			assert.Equal(t, Subject(s), nil, "known subject should be valid")
		})
	}

	assert.NotEqual(t, Subject("Astrology"), nil, "unknown subject should be invalid")
	assert.NotEqual(t, Subject(""), nil, "empty subject should be invalid")
}

func TestNoteTitle(t *testing.T) {
	assert.Equal(t, NoteTitle("Big O Notation"), nil, "non-empty title should be valid")
	assert.NotEqual(t, NoteTitle(""), nil, "empty title should be invalid")
}
