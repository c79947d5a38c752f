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

// Package consts provides definitions of constants
package consts

var (
	// InkwellDirName is the name of the directory containing inkwell files
	InkwellDirName = "inkwell"
	// InkwellDBFileName is a filename for the Inkwell SQLite database
	InkwellDBFileName = "inkwell.db"
	// ConfigFilename is the name of the config file
	ConfigFilename = "inkwellrc"
	// TmpContentFileBase is the base for the filename for a temporary content
	TmpContentFileBase = "INKWELL_TMPCONTENT"
	// TmpContentFileExt is the extension for the temporary content file
	TmpContentFileExt = "md"

	// SystemSessionToken is the key for the session token in the system table
	SystemSessionToken = "session_token"
	// SystemSessionUser is the key for the cached user JSON in the system table
	SystemSessionUser = "session_user"
)
