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

package database

import (
	"database/sql"

	"github.com/pkg/errors"
)

// Queryable is the common interface of *DB and *sql.Tx, so that system
// values can be read and written inside or outside a transaction.
type Queryable interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// GetSystem scans the value associated with the given key into dest
func GetSystem(q Queryable, key string, dest interface{}) error {
	err := q.QueryRow("SELECT value FROM system WHERE key = ?", key).Scan(dest)
	if err != nil {
		return err
	}

	return nil
}

// UpsertSystem inserts the key/value pair, replacing any existing value
func UpsertSystem(q Queryable, key string, val interface{}) error {
	var count int
	if err := q.QueryRow("SELECT count(*) FROM system WHERE key = ?", key).Scan(&count); err != nil {
		return errors.Wrapf(err, "counting system value for %s", key)
	}

	if count == 0 {
		if _, err := q.Exec("INSERT INTO system (key, value) VALUES (?, ?)", key, val); err != nil {
			return errors.Wrapf(err, "inserting system value for %s", key)
		}
	} else {
		if _, err := q.Exec("UPDATE system SET value = ? WHERE key = ?", val, key); err != nil {
			return errors.Wrapf(err, "updating system value for %s", key)
		}
	}

	return nil
}

// DeleteSystem removes the value associated with the given key. Removing a
// key that does not exist is not an error.
func DeleteSystem(q Queryable, key string) error {
	if _, err := q.Exec("DELETE FROM system WHERE key = ?", key); err != nil {
		return errors.Wrapf(err, "deleting system value for %s", key)
	}

	return nil
}
