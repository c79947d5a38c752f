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

// Package clock provides an abstract layer over the standard time package
package clock

import (
	"sync"
	"time"
)

// Clock is an interface to the standard library time.
// It is used to implement a real or a mock clock. The latter is used in tests.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type clock struct{}

func (c *clock) Now() time.Time {
	return time.Now()
}

func (c *clock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// Mock is a mock instance of clock. Sleep returns immediately and records
// the requested durations so that tests can assert on pacing.
type Mock struct {
	mu          sync.RWMutex
	currentTime time.Time
	sleeps      []time.Duration
}

// SetNow sets the current time for the mock clock
func (c *Mock) SetNow(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentTime = t
}

// Now returns the current time
func (c *Mock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentTime
}

// Sleep advances the mock time by the given duration without blocking
func (c *Mock) Sleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentTime = c.currentTime.Add(d)
	c.sleeps = append(c.sleeps, d)
}

// Sleeps returns the durations passed to Sleep in order
func (c *Mock) Sleeps() []time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ret := make([]time.Duration, len(c.sleeps))
	copy(ret, c.sleeps)
	return ret
}

// New returns an instance of a real clock
func New() Clock {
	return &clock{}
}

// NewMock returns an instance of a mock clock
func NewMock() *Mock {
	return &Mock{}
}
