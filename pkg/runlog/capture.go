// SPDX-License-Identifier: Apache-2.0

package runlog

import (
	"fmt"
	"sync"
)

// Entry is one line recorded by a Capture.
type Entry struct {
	Tag     string
	Message string
}

// Capture is an in memory Sink for tests. It records lines instead of
// rendering them.
type Capture struct {
	mu      sync.Mutex
	entries []Entry
}

var _ Sink = (*Capture)(nil)

func (c *Capture) Info(format string, args ...interface{}) {
	c.record(TagInfo, format, args...)
}

func (c *Capture) Success(format string, args ...interface{}) {
	c.record(TagSuccess, format, args...)
}

func (c *Capture) Warn(format string, args ...interface{}) {
	c.record(TagWarn, format, args...)
}

func (c *Capture) Error(format string, args ...interface{}) {
	c.record(TagError, format, args...)
}

func (c *Capture) record(tag, format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, Entry{Tag: tag, Message: fmt.Sprintf(format, args...)})
}

// Entries returns a copy of the recorded lines in emission order.
func (c *Capture) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Messages returns the messages recorded under the given tag, in order.
func (c *Capture) Messages(tag string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []string
	for _, e := range c.entries {
		if e.Tag == tag {
			out = append(out, e.Message)
		}
	}
	return out
}
