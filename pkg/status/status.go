// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package status

import (
	"sort"
	"sync"
)

// 📊 FileStatus represents the outcome of visiting a file
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusUnchanged            // No match changed
	StatusRewritten            // Content was rewritten and written back or printed
	StatusPending              // Content would change (check mode)
	StatusSkipped              // Ignored by pattern or not a regular file
	StatusError                // Reading, rewriting or writing failed
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusUnchanged:
		return "unchanged"
	case StatusRewritten:
		return "rewritten"
	case StatusPending:
		return "pending"
	case StatusSkipped:
		return "skipped"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// 📄 Entry is the recorded outcome for one file
type Entry struct {
	Path         string     // Path relative to the run root
	Status       FileStatus // Outcome
	Equalities   int        // abs(v) == n matches rewritten
	Inequalities int        // abs(v) <= n matches rewritten
	Err          error      // Failure, when Status is StatusError
}

// 📈 Summary tallies entries across a run. It is safe for concurrent use.
type Summary struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// 🏭 NewSummary creates an empty summary
func NewSummary() *Summary {
	return &Summary{entries: make(map[string]Entry)}
}

// Record stores e, replacing any earlier entry for the same path.
func (s *Summary) Record(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[e.Path] = e
}

// Entries returns every entry sorted by path.
func (s *Summary) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Counts returns the number of entries per status.
func (s *Summary) Counts() map[FileStatus]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[FileStatus]int)
	for _, e := range s.entries {
		out[e.Status]++
	}
	return out
}

// Total returns the number of recorded entries.
func (s *Summary) Total() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Changed returns the sorted paths that were rewritten or would be.
func (s *Summary) Changed() []string {
	var out []string
	for _, e := range s.Entries() {
		if e.Status == StatusRewritten || e.Status == StatusPending {
			out = append(out, e.Path)
		}
	}
	return out
}

// Failed returns the entries that ended in StatusError, sorted by path.
func (s *Summary) Failed() []Entry {
	var out []Entry
	for _, e := range s.Entries() {
		if e.Status == StatusError {
			out = append(out, e)
		}
	}
	return out
}
