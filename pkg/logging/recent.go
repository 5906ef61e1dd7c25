// Copyright 2026 Ewout Prangsma
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
//
// Author Ewout Prangsma
//

package logging

import (
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

const (
	recentTimeFormat = "15:04:05"
)

// RecentLines is a zerolog writer that keeps the most recent
// log lines in human readable form.
type RecentLines struct {
	mutex    sync.Mutex
	lines    []string
	size     int
	minLevel zerolog.Level
	console  zerolog.ConsoleWriter
}

var _ zerolog.LevelWriter = &RecentLines{}

// NewRecentLines creates a writer that keeps the last size lines
// with a level of at least minLevel.
func NewRecentLines(size int, minLevel zerolog.Level) *RecentLines {
	r := &RecentLines{
		lines:    make([]string, 0, size),
		size:     size,
		minLevel: minLevel,
	}
	r.console = zerolog.ConsoleWriter{
		Out:        lineSink{r},
		NoColor:    true,
		TimeFormat: recentTimeFormat,
	}
	return r
}

// Write a single JSON encoded log event.
func (r *RecentLines) Write(p []byte) (int, error) {
	return r.console.Write(p)
}

// WriteLevel writes the event when its level is high enough.
func (r *RecentLines) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < r.minLevel {
		return len(p), nil
	}
	return r.Write(p)
}

// Lines returns the kept lines, oldest first.
func (r *RecentLines) Lines() []string {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	result := make([]string, len(r.lines))
	copy(result, r.lines)
	return result
}

func (r *RecentLines) add(line string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if len(r.lines) == r.size {
		copy(r.lines, r.lines[1:])
		r.lines = r.lines[:r.size-1]
	}
	r.lines = append(r.lines, line)
}

type lineSink struct {
	r *RecentLines
}

func (s lineSink) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		s.r.add(line)
	}
	return len(p), nil
}
