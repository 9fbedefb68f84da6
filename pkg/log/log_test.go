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

package log

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/absrewrite/pkg/status"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_file_rewrite",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileRewrite(context.Background(), status.Entry{
					Path:         "notes.txt",
					Status:       status.StatusRewritten,
					Equalities:   2,
					Inequalities: 1,
				})
			},
			wantLogs: []string{
				"✓ notes.txt" + strings.Repeat(" ", 27) + "rewritten" + strings.Repeat(" ", 4) + "eq=2 le=1",
			},
		},
		{
			name: "log_file_error",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileRewrite(context.Background(), status.Entry{
					Path:   "broken.txt",
					Status: status.StatusError,
					Err:    assert.AnError,
				})
			},
			wantLogs: []string{
				"✗ broken.txt" + strings.Repeat(" ", 26) + "error" + strings.Repeat(" ", 8) + "eq=0 le=0",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("info %s", "test")
				logger.Warningf("warning %s", "test")
				logger.Errorf("error %s", "test")
				logger.Successf("success %s", "test")
			},
			wantLogs: []string{
				"ℹ️  info test",
				"⚠️  warning test",
				"❌ error test",
				"✅ success test",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("rewriting files")
			},
			wantLogs: []string{
				"absrewrite • rewriting files",
			},
		},
		{
			name: "log_newline",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("first")
				logger.LogNewline()
				logger.Info("second")
			},
			wantLogs: []string{
				"ℹ️  first",
				"",
				"ℹ️  second",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.New(zerolog.NewTestWriter(t)))

			tt.op(t, logger)

			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerFiles(t *testing.T) {
	logger := New(io.Discard, zerolog.Nop())
	ctx := context.Background()

	logger.LogFileRewrite(ctx, status.Entry{Path: "b.txt", Status: status.StatusUnchanged})
	logger.LogFileRewrite(ctx, status.Entry{Path: "a.txt", Status: status.StatusPending, Equalities: 1})

	files := logger.Files()
	require.Len(t, files, 2)
	assert.Equal(t, "b.txt", files[0].Path, "files should keep logging order")
	assert.Equal(t, status.StatusPending, files[1].Status)

	files[0].Path = "mutated"
	assert.Equal(t, "b.txt", logger.Files()[0].Path, "Files should return a copy")
}

func TestLoggerContext(t *testing.T) {
	logger := NewConsole(io.Discard, zerolog.InfoLevel)

	ctx := NewContext(context.Background(), logger)

	got := FromContext(ctx)
	assert.Same(t, logger, got, "logger from context should be the same instance")

	assert.Panics(t, func() {
		FromContext(context.Background())
	}, "FromContext should panic when logger is missing")
}
