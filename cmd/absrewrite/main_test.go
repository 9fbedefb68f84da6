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

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/absrewrite/pkg/rewrite"
)

// 🧪 syncBuffer is a bytes.Buffer safe for the watch goroutines
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type result struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var stdout, stderr syncBuffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

// missingConfig points commands at a config that does not exist so they use defaults
func missingConfig(t *testing.T) string {
	return filepath.Join(t.TempDir(), ".absrewrite.yaml")
}

func writeProject(t *testing.T, cfg string, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	cfgPath := filepath.Join(dir, ".absrewrite.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))
	return cfgPath
}

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	os.Exit(m.Run())
}

func TestTransformCmd(t *testing.T) {
	squareRange := rewrite.Transform(rewrite.Sample, rewrite.Modes{Eq: rewrite.EqSquare, Le: rewrite.LeRange})

	tests := []struct {
		name     string
		stdin    string
		args     []string
		wantCode int
		wantOut  string
		wantErr  string
	}{
		{
			name:    "args_joined",
			args:    []string{"transform", "--eq", "split", "abs(x)", "==", "4"},
			wantOut: "x == -4 or x == 4\n",
		},
		{
			name:    "stdin",
			stdin:   rewrite.Sample,
			args:    []string{"transform", "--eq", "square", "--le", "range"},
			wantOut: squareRange + "\n",
		},
		{
			name:    "default_modes_leave_text",
			args:    []string{"transform", "y = abs(x) == N"},
			wantOut: "y = abs(x) == N\n",
		},
		{
			name:     "unknown_mode",
			args:     []string{"transform", "--eq", "range", "abs(x) == 4"},
			wantCode: 1,
			wantErr:  `unknown eq mode "range"`,
		},
		{
			name:     "missing_input_file",
			args:     []string{"transform", "--file", "does-not-exist.txt"},
			wantCode: 1,
			wantErr:  "opening input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"-c", missingConfig(t)}, tt.args...)
			res := runCLI(t, tt.stdin, args...)

			assert.Equal(t, tt.wantCode, res.code, "stderr: %s", res.stderr)
			if tt.wantOut != "" {
				assert.Equal(t, tt.wantOut, res.stdout)
			}
			if tt.wantErr != "" {
				assert.Contains(t, res.stderr, tt.wantErr)
			}
		})
	}
}

func TestTransformCmd_Files(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(in, []byte("abs(a) <= (A+B)"), 0o644))

	res := runCLI(t, "", "-c", missingConfig(t), "--le", "range", "transform", "--file", in, "--output", out)
	require.Equal(t, 0, res.code, "stderr: %s", res.stderr)
	assert.Empty(t, res.stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "-(A+B) <= a and a <= (A+B)", string(data))
}

func TestTransformCmd_NewlineBySink(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.txt")

	res := runCLI(t, "", "-c", missingConfig(t), "--eq", "square", "transform", "abs(x) == 2")
	require.Equal(t, 0, res.code, "stderr: %s", res.stderr)
	assert.Equal(t, "x^2 == 4\n", res.stdout, "stdout gets a trailing newline")

	res = runCLI(t, "", "-c", missingConfig(t), "--eq", "square", "transform", "--output", out, "abs(x) == 2")
	require.Equal(t, 0, res.code, "stderr: %s", res.stderr)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "x^2 == 4", string(data), "files get the result unchanged")
}

func TestTransformCmd_OutputFailure(t *testing.T) {
	out := filepath.Join(t.TempDir(), "missing-dir", "out.txt")

	res := runCLI(t, "", "-c", missingConfig(t), "transform", "--output", out, "abs(x) == 1")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "failed to write output")
}

func TestTransformCmd_ConfigModes(t *testing.T) {
	cfgPath := writeProject(t, "modes:\n  eq: square\n", nil)

	res := runCLI(t, "", "-c", cfgPath, "transform", "abs(x) == 3")
	require.Equal(t, 0, res.code, "stderr: %s", res.stderr)
	assert.Equal(t, "x^2 == 9\n", res.stdout)

	res = runCLI(t, "", "-c", cfgPath, "--eq", "split", "transform", "abs(x) == 3")
	require.Equal(t, 0, res.code, "stderr: %s", res.stderr)
	assert.Equal(t, "x == -3 or x == 3\n", res.stdout, "flags override the config")
}

func TestSampleCmd(t *testing.T) {
	t.Run("raw", func(t *testing.T) {
		res := runCLI(t, "", "-c", missingConfig(t), "sample", "--raw")
		require.Equal(t, 0, res.code)
		assert.Equal(t, rewrite.Sample+"\n", res.stdout)
	})

	t.Run("rendered", func(t *testing.T) {
		res := runCLI(t, "", "-c", missingConfig(t), "--eq", "split", "--le", "square", "sample")
		require.Equal(t, 0, res.code)
		assert.Contains(t, res.stdout, rewrite.Sample)
		assert.Contains(t, res.stdout, "eq=split le=square")
		assert.Contains(t, res.stdout, "x^2 <= 9")
		assert.Contains(t, res.stdout, "y = x == -N or x == N")
	})
}

func TestModesCmd(t *testing.T) {
	res := runCLI(t, "", "-c", missingConfig(t), "--le", "range", "modes")
	require.Equal(t, 0, res.code, "stderr: %s", res.stderr)

	for _, want := range []string{"abs (default)", "square", "split", "range", "x^2 == 16", "x == -4 or x == 4", "-3 <= x and x <= 3", "●"} {
		assert.Contains(t, res.stdout, want)
	}
}

func TestVersionCmd(t *testing.T) {
	res := runCLI(t, "", "version")
	require.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "absrewrite version info")

	res = runCLI(t, "", "version", "--json")
	require.Equal(t, 0, res.code)
	var info VersionInfo
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &info))
	assert.NotEmpty(t, info.GoVersion)
	assert.NotEmpty(t, info.Platform)
}

func TestRewriteAndCheckCmds(t *testing.T) {
	cfgPath := writeProject(t, "modes:\n  eq: square\n  le: range\n", map[string]string{
		"a.txt":     "abs(x) == 4\n",
		"sub/b.txt": "abs(y) <= 2\n",
	})
	dir := filepath.Dir(cfgPath)

	res := runCLI(t, "", "-c", cfgPath, "check", "--diff")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stdout, "+ x^2 == 16")
	assert.Contains(t, res.stderr, "Files need rewriting")

	res = runCLI(t, "", "-c", cfgPath, "rewrite")
	require.Equal(t, 0, res.code, "stderr: %s", res.stderr)
	assert.Contains(t, res.stdout, "==> a.txt <==")
	data, err := os.ReadFile(filepath.Join(dir, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "abs(x) == 4\n", string(data), "print mode leaves files alone")

	res = runCLI(t, "", "-c", cfgPath, "rewrite", "--write")
	require.Equal(t, 0, res.code, "stderr: %s", res.stderr)
	assert.Empty(t, res.stdout)

	data, err = os.ReadFile(filepath.Join(dir, "sub", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "-2 <= y and y <= 2\n", string(data))

	res = runCLI(t, "", "-c", cfgPath, "check")
	assert.Equal(t, 0, res.code, "stderr: %s", res.stderr)
}

func TestRewriteCmd_RequiresConfig(t *testing.T) {
	res := runCLI(t, "", "-c", missingConfig(t), "rewrite")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "loading config")
}

func TestWatchCmd(t *testing.T) {
	cfgPath := writeProject(t, "modes:\n  eq: split\nwrite: true\ndebounce: 10ms\ninterval: 10ms\n", map[string]string{
		"a.txt": "abs(x) == 1\n",
	})
	a := filepath.Join(filepath.Dir(cfgPath), "a.txt")

	read := func() string {
		data, err := os.ReadFile(a)
		require.NoError(t, err)
		return string(data)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var stdout, stderr syncBuffer
	done := make(chan int, 1)
	go func() {
		done <- run(ctx, []string{"-c", cfgPath, "watch"}, strings.NewReader(""), &stdout, &stderr)
	}()

	require.Eventually(t, func() bool { return read() == "x == -1 or x == 1\n" }, 2*time.Second, 10*time.Millisecond, "initial pass")

	// let the watcher record the rewritten file as its baseline
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(a, []byte("abs(y) == 22\n"), 0o644))
	require.Eventually(t, func() bool { return read() == "y == -22 or y == 22\n" }, 2*time.Second, 10*time.Millisecond, "rerun after change")

	cancel()
	select {
	case code := <-done:
		assert.Equal(t, 0, code, "stderr: %s", stderr.String())
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}
	assert.Contains(t, stderr.String(), "watching")
}
