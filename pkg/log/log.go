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
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/absrewrite/pkg/status"
)

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
	files   []status.Entry
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🏭 NewConsole creates a logger whose structured events go to a zerolog
// console writer at the given level
func NewConsole(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return New(console, zlog)
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 LogFileRewrite logs the outcome of rewriting one file
func (l *Logger) LogFileRewrite(ctx context.Context, fr status.Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.files = append(l.files, fr)

	fmt.Fprintln(l.console, status.FormatFileLine(fr.Path, fr.Status, fr.Equalities, fr.Inequalities))

	ev := l.zlog.Info()
	if fr.Err != nil {
		ev = l.zlog.Error().Err(fr.Err)
	}
	ev.Str("file", fr.Path).
		Str("status", fr.Status.String()).
		Int("equalities", fr.Equalities).
		Int("inequalities", fr.Inequalities).
		Msg("file rewrite")
}

// 📋 Files returns every file logged so far, in logging order
func (l *Logger) Files() []status.Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]status.Entry, len(l.files))
	copy(out, l.files)
	return out
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("absrewrite")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 🖨️ line prints an icon-prefixed colored message and mirrors it to zerolog
func (l *Logger) line(icon string, fg color.Attribute, level zerolog.Level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "%s %s\n", icon, color.New(fg).Sprint(msg))
	l.zlog.WithLevel(level).Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) { l.line("✅", color.FgGreen, zerolog.InfoLevel, msg) }

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) { l.line("⚠️ ", color.FgYellow, zerolog.WarnLevel, msg) }

// 📝 Error logs an error message
func (l *Logger) Error(msg string) { l.line("❌", color.FgRed, zerolog.ErrorLevel, msg) }

// 📝 Info logs an info message
func (l *Logger) Info(msg string) { l.line("ℹ️ ", color.FgCyan, zerolog.InfoLevel, msg) }

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
