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

// Package log prints conversion progress for humans and mirrors it to zerolog.
package log

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/pyimports/pkg/convert"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	statusWidth = 15 // Width for status text
)

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
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

// 📝 formatResult formats a file result for display
func formatResult(r convert.Result, name string, dryRun bool) string {
	var symbol rune
	var symbolColor color.Attribute
	status := r.Outcome.String()

	switch r.Outcome {
	case convert.OutcomeFailed:
		symbol = '✗'
		symbolColor = color.FgRed
	case convert.OutcomeModified:
		symbol = '✓'
		symbolColor = color.FgGreen
		if dryRun {
			symbol = '⟳'
			symbolColor = color.FgBlue
			status = "would update"
		}
	default:
		symbol = '-'
		symbolColor = color.FgYellow
	}

	detail := ""
	switch {
	case r.Err != nil:
		detail = color.New(color.FgRed).Sprint(r.Err.Error())
	case len(r.Changes) == 1:
		detail = color.New(color.Faint).Sprint("1 import")
	case len(r.Changes) > 1:
		detail = color.New(color.Faint).Sprintf("%d imports", len(r.Changes))
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, name),
		fmt.Sprintf("%-*s", statusWidth, status),
		detail)
}

// 📝 LogSummary prints one directory's results
func (l *Logger) LogSummary(s *convert.Summary) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "[converting %s]\n", color.New(color.FgCyan).Sprint(s.Directory))

	if s.Skipped {
		fmt.Fprintf(l.console, "%s %s\n",
			color.New(color.FgYellow).Sprint("◆"),
			color.New(color.Faint).Sprint("not a package, skipped"))
		l.zlog.Warn().Str("directory", s.Directory).Msg("directory skipped")
		return
	}

	fmt.Fprintf(l.console, "%s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(s.Package))

	for _, r := range s.Results {
		name, err := filepath.Rel(s.Directory, r.Path)
		if err != nil {
			name = r.Path
		}
		fmt.Fprintln(l.console, formatResult(r, filepath.ToSlash(name), s.DryRun))

		ev := l.zlog.Debug()
		if r.Err != nil {
			ev = l.zlog.Error().Err(r.Err)
		}
		ev.Str("file", r.Path).
			Str("outcome", r.Outcome.String()).
			Int("changes", len(r.Changes)).
			Bool("dry_run", s.DryRun).
			Msg("file result")
	}

	l.zlog.Info().
		Str("directory", s.Directory).
		Str("package", s.Package).
		Int("files", len(s.Results)).
		Int("modified", s.Count(convert.OutcomeModified)).
		Int("failed", s.Count(convert.OutcomeFailed)).
		Msg("directory complete")
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
	name := color.New(color.Bold, color.FgCyan).Sprint("pyimports")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

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
