// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"sync/atomic"
)

// Logger defines the interface for logging operations.
//
// The cft command logs human-readable lines while the [MCP] server writes
// structured JSON, so callers such as the fetch layer only see this interface.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type Logger interface {
	// Printf formats and prints a log message.
	Printf(format string, v ...any)
	// Println prints a log message with a newline.
	Println(v ...any)
	// Debugf formats and prints a message only when verbose output is enabled.
	Debugf(format string, v ...any)
	// SetOutput sets the output destination for the logger.
	SetOutput(w io.Writer)
}

// CLILogger implements Logger using the standard log package.
// It's designed for command-line interface output with human-readable formatting.
type CLILogger struct {
	logger  *log.Logger
	verbose atomic.Bool
}

// NewCLILogger creates a new CLI logger with timestamps disabled.
// Debug output is off until [CLILogger.SetVerbose] is called.
func NewCLILogger() *CLILogger {
	l := log.New(os.Stdout, "", 0)
	return &CLILogger{logger: l}
}

// Printf formats and prints a log message using fmt.Printf semantics.
func (c *CLILogger) Printf(format string, v ...any) { c.logger.Printf(format, v...) }

// Println prints a log message with a newline.
func (c *CLILogger) Println(v ...any) { c.logger.Println(v...) }

// Debugf prints a message prefixed with "debug: " when verbose is enabled.
func (c *CLILogger) Debugf(format string, v ...any) {
	if c.verbose.Load() {
		c.logger.Printf("debug: "+format, v...)
	}
}

// SetVerbose enables or disables [CLILogger.Debugf] output.
func (c *CLILogger) SetVerbose(verbose bool) { c.verbose.Store(verbose) }

// SetOutput sets the output destination for the CLI logger.
func (c *CLILogger) SetOutput(w io.Writer) { c.logger.SetOutput(w) }

// MCPLogger implements Logger for [MCP] server mode.
// It suppresses output by default since MCP communication happens over stdio,
// but can be configured to write structured logs to a separate destination.
//
// MCPLogger is safe for concurrent use by multiple goroutines.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type MCPLogger struct {
	mu     sync.Mutex
	writer io.Writer
	silent bool
}

// NewMCPLogger creates a new [MCP] logger.
// By default, it's silent (output suppressed) to avoid interfering with [MCP] stdio protocol.
// Set silent=false and provide a writer to enable structured logging to a file or stderr.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
func NewMCPLogger(writer io.Writer, silent bool) *MCPLogger {
	if writer == nil {
		writer = io.Discard
	}
	return &MCPLogger{
		writer: writer,
		silent: silent,
	}
}

// entry is one line of MCPLogger output.
type entry struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

func (m *MCPLogger) write(level, msg string) {
	if m.silent {
		return
	}

	data, _ := json.Marshal(entry{Level: level, Message: msg})

	m.mu.Lock()
	fmt.Fprintln(m.writer, string(data))
	m.mu.Unlock()
}

// Printf formats and logs a structured message at level "info".
// Output is suppressed if silent mode is enabled.
//
// Printf is safe for concurrent use by multiple goroutines.
func (m *MCPLogger) Printf(format string, v ...any) { m.write("info", fmt.Sprintf(format, v...)) }

// Println logs a structured message at level "info".
// Output is suppressed if silent mode is enabled.
//
// Println is safe for concurrent use by multiple goroutines.
func (m *MCPLogger) Println(v ...any) { m.write("info", fmt.Sprint(v...)) }

// Debugf logs a structured message at level "debug". Debug lines are not
// filtered.
func (m *MCPLogger) Debugf(format string, v ...any) { m.write("debug", fmt.Sprintf(format, v...)) }

// SetOutput sets the output destination for the MCP logger.
//
// SetOutput is safe for concurrent use by multiple goroutines.
func (m *MCPLogger) SetOutput(w io.Writer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if w == nil {
		m.writer = io.Discard
	} else {
		m.writer = w
	}
}
