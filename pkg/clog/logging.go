// Package clog sets up process logging: the text handler installed into apex/log
// and the current level and output, which can be changed while running.
package clog

import (
	"os"
	"sync"

	"github.com/apex/log"
	"github.com/pkg/errors"
)

const (
	Stdout = "stdout"
	Stderr = "stderr"
)

// State is the current logging configuration.
type State struct {
	Level  string `json:"level"`
	Output string `json:"output"`
}

// Logging owns the handler installed in apex/log.
type Logging struct {
	mu      sync.Mutex
	level   log.Level
	output  string
	handler *Handler
}

var global = &Logging{level: log.InfoLevel, output: Stdout}

// Global returns the process wide logging settings.
func Global() *Logging {
	return global
}

// Setup installs a handler writing to output (stdout, stderr or a file path) at
// the given level.
func (l *Logging) Setup(level, output string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	oldLevel := l.level
	if err := l.setLevel(level); err != nil {
		return err
	}

	if err := l.setOutput(output); err != nil {
		// Keep level and output consistent: both change or neither does.
		l.level = oldLevel
		log.SetLevel(oldLevel)
		return err
	}

	return nil
}

func (l *Logging) SetLevel(level string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.setLevel(level)
}

func (l *Logging) SetOutput(output string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.setOutput(output)
}

func (l *Logging) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()

	return State{Level: l.level.String(), Output: l.output}
}

func (l *Logging) setLevel(level string) error {
	if level == "" {
		return nil
	}

	parsed, err := log.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %s", level)
	}

	l.level = parsed
	log.SetLevel(parsed)

	return nil
}

func (l *Logging) setOutput(output string) error {
	var handler *Handler

	switch output {
	case "":
		if l.handler != nil {
			return nil
		}
		output = Stdout
		handler = NewHandler(os.Stdout)
	case Stdout:
		handler = NewHandler(os.Stdout)
	case Stderr:
		handler = NewHandler(os.Stderr)
	default:
		f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return errors.Wrapf(err, "unable to open log output %s", output)
		}
		handler = NewHandler(f)
	}

	if l.handler != nil {
		_ = l.handler.Close()
	}

	l.handler = handler
	l.output = output
	log.SetHandler(handler)

	return nil
}
