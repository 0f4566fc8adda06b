package mathtok

import (
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// DiagnosticKind classifies a non-fatal conversion problem.
type DiagnosticKind string

const (
	// UnknownElement reports an element outside the known vocabulary; it is skipped.
	UnknownElement DiagnosticKind = "unknown_element"
	// ModeMismatch reports an end tag whose mode differs from the one pushed by its start tag.
	ModeMismatch DiagnosticKind = "mode_mismatch"
	// ScopeUnderflow reports an argument scope closed without a saved frame.
	ScopeUnderflow DiagnosticKind = "scope_underflow"
	// UnbalancedEnd reports an end tag with no open element left to close.
	UnbalancedEnd DiagnosticKind = "unbalanced_end"
	// UnclosedElements reports elements still open at the end of the document.
	UnclosedElements DiagnosticKind = "unclosed_elements"
)

// Diagnostic is a structured, non-fatal warning raised during conversion.
type Diagnostic struct {
	Kind    DiagnosticKind
	Element string
	Depth   int
	Message string
}

// Sink receives diagnostics as they are raised.
type Sink interface {
	Warn(Diagnostic)
}

// NopSink discards diagnostics.
type NopSink struct{}

// Warn implements Sink.
func (NopSink) Warn(Diagnostic) {}

// Collector accumulates diagnostics. It is safe for concurrent use.
type Collector struct {
	mu    sync.Mutex
	diags []Diagnostic
}

// Warn implements Sink.
func (c *Collector) Warn(d Diagnostic) {
	c.mu.Lock()
	c.diags = append(c.diags, d)
	c.mu.Unlock()
}

// Diagnostics returns a copy of everything collected so far.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Diagnostic(nil), c.diags...)
}

type logSink struct {
	logger log.Logger
}

// LogSink returns a Sink that writes each diagnostic as a warning record.
func LogSink(logger log.Logger) Sink {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return logSink{logger: logger}
}

func (s logSink) Warn(d Diagnostic) {
	level.Warn(s.logger).Log("msg", d.Message, "kind", string(d.Kind), "element", d.Element, "depth", d.Depth)
}
