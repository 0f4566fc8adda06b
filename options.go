package mathtok

import "golang.org/x/text/unicode/norm"

// ConvertOption configures conversion behavior.
type ConvertOption func(*convertConfig)

type convertConfig struct {
	mathDelimiters bool
	strict         bool
	normalize      bool
	form           norm.Form
	sink           Sink
}

// WithMathDelimiters emits [math] / [end_math] around each top-level formula
// and terminates every formula with a blank line.
func WithMathDelimiters(enabled bool) ConvertOption {
	return func(cfg *convertConfig) {
		cfg.mathDelimiters = enabled
	}
}

// WithDiagnostics forwards every diagnostic to sink as it is raised, in
// addition to collecting it in the Result.
func WithDiagnostics(sink Sink) ConvertOption {
	return func(cfg *convertConfig) {
		cfg.sink = sink
	}
}

// WithStrictElements turns unknown elements into a fatal ErrUnknownElement.
func WithStrictElements(enabled bool) ConvertOption {
	return func(cfg *convertConfig) {
		cfg.strict = enabled
	}
}

// WithNormalization applies the given Unicode normalization form to text.
func WithNormalization(form norm.Form) ConvertOption {
	return func(cfg *convertConfig) {
		cfg.normalize = true
		cfg.form = form
	}
}

func newConvertConfig(opts []ConvertOption) convertConfig {
	cfg := convertConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
