package mathtok

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnknownElement reports an element outside the known vocabulary when
// strict element checking is enabled.
var ErrUnknownElement = errors.New("unknown element")

// ReadError wraps a fatal failure of the underlying event source: malformed
// markup, an I/O error or binary input. No partial output accompanies it.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return "read: " + e.Err.Error()
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// Result holds the token stream and the diagnostics raised while producing it.
type Result struct {
	Tokens      string
	Diagnostics []Diagnostic
}

// Transduce walks src to its end and returns the token stream. It holds no
// state between calls and is safe for concurrent use with distinct sources.
func Transduce(src EventSource, opts ...ConvertOption) (Result, error) {
	if src == nil {
		return Result{}, fmt.Errorf("transduce: source is nil")
	}
	cfg := newConvertConfig(opts)
	t := transducerPool.Get().(*transducer)
	t.reset(cfg)
	defer func() {
		t.release()
		transducerPool.Put(t)
	}()
	out, err := t.run(src)
	if err != nil {
		return Result{}, err
	}
	return Result{Tokens: out, Diagnostics: t.diags}, nil
}

// ConvertRequest configures Convert.
type ConvertRequest struct {
	Reader io.Reader
	Format Format
	// ContentType is an optional MIME type used for HTML charset detection.
	ContentType string
	Options     []ConvertOption
}

// Convert reads a MathML, XHTML or HTML document and returns its token stream.
func Convert(req ConvertRequest) (Result, error) {
	if req.Reader == nil {
		return Result{}, fmt.Errorf("convert: Reader is nil")
	}
	r, format, err := openDocument(req.Reader, req.Format)
	if err != nil {
		return Result{}, &ReadError{Err: err}
	}
	var src EventSource
	switch format {
	case FormatHTML:
		src = NewHTMLSource(r, req.ContentType)
	default:
		src = NewXMLSource(r)
	}
	return Transduce(src, req.Options...)
}

// ConvertString converts an in-memory document and returns only the tokens.
func ConvertString(doc string, opts ...ConvertOption) (string, error) {
	res, err := Convert(ConvertRequest{
		Reader:  strings.NewReader(doc),
		Options: opts,
	})
	if err != nil {
		return "", err
	}
	return res.Tokens, nil
}

// ConvertFile converts the document at path. The format follows the file
// extension, falling back to sniffing.
func ConvertFile(path string, opts ...ConvertOption) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("convert: open %s: %w", path, err)
	}
	defer f.Close()
	return Convert(ConvertRequest{
		Reader:  f,
		Format:  formatForPath(path),
		Options: opts,
	})
}

func formatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return FormatHTML
	case ".xml", ".mml", ".xhtml", ".xht":
		return FormatXML
	default:
		return FormatAuto
	}
}
