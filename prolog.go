package mathtok

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const sniffBytes = 512

// Format selects the event source used for a document.
type Format uint8

const (
	// FormatAuto sniffs the document prolog.
	FormatAuto Format = iota
	// FormatXML parses well-formed XML, MathML or XHTML.
	FormatXML
	// FormatHTML tokenizes lenient HTML.
	FormatHTML
)

func (f Format) String() string {
	switch f {
	case FormatXML:
		return "xml"
	case FormatHTML:
		return "html"
	default:
		return "auto"
	}
}

// ParseFormat parses "auto", "xml" or "html" (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "xml", "mathml", "xhtml":
		return FormatXML, nil
	case "html", "htm":
		return FormatHTML, nil
	default:
		return FormatAuto, fmt.Errorf("unknown format %q", s)
	}
}

// openDocument consumes a byte order mark (decoding UTF-16 to UTF-8), guards
// the stream against binary content and resolves FormatAuto from the prolog.
func openDocument(r io.Reader, format Format) (io.Reader, Format, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(encoding.Nop.NewDecoder()))
	br := bufio.NewReader(&binaryGuard{r: decoded})
	if format != FormatAuto {
		return br, format, nil
	}
	head, err := br.Peek(sniffBytes)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, FormatAuto, err
	}
	return br, detectFormat(head), nil
}

func detectFormat(head []byte) Format {
	head = bytes.TrimLeft(head, " \t\r\n")
	if hasFoldPrefix(head, "<!doctype html") || hasFoldPrefix(head, "<html") {
		return FormatHTML
	}
	return FormatXML
}

func hasFoldPrefix(b []byte, prefix string) bool {
	return len(b) >= len(prefix) && bytes.EqualFold(b[:len(prefix)], []byte(prefix))
}
