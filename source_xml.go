package mathtok

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// XMLSource reads events from a well-formed XML or XHTML document.
// Malformed markup is reported as an error from Next.
type XMLSource struct {
	dec *xml.Decoder
}

// NewXMLSource returns a strict XML event source. Named HTML entities are
// accepted and non-UTF-8 encodings declared in the prolog are decoded.
func NewXMLSource(r io.Reader) *XMLSource {
	dec := xml.NewDecoder(r)
	dec.Strict = true
	dec.Entity = xml.HTMLEntity
	dec.CharsetReader = charsetReader
	return &XMLSource{dec: dec}
}

// charsetReader decodes a declared 8-bit encoding. UTF-16 input has already
// been decoded by its byte order mark by the time the declaration is read.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	if strings.HasPrefix(strings.ToLower(label), "utf-16") {
		return input, nil
	}
	return charset.NewReaderLabel(label, input)
}

// Next returns the next event.
func (s *XMLSource) Next() (Event, error) {
	tok, err := s.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Event{Kind: EventEOF}, nil
		}
		return Event{}, err
	}
	switch t := tok.(type) {
	case xml.StartElement:
		return Event{Kind: EventStart, Name: t.Name.Local}, nil
	case xml.EndElement:
		return Event{Kind: EventEnd, Name: t.Name.Local}, nil
	case xml.CharData:
		return Event{Kind: EventText, Text: string(t)}, nil
	default:
		return Event{Kind: EventOther}, nil
	}
}
