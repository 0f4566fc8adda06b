package mathtok

import (
	"bufio"
	"bytes"
	"errors"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
)

var voidElements = map[atom.Atom]bool{
	atom.Area:   true,
	atom.Base:   true,
	atom.Br:     true,
	atom.Col:    true,
	atom.Embed:  true,
	atom.Hr:     true,
	atom.Img:    true,
	atom.Input:  true,
	atom.Link:   true,
	atom.Meta:   true,
	atom.Param:  true,
	atom.Source: true,
	atom.Track:  true,
	atom.Wbr:    true,
}

// HTMLSource reads events from an HTML document with the HTML5 tokenizer.
// Tags are reported exactly as written (no tree construction), except that
// void and self-closing elements are closed immediately.
type HTMLSource struct {
	z       *html.Tokenizer
	pending string
	err     error
}

const charsetPrescanBytes = 1024

// NewHTMLSource returns an HTML event source. The document encoding is
// detected from contentType (may be empty), a BOM or a <meta> declaration.
// An undeclared document whose prefix is plain ASCII is read as UTF-8.
func NewHTMLSource(r io.Reader, contentType string) *HTMLSource {
	br := bufio.NewReaderSize(r, charsetPrescanBytes)
	head, err := br.Peek(charsetPrescanBytes)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return &HTMLSource{err: err}
	}
	enc, _, certain := charset.DetermineEncoding(head, contentType)
	if !certain && isASCII(head) && !bytes.Contains(bytes.ToLower(head), []byte("charset")) {
		enc = encoding.Nop
	}
	return &HTMLSource{z: html.NewTokenizer(enc.NewDecoder().Reader(br))}
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}

// Next returns the next event.
func (s *HTMLSource) Next() (Event, error) {
	if s.err != nil {
		return Event{}, s.err
	}
	if s.pending != "" {
		name := s.pending
		s.pending = ""
		return Event{Kind: EventEnd, Name: name}, nil
	}
	switch s.z.Next() {
	case html.ErrorToken:
		if err := s.z.Err(); err != io.EOF {
			return Event{}, err
		}
		return Event{Kind: EventEOF}, nil
	case html.TextToken:
		return Event{Kind: EventText, Text: string(s.z.Text())}, nil
	case html.StartTagToken:
		name := s.tagName()
		if voidElements[atom.Lookup([]byte(name))] {
			s.pending = name
		}
		return Event{Kind: EventStart, Name: name}, nil
	case html.SelfClosingTagToken:
		name := s.tagName()
		s.pending = name
		return Event{Kind: EventStart, Name: name}, nil
	case html.EndTagToken:
		name := s.tagName()
		if voidElements[atom.Lookup([]byte(name))] {
			return Event{Kind: EventOther}, nil
		}
		return Event{Kind: EventEnd, Name: name}, nil
	default:
		return Event{Kind: EventOther}, nil
	}
}

func (s *HTMLSource) tagName() string {
	name, _ := s.z.TagName()
	return localName(string(name))
}
