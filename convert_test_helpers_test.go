package mathtok

import (
	"os"
	"strings"
	"testing"
)

func convertXML(t *testing.T, doc string, opts ...ConvertOption) Result {
	t.Helper()
	res, err := Convert(ConvertRequest{
		Reader:  strings.NewReader(doc),
		Format:  FormatXML,
		Options: opts,
	})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	return res
}

func convertHTML(t *testing.T, doc string, opts ...ConvertOption) Result {
	t.Helper()
	res, err := Convert(ConvertRequest{
		Reader:  strings.NewReader(doc),
		Format:  FormatHTML,
		Options: opts,
	})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	return res
}

func readTestdata(t testing.TB, name string) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return data
}

// sliceSource replays a fixed event sequence.
type sliceSource struct {
	events []Event
	err    error
}

func (s *sliceSource) Next() (Event, error) {
	if len(s.events) == 0 {
		if s.err != nil {
			return Event{}, s.err
		}
		return Event{Kind: EventEOF}, nil
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev, nil
}

func start(name string) Event { return Event{Kind: EventStart, Name: name} }
func end(name string) Event   { return Event{Kind: EventEnd, Name: name} }
func text(s string) Event     { return Event{Kind: EventText, Text: s} }

func diagnosticKinds(diags []Diagnostic) []DiagnosticKind {
	kinds := make([]DiagnosticKind, 0, len(diags))
	for _, d := range diags {
		kinds = append(kinds, d.Kind)
	}
	return kinds
}
