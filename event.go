package mathtok

// EventKind identifies a markup parse event.
type EventKind uint8

const (
	// EventOther covers comments, doctypes, processing instructions and the like.
	EventOther EventKind = iota
	// EventStart opens an element.
	EventStart
	// EventEnd closes an element.
	EventEnd
	// EventText carries character data.
	EventText
	// EventEOF marks the end of the document.
	EventEOF
)

// Event is a single parse event in document order.
type Event struct {
	Kind EventKind
	Name string // element name for EventStart and EventEnd
	Text string // character data for EventText
}

// EventSource yields parse events in document order. An error from Next is
// fatal for the conversion; a source signals a clean end with EventEOF.
type EventSource interface {
	Next() (Event, error)
}
