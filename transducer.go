package mathtok

import (
	"fmt"
	"sync"
)

var transducerPool = sync.Pool{
	New: func() any {
		return &transducer{}
	},
}

type openElement struct {
	mode VisitMode
	name string
}

// transducer is the per-conversion mode-stack machine. All state is reset at
// the start of every conversion.
type transducer struct {
	cfg     convertConfig
	cleaner textCleaner

	modes  []openElement
	buf    tokenBuffer
	args   []string
	frames []scopeFrame

	mathDepth int
	diags     []Diagnostic
}

func (t *transducer) reset(cfg convertConfig) {
	t.cfg = cfg
	t.cleaner = newTextCleaner(cfg)
	t.modes = append(t.modes[:0], openElement{mode: Unwrap})
	t.buf = nil
	t.args = nil
	clear(t.frames)
	t.frames = t.frames[:0]
	t.mathDepth = 0
	t.diags = nil
}

func (t *transducer) release() {
	t.cfg = convertConfig{}
	t.cleaner = textCleaner{}
	t.buf = nil
	t.args = nil
	clear(t.frames)
	t.frames = t.frames[:0]
	clear(t.modes)
	t.modes = t.modes[:0]
	t.diags = nil
}

func (t *transducer) top() VisitMode {
	return t.modes[len(t.modes)-1].mode
}

func (t *transducer) depth() int {
	return len(t.modes) - 1
}

func (t *transducer) warn(kind DiagnosticKind, element, format string, args ...any) {
	d := Diagnostic{
		Kind:    kind,
		Element: element,
		Depth:   t.depth(),
		Message: fmt.Sprintf(format, args...),
	}
	t.diags = append(t.diags, d)
	if t.cfg.sink != nil {
		t.cfg.sink.Warn(d)
	}
}

// run drives the traversal until EventEOF and returns the outermost buffer.
func (t *transducer) run(src EventSource) (string, error) {
	for {
		ev, err := src.Next()
		if err != nil {
			return "", &ReadError{Err: err}
		}
		switch ev.Kind {
		case EventStart:
			if err := t.start(ev.Name); err != nil {
				return "", err
			}
		case EventEnd:
			t.end(ev.Name)
		case EventText:
			t.text(ev.Text)
		case EventEOF:
			return t.finish(), nil
		}
	}
}

func (t *transducer) start(name string) error {
	piece, proposed, known := Classify(name)
	enclosing := t.top()
	if !known && enclosing != Skip {
		if t.cfg.strict {
			return fmt.Errorf("%w: <%s>", ErrUnknownElement, name)
		}
		t.warn(UnknownElement, name, "unexpected element <%s>; skipping", name)
	}
	mode := resolveMode(proposed, enclosing)

	isMath := localName(name) == mathElement
	if piece != "" && enclosing != Skip && (!isMath || t.outermostMath(0)) {
		t.buf.open(piece)
	}
	if isMath {
		t.mathDepth++
	}
	t.modes = append(t.modes, openElement{mode: mode, name: name})

	if mode == Args {
		t.frames = append(t.frames, scopeFrame{buf: t.buf, args: t.args})
		t.buf = nil
		t.args = nil
	}
	return nil
}

// end closes the innermost open element named name. Elements still open
// above it are closed implicitly, as HTML does for optional end tags. An end
// tag matching no open element is ignored.
func (t *transducer) end(name string) {
	i := t.openIndex(name)
	if i < 0 {
		t.warn(UnbalancedEnd, name, "end tag </%s> without a matching open element", name)
		return
	}
	for len(t.modes)-1 > i {
		inner := t.modes[len(t.modes)-1].name
		t.warn(ModeMismatch, inner, "end tag </%s> implicitly closes <%s>", name, inner)
		t.closeTop(inner)
	}
	t.closeTop(name)
}

// openIndex returns the stack index of the innermost open element named
// name, or -1. The sentinel never matches.
func (t *transducer) openIndex(name string) int {
	local := localName(name)
	for i := len(t.modes) - 1; i > 0; i-- {
		if localName(t.modes[i].name) == local {
			return i
		}
	}
	return -1
}

// closeTop pops the innermost open element as closed by </name>.
func (t *transducer) closeTop(name string) {
	opened := t.modes[len(t.modes)-1]
	t.modes = t.modes[:len(t.modes)-1]
	mode := opened.mode

	// The end tag must resolve to the mode its element was opened in.
	class, _ := classOf(name)
	want := resolveMode(class.mode, t.top())
	if mode != want {
		t.warn(ModeMismatch, name, "end tag </%s> closes <%s> opened in %s mode, expected %s", name, opened.name, mode, want)
	}

	if mode == Args {
		t.closeScope()
	}

	piece := class.piece
	if class.marker {
		piece = ""
	}
	if localName(name) == mathElement && t.mathDepth > 0 {
		outermost := t.outermostMath(1)
		t.mathDepth--
		if piece != "" && mode != Skip && outermost {
			t.buf.close(piece)
			t.buf.endFormula()
		}
	} else if piece != "" && mode != Skip {
		t.buf.close(piece)
	}

	// Returning to an Args element seals one complete argument.
	if t.top() == Args {
		t.args = append(t.args, string(t.buf))
		t.buf = t.buf[:0]
	}
}

// closeScope renders the arguments of the Args element being closed and
// appends them to the restored enclosing buffer.
func (t *transducer) closeScope() {
	if len(t.buf) > 0 {
		t.args = append(t.args, string(t.buf))
	}
	args := t.args

	var frame scopeFrame
	if n := len(t.frames); n > 0 {
		frame = t.frames[n-1]
		t.frames[n-1] = scopeFrame{}
		t.frames = t.frames[:n-1]
	} else {
		t.warn(ScopeUnderflow, "", "argument scope closed without a saved frame")
	}
	t.buf = frame.buf
	t.args = frame.args
	renderArgs(&t.buf, args)
}

// outermostMath reports whether delimiters are enabled and the math element
// being handled is the top-level one. depth is the mathDepth it sees: 0 when
// opening, 1 when closing.
func (t *transducer) outermostMath(depth int) bool {
	return t.cfg.mathDelimiters && t.mathDepth == depth
}

func (t *transducer) text(content string) {
	if mode := t.top(); mode == Skip || mode == Unwrap {
		return
	}
	t.buf.word(t.cleaner.clean(content))
}

func (t *transducer) finish() string {
	if d := t.depth(); d > 0 {
		t.warn(UnclosedElements, t.modes[len(t.modes)-1].name, "%d element(s) still open at end of document", d)
	}
	if len(t.frames) > 0 {
		return string(t.frames[0].buf)
	}
	return string(t.buf)
}
