package mathtok

import "strings"

// VisitMode selects how an element and its descendants are traversed.
type VisitMode uint8

const (
	// Tokens emits bracketed markers and text for the element and its subtree.
	Tokens VisitMode = iota
	// Skip suppresses the element and everything below it.
	Skip
	// Args treats each direct child of the element as a separate argument.
	Args
	// Unwrap makes the element transparent: children inherit the enclosing mode.
	Unwrap
)

func (m VisitMode) String() string {
	switch m {
	case Tokens:
		return "tokens"
	case Skip:
		return "skip"
	case Args:
		return "args"
	case Unwrap:
		return "unwrap"
	default:
		return "unknown"
	}
}

type nodeClass struct {
	piece string
	mode  VisitMode
	// marker elements write [piece] alone, with no end marker.
	marker bool
}

const mathElement = "math"

// nodeClasses is read-only after package init.
var nodeClasses = buildNodeClasses()

func buildNodeClasses() map[string]nodeClass {
	m := make(map[string]nodeClass, 160)
	set := func(mode VisitMode, piece string, names ...string) {
		for _, name := range names {
			m[name] = nodeClass{piece: piece, mode: mode}
		}
	}

	// Presentation MathML.
	set(Tokens, mathElement, "math")
	set(Tokens, "", "mrow", "mstyle", "mi", "mn", "mo", "ms", "mtext", "mpadded", "mspace", "mglyph", "none")
	set(Tokens, "sqrt", "msqrt")
	set(Tokens, "error", "merror")
	set(Tokens, "table", "mtable")
	set(Tokens, "tr", "mtr", "mlabeledtr")
	set(Tokens, "td", "mtd")
	set(Tokens, "enclose", "menclose")
	m["mprescripts"] = nodeClass{piece: "prescripts", mode: Tokens, marker: true}
	set(Args, "frac", "mfrac")
	set(Args, "root", "mroot")
	set(Args, "over", "mover")
	set(Args, "under", "munder")
	set(Args, "underover", "munderover")
	set(Args, "sub", "msub")
	set(Args, "sup", "msup")
	set(Args, "subsup", "msubsup")
	set(Args, "multiscripts", "mmultiscripts")

	// semantics keeps its presentation child; annotations are skipped below.
	set(Unwrap, "", "semantics")
	set(Skip, "", "annotation", "annotation-xml", "maction", "mphantom")

	// Content MathML duplicates the presentation tree.
	set(Skip, "",
		"apply", "bind", "bvar", "ci", "cn", "csymbol", "cs", "cerror", "cbytes", "share",
		"eq", "neq", "lt", "gt", "leq", "geq", "equivalent", "approx",
		"plus", "minus", "times", "divide", "power", "root", "abs", "factorial",
		"interval", "set", "list", "vector", "matrix", "matrixrow",
		"int", "sum", "product", "limit", "degree", "lowlimit", "uplimit",
		"condition", "domainofapplication", "in", "notin", "subset", "union", "intersect",
		"and", "or", "not", "implies", "forall", "exists", "diff", "partialdiff",
		"sin", "cos", "tan", "exp", "ln", "log")

	// Generic HTML containers.
	set(Unwrap, "",
		"html", "body", "div", "span", "p", "a", "section", "article", "main",
		"header", "footer", "nav", "aside", "figure", "figcaption", "blockquote",
		"ul", "ol", "li", "dl", "dt", "dd", "em", "strong", "b", "i", "u", "small",
		"sub", "sup", "cite", "code", "pre", "table", "thead", "tbody", "tfoot",
		"tr", "td", "th", "caption", "h1", "h2", "h3", "h4", "h5", "h6",
		"label", "center", "font")

	// Non-semantic HTML.
	set(Skip, "",
		"head", "title", "meta", "link", "script", "style", "img", "svg", "noscript",
		"iframe", "object", "br", "hr", "button", "input", "form", "picture",
		"source", "video", "audio", "canvas", "template",
		"select", "option", "optgroup", "datalist", "textarea")
	return m
}

// Classify maps an element name to its bracket label and proposed visit mode.
// Namespace prefixes are ignored. Unknown names map to ("", Skip) with known
// set to false.
func Classify(name string) (piece string, mode VisitMode, known bool) {
	c, ok := classOf(name)
	return c.piece, c.mode, ok
}

func classOf(name string) (nodeClass, bool) {
	c, ok := nodeClasses[localName(name)]
	if !ok {
		return nodeClass{mode: Skip}, false
	}
	return c, true
}

// markerPieces holds the labels written without an end marker.
var markerPieces = func() map[string]bool {
	pieces := make(map[string]bool)
	for _, c := range nodeClasses {
		if c.marker {
			pieces[c.piece] = true
		}
	}
	return pieces
}()

func localName(name string) string {
	if i := strings.LastIndexByte(name, ':'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// resolveMode applies the inheritance rules: Unwrap takes the enclosing mode
// inside math content, and Skip propagates to every descendant.
func resolveMode(proposed, enclosing VisitMode) VisitMode {
	switch {
	case proposed == Unwrap && (enclosing == Tokens || enclosing == Args):
		return enclosing
	case enclosing == Skip:
		return Skip
	default:
		return proposed
	}
}
