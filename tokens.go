package mathtok

import "strings"

// Token is a single whitespace-delimited item of a token stream.
type Token struct {
	Text string
	Kind tokenKind
}

type tokenKind uint8

// TokenKind is the exported alias of tokenKind for tooling.
type TokenKind = tokenKind

const (
	tokenText tokenKind = iota
	tokenStart
	tokenEnd
	tokenFormulaBreak
	tokenMarker
)

const (
	// TokenText is a content token copied from character data.
	TokenText tokenKind = tokenText
	// TokenStart is a structural start marker such as [frac].
	TokenStart tokenKind = tokenStart
	// TokenEnd is a structural end marker such as [end_frac].
	TokenEnd tokenKind = tokenEnd
	// TokenFormulaBreak separates top-level formulas.
	TokenFormulaBreak tokenKind = tokenFormulaBreak
	// TokenMarker is a standalone marker with no end, such as [prescripts].
	TokenMarker tokenKind = tokenMarker
)

func (k tokenKind) String() string {
	switch k {
	case tokenStart:
		return "start"
	case tokenEnd:
		return "end"
	case tokenFormulaBreak:
		return "break"
	case tokenMarker:
		return "marker"
	default:
		return "text"
	}
}

// Name returns the construct name of a marker (frac for [frac] and
// [end_frac]) and the text of any other token.
func (t Token) Name() string {
	switch t.Kind {
	case tokenStart, tokenMarker:
		return t.Text[1 : len(t.Text)-1]
	case tokenEnd:
		return t.Text[1+len(endPrefix) : len(t.Text)-1]
	default:
		return t.Text
	}
}

// ParseTokens breaks a token stream into typed tokens.
func ParseTokens(out string) []Token {
	var toks []Token
	for out != "" {
		segment, rest, found := strings.Cut(out, formulaBreak)
		for _, field := range strings.Fields(segment) {
			toks = append(toks, Token{Text: field, Kind: classifyToken(field)})
		}
		if found {
			toks = append(toks, Token{Text: formulaBreak, Kind: tokenFormulaBreak})
		}
		out = rest
	}
	return toks
}

func classifyToken(field string) tokenKind {
	if len(field) < 3 || field[0] != tokenStartChar || field[len(field)-1] != tokenEndChar {
		return tokenText
	}
	if strings.HasPrefix(field[1:], endPrefix) && len(field) > len(endPrefix)+2 {
		return tokenEnd
	}
	if markerPieces[field[1:len(field)-1]] {
		return tokenMarker
	}
	return tokenStart
}
