package mathtok

const (
	tokenStartChar = '['
	tokenEndChar   = ']'
	endPrefix      = "end_"
	formulaBreak   = "\n\n"
)

// tokenBuffer accumulates space-separated tokens. It never starts with a
// separator and never places one directly after a formula break.
type tokenBuffer []byte

func (b *tokenBuffer) separate() {
	if n := len(*b); n > 0 && (*b)[n-1] != '\n' {
		*b = append(*b, ' ')
	}
}

func (b *tokenBuffer) word(s string) {
	if s == "" {
		return
	}
	b.separate()
	*b = append(*b, s...)
}

func (b *tokenBuffer) open(piece string) {
	b.separate()
	*b = append(*b, tokenStartChar)
	*b = append(*b, piece...)
	*b = append(*b, tokenEndChar)
}

func (b *tokenBuffer) close(piece string) {
	b.separate()
	*b = append(*b, tokenStartChar)
	*b = append(*b, endPrefix...)
	*b = append(*b, piece...)
	*b = append(*b, tokenEndChar)
}

func (b *tokenBuffer) endFormula() {
	*b = append(*b, formulaBreak...)
}
