package mathtok

import (
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

const invisibleTimes = '\u2062'

// textCleaner is not safe for concurrent use; each transducer owns one.
type textCleaner struct {
	t transform.Transformer
}

func newTextCleaner(cfg convertConfig) textCleaner {
	strip := runes.Remove(runes.Predicate(func(r rune) bool { return r == invisibleTimes }))
	if cfg.normalize {
		return textCleaner{t: transform.Chain(strip, cfg.form)}
	}
	return textCleaner{t: strip}
}

// clean strips invisible multiplication, trims the text and collapses
// internal whitespace runs to single spaces.
func (c textCleaner) clean(text string) string {
	if out, _, err := transform.String(c.t, text); err == nil {
		text = out
	}
	fields := strings.Fields(text)
	switch len(fields) {
	case 0:
		return ""
	case 1:
		return fields[0]
	default:
		return strings.Join(fields, " ")
	}
}
