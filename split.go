package mathtok

import "strings"

// SplitFormulas splits a token stream produced with math delimiters into one
// string per formula. Empty segments are dropped.
func SplitFormulas(out string) []string {
	parts := strings.Split(out, formulaBreak)
	formulas := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			formulas = append(formulas, p)
		}
	}
	return formulas
}
