package mathtok

import "strings"

const argPiece = "arg"

// scopeFrame saves the enclosing output while an Args element collects its
// own arguments.
type scopeFrame struct {
	buf  tokenBuffer
	args []string
}

// renderArgs writes prepared arguments in order. A single-token argument is
// written bare; anything else, including an empty argument, is wrapped in
// [arg] ... [end_arg].
func renderArgs(dst *tokenBuffer, args []string) {
	for _, arg := range args {
		if isSingleToken(arg) {
			dst.word(arg)
			continue
		}
		dst.open(argPiece)
		dst.word(arg)
		dst.close(argPiece)
	}
}

func isSingleToken(arg string) bool {
	return arg != "" && !strings.ContainsAny(arg, " \n")
}
