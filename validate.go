package mathtok

import (
	"errors"
	"io"
)

// ErrBinaryInput reports input that appears to be binary.
var ErrBinaryInput = errors.New("binary input detected")

const (
	minBinarySample = 64
	maxControlPct   = 2
)

// ValidateInput returns ErrBinaryInput if src contains a NUL byte or, once at
// least minBinarySample bytes are seen, too many control bytes.
func ValidateInput(src []byte) error {
	var g binaryGuard
	return g.add(src)
}

// binaryGuard checks bytes as they stream past. Markup encodings are not
// decoded here; that is the event source's job.
type binaryGuard struct {
	r       io.Reader
	total   int
	control int
}

func (g *binaryGuard) Read(p []byte) (int, error) {
	n, err := g.r.Read(p)
	if n > 0 {
		if gerr := g.add(p[:n]); gerr != nil {
			return 0, gerr
		}
	}
	return n, err
}

func (g *binaryGuard) add(b []byte) error {
	for _, c := range b {
		g.total++
		if c == 0x00 {
			return ErrBinaryInput
		}
		if isControlByte(c) {
			g.control++
		}
	}
	if g.total >= minBinarySample && g.control*100 >= g.total*maxControlPct {
		return ErrBinaryInput
	}
	return nil
}

func isControlByte(b byte) bool {
	if b < 0x09 {
		return true
	}
	if b > 0x0D && b < 0x20 {
		return true
	}
	if b == 0x7F {
		return true
	}
	return false
}
