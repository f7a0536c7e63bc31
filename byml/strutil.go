package byml

import (
	"bytes"
	"unicode/utf8"

	"github.com/switchtoolbox/paramio/errs"
)

// readCString returns the UTF-8 string found in b up to (and not
// including) its first NUL byte, or all of b if there is none.
func readCString(b []byte) (string, error) {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}

	if !utf8.Valid(b) {
		return "", errs.BadString(errUTF8)
	}

	return string(b), nil
}

var errUTF8 = errs.Any("invalid utf-8 byte sequence")
