package flowcsv

import (
	"bufio"
	"bytes"
	"io"
)

// utf8BOM is the UTF-8 byte order mark Windows tools routinely prepend
// to exported CSV files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// newBOMReader returns r with a leading UTF-8 byte order mark removed,
// so the first header cell matches its column name exactly.
func newBOMReader(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		// Discard cannot fail after a successful Peek of the same length.
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}
