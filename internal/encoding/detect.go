// Package encoding normalizes snapshot files to UTF-8 before they are
// parsed. Files produced by this program are plain UTF-8, but imports
// also accept documents that passed through editors or mail clients that
// re-encoded them or prepended a byte order mark.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// sniffLen bounds how much of the file the detector inspects.
const sniffLen = 4096

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// boms maps a byte order mark to the decoder for the encoding it
// announces.
var boms = []struct {
	prefix  []byte
	decoder func() *encoding.Decoder
}{
	{[]byte{0xFF, 0xFE}, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder},
	{[]byte{0xFE, 0xFF}, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder},
}

// charsets maps chardet results to decoders for the single-byte
// encodings worth handling. Anything else falls back to Windows-1252,
// which decodes every byte sequence and covers the common western
// mislabels.
var charsets = map[string]*charmap.Charmap{
	"ISO-8859-1":   charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"ISO-8859-15":  charmap.ISO8859_15,
}

// UTF8Reader wraps r so that reads yield UTF-8 text regardless of the
// source encoding. A UTF-8 byte order mark is stripped.
func UTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("sniffing input: %w", err)
	}

	if bytes.HasPrefix(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
		return br, nil
	}

	for _, bom := range boms {
		if bytes.HasPrefix(head, bom.prefix) {
			return transform.NewReader(br, bom.decoder()), nil
		}
	}

	if utf8.Valid(head) {
		return br, nil
	}

	if result, err := chardet.NewTextDetector().DetectBest(head); err == nil {
		if result.Charset == "UTF-8" {
			return br, nil
		}

		if cm, ok := charsets[result.Charset]; ok {
			return transform.NewReader(br, cm.NewDecoder()), nil
		}
	}

	return transform.NewReader(br, charmap.Windows1252.NewDecoder()), nil
}
