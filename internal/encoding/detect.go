// Package encoding turns uploaded text of unknown charset into UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	xencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Charset names reported by NewUTF8Reader.
const (
	UTF8        = "UTF-8"
	UTF16LE     = "UTF-16LE"
	UTF16BE     = "UTF-16BE"
	Windows1252 = "windows-1252"
	ISO88599    = "ISO-8859-9"
	ISO885915   = "ISO-8859-15"
)

const sampleSize = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// heuristic maps chardet results to the decoders we trust them for.
var heuristic = map[string]struct {
	name string
	enc  xencoding.Encoding
}{
	"ISO-8859-1":   {Windows1252, charmap.Windows1252},
	"windows-1252": {Windows1252, charmap.Windows1252},
	"ISO-8859-9":   {ISO88599, charmap.ISO8859_9},
	"ISO-8859-15":  {ISO885915, charmap.ISO8859_15},
}

// NewUTF8Reader returns a reader yielding r's content as UTF-8 together with
// the charset it was decoded from. A UTF-8 BOM is stripped. Detection tries
// byte order marks, UTF-8 validity and chardet in that order, and falls back
// to Windows-1252.
func NewUTF8Reader(r io.Reader) (io.Reader, string, error) {
	br := bufio.NewReaderSize(r, sampleSize)

	sample, err := br.Peek(sampleSize)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, "", fmt.Errorf("reading sample: %w", err)
	}

	switch {
	case bytes.HasPrefix(sample, bomUTF8):
		_, _ = br.Discard(len(bomUTF8))
		return br, UTF8, nil
	case bytes.HasPrefix(sample, bomUTF16LE):
		return decode(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)), UTF16LE, nil
	case bytes.HasPrefix(sample, bomUTF16BE):
		return decode(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM)), UTF16BE, nil
	}

	// The sample may end in the middle of a multi-byte sequence.
	if utf8.Valid(trimPartialRune(sample, len(sample) == sampleSize)) {
		return br, UTF8, nil
	}

	if result, err := chardet.NewTextDetector().DetectBest(sample); err == nil {
		if result.Charset == UTF8 {
			return br, UTF8, nil
		}

		if h, ok := heuristic[result.Charset]; ok {
			return decode(br, h.enc), h.name, nil
		}
	}

	return decode(br, charmap.Windows1252), Windows1252, nil
}

func decode(r io.Reader, enc xencoding.Encoding) io.Reader {
	return transform.NewReader(r, enc.NewDecoder())
}

func trimPartialRune(b []byte, truncated bool) []byte {
	if !truncated {
		return b
	}

	for i := 1; i < utf8.UTFMax && i <= len(b); i++ {
		if utf8.RuneStart(b[len(b)-i]) {
			if !utf8.FullRune(b[len(b)-i:]) {
				return b[:len(b)-i]
			}

			break
		}
	}

	return b
}
