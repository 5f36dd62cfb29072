// Package transcode converts UTF-8 text into the single byte Latin-1 encoding the printer understands.
package transcode

import (
	"golang.org/x/text/encoding/charmap"
)

// Placeholder replaces a two byte sequence whose code point has no Latin-1 byte.
const Placeholder = '?'

// ToLatin1 converts src byte by byte.
//
//   - ASCII passes through.
//   - A valid two byte sequence becomes its Latin-1 byte, or Placeholder above U+00FF.
//   - A two byte lead without a valid continuation is dropped and decoding resumes at the next byte.
//   - Three and four byte sequences are dropped whole, without a placeholder.
//   - Stray continuation bytes and invalid lead bytes are dropped.
func ToLatin1(src []byte) []byte {
	out := make([]byte, 0, len(src))

	for i := 0; i < len(src); {
		b := src[i]

		switch {
		case b < 0x80:
			out = append(out, b)
			i++
		case b&0xE0 == 0xC0:
			if i+1 >= len(src) || src[i+1]&0xC0 != 0x80 {
				i++

				continue
			}

			r := rune(b&0x1F)<<6 | rune(src[i+1]&0x3F)
			if c, ok := charmap.ISO8859_1.EncodeRune(r); ok {
				out = append(out, c)
			} else {
				out = append(out, Placeholder)
			}

			i += 2
		case b&0xF0 == 0xE0:
			i += 3
		case b&0xF8 == 0xF0:
			i += 4
		default:
			i++
		}
	}

	return out
}
