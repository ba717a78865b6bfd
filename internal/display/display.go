// Package display prepares wallet records for presentation: fixed-width
// line wrapping and QR encoding.
package display

import (
	"strings"
	"unicode/utf8"

	"github.com/AlexZinkM/paper-wallet/internal/secret"

	logging "github.com/ipfs/go-log/v2"
	"github.com/skip2/go-qrcode"
)

var log = logging.Logger("paperwallet/display")

// Line lengths of the reference layout. Presentation constants only.
const (
	AddressLineLength    = 44
	PrivateKeyLineLength = 59
)

// Chunks splits text into consecutive runs of exactly n characters; the last
// run may be shorter. n < 1 yields the text as a single chunk.
func Chunks(text string, n int) []string {
	if n < 1 || text == "" {
		return []string{text}
	}

	var out []string
	start, runes := 0, 0
	for i := range text {
		if runes == n {
			out = append(out, text[start:i])
			start, runes = i, 0
		}
		runes++
	}
	return append(out, text[start:])
}

// Wrap returns text unchanged when it fits in maxLineLength characters,
// otherwise its chunks joined with newlines.
func Wrap(text string, maxLineLength int) string {
	if maxLineLength < 1 || utf8.RuneCountInString(text) <= maxLineLength {
		return text
	}
	return strings.Join(Chunks(text, maxLineLength), "\n")
}

// WrapSecret is Wrap for secret content. The result is a new secret owned by
// the caller; no intermediate string is created.
func WrapSecret(s *secret.Bytes, maxLineLength int) *secret.Bytes {
	b := s.Bytes()
	count := utf8.RuneCount(b)
	if maxLineLength < 1 || count <= maxLineLength {
		return s.Clone()
	}

	// Sized up front so append never reallocates and strands a copy
	out := make([]byte, 0, len(b)+count/maxLineLength+1)
	runes := 0
	for i := 0; i < len(b); {
		_, size := utf8.DecodeRune(b[i:])
		if runes > 0 && runes%maxLineLength == 0 {
			out = append(out, '\n')
		}
		out = append(out, b[i:i+size]...)
		runes++
		i += size
	}
	return secret.Take(out)
}

// EncodeQR returns a QR code for text, or nil when it cannot be encoded
// (e.g. too long for any QR version). Callers render a placeholder for nil.
func EncodeQR(text string) *qrcode.QRCode {
	qr, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		log.Warnf("qr encoding failed for %d-byte input: %v", len(text), err)
		return nil
	}
	return qr
}

// Terminal renders qr with half-block characters, two modules per line.
func Terminal(qr *qrcode.QRCode) string {
	if qr == nil {
		return "[QR unavailable]\n"
	}

	bits := qr.Bitmap()
	var sb strings.Builder
	for y := 0; y < len(bits); y += 2 {
		for x := range bits[y] {
			top := bits[y][x]
			bottom := y+1 < len(bits) && bits[y+1][x]
			switch {
			case top && bottom:
				sb.WriteString("█")
			case top:
				sb.WriteString("▀")
			case bottom:
				sb.WriteString("▄")
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
